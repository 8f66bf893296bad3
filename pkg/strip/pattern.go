package strip

import (
	"bytes"
	"context"
	"strings"
)

// PatternRemover strips comment syntax from source text using a language's
// marker rules, without a real parser. A forward scan tracks string-literal
// state so markers inside single- or double-quoted strings are never touched.
//
// The pass is deliberately best-effort: nested block comments, markers inside
// multi-line strings the guard does not recognize, shebang lines and raw
// strings are not guaranteed correct. When the guard desyncs (a quoted string
// runs past end of line or end of file), the remover stops modifying from the
// last clean line boundary and returns the remainder untouched, erring toward
// under-removal rather than corrupting code.
type PatternRemover struct {
	rules Rules
}

// NewPatternRemover creates a pattern remover for the given rules.
func NewPatternRemover(rules Rules) *PatternRemover {
	return &PatternRemover{rules: rules}
}

// Rules returns the rules the remover scans with.
func (p *PatternRemover) Rules() Rules {
	return p.rules
}

// Strip removes recognized comment spans from src. It never fails.
func (p *PatternRemover) Strip(_ context.Context, _ string, src []byte) ([]byte, error) {
	out := make([]byte, 0, len(src))

	// Checkpoint of the last line start reached with clean scanner state.
	// On guard desync the output is rewound here and the rest of the input
	// is passed through unmodified.
	cpIn, cpOut := 0, 0

	inString := false
	escaped := false

	var quote byte

	i := 0
	for i < len(src) {
		c := src[i]

		if inString {
			switch {
			case escaped:
				escaped = false

				out = append(out, c)
				i++
			case c == '\\':
				escaped = true

				out = append(out, c)
				i++
			case c == quote:
				inString = false

				out = append(out, c)
				i++
			case c == '\n':
				// String ran past end of line: guard desync.
				return append(out[:cpOut], src[cpIn:]...), nil
			default:
				out = append(out, c)
				i++
			}

			continue
		}

		if c == '\n' {
			out = append(out, c)
			i++
			cpIn, cpOut = i, len(out)

			continue
		}

		if p.rules.Quotes != "" && strings.IndexByte(p.rules.Quotes, c) >= 0 {
			inString = true
			quote = c

			out = append(out, c)
			i++

			continue
		}

		if opening, closing, ok := p.matchBlockOpen(src, i); ok {
			i = skipBlock(src, i, opening, closing)

			continue
		}

		if marker, ok := p.matchLineMarker(src, i); ok {
			i = skipToEOL(src, i+len(marker))

			continue
		}

		out = append(out, c)
		i++
	}

	if inString {
		// Unterminated string at end of file: same desync policy.
		return append(out[:cpOut], src[cpIn:]...), nil
	}

	return out, nil
}

// matchBlockOpen reports the block delimiter pair opening at src[i].
func (p *PatternRemover) matchBlockOpen(src []byte, i int) (opening, closing string, ok bool) {
	for _, b := range p.rules.Blocks {
		if hasPrefixAt(src, i, b.Open) {
			return b.Open, b.Close, true
		}
	}

	return "", "", false
}

// matchLineMarker reports the line-comment marker starting at src[i].
func (p *PatternRemover) matchLineMarker(src []byte, i int) (string, bool) {
	for _, m := range p.rules.LineMarkers {
		if hasPrefixAt(src, i, m) {
			return m, true
		}
	}

	return "", false
}

// skipBlock advances past a block comment opening at src[i]. The shortest
// span to the matching close delimiter is consumed; an unterminated block
// consumes through end of file.
func skipBlock(src []byte, i int, opening, closing string) int {
	rest := src[i+len(opening):]

	at := bytes.Index(rest, []byte(closing))
	if at < 0 {
		return len(src)
	}

	return i + len(opening) + at + len(closing)
}

// skipToEOL advances to the next newline, which is kept.
func skipToEOL(src []byte, i int) int {
	for i < len(src) && src[i] != '\n' {
		i++
	}

	return i
}

// hasPrefixAt reports whether src has prefix at offset i.
func hasPrefixAt(src []byte, i int, prefix string) bool {
	if i+len(prefix) > len(src) {
		return false
	}

	return string(src[i:i+len(prefix)]) == prefix
}
