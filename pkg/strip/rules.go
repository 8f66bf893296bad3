package strip

import "strings"

// BlockDelim is a pair of block-comment delimiters, e.g. /* and */.
type BlockDelim struct {
	Open  string `json:"open"  mapstructure:"open"`
	Close string `json:"close" mapstructure:"close"`
}

// Rules describes the comment syntax of one language for the Pattern Remover.
// LineMarkers start a comment running to end of line. Blocks delimit spans
// that may cross lines. Quotes lists the string-literal quote characters the
// scanner guards against; markers found between quotes are never removed.
type Rules struct {
	LineMarkers []string     `json:"line_markers,omitempty" mapstructure:"line_markers"`
	Blocks      []BlockDelim `json:"blocks,omitempty"       mapstructure:"blocks"`
	Quotes      string       `json:"quotes,omitempty"       mapstructure:"quotes"`
}

// Empty reports whether the rules describe no comment syntax at all.
func (r Rules) Empty() bool {
	return len(r.LineMarkers) == 0 && len(r.Blocks) == 0
}

// Common delimiter sets shared by the builtin table.
var (
	cStyleBlocks = []BlockDelim{{Open: "/*", Close: "*/"}}
	sgmlBlocks   = []BlockDelim{{Open: "<!--", Close: "-->"}}
)

// cStyleRules covers the //-and-/* */ family.
func cStyleRules(quotes string) Rules {
	return Rules{
		LineMarkers: []string{"//"},
		Blocks:      cStyleBlocks,
		Quotes:      quotes,
	}
}

// hashRules covers #-to-end-of-line languages.
func hashRules() Rules {
	return Rules{
		LineMarkers: []string{"#"},
		Quotes:      `"'`,
	}
}

// GenericRules is the fallback for unknown extensions. It covers every
// builtin marker family at once; correctness for any particular language is
// explicitly not guaranteed. Backtick and other exotic quoting rules are a
// known gap: only single and double quotes are guarded.
func GenericRules() Rules {
	return Rules{
		LineMarkers: []string{"//", "#"},
		Blocks:      append(append([]BlockDelim{}, cStyleBlocks...), sgmlBlocks...),
		Quotes:      `"'`,
	}
}

// builtinRules maps file extensions to their comment syntax. Mirrors the
// pattern set the tool has always shipped; adding a language is a table
// entry, not new removal logic.
func builtinRules() map[string]Rules {
	cLike := cStyleRules(`"'`)
	scriptLike := cStyleRules("\"'`")

	return map[string]Rules{
		".c":    cLike,
		".h":    cLike,
		".cpp":  cLike,
		".hpp":  cLike,
		".java": cLike,
		".js":   scriptLike,
		".jsx":  scriptLike,
		".ts":   scriptLike,
		".tsx":  scriptLike,
		".go":   scriptLike,
		".sh":   hashRules(),
		".rb":   hashRules(),
		".php": {
			LineMarkers: []string{"//", "#"},
			Blocks:      cStyleBlocks,
			Quotes:      `"'`,
		},
		".html": {Blocks: sgmlBlocks, Quotes: `"'`},
		".xml":  {Blocks: sgmlBlocks, Quotes: `"'`},
		".css":  {Blocks: cStyleBlocks, Quotes: `"'`},
	}
}

// normalizeExt lowercases an extension and ensures the leading dot.
func normalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext == "" {
		return ext
	}

	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}

	return ext
}
