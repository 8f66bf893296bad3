package strip

import (
	"context"
	"sync"

	python "github.com/alexaandru/go-sitter-forest/python"
	sitter "github.com/alexaandru/go-tree-sitter-bare"
)

// Python grammar node type names the structured pass inspects.
const (
	pyComment             = "comment"
	pyModule              = "module"
	pyBlock               = "block"
	pyExpressionStatement = "expression_statement"
	pyString              = "string"
	pyFunctionDefinition  = "function_definition"
	pyClassDefinition     = "class_definition"
)

var (
	pythonLangOnce sync.Once
	pythonLang     *sitter.Language
)

// pythonLanguage returns the shared tree-sitter Python grammar.
func pythonLanguage() *sitter.Language {
	pythonLangOnce.Do(func() {
		pythonLang = sitter.NewLanguage(python.GetLanguage())
	})

	return pythonLang
}

// StructuredRemover strips comments from Python source by parsing it with
// tree-sitter and excising comment node spans from the original bytes. All
// non-comment text is byte-identical in relative order.
//
// Docstring Exception: the first statement of a module, function or class
// body that is a bare string expression is marked preserved and is never
// altered regardless of content. String literals elsewhere are ordinary code
// and are untouched by construction, since only comment nodes are excised.
type StructuredRemover struct {
	language *sitter.Language
}

// NewStructuredRemover creates the Python structured remover.
func NewStructuredRemover() *StructuredRemover {
	return &StructuredRemover{language: pythonLanguage()}
}

// Strip parses src and returns it with all comment spans removed. Input that
// is not syntactically valid Python surfaces a *ParseError naming the file;
// no partial recovery is attempted.
func (s *StructuredRemover) Strip(ctx context.Context, path string, src []byte) ([]byte, error) {
	if s.language == nil {
		return nil, &ParseError{Path: path, Err: ErrLanguageUnavailable}
	}

	parser := sitter.NewParser()
	parser.SetLanguage(s.language)

	tree, err := parser.ParseString(ctx, nil, src)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.IsNull() {
		return nil, &ParseError{Path: path, Err: ErrNoRootNode}
	}

	if root.HasError() {
		return nil, &ParseError{Path: path, Err: ErrSyntax}
	}

	var comments, preserved []span

	collectSpans(root, "", &comments, &preserved)

	return excise(src, dropPreserved(comments, preserved)), nil
}

// span is a half-open byte range [start, end) of source text.
type span struct {
	start int
	end   int
}

// intersects reports whether two spans overlap.
func (s span) intersects(o span) bool {
	return s.start < o.end && o.start < s.end
}

// nodeSpan converts a tree-sitter node's byte range to a span.
func nodeSpan(n sitter.Node) span {
	return span{start: int(n.StartByte()), end: int(n.EndByte())}
}

// collectSpans walks the tree gathering comment node spans and preserved
// docstring spans. parentType is the grammar type of the node's parent,
// needed to tell function and class bodies apart from plain suites.
func collectSpans(n sitter.Node, parentType string, comments, preserved *[]span) {
	nodeType := n.Type()

	if nodeType == pyComment {
		*comments = append(*comments, nodeSpan(n))

		return
	}

	if isDocstringHolder(nodeType, parentType) {
		if ds, ok := docstringSpan(n); ok {
			*preserved = append(*preserved, ds)
		}
	}

	for i := range n.ChildCount() {
		collectSpans(n.Child(i), nodeType, comments, preserved)
	}
}

// isDocstringHolder reports whether a node's leading bare string literal is
// a docstring. True for the module and for function/class bodies only; a
// string leading any other suite is ordinary code with no special meaning.
func isDocstringHolder(nodeType, parentType string) bool {
	if nodeType == pyModule {
		return true
	}

	return nodeType == pyBlock &&
		(parentType == pyFunctionDefinition || parentType == pyClassDefinition)
}

// docstringSpan returns the span of the block's docstring: its first
// statement, skipping interleaved comments, when that statement is a bare
// string expression.
func docstringSpan(block sitter.Node) (span, bool) {
	for i := range block.NamedChildCount() {
		child := block.NamedChild(i)
		if child.Type() == pyComment {
			continue
		}

		if child.Type() != pyExpressionStatement {
			return span{}, false
		}

		if child.NamedChildCount() == 1 && child.NamedChild(0).Type() == pyString {
			return nodeSpan(child), true
		}

		return span{}, false
	}

	return span{}, false
}

// dropPreserved removes comment spans that intersect any preserved span.
// Tree-sitter never classifies a docstring as a comment node, so this is a
// contract guard rather than a hot path.
func dropPreserved(comments, preserved []span) []span {
	if len(preserved) == 0 {
		return comments
	}

	kept := comments[:0]

	for _, c := range comments {
		hit := false

		for _, p := range preserved {
			if c.intersects(p) {
				hit = true

				break
			}
		}

		if !hit {
			kept = append(kept, c)
		}
	}

	return kept
}

// excise deletes the given spans from src, in order. A comment alone on its
// line takes the whole line with it, newline included; a comment trailing
// code also consumes the whitespace run immediately before it. Everything
// else is copied through verbatim.
func excise(src []byte, spans []span) []byte {
	out := make([]byte, 0, len(src))
	prev := 0

	for _, sp := range spans {
		start, end := sp.start, sp.end
		if start < prev {
			continue
		}

		ls := lineStartBefore(src, start, prev)

		if allBlank(src[ls:start]) {
			// Whole-line comment: drop the line and its newline.
			start = ls

			if end < len(src) && src[end] == '\n' {
				end++
			}
		} else {
			// Trailing comment: also drop the whitespace run before it.
			for start > prev && (src[start-1] == ' ' || src[start-1] == '\t') {
				start--
			}
		}

		out = append(out, src[prev:start]...)
		prev = end
	}

	return append(out, src[prev:]...)
}

// lineStartBefore finds the start of the line containing offset, bounded
// below by floor.
func lineStartBefore(src []byte, offset, floor int) int {
	i := offset
	for i > floor && src[i-1] != '\n' {
		i--
	}

	return i
}

// allBlank reports whether b contains only spaces and tabs.
func allBlank(b []byte) bool {
	for _, c := range b {
		if c != ' ' && c != '\t' {
			return false
		}
	}

	return true
}
