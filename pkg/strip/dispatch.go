// Package strip implements comment removal from source text. Two passes
// cooperate: a structured, tree-sitter backed pass for Python that preserves
// docstrings, and a pattern pass driven by a per-extension marker table for
// every other language. A dispatcher selects the pass by file extension.
package strip

import (
	"context"
	"path/filepath"
)

// structuredExt is the one extension with full parse support.
const structuredExt = ".py"

// Remover transforms source text into comment-free text. Implementations
// must not modify src.
type Remover interface {
	Strip(ctx context.Context, path string, src []byte) ([]byte, error)
}

// Dispatcher maps a file path's extension to the remover that handles it.
// Pure lookup: unknown extensions always route to the generic pattern
// remover, and the only failure mode is the chosen remover's own errors.
type Dispatcher struct {
	structured *StructuredRemover
	table      *Table
}

// NewDispatcher creates a dispatcher over the given language table.
func NewDispatcher(table *Table) *Dispatcher {
	return &Dispatcher{
		structured: NewStructuredRemover(),
		table:      table,
	}
}

// RemoverFor returns the remover responsible for the given path. A user
// table entry wins even for the structured extension, so Python can be
// forced through the pattern pass by adding a ".py" entry.
func (d *Dispatcher) RemoverFor(path string) Remover {
	ext := normalizeExt(filepath.Ext(path))

	if rules, ok := d.table.Lookup(ext); ok {
		return NewPatternRemover(rules)
	}

	if ext == structuredExt {
		return d.structured
	}

	return NewPatternRemover(GenericRules())
}

// Structured reports whether the path routes to the structured pass.
func (d *Dispatcher) Structured(path string) bool {
	ext := normalizeExt(filepath.Ext(path))
	if _, ok := d.table.Lookup(ext); ok {
		return false
	}

	return ext == structuredExt
}
