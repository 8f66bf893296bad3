package strip

import (
	"errors"
	"fmt"
)

// Sentinel errors for the strip package.
var (
	// ErrSyntax indicates the structured pass could not parse the input.
	ErrSyntax = errors.New("syntax error")
	// ErrNoRootNode indicates the parser produced no tree for the input.
	ErrNoRootNode = errors.New("no root node")
	// ErrLanguageUnavailable indicates the tree-sitter grammar failed to load.
	ErrLanguageUnavailable = errors.New("language grammar unavailable")
)

// ParseError reports that a file is not syntactically valid for the
// structured pass. Callers skip the file, leave the original untouched in
// the output, and continue with remaining files.
type ParseError struct {
	Path string
	Err  error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying cause.
func (e *ParseError) Unwrap() error {
	return e.Err
}
