package gitlib

import (
	"errors"
	"fmt"
)

// errNoToken indicates interactive authentication produced no token.
var errNoToken = errors.New("no personal access token supplied")

// GitError reports a failed git operation. Clone errors are fatal to an
// invocation; push errors are downgraded to warnings by callers when the
// write-access probe already failed.
type GitError struct {
	Op  string
	Err error
}

// Error implements the error interface.
func (e *GitError) Error() string {
	return fmt.Sprintf("git %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying libgit2 error.
func (e *GitError) Unwrap() error {
	return e.Err
}
