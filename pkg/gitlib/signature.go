package gitlib

import (
	"time"

	git2go "github.com/libgit2/git2go/v34"
)

// Signature represents a git signature (author/committer).
type Signature struct {
	Name  string
	Email string
	When  time.Time
}

// toGit converts the signature to its libgit2 form, defaulting When to now.
func (s Signature) toGit() *git2go.Signature {
	when := s.When
	if when.IsZero() {
		when = time.Now()
	}

	return &git2go.Signature{
		Name:  s.Name,
		Email: s.Email,
		When:  when,
	}
}
