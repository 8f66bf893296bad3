package gitlib

import (
	"fmt"

	git2go "github.com/libgit2/git2go/v34"
)

// originRemote is the remote a fresh clone pushes back to.
const originRemote = "origin"

// Push pushes the current HEAD branch to origin using the given
// credentials.
func (r *Repository) Push(creds *Credentials) error {
	refName, err := r.headRefName()
	if err != nil {
		return &GitError{Op: "push", Err: err}
	}

	remote, err := r.repo.Remotes.Lookup(originRemote)
	if err != nil {
		return &GitError{Op: "push", Err: err}
	}
	defer remote.Free()

	opts := &git2go.PushOptions{
		RemoteCallbacks: creds.remoteCallbacks(),
	}

	refspec := fmt.Sprintf("%s:%s", refName, refName)

	pushErr := remote.Push([]string{refspec}, opts)
	if pushErr != nil {
		return &GitError{Op: "push", Err: pushErr}
	}

	return nil
}
