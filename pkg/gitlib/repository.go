// Package gitlib wraps the libgit2 operations the tool needs: cloning a
// remote repository into a working directory and, after transformation,
// staging, committing and pushing the result.
package gitlib

import (
	"fmt"

	git2go "github.com/libgit2/git2go/v34"
)

// Repository wraps a libgit2 repository.
type Repository struct {
	repo *git2go.Repository
	path string
	url  string
}

// OpenRepository opens a git repository at the given path.
func OpenRepository(path string) (*Repository, error) {
	repo, err := git2go.OpenRepository(path)
	if err != nil {
		return nil, &GitError{Op: "open", Err: err}
	}

	return &Repository{repo: repo, path: path}, nil
}

// Clone clones the remote repository at url into path. Credentials come
// from creds; a clone failure is fatal to the invocation since no files can
// be processed without a working copy.
func Clone(url, path string, creds *Credentials) (*Repository, error) {
	opts := &git2go.CloneOptions{
		FetchOptions: git2go.FetchOptions{
			RemoteCallbacks: creds.remoteCallbacks(),
		},
	}

	repo, err := git2go.Clone(url, path, opts)
	if err != nil {
		return nil, &GitError{Op: "clone", Err: err}
	}

	return &Repository{repo: repo, path: path, url: url}, nil
}

// Path returns the repository working directory path.
func (r *Repository) Path() string {
	return r.path
}

// URL returns the remote URL the repository was cloned from, when known.
func (r *Repository) URL() string {
	return r.url
}

// Free releases the repository resources.
func (r *Repository) Free() {
	if r.repo != nil {
		r.repo.Free()
		r.repo = nil
	}
}

// Head returns the HEAD reference target.
func (r *Repository) Head() (Hash, error) {
	ref, err := r.repo.Head()
	if err != nil {
		return Hash{}, &GitError{Op: "head", Err: err}
	}
	defer ref.Free()

	return HashFromOid(ref.Target()), nil
}

// headRefName returns the full reference name HEAD points at, e.g.
// refs/heads/main.
func (r *Repository) headRefName() (string, error) {
	ref, err := r.repo.Head()
	if err != nil {
		return "", fmt.Errorf("get HEAD: %w", err)
	}
	defer ref.Free()

	return ref.Name(), nil
}
