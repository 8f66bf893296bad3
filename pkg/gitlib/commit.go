package gitlib

import (
	git2go "github.com/libgit2/git2go/v34"
)

// StageAll stages every change in the working directory, including new and
// deleted files.
func (r *Repository) StageAll() error {
	idx, err := r.repo.Index()
	if err != nil {
		return &GitError{Op: "stage", Err: err}
	}
	defer idx.Free()

	addErr := idx.AddAll([]string{"."}, git2go.IndexAddDefault, nil)
	if addErr != nil {
		return &GitError{Op: "stage", Err: addErr}
	}

	writeErr := idx.Write()
	if writeErr != nil {
		return &GitError{Op: "stage", Err: writeErr}
	}

	return nil
}

// HasStagedChanges reports whether the index differs from HEAD's tree.
func (r *Repository) HasStagedChanges() (bool, error) {
	headTree, err := r.headTree()
	if err != nil {
		return false, err
	}
	defer headTree.Free()

	idx, err := r.repo.Index()
	if err != nil {
		return false, &GitError{Op: "status", Err: err}
	}
	defer idx.Free()

	diff, err := r.repo.DiffTreeToIndex(headTree, idx, nil)
	if err != nil {
		return false, &GitError{Op: "status", Err: err}
	}

	defer func() {
		_ = diff.Free()
	}()

	deltas, err := diff.NumDeltas()
	if err != nil {
		return false, &GitError{Op: "status", Err: err}
	}

	return deltas > 0, nil
}

// Commit writes the index as a tree and commits it on HEAD with the given
// signature and message, returning the new commit hash.
func (r *Repository) Commit(sig Signature, message string) (Hash, error) {
	idx, err := r.repo.Index()
	if err != nil {
		return Hash{}, &GitError{Op: "commit", Err: err}
	}
	defer idx.Free()

	treeOid, err := idx.WriteTree()
	if err != nil {
		return Hash{}, &GitError{Op: "commit", Err: err}
	}

	tree, err := r.repo.LookupTree(treeOid)
	if err != nil {
		return Hash{}, &GitError{Op: "commit", Err: err}
	}
	defer tree.Free()

	parent, err := r.headCommit()
	if err != nil {
		return Hash{}, err
	}
	defer parent.Free()

	gitSig := sig.toGit()

	oid, err := r.repo.CreateCommit("HEAD", gitSig, gitSig, message, tree, parent)
	if err != nil {
		return Hash{}, &GitError{Op: "commit", Err: err}
	}

	return HashFromOid(oid), nil
}

// headCommit returns the commit HEAD points at.
func (r *Repository) headCommit() (*git2go.Commit, error) {
	ref, err := r.repo.Head()
	if err != nil {
		return nil, &GitError{Op: "head", Err: err}
	}
	defer ref.Free()

	commit, err := r.repo.LookupCommit(ref.Target())
	if err != nil {
		return nil, &GitError{Op: "head", Err: err}
	}

	return commit, nil
}

// headTree returns the tree of the commit HEAD points at.
func (r *Repository) headTree() (*git2go.Tree, error) {
	commit, err := r.headCommit()
	if err != nil {
		return nil, err
	}
	defer commit.Free()

	tree, err := commit.Tree()
	if err != nil {
		return nil, &GitError{Op: "head", Err: err}
	}

	return tree, nil
}
