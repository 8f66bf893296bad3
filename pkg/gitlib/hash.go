package gitlib

import (
	"encoding/hex"

	git2go "github.com/libgit2/git2go/v34"
)

// Hash is a git object hash.
type Hash [20]byte

// HashFromOid converts a libgit2 Oid to a Hash.
func HashFromOid(oid *git2go.Oid) Hash {
	if oid == nil {
		return Hash{}
	}

	return Hash(*oid)
}

// IsZero reports whether the hash is the zero hash.
func (h Hash) IsZero() bool {
	return h == Hash{}
}

// String returns the hex representation of the hash.
func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}
