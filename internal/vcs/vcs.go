package vcs

import (
	"encoding/hex"
	"errors"
	"fmt"
)

var (
	// ErrNotRepository is returned when a path is missing or is not a repository.
	ErrNotRepository = errors.New("not a repository")
	// ErrUnresolvableHead is returned when HEAD does not resolve to a commit,
	// for example in a repository with no commits yet.
	ErrUnresolvableHead = errors.New("HEAD does not resolve to a commit")
	// ErrCommitNotFound is returned when a commit id names no commit in the
	// repository's object store.
	ErrCommitNotFound = errors.New("commit not found")
	// ErrInvalidCommitID is returned by ParseCommitID for malformed input.
	ErrInvalidCommitID = errors.New("invalid commit id")
)

// CommitIDLen is the length of a hex-encoded commit id.
const CommitIDLen = 40

// CommitID is a SHA-1 object name.
type CommitID [20]byte

// ParseCommitID parses a 40 character hex string. It only checks the format;
// whether the commit exists is up to the repository.
func ParseCommitID(s string) (CommitID, error) {
	var id CommitID
	if len(s) != CommitIDLen {
		return id, fmt.Errorf("%w: %q: want %d hex characters, got %d", ErrInvalidCommitID, s, CommitIDLen, len(s))
	}
	if _, err := hex.Decode(id[:], []byte(s)); err != nil {
		return CommitID{}, fmt.Errorf("%w: %q: %v", ErrInvalidCommitID, s, err)
	}
	return id, nil
}

// MustParseCommitID is like ParseCommitID but panics on malformed input.
func MustParseCommitID(s string) CommitID {
	id, err := ParseCommitID(s)
	if err != nil {
		panic(err)
	}
	return id
}

// String returns the lowercase hex form.
func (id CommitID) String() string {
	return hex.EncodeToString(id[:])
}

// Short returns the first seven hex characters.
func (id CommitID) Short() string {
	return id.String()[:7]
}

// IsZero reports whether id is the all-zero id.
func (id CommitID) IsZero() bool {
	return id == CommitID{}
}

// Opener opens repositories by path.
type Opener interface {
	// Open opens the repository rooted exactly at path. Parent directories
	// are not searched. Errors wrap ErrNotRepository.
	Open(path string) (Repository, error)
}

// Repository is a single checkout.
type Repository interface {
	// Head resolves HEAD, following symbolic refs and peeling tags, to a
	// commit. Errors wrap ErrUnresolvableHead.
	Head() (CommitID, error)
	// SetHeadDetached points HEAD directly at id without touching the
	// working tree or index. Annotated tags are peeled to their commit.
	// Errors wrap ErrCommitNotFound and leave HEAD unchanged.
	SetHeadDetached(id CommitID) error
}

// OpenerFunc adapts a function to the Opener interface.
type OpenerFunc func(path string) (Repository, error)

// Open calls f(path).
func (f OpenerFunc) Open(path string) (Repository, error) {
	return f(path)
}
