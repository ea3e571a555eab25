// Package gogit implements vcs.Opener on top of go-git, so no git binary is
// needed to record or restore.
package gogit

import (
	"errors"
	"fmt"

	"github.com/GaiaWorld/pt-commit-tool/internal/vcs"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/rs/zerolog/log"
)

// maxPeel bounds tag-of-tag chains.
const maxPeel = 16

// Opener opens repositories with git.PlainOpen.
type Opener struct{}

// New returns a go-git backed opener.
func New() Opener { return Opener{} }

// Open implements vcs.Opener.
func (Opener) Open(path string) (vcs.Repository, error) {
	r, err := git.PlainOpen(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w: %v", path, vcs.ErrNotRepository, err)
	}
	return &Repository{path: path, repo: r}, nil
}

// Repository wraps a go-git repository.
type Repository struct {
	path string
	repo *git.Repository
}

// Head implements vcs.Repository.
func (r *Repository) Head() (vcs.CommitID, error) {
	ref, err := r.repo.Head()
	if err != nil {
		return vcs.CommitID{}, fmt.Errorf("%s: %w: %v", r.path, vcs.ErrUnresolvableHead, err)
	}
	c, err := r.peel(ref.Hash())
	if err != nil {
		return vcs.CommitID{}, fmt.Errorf("%s: HEAD %s: %w: %v", r.path, ref.Hash(), vcs.ErrUnresolvableHead, err)
	}
	log.Debug().Str("repo", r.path).Str("ref", ref.Name().String()).Str("commit", c.Hash.String()).Msg("resolved HEAD")
	return vcs.CommitID(c.Hash), nil
}

// SetHeadDetached implements vcs.Repository.
func (r *Repository) SetHeadDetached(id vcs.CommitID) error {
	c, err := r.peel(plumbing.Hash(id))
	if err != nil {
		return fmt.Errorf("%s: %s: %w: %v", r.path, id, vcs.ErrCommitNotFound, err)
	}
	ref := plumbing.NewHashReference(plumbing.HEAD, c.Hash)
	if err := r.repo.Storer.SetReference(ref); err != nil {
		return fmt.Errorf("%s: writing HEAD: %w", r.path, err)
	}
	log.Debug().Str("repo", r.path).Str("commit", c.Hash.String()).Msg("detached HEAD")
	return nil
}

// peel resolves h to a commit, following annotated tags.
func (r *Repository) peel(h plumbing.Hash) (*object.Commit, error) {
	obj, err := r.repo.Object(plumbing.AnyObject, h)
	if err != nil {
		return nil, err
	}
	for i := 0; i < maxPeel; i++ {
		switch o := obj.(type) {
		case *object.Commit:
			return o, nil
		case *object.Tag:
			obj, err = o.Object()
			if err != nil {
				return nil, err
			}
		default:
			return nil, fmt.Errorf("%s is a %s, not a commit", h, obj.Type())
		}
	}
	return nil, errors.New("tag chain too deep")
}
