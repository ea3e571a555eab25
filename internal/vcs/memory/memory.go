// Package memory is an in-memory vcs backend for tests.
package memory

import (
	"fmt"
	"path/filepath"

	"github.com/GaiaWorld/pt-commit-tool/internal/vcs"
)

// Repo is a fake checkout: a set of commits, annotated tags pointing at
// other objects, and a HEAD that is either a branch name or a detached id.
type Repo struct {
	Commits map[vcs.CommitID]bool
	Tags    map[vcs.CommitID]vcs.CommitID
	Branch  string
	Heads   map[string]vcs.CommitID
	Head    vcs.CommitID // used when Branch is empty

	// SetCalls counts successful SetHeadDetached calls.
	SetCalls int
}

// NewRepo returns a repo on branch "main" at the given commit. The commit
// is added to the object set.
func NewRepo(head vcs.CommitID) *Repo {
	return &Repo{
		Commits: map[vcs.CommitID]bool{head: true},
		Tags:    map[vcs.CommitID]vcs.CommitID{},
		Branch:  "main",
		Heads:   map[string]vcs.CommitID{"main": head},
	}
}

// Unborn returns a repo whose HEAD points at a branch with no commits.
func Unborn() *Repo {
	return &Repo{
		Commits: map[vcs.CommitID]bool{},
		Tags:    map[vcs.CommitID]vcs.CommitID{},
		Branch:  "main",
		Heads:   map[string]vcs.CommitID{},
	}
}

// AddCommit adds commits to the object set.
func (r *Repo) AddCommit(ids ...vcs.CommitID) *Repo {
	for _, id := range ids {
		r.Commits[id] = true
	}
	return r
}

// AddTag adds an annotated tag object tag whose target is target.
func (r *Repo) AddTag(tag, target vcs.CommitID) *Repo {
	r.Tags[tag] = target
	return r
}

// Detached reports whether HEAD is detached.
func (r *Repo) Detached() bool {
	return r.Branch == ""
}

// Current returns the raw HEAD value without peeling.
func (r *Repo) Current() (vcs.CommitID, bool) {
	if r.Branch == "" {
		return r.Head, true
	}
	id, ok := r.Heads[r.Branch]
	return id, ok
}

func (r *Repo) peel(id vcs.CommitID) (vcs.CommitID, bool) {
	for i := 0; i < 16; i++ {
		if r.Commits[id] {
			return id, true
		}
		target, ok := r.Tags[id]
		if !ok {
			return vcs.CommitID{}, false
		}
		id = target
	}
	return vcs.CommitID{}, false
}

// Store is a set of fake repositories keyed by cleaned path. It implements
// vcs.Opener.
type Store struct {
	repos map[string]*Repo
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{repos: make(map[string]*Repo)}
}

// Put registers repo at path.
func (s *Store) Put(path string, repo *Repo) *Repo {
	s.repos[filepath.Clean(path)] = repo
	return repo
}

// Get returns the repo registered at path, or nil.
func (s *Store) Get(path string) *Repo {
	return s.repos[filepath.Clean(path)]
}

// Open implements vcs.Opener.
func (s *Store) Open(path string) (vcs.Repository, error) {
	r, ok := s.repos[filepath.Clean(path)]
	if !ok {
		return nil, fmt.Errorf("opening %s: %w", path, vcs.ErrNotRepository)
	}
	return &handle{path: path, repo: r}, nil
}

type handle struct {
	path string
	repo *Repo
}

func (h *handle) Head() (vcs.CommitID, error) {
	raw, ok := h.repo.Current()
	if !ok {
		return vcs.CommitID{}, fmt.Errorf("%s: branch %s has no commits: %w", h.path, h.repo.Branch, vcs.ErrUnresolvableHead)
	}
	id, ok := h.repo.peel(raw)
	if !ok {
		return vcs.CommitID{}, fmt.Errorf("%s: %s: %w", h.path, raw, vcs.ErrUnresolvableHead)
	}
	return id, nil
}

func (h *handle) SetHeadDetached(id vcs.CommitID) error {
	target, ok := h.repo.peel(id)
	if !ok {
		return fmt.Errorf("%s: %s: %w", h.path, id, vcs.ErrCommitNotFound)
	}
	h.repo.Branch = ""
	h.repo.Head = target
	h.repo.SetCalls++
	return nil
}
