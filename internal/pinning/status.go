package pinning

import (
	"errors"
	"path/filepath"

	"github.com/GaiaWorld/pt-commit-tool/internal/pinfile"
	"github.com/GaiaWorld/pt-commit-tool/internal/vcs"
)

// State classifies a checkout against the pin file.
type State string

const (
	StatePinned   State = "pinned"
	StateDrifted  State = "drifted"
	StateMissing  State = "missing"
	StateInvalid  State = "invalid"
	StateUnpinned State = "unpinned"
)

// OK reports whether s needs no attention before a restore.
func (s State) OK() bool {
	return s == StatePinned || s == StateUnpinned
}

// Entry is one row of an Inspect report.
type Entry struct {
	Name    string `json:"name"`
	State   State  `json:"state"`
	Pinned  string `json:"pinned,omitempty"`
	Current string `json:"current,omitempty"`
	Detail  string `json:"detail,omitempty"`
}

// Inspect compares the pin file beneath pinRoot with the checkouts beneath
// sourceRoot. Unlike Restore it keeps going past per-checkout problems and
// reports them as entries. Entries follow pin file order, then unpinned
// checkouts in directory order.
func Inspect(opener vcs.Opener, sourceRoot, pinRoot string) ([]Entry, error) {
	pf, err := pinfile.Load(pinRoot)
	if err != nil {
		return nil, err
	}
	dirs, err := CheckoutDirs(sourceRoot)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(dirs))
	for _, name := range pf.Names() {
		commit, _ := pf.Lookup(name)
		entries = append(entries, inspectOne(opener, sourceRoot, name, commit))
	}
	for _, name := range dirs {
		if _, ok := pf.Lookup(name); ok {
			continue
		}
		e := Entry{Name: name, State: StateUnpinned}
		if repo, err := opener.Open(filepath.Join(sourceRoot, name)); err == nil {
			if head, err := repo.Head(); err == nil {
				e.Current = head.String()
			}
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func inspectOne(opener vcs.Opener, sourceRoot, name, commit string) Entry {
	e := Entry{Name: name, Pinned: commit}

	repo, err := opener.Open(filepath.Join(sourceRoot, name))
	if err != nil {
		e.State = StateMissing
		e.Detail = err.Error()
		return e
	}
	want, err := vcs.ParseCommitID(commit)
	if err != nil {
		e.State = StateInvalid
		e.Detail = err.Error()
		return e
	}
	head, err := repo.Head()
	if err != nil {
		e.State = StateInvalid
		if errors.Is(err, vcs.ErrUnresolvableHead) {
			e.Detail = "HEAD does not resolve to a commit"
		} else {
			e.Detail = err.Error()
		}
		return e
	}

	e.Current = head.String()
	if head == want {
		e.State = StatePinned
	} else {
		e.State = StateDrifted
	}
	return e
}
