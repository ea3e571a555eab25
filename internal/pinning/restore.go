package pinning

import (
	"fmt"
	"path/filepath"

	"github.com/GaiaWorld/pt-commit-tool/internal/pinfile"
	"github.com/GaiaWorld/pt-commit-tool/internal/vcs"
	"github.com/rs/zerolog/log"
)

// Applied describes one pin file line the Restorer handled.
type Applied struct {
	Record pinfile.Record
	// Previous is HEAD before the line was applied. It is zero if HEAD
	// could not be resolved, e.g. in a repository with no commits.
	Previous vcs.CommitID
	// Target is the parsed commit from the record.
	Target vcs.CommitID
	// Head is the commit HEAD resolves to after the line was applied, with
	// annotated tags peeled. In a dry run nothing is peeled and Head equals
	// Target.
	Head vcs.CommitID
}

// Changed reports whether HEAD was (or, in a dry run, would be) moved to a
// different commit.
func (a Applied) Changed() bool {
	return a.Previous != a.Head
}

// Restorer applies a pin file to a directory of checkouts.
type Restorer struct {
	Opener vcs.Opener
	// DryRun validates every line and reads HEAD but does not move it.
	DryRun bool
	// OnApply, if set, is called after each line is applied.
	OnApply func(a Applied)
}

// Restore reads the pin file beneath pinRoot and, in file order, detaches
// HEAD of sourceRoot/<name> at the recorded commit. It stops at the first
// failing line. Lines before it stay applied and are returned together
// with the error.
func (r *Restorer) Restore(sourceRoot, pinRoot string) ([]Applied, error) {
	f, err := pinfile.Open(pinRoot)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var applied []Applied
	s := pinfile.NewScanner(f)
	for s.Scan() {
		a, err := r.apply(sourceRoot, s.Record())
		if err != nil {
			return applied, fmt.Errorf("pin file line %d: %w", s.Line(), err)
		}
		applied = append(applied, a)
		if r.OnApply != nil {
			r.OnApply(a)
		}
	}
	if err := s.Err(); err != nil {
		return applied, err
	}
	log.Info().Int("repos", len(applied)).Bool("dry_run", r.DryRun).Msg("restore finished")
	return applied, nil
}

func (r *Restorer) apply(sourceRoot string, rec pinfile.Record) (Applied, error) {
	repo, err := r.Opener.Open(filepath.Join(sourceRoot, rec.Name))
	if err != nil {
		return Applied{}, fmt.Errorf("restoring %s: %w", rec.Name, err)
	}
	target, err := vcs.ParseCommitID(rec.Commit)
	if err != nil {
		return Applied{}, fmt.Errorf("restoring %s: %w", rec.Name, err)
	}

	a := Applied{Record: rec, Target: target, Head: target}
	if prev, err := repo.Head(); err == nil {
		a.Previous = prev
	} else {
		log.Debug().Err(err).Str("repo", rec.Name).Msg("current HEAD unresolvable")
	}

	if r.DryRun {
		return a, nil
	}
	if err := repo.SetHeadDetached(target); err != nil {
		return Applied{}, fmt.Errorf("restoring %s: %w", rec.Name, err)
	}
	if head, err := repo.Head(); err == nil {
		a.Head = head
	}
	log.Debug().Str("repo", rec.Name).Str("from", a.Previous.String()).Str("to", a.Head.String()).Msg("restored checkout")
	return a, nil
}
