package pinning

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/GaiaWorld/pt-commit-tool/internal/pinfile"
	"github.com/GaiaWorld/pt-commit-tool/internal/vcs"
	"github.com/rs/zerolog/log"
)

// Recorder writes a pin file for a directory of checkouts.
type Recorder struct {
	Opener vcs.Opener
	// OnStart, if set, is called once with the number of checkouts found,
	// before any of them is opened.
	OnStart func(total int)
	// OnRecord, if set, is called after each checkout resolves.
	OnRecord func(rec pinfile.Record)
}

// Record resolves HEAD for every checkout directly beneath sourceRoot and
// writes the pin file beneath destRoot, replacing any previous content. If a
// checkout fails to open or resolve, nothing is written.
func (r *Recorder) Record(sourceRoot, destRoot string) ([]pinfile.Record, error) {
	dirs, err := CheckoutDirs(sourceRoot)
	if err != nil {
		return nil, err
	}
	if r.OnStart != nil {
		r.OnStart(len(dirs))
	}

	records := make([]pinfile.Record, 0, len(dirs))
	for _, name := range dirs {
		path := filepath.Join(sourceRoot, name)
		repo, err := r.Opener.Open(path)
		if err != nil {
			return nil, fmt.Errorf("recording %s: %w", name, err)
		}
		head, err := repo.Head()
		if err != nil {
			return nil, fmt.Errorf("recording %s: %w", name, err)
		}
		rec := pinfile.Record{Name: name, Commit: head.String()}
		log.Debug().Str("repo", name).Str("commit", rec.Commit).Msg("resolved checkout")
		records = append(records, rec)
		if r.OnRecord != nil {
			r.OnRecord(rec)
		}
	}

	if err := pinfile.Save(destRoot, records); err != nil {
		return nil, err
	}
	log.Info().Int("repos", len(records)).Str("path", pinfile.Path(destRoot)).Msg("pin file written")
	return records, nil
}

// CheckoutDirs returns the names of the immediate subdirectories of root.
// Symlinks count when they resolve to a directory; files are skipped.
func CheckoutDirs(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("reading checkout root: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
			continue
		}
		if e.Type()&os.ModeSymlink == 0 {
			continue
		}
		info, err := os.Stat(filepath.Join(root, e.Name()))
		if err == nil && info.IsDir() {
			names = append(names, e.Name())
		}
	}
	return names, nil
}
