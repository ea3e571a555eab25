package git

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/GaiaWorld/pt-commit-tool/internal/vcs"
	"github.com/rs/zerolog/log"
)

// reflogMessage is recorded in the HEAD reflog when a checkout is restored.
const reflogMessage = "ptcommit: restore pinned commit"

// Opener opens repositories through the git binary.
type Opener struct{}

// New returns a git CLI backed opener.
func New() Opener { return Opener{} }

// Open implements vcs.Opener. GIT_CEILING_DIRECTORIES is set to the parent
// of path so git does not discover an enclosing repository.
func (Opener) Open(path string) (vcs.Repository, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w: %v", path, vcs.ErrNotRepository, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w: %v", path, vcs.ErrNotRepository, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("opening %s: %w: not a directory", path, vcs.ErrNotRepository)
	}

	env := []string{"GIT_CEILING_DIRECTORIES=" + filepath.Dir(abs)}
	gitDir, err := outputQuiet(abs, env, "rev-parse", "--absolute-git-dir")
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w: %v", path, vcs.ErrNotRepository, err)
	}
	log.Debug().Str("repo", path).Str("git_dir", strings.TrimSpace(gitDir)).Msg("opened repository")
	return &Repository{dir: abs, path: path, env: env}, nil
}

// Repository is a checkout driven through the git binary.
type Repository struct {
	dir  string
	path string
	env  []string
}

// Head implements vcs.Repository.
func (r *Repository) Head() (vcs.CommitID, error) {
	id, err := r.resolveCommit("HEAD")
	if err != nil {
		return vcs.CommitID{}, fmt.Errorf("%s: %w: %v", r.path, vcs.ErrUnresolvableHead, err)
	}
	return id, nil
}

// SetHeadDetached implements vcs.Repository.
func (r *Repository) SetHeadDetached(id vcs.CommitID) error {
	target, err := r.resolveCommit(id.String())
	if err != nil {
		return fmt.Errorf("%s: %s: %w: %v", r.path, id, vcs.ErrCommitNotFound, err)
	}
	if err := runQuiet(r.dir, r.env, "update-ref", "--no-deref", "-m", reflogMessage, "HEAD", target.String()); err != nil {
		return fmt.Errorf("%s: writing HEAD: %w", r.path, err)
	}
	log.Debug().Str("repo", r.path).Str("commit", target.String()).Msg("detached HEAD")
	return nil
}

// resolveCommit peels rev to a commit with rev-parse.
func (r *Repository) resolveCommit(rev string) (vcs.CommitID, error) {
	out, err := outputQuiet(r.dir, r.env, "rev-parse", "--verify", "--quiet", rev+"^{commit}")
	if err != nil {
		return vcs.CommitID{}, err
	}
	return vcs.ParseCommitID(strings.TrimSpace(out))
}
