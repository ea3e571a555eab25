package pinning

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/GaiaWorld/pt-commit-tool/internal/pinfile"
	"github.com/GaiaWorld/pt-commit-tool/internal/vcs"
	"github.com/GaiaWorld/pt-commit-tool/internal/vcs/memory"
)

// commitID returns a deterministic id built from a single hex digit.
func commitID(digit byte) vcs.CommitID {
	return vcs.MustParseCommitID(strings.Repeat(string(digit), vcs.CommitIDLen))
}

// fakeCheckouts creates an on-disk directory per name under a temp root and
// registers an in-memory repo for each, on main at heads[name].
func fakeCheckouts(t *testing.T, heads map[string]vcs.CommitID) (string, *memory.Store) {
	t.Helper()
	root := t.TempDir()
	store := memory.NewStore()
	for name, head := range heads {
		dir := filepath.Join(root, name)
		if err := os.Mkdir(dir, 0755); err != nil {
			t.Fatal(err)
		}
		store.Put(dir, memory.NewRepo(head))
	}
	return root, store
}

// writePinFile writes raw lines to the pin file beneath a new temp dir.
func writePinFile(t *testing.T, lines ...string) string {
	t.Helper()
	dir := t.TempDir()
	content := strings.Join(lines, "\n") + "\n"
	if err := os.WriteFile(pinfile.Path(dir), []byte(content), 0644); err != nil { //nolint:gosec // test file
		t.Fatal(err)
	}
	return dir
}

func pinLine(name string, id vcs.CommitID) string {
	return fmt.Sprintf("%s:%s", name, id)
}
