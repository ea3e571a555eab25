package pinning

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/GaiaWorld/pt-commit-tool/internal/pinfile"
	"github.com/GaiaWorld/pt-commit-tool/internal/vcs"
	"github.com/GaiaWorld/pt-commit-tool/internal/vcs/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// restoreFixture has checkouts A, B and C on main at a1/b1/c1 whose object
// stores also contain a0/b0/c0.
func restoreFixture(t *testing.T) (string, *memory.Store) {
	t.Helper()
	src, store := fakeCheckouts(t, map[string]vcs.CommitID{"A": commitID('a'), "B": commitID('b'), "C": commitID('c')})
	store.Get(filepath.Join(src, "A")).AddCommit(commitID('1'))
	store.Get(filepath.Join(src, "B")).AddCommit(commitID('2'))
	store.Get(filepath.Join(src, "C")).AddCommit(commitID('3'))
	return src, store
}

func headOf(t *testing.T, store *memory.Store, src, name string) vcs.CommitID {
	t.Helper()
	repo, err := store.Open(filepath.Join(src, name))
	require.NoError(t, err)
	head, err := repo.Head()
	require.NoError(t, err)
	return head
}

func TestRestore_appliesInOrder(t *testing.T) {
	src, store := restoreFixture(t)
	pins := writePinFile(t,
		pinLine("A", commitID('1')),
		pinLine("B", commitID('2')),
		pinLine("C", commitID('3')),
	)

	var order []string
	r := &Restorer{Opener: store, OnApply: func(a Applied) { order = append(order, a.Record.Name) }}
	applied, err := r.Restore(src, pins)
	require.NoError(t, err)
	require.Len(t, applied, 3)
	assert.Equal(t, []string{"A", "B", "C"}, order)

	assert.Equal(t, commitID('a'), applied[0].Previous)
	assert.Equal(t, commitID('1'), applied[0].Target)
	assert.True(t, applied[0].Changed())

	for name, want := range map[string]vcs.CommitID{"A": commitID('1'), "B": commitID('2'), "C": commitID('3')} {
		repo := store.Get(filepath.Join(src, name))
		assert.True(t, repo.Detached(), "%s should be detached", name)
		assert.Equal(t, want, headOf(t, store, src, name))
	}
}

func TestRestore_duplicateNamesLastWins(t *testing.T) {
	src, store := restoreFixture(t)
	pins := writePinFile(t,
		pinLine("A", commitID('1')),
		pinLine("A", commitID('a')),
	)

	_, err := (&Restorer{Opener: store}).Restore(src, pins)
	require.NoError(t, err)
	assert.Equal(t, commitID('a'), headOf(t, store, src, "A"))
	assert.Equal(t, 2, store.Get(filepath.Join(src, "A")).SetCalls)
}

func TestRestore_pinFileNotFound(t *testing.T) {
	src, store := restoreFixture(t)
	applied, err := (&Restorer{Opener: store}).Restore(src, t.TempDir())
	assert.True(t, errors.Is(err, pinfile.ErrNotFound), "got %v", err)
	assert.Empty(t, applied)
}

func TestRestore_failFast(t *testing.T) {
	tests := []struct {
		name     string
		badLine  string
		is       error
		lineErr  bool
		untouchC bool
	}{
		{name: "no separator", badLine: "B-noseparator", is: pinfile.ErrMalformedLine, lineErr: true},
		{name: "empty line", badLine: "", is: pinfile.ErrMalformedLine, lineErr: true},
		{name: "missing checkout", badLine: "D:deadbeefdeadbeefdeadbeefdeadbeefdeadbeef", is: vcs.ErrNotRepository},
		{name: "malformed id", badLine: "B:xyz", is: vcs.ErrInvalidCommitID},
		{name: "unknown commit", badLine: pinLine("B", commitID('9')), is: vcs.ErrCommitNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src, store := restoreFixture(t)
			pins := writePinFile(t,
				pinLine("A", commitID('1')),
				tt.badLine,
				pinLine("C", commitID('3')),
			)

			applied, err := (&Restorer{Opener: store}).Restore(src, pins)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.is), "got %v", err)
			if tt.lineErr {
				var le *pinfile.LineError
				require.True(t, errors.As(err, &le))
				assert.Equal(t, 2, le.Line)
			} else {
				assert.Contains(t, err.Error(), "line 2")
			}

			// Line 1 stays applied; nothing after the failing line runs.
			require.Len(t, applied, 1)
			assert.Equal(t, "A", applied[0].Record.Name)
			assert.Equal(t, commitID('1'), headOf(t, store, src, "A"))
			assert.True(t, store.Get(filepath.Join(src, "A")).Detached())

			c := store.Get(filepath.Join(src, "C"))
			assert.False(t, c.Detached())
			assert.Equal(t, 0, c.SetCalls)
			assert.Equal(t, commitID('c'), headOf(t, store, src, "C"))

			// B was never moved, even when its line named it.
			b := store.Get(filepath.Join(src, "B"))
			assert.False(t, b.Detached())
			assert.Equal(t, commitID('b'), headOf(t, store, src, "B"))
		})
	}
}

func TestRestore_separatorInName(t *testing.T) {
	src, store := fakeCheckouts(t, map[string]vcs.CommitID{"odd:name": commitID('a')})
	pins := t.TempDir()
	_, err := (&Recorder{Opener: store}).Record(src, pins)
	require.NoError(t, err)

	// The name is split at its own ':' so the remainder is not a commit id.
	// Checkout "odd" does not exist either; opening comes first.
	_, err = (&Restorer{Opener: store}).Restore(src, pins)
	assert.True(t, errors.Is(err, vcs.ErrNotRepository), "got %v", err)

	// With a checkout named like the prefix, the id check fails instead.
	store.Put(filepath.Join(src, "odd"), memory.NewRepo(commitID('b')))
	_, err = (&Restorer{Opener: store}).Restore(src, pins)
	assert.True(t, errors.Is(err, vcs.ErrInvalidCommitID), "got %v", err)
}

func TestRestore_dryRun(t *testing.T) {
	src, store := restoreFixture(t)
	pins := writePinFile(t,
		pinLine("A", commitID('1')),
		pinLine("B", commitID('b')),
	)

	applied, err := (&Restorer{Opener: store, DryRun: true}).Restore(src, pins)
	require.NoError(t, err)
	require.Len(t, applied, 2)
	assert.True(t, applied[0].Changed())
	assert.False(t, applied[1].Changed())

	for _, name := range []string{"A", "B"} {
		repo := store.Get(filepath.Join(src, name))
		assert.False(t, repo.Detached())
		assert.Equal(t, 0, repo.SetCalls)
	}
}

func TestRestore_dryRunStillValidates(t *testing.T) {
	src, store := restoreFixture(t)
	pins := writePinFile(t, "A:nothex")

	_, err := (&Restorer{Opener: store, DryRun: true}).Restore(src, pins)
	assert.True(t, errors.Is(err, vcs.ErrInvalidCommitID), "got %v", err)
}

func TestRestore_unbornCheckout(t *testing.T) {
	src, store := restoreFixture(t)
	store.Get(filepath.Join(src, "A")).Heads = map[string]vcs.CommitID{}
	pins := writePinFile(t, pinLine("A", commitID('1')))

	applied, err := (&Restorer{Opener: store}).Restore(src, pins)
	require.NoError(t, err)
	assert.True(t, applied[0].Previous.IsZero())
	assert.Equal(t, commitID('1'), headOf(t, store, src, "A"))
}

func TestRestore_annotatedTagAtCurrentCommit(t *testing.T) {
	src, store := restoreFixture(t)
	tag := commitID('7')
	store.Get(filepath.Join(src, "A")).AddTag(tag, commitID('a'))
	pins := writePinFile(t, pinLine("A", tag))

	applied, err := (&Restorer{Opener: store}).Restore(src, pins)
	require.NoError(t, err)
	require.Len(t, applied, 1)
	assert.Equal(t, tag, applied[0].Target)
	assert.Equal(t, commitID('a'), applied[0].Head)
	assert.False(t, applied[0].Changed())
	assert.True(t, store.Get(filepath.Join(src, "A")).Detached())
}

func TestRestore_stopsOpeningAfterFailure(t *testing.T) {
	src, store := restoreFixture(t)
	pins := writePinFile(t,
		pinLine("A", commitID('1')),
		pinLine("B", commitID('9')),
		pinLine("C", commitID('3')),
	)

	var opened []string
	opener := vcs.OpenerFunc(func(path string) (vcs.Repository, error) {
		opened = append(opened, filepath.Base(path))
		return store.Open(path)
	})
	applied, err := (&Restorer{Opener: opener}).Restore(src, pins)
	assert.True(t, errors.Is(err, vcs.ErrCommitNotFound), "got %v", err)
	assert.Len(t, applied, 1)
	assert.Equal(t, []string{"A", "B"}, opened)
	assert.Equal(t, commitID('c'), headOf(t, store, src, "C"))
}
