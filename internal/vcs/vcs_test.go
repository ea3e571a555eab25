package vcs

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCommitID(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		err   bool
	}{
		{"lowercase", "deadbeefdeadbeefdeadbeefdeadbeefdeadbeef", "deadbeefdeadbeefdeadbeefdeadbeefdeadbeef", false},
		{"uppercase normalized", "DEADBEEFDEADBEEFDEADBEEFDEADBEEFDEADBEEF", "deadbeefdeadbeefdeadbeefdeadbeefdeadbeef", false},
		{"zero", strings.Repeat("0", 40), strings.Repeat("0", 40), false},
		{"empty", "", "", true},
		{"short", "deadbeef", "", true},
		{"too long", strings.Repeat("a", 41), "", true},
		{"sha256 length", strings.Repeat("a", 64), "", true},
		{"non hex", strings.Repeat("g", 40), "", true},
		{"trailing space", "deadbeefdeadbeefdeadbeefdeadbeefdeadbee ", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := ParseCommitID(tt.input)
			if tt.err {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidCommitID), "error %v should wrap ErrInvalidCommitID", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, id.String())
		})
	}
}

func TestCommitID_helpers(t *testing.T) {
	id := MustParseCommitID("0123456789abcdef0123456789abcdef01234567")
	assert.Equal(t, "0123456", id.Short())
	assert.False(t, id.IsZero())
	assert.True(t, CommitID{}.IsZero())
}

func TestMustParseCommitID_panics(t *testing.T) {
	assert.Panics(t, func() { MustParseCommitID("nope") })
}
