// Package testutil builds real git checkouts for tests. It shells out to the
// git binary directly so that it can be imported by the git backend's tests.
package testutil

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// InitRepo creates a repository on branch main at dir with one commit and
// returns that commit's full SHA.
func InitRepo(t *testing.T, dir string) string {
	t.Helper()
	InitEmpty(t, dir)
	return Commit(t, dir, "README.md", "# "+filepath.Base(dir)+"\n", "initial commit")
}

// InitEmpty creates a repository at dir with no commits.
func InitEmpty(t *testing.T, dir string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	run(t, dir, "git", "init", "-q", "-b", "main", dir)
	run(t, dir, "git", "config", "user.email", "test@example.com")
	run(t, dir, "git", "config", "user.name", "Test")
}

// Commit writes content to name, commits it and returns the new HEAD SHA.
func Commit(t *testing.T, dir, name, content, message string) string {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil { //nolint:gosec // test file
		t.Fatal(err)
	}
	run(t, dir, "git", "add", "--", name)
	run(t, dir, "git", "commit", "-q", "-m", message)
	return Head(t, dir)
}

// Head returns the full SHA HEAD resolves to.
func Head(t *testing.T, dir string) string {
	t.Helper()
	return output(t, dir, "git", "rev-parse", "HEAD")
}

// SymbolicHead returns the ref HEAD points at, or "" when HEAD is detached.
func SymbolicHead(t *testing.T, dir string) string {
	t.Helper()
	cmd := exec.Command("git", "symbolic-ref", "-q", "HEAD")
	cmd.Dir = dir
	out, err := cmd.Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}

// Checkout runs git checkout ref.
func Checkout(t *testing.T, dir, ref string) {
	t.Helper()
	run(t, dir, "git", "checkout", "-q", ref)
}

// AnnotatedTag creates an annotated tag on ref and returns the tag object SHA.
func AnnotatedTag(t *testing.T, dir, name, ref string) string {
	t.Helper()
	run(t, dir, "git", "tag", "-a", "-m", name, name, ref)
	return output(t, dir, "git", "rev-parse", name)
}

// Blob writes content into the object store and returns the blob SHA.
func Blob(t *testing.T, dir, content string) string {
	t.Helper()
	cmd := exec.Command("git", "hash-object", "-w", "--stdin")
	cmd.Dir = dir
	cmd.Stdin = strings.NewReader(content)
	out, err := cmd.Output()
	if err != nil {
		t.Fatalf("git hash-object: %v", err)
	}
	return strings.TrimSpace(string(out))
}

// CheckoutSet creates one repository per name under root, each with two
// commits on main. It returns the commits per name, oldest first; HEAD is at
// the last one.
func CheckoutSet(t *testing.T, root string, names ...string) map[string][]string {
	t.Helper()
	commits := make(map[string][]string, len(names))
	for _, name := range names {
		dir := filepath.Join(root, name)
		first := InitRepo(t, dir)
		second := Commit(t, dir, "VERSION", fmt.Sprintf("%s 2\n", name), "second commit")
		commits[name] = []string{first, second}
	}
	return commits
}

func run(t *testing.T, dir string, name string, args ...string) {
	t.Helper()
	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		t.Fatalf("command %s %v failed: %v: %s", name, args, err, stderr.String())
	}
}

func output(t *testing.T, dir string, name string, args ...string) string {
	t.Helper()
	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		t.Fatalf("command %s %v failed: %v: %s", name, args, err, stderr.String())
	}
	return strings.TrimSpace(stdout.String())
}
