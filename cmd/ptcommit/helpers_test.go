package main

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/GaiaWorld/pt-commit-tool/internal/pinfile"
)

// execute runs the CLI with args and returns what it wrote to stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetIn(&bytes.Buffer{})
	err := root.Execute()
	if errOut.Len() > 0 {
		t.Logf("stderr:\n%s", errOut.String())
	}
	return out.String(), err
}

// writePins writes lines verbatim as the pin file in dir.
func writePins(t *testing.T, dir string, lines ...string) {
	t.Helper()
	content := strings.Join(lines, "\n") + "\n"
	if err := os.WriteFile(pinfile.Path(dir), []byte(content), 0644); err != nil { //nolint:gosec // test file
		t.Fatal(err)
	}
}
