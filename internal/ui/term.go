package ui

import (
	"io"

	"golang.org/x/term"
)

// IsTerminal reports whether w is a terminal. Writers that are not files,
// such as buffers in tests, are never terminals.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// IsInteractive reports whether both in and out are terminals.
func IsInteractive(in io.Reader, out io.Writer) bool {
	f, ok := in.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd())) && IsTerminal(out)
}
