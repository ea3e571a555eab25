// Package vcs defines the repository access contract the pinning engine
// consumes: open a checkout, resolve its HEAD to a commit, and move HEAD to a
// commit in detached state. Backends live in sub-packages and in internal/git.
package vcs
