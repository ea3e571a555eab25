// Package git implements vcs.Opener by shelling out to the git binary.
// It is the alternative to the go-git backend for checkouts that use
// features go-git does not read, and it does not depend on other internal
// packages besides vcs.
package git
