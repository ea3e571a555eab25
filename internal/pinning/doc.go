// Package pinning snapshots and restores the commits of a directory of
// sibling checkouts.
//
// Recorder resolves the HEAD of every immediate subdirectory of a root and
// writes the pin file only once all of them resolved. Restorer applies the
// pin file line by line, detaching each named checkout's HEAD at its
// recorded commit, and stops at the first failure without undoing the lines
// already applied. Inspect compares the two without changing anything.
package pinning
