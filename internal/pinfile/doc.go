// Package pinfile handles parsing and writing of pt_commit_hash.txt files.
// A pin file records, one line per checkout, the commit each sibling
// checkout was at, so the set can later be restored exactly.
package pinfile
