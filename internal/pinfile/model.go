package pinfile

import "path/filepath"

// FileName is the name of the pin file beneath the pin root.
const FileName = "pt_commit_hash.txt"

// Separator splits a line into name and commit.
const Separator = ":"

// Path returns the pin file path beneath root.
func Path(root string) string {
	return filepath.Join(root, FileName)
}

// Record pins one checkout, by directory name, to a commit. Commit is kept
// as text; it is validated only when a record is applied.
type Record struct {
	Name   string
	Commit string
}

// String returns the record in its on-disk form, without the newline.
func (r Record) String() string {
	return r.Name + Separator + r.Commit
}

// File is the parsed content of a pin file, in file order.
type File struct {
	Records []Record
}

// Lookup returns the commit recorded for name. When a name appears more than
// once the last line wins, matching the order records are restored in.
func (f *File) Lookup(name string) (string, bool) {
	for i := len(f.Records) - 1; i >= 0; i-- {
		if f.Records[i].Name == name {
			return f.Records[i].Commit, true
		}
	}
	return "", false
}

// Names returns the distinct names in first-seen order.
func (f *File) Names() []string {
	seen := make(map[string]bool, len(f.Records))
	names := make([]string, 0, len(f.Records))
	for _, r := range f.Records {
		if seen[r.Name] {
			continue
		}
		seen[r.Name] = true
		names = append(names, r.Name)
	}
	return names
}
