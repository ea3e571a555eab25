package pinfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
)

var (
	// ErrNotFound is returned when the pin file does not exist.
	ErrNotFound = errors.New("pin file not found")
	// ErrMalformedLine is wrapped by every LineError.
	ErrMalformedLine = errors.New("malformed pin line")
)

// LineError reports a pin file line that is not name:commit.
type LineError struct {
	Line   int // 1-based
	Text   string
	Reason string
}

func (e *LineError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("pin line %q: %s", e.Text, e.Reason)
	}
	return fmt.Sprintf("pin file line %d %q: %s", e.Line, e.Text, e.Reason)
}

// Unwrap returns ErrMalformedLine.
func (e *LineError) Unwrap() error { return ErrMalformedLine }

// ParseLine splits s on the first separator. Names are not escaped, so a
// name containing ':' leaves the remainder in Commit.
func ParseLine(s string) (Record, error) {
	name, commit, ok := strings.Cut(s, Separator)
	switch {
	case !ok:
		return Record{}, &LineError{Text: s, Reason: "missing ':' separator"}
	case name == "":
		return Record{}, &LineError{Text: s, Reason: "empty repository name"}
	case commit == "":
		return Record{}, &LineError{Text: s, Reason: "empty commit id"}
	}
	return Record{Name: name, Commit: commit}, nil
}

// Scanner reads records one line at a time.
type Scanner struct {
	sc   *bufio.Scanner
	line int
	rec  Record
	err  error
}

// NewScanner returns a Scanner reading from r.
func NewScanner(r io.Reader) *Scanner {
	return &Scanner{sc: bufio.NewScanner(r)}
}

// Scan advances to the next record. It returns false at EOF or on the first
// error, which Err then reports.
func (s *Scanner) Scan() bool {
	if s.err != nil {
		return false
	}
	if !s.sc.Scan() {
		if err := s.sc.Err(); err != nil {
			s.err = fmt.Errorf("reading pin file: %w", err)
		}
		return false
	}
	s.line++
	rec, err := ParseLine(s.sc.Text())
	if err != nil {
		var le *LineError
		if errors.As(err, &le) {
			le.Line = s.line
		}
		s.err = err
		return false
	}
	s.rec = rec
	return true
}

// Record returns the record read by the last successful Scan.
func (s *Scanner) Record() Record { return s.rec }

// Line returns the 1-based line number of the last line read.
func (s *Scanner) Line() int { return s.line }

// Err returns the first error encountered, or nil at a clean EOF.
func (s *Scanner) Err() error { return s.err }

// Open opens the pin file beneath root.
func Open(root string) (*os.File, error) {
	path := Path(root)
	f, err := os.Open(path) //nolint:gosec // path is the caller-supplied pin root
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("opening pin file: %w", err)
	}
	return f, nil
}

// Parse reads every record from r.
func Parse(r io.Reader) (*File, error) {
	pf := &File{}
	s := NewScanner(r)
	for s.Scan() {
		pf.Records = append(pf.Records, s.Record())
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	return pf, nil
}

// Load reads the pin file beneath root.
func Load(root string) (*File, error) {
	f, err := Open(root)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

// Write writes records to w, one name:commit line each.
func Write(w io.Writer, records []Record) error {
	bw := bufio.NewWriter(w)
	for _, r := range records {
		if _, err := bw.WriteString(r.String() + "\n"); err != nil {
			return fmt.Errorf("writing pin file: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flushing pin file: %w", err)
	}
	return nil
}

// Save creates or truncates the pin file beneath root and writes records.
func Save(root string, records []Record) error {
	path := Path(root)
	f, err := os.Create(path) //nolint:gosec // pin file needs to be readable
	if err != nil {
		return fmt.Errorf("creating pin file: %w", err)
	}
	if err := Write(f, records); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing pin file: %w", err)
	}
	return nil
}
