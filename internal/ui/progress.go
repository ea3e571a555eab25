package ui

import (
	"fmt"
	"io"
)

// Progress prints one numbered line per completed checkout. Checkouts are
// processed sequentially, so no locking is needed.
type Progress struct {
	out    io.Writer
	total  int
	done   int
	styles Styles
}

// NewProgress creates a progress printer for n items. A total of 0 means
// the count is not known up front and only the index is printed.
func NewProgress(out io.Writer, total int) *Progress {
	return &Progress{out: out, total: total, styles: NewStyles(out)}
}

// Done marks one item as completed and prints it.
func (p *Progress) Done(label string) {
	p.done++
	_, _ = fmt.Fprintf(p.out, "%s %s\n", p.styles.Dim.Render(p.counter()), label)
}

// Fail prints a failed item without advancing the counter.
func (p *Progress) Fail(label string, err error) {
	_, _ = fmt.Fprintf(p.out, "%s %s: %v\n", p.styles.Error.Render("FAILED"), label, err)
}

// Log prints an informational message.
func (p *Progress) Log(format string, args ...any) {
	_, _ = fmt.Fprintf(p.out, format+"\n", args...)
}

// Count returns the number of completed items.
func (p *Progress) Count() int { return p.done }

func (p *Progress) counter() string {
	if p.total > 0 {
		return fmt.Sprintf("[%d/%d]", p.done, p.total)
	}
	return fmt.Sprintf("[%d]", p.done)
}
