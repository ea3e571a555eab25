package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Table renders rows of data in aligned columns. Cells may be styled; widths
// are measured without escape sequences so coloured cells stay aligned.
type Table struct {
	out     io.Writer
	headers []string
	rows    [][]string
	styles  Styles
	// Style, if set, styles a body cell.
	Style func(row, col int, value string) lipgloss.Style
}

// NewTable creates a new table writer with the given column headers.
func NewTable(out io.Writer, headers ...string) *Table {
	return &Table{out: out, headers: headers, styles: NewStyles(out)}
}

// Styles returns the styles bound to the table's writer.
func (t *Table) Styles() Styles { return t.styles }

// Row appends a row of values. The number of values should match the number of headers.
func (t *Table) Row(values ...any) {
	row := make([]string, len(values))
	for i, v := range values {
		row[i] = fmt.Sprintf("%v", v)
	}
	t.rows = append(t.rows, row)
}

// Flush writes the header and every row.
func (t *Table) Flush() error {
	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			if i >= len(widths) {
				widths = append(widths, 0)
			}
			if w := lipgloss.Width(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	header := make([]string, len(t.headers))
	for i, h := range t.headers {
		header[i] = t.styles.Bold.Render(h)
	}
	if err := t.writeLine(header, t.headers, widths); err != nil {
		return err
	}
	for r, row := range t.rows {
		rendered := make([]string, len(row))
		for c, cell := range row {
			rendered[c] = cell
			if t.Style != nil {
				rendered[c] = t.Style(r, c, cell).Render(cell)
			}
		}
		if err := t.writeLine(rendered, row, widths); err != nil {
			return err
		}
	}
	return nil
}

func (t *Table) writeLine(rendered, plain []string, widths []int) error {
	var b strings.Builder
	for i, cell := range rendered {
		b.WriteString(cell)
		if i == len(rendered)-1 {
			break
		}
		b.WriteString(strings.Repeat(" ", widths[i]-lipgloss.Width(plain[i])+2))
	}
	_, err := io.WriteString(t.out, strings.TrimRight(b.String(), " ")+"\n")
	return err
}
