package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestTable_render(t *testing.T) {
	var buf bytes.Buffer
	tbl := NewTable(&buf, "NAME", "VALUE", "OK")
	tbl.Row("alpha", 42, true)
	tbl.Row("beta", 0, false)
	if err := tbl.Flush(); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines (header + 2 rows), got %d", len(lines))
	}
	if !strings.Contains(lines[0], "NAME") {
		t.Errorf("header missing NAME: %q", lines[0])
	}
	if !strings.Contains(lines[1], "alpha") {
		t.Errorf("row 1 missing alpha: %q", lines[1])
	}
	// Second column starts at the same offset on every line.
	if strings.Index(lines[0], "VALUE") != strings.Index(lines[1], "42") {
		t.Errorf("columns not aligned:\n%s", out)
	}
}

func TestTable_styledCellsStayAligned(t *testing.T) {
	var buf bytes.Buffer
	tbl := NewTable(&buf, "REPO", "STATE", "HEAD")
	tbl.Style = func(_, col int, _ string) lipgloss.Style {
		if col == 1 {
			return tbl.Styles().OK
		}
		return lipgloss.NewStyle()
	}
	tbl.Row("pi_core", "pinned", "abc1234")
	tbl.Row("pi_math_long", "drifted", "def5678")
	if err := tbl.Flush(); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if strings.Index(lines[1], "abc1234") != strings.Index(lines[2], "def5678") {
		t.Errorf("columns not aligned:\n%s", buf.String())
	}
}

func TestTable_emptyTable(t *testing.T) {
	var buf bytes.Buffer
	tbl := NewTable(&buf, "A", "B")
	if err := tbl.Flush(); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 1 {
		t.Errorf("expected 1 line (header only), got %d", len(lines))
	}
}
