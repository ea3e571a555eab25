package ui

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestProgress_Done(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgress(&buf, 3)

	p.Done("task A")
	p.Done("task B")
	p.Done("task C")

	out := buf.String()
	for _, want := range []string{"[1/3] task A", "[2/3] task B", "[3/3] task C"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing progress line %q: %s", want, out)
		}
	}
	if p.Count() != 3 {
		t.Errorf("Count() = %d, want 3", p.Count())
	}
}

func TestProgress_unknownTotal(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgress(&buf, 0)
	p.Done("first")
	if !strings.Contains(buf.String(), "[1] first") {
		t.Errorf("unexpected output: %s", buf.String())
	}
}

func TestProgress_Fail(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgress(&buf, 2)
	p.Fail("B", errors.New("boom"))

	if !strings.Contains(buf.String(), "FAILED B: boom") {
		t.Errorf("unexpected output: %s", buf.String())
	}
	if p.Count() != 0 {
		t.Error("Fail should not advance the counter")
	}
}

func TestProgress_Log(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgress(&buf, 1)

	p.Log("hello %s", "world")

	if !strings.Contains(buf.String(), "hello world") {
		t.Errorf("missing log message: %s", buf.String())
	}
}

func TestIsTerminal_buffer(t *testing.T) {
	if IsTerminal(&bytes.Buffer{}) {
		t.Error("a buffer is not a terminal")
	}
	if IsInteractive(strings.NewReader(""), &bytes.Buffer{}) {
		t.Error("a reader is not interactive")
	}
}
