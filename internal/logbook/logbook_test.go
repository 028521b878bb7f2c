package logbook

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestAppendAndTail(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	lb, err := New(path)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	defer lb.Close()

	lb.Info("run %s: starting", "abc")
	lb.Warn("config ignored")
	lb.Error("fetch failed")

	lines := lb.Tail(10)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d: %q", len(lines), lines)
	}
	if !strings.Contains(lines[0], "INFO") || !strings.Contains(lines[0], "run abc: starting") {
		t.Fatalf("unexpected first line: %q", lines[0])
	}
	if !strings.Contains(lines[1], "WARN") || !strings.Contains(lines[2], "ERROR") {
		t.Fatalf("levels missing: %q", lines)
	}
}

func TestTailLimitsLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	lb, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	defer lb.Close()

	for i := 0; i < 10; i++ {
		lb.Info("entry %d", i)
	}
	lines := lb.Tail(3)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if !strings.Contains(lines[2], "entry 9") {
		t.Fatalf("expected most recent entry last, got %q", lines[2])
	}
}

func TestNilLogbookIsSafe(t *testing.T) {
	var lb *Logbook
	lb.Info("ignored")
	lb.Warn("ignored")
	lb.Error("ignored")
	if lb.Tail(5) != nil {
		t.Fatalf("nil logbook must have no tail")
	}
	if lb.Path() != "" {
		t.Fatalf("nil logbook must have empty path")
	}
	if err := lb.Close(); err != nil {
		t.Fatalf("nil Close must be a no-op, got %v", err)
	}
}
