package compare

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
)

// TestHelper provides utilities for comparator tests
type TestHelper struct {
	t       *testing.T
	tempDir string
}

// NewTestHelper creates a new test helper with a temporary directory
func NewTestHelper(t *testing.T) *TestHelper {
	t.Helper()
	return &TestHelper{t: t, tempDir: t.TempDir()}
}

// CreateFile creates a file with the given content and returns its path
func (h *TestHelper) CreateFile(name string, content []byte) string {
	h.t.Helper()
	path := filepath.Join(h.tempDir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		h.t.Fatalf("failed to create parent dir: %v", err)
	}
	if err := os.WriteFile(path, content, 0644); err != nil {
		h.t.Fatalf("failed to create file: %v", err)
	}
	return path
}

func TestBinaryComparatorIdenticalFiles(t *testing.T) {
	h := NewTestHelper(t)
	c := NewBinaryComparator(65536)

	tests := []struct {
		name    string
		content []byte
	}{
		{"empty", nil},
		{"small", []byte("hello world")},
		{"exactly one buffer", bytes.Repeat([]byte{0xAB}, 65536)},
		{"multiple buffers", bytes.Repeat([]byte("0123456789abcdef"), 10000)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := h.CreateFile("a_"+tt.name, tt.content)
			b := h.CreateFile("b_"+tt.name, tt.content)

			equal, err := c.FilesEqual(context.Background(), a, b)
			if err != nil {
				t.Fatalf("FilesEqual failed: %v", err)
			}
			if !equal {
				t.Error("identical files reported as different")
			}
		})
	}
}

func TestBinaryComparatorDifferentFiles(t *testing.T) {
	h := NewTestHelper(t)
	c := NewBinaryComparator(4096)

	tests := []struct {
		name     string
		contentA []byte
		contentB []byte
	}{
		{"different sizes", []byte("short"), []byte("much longer content")},
		{"same size different content", []byte("foo"), []byte("bar")},
		{"differ in last byte", append(bytes.Repeat([]byte{0}, 8191), 1), append(bytes.Repeat([]byte{0}, 8191), 2)},
		{"differ past first buffer", append(bytes.Repeat([]byte{7}, 5000), 1), append(bytes.Repeat([]byte{7}, 5000), 2)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := h.CreateFile("a_"+tt.name, tt.contentA)
			b := h.CreateFile("b_"+tt.name, tt.contentB)

			equal, err := c.FilesEqual(context.Background(), a, b)
			if err != nil {
				t.Fatalf("FilesEqual failed: %v", err)
			}
			if equal {
				t.Error("different files reported as equal")
			}
		})
	}
}

func TestBinaryComparatorMissingFile(t *testing.T) {
	h := NewTestHelper(t)
	c := NewBinaryComparator(4096)

	a := h.CreateFile("exists.txt", []byte("data"))
	missing := filepath.Join(h.tempDir, "missing.txt")

	if _, err := c.FilesEqual(context.Background(), a, missing); err == nil {
		t.Error("expected error for missing file")
	}
	if _, err := c.FilesEqual(context.Background(), missing, a); err == nil {
		t.Error("expected error for missing file as first argument")
	}
}

func TestBinaryComparatorCancellation(t *testing.T) {
	h := NewTestHelper(t)
	c := NewBinaryComparator(4096)

	content := bytes.Repeat([]byte{1}, 100000)
	a := h.CreateFile("a.bin", content)
	b := h.CreateFile("b.bin", content)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := c.FilesEqual(ctx, a, b); err == nil {
		t.Error("expected context cancellation error")
	}
}

func TestBinaryComparatorName(t *testing.T) {
	if got := NewBinaryComparator(0).Name(); got != "binary" {
		t.Errorf("Name() = %q, want %q", got, "binary")
	}
	if got := NewExecComparator("").Name(); got != "exec" {
		t.Errorf("Name() = %q, want %q", got, "exec")
	}
}

func TestExecComparator(t *testing.T) {
	if _, err := os.Stat("/usr/bin/cmp"); err != nil {
		if _, err := os.Stat("/bin/cmp"); err != nil {
			t.Skip("cmp not available")
		}
	}

	h := NewTestHelper(t)
	c := NewExecComparator("")
	ctx := context.Background()

	a := h.CreateFile("a.txt", []byte("same content"))
	b := h.CreateFile("b.txt", []byte("same content"))
	d := h.CreateFile("d.txt", []byte("OTHER content"))

	equal, err := c.FilesEqual(ctx, a, b)
	if err != nil {
		t.Fatalf("FilesEqual failed: %v", err)
	}
	if !equal {
		t.Error("identical files reported as different")
	}

	equal, err = c.FilesEqual(ctx, a, d)
	if err != nil {
		t.Fatalf("FilesEqual failed: %v", err)
	}
	if equal {
		t.Error("different files reported as equal")
	}

	if _, err := c.FilesEqual(ctx, a, filepath.Join(h.tempDir, "missing.txt")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestExecComparatorBadTool(t *testing.T) {
	h := NewTestHelper(t)
	c := NewExecComparator("definitely-not-a-real-tool-xyz")

	a := h.CreateFile("a.txt", []byte("x"))
	b := h.CreateFile("b.txt", []byte("x"))

	if _, err := c.FilesEqual(context.Background(), a, b); err == nil {
		t.Error("expected error for unavailable tool")
	}
}
