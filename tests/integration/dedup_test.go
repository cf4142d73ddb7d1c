package integration

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/sdejongh/dedupnorris/pkg/compare"
	"github.com/sdejongh/dedupnorris/pkg/dedup"
	"github.com/sdejongh/dedupnorris/pkg/models"
	"github.com/sdejongh/dedupnorris/pkg/output"
	"github.com/sdejongh/dedupnorris/pkg/ratelimit"
	"github.com/sdejongh/dedupnorris/pkg/storage"
)

// TestHelper provides utilities for integration tests
type TestHelper struct {
	t         *testing.T
	sourceDir string
	destDir   string
	source    *storage.Local
	dest      *storage.Local
}

// NewTestHelper creates a new integration test helper
func NewTestHelper(t *testing.T) *TestHelper {
	t.Helper()

	tempDir := t.TempDir()
	sourceDir := filepath.Join(tempDir, "source")
	destDir := filepath.Join(tempDir, "dest")

	if err := os.MkdirAll(sourceDir, 0755); err != nil {
		t.Fatalf("failed to create source dir: %v", err)
	}
	if err := os.MkdirAll(destDir, 0755); err != nil {
		t.Fatalf("failed to create dest dir: %v", err)
	}

	source, err := storage.NewLocal(sourceDir)
	if err != nil {
		t.Fatalf("failed to create source backend: %v", err)
	}
	dest, err := storage.NewLocal(destDir)
	if err != nil {
		t.Fatalf("failed to create dest backend: %v", err)
	}

	return &TestHelper{
		t:         t,
		sourceDir: source.Root(),
		destDir:   dest.Root(),
		source:    source,
		dest:      dest,
	}
}

// CreateSourceFile creates a file in the source directory
func (h *TestHelper) CreateSourceFile(name string, content []byte) {
	h.t.Helper()
	h.createFile(h.sourceDir, name, content)
}

// CreateDestFile creates a file in the destination directory
func (h *TestHelper) CreateDestFile(name string, content []byte) {
	h.t.Helper()
	h.createFile(h.destDir, name, content)
}

func (h *TestHelper) createFile(root, name string, content []byte) {
	h.t.Helper()
	path := filepath.Join(root, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		h.t.Fatalf("failed to create parent dir: %v", err)
	}
	if err := os.WriteFile(path, content, 0644); err != nil {
		h.t.Fatalf("failed to create file: %v", err)
	}
}

// Run executes a full deduplication run with the given options
func (h *TestHelper) Run(delete bool, comparator compare.Comparator, formatter output.Formatter, writer io.Writer) *models.Report {
	h.t.Helper()

	op := &models.Operation{
		ID:           "integration-run",
		SourcePath:   h.sourceDir,
		DestPath:     h.destDir,
		Mode:         models.LookupBySize,
		Comparator:   models.ComparatorBinary,
		Delete:       delete,
		FilterSource: true,
		BufferSize:   65536,
		CreatedAt:    time.Now(),
	}

	if err := formatter.Start(writer, op); err != nil {
		h.t.Fatalf("formatter start failed: %v", err)
	}

	engine := dedup.NewEngine(h.source, h.dest, comparator, formatter, nil, op)
	report, err := engine.Run(context.Background())
	if err != nil {
		h.t.Fatalf("engine run failed: %v", err)
	}
	return report
}

func TestEndToEndDeleteRun(t *testing.T) {
	h := NewTestHelper(t)

	// Duplicates with reorganized names and locations
	h.CreateSourceFile("photos/img_001.jpg", []byte("jpeg payload one"))
	h.CreateSourceFile("photos/img_002.jpg", []byte("jpeg payload two!"))
	h.CreateDestFile("archive/2024/holiday.jpg", []byte("jpeg payload one"))
	h.CreateDestFile("archive/2024/beach.jpg", []byte("jpeg payload two!"))
	// Unique file that must survive
	h.CreateSourceFile("photos/img_003.jpg", []byte("unique jpeg payload"))

	var buf bytes.Buffer
	report := h.Run(true, compare.NewBinaryComparator(65536), output.NewHumanFormatter(), &buf)

	if report.Stats.FilesScanned != 3 {
		t.Errorf("FilesScanned = %d, want 3", report.Stats.FilesScanned)
	}
	if report.Stats.FilesDeleted != 2 {
		t.Errorf("FilesDeleted = %d, want 2", report.Stats.FilesDeleted)
	}
	if report.Stats.BytesMatched != int64(len("jpeg payload one")+len("jpeg payload two!")) {
		t.Errorf("BytesMatched = %d", report.Stats.BytesMatched)
	}
	if report.Status != models.StatusSuccess {
		t.Errorf("Status = %s, want success", report.Status)
	}

	if _, err := os.Stat(filepath.Join(h.sourceDir, "photos/img_003.jpg")); err != nil {
		t.Error("unique file vanished")
	}
	if _, err := os.Stat(filepath.Join(h.destDir, "archive/2024/holiday.jpg")); err != nil {
		t.Error("destination file was touched")
	}
	// photos/ still holds img_003.jpg
	if _, err := os.Stat(filepath.Join(h.sourceDir, "photos")); err != nil {
		t.Error("non-empty source directory was removed")
	}
}

func TestEndToEndDirectoryPrune(t *testing.T) {
	h := NewTestHelper(t)
	h.CreateSourceFile("old/backup/data.bin", []byte("identical blob"))
	h.CreateDestFile("current/data.bin", []byte("identical blob"))

	report := h.Run(true, compare.NewBinaryComparator(65536), output.NewHumanFormatter(), io.Discard)

	if report.Stats.DirsDeleted != 1 {
		t.Errorf("DirsDeleted = %d, want 1", report.Stats.DirsDeleted)
	}
	// Only the immediate parent is pruned; old/ keeps its place
	if _, err := os.Stat(filepath.Join(h.sourceDir, "old/backup")); !os.IsNotExist(err) {
		t.Error("emptied directory old/backup was not removed")
	}
	if _, err := os.Stat(filepath.Join(h.sourceDir, "old")); err != nil {
		t.Error("grandparent directory was removed")
	}
}

func TestDryRunThenDelete(t *testing.T) {
	h := NewTestHelper(t)
	h.CreateSourceFile("dup.txt", []byte("shared bytes"))
	h.CreateDestFile("kept.txt", []byte("shared bytes"))

	dry := h.Run(false, compare.NewBinaryComparator(65536), output.NewHumanFormatter(), io.Discard)
	if dry.Stats.FilesMatched != 1 || dry.Stats.FilesDeleted != 0 {
		t.Fatalf("dry run: matched=%d deleted=%d", dry.Stats.FilesMatched, dry.Stats.FilesDeleted)
	}
	if _, err := os.Stat(filepath.Join(h.sourceDir, "dup.txt")); err != nil {
		t.Fatal("dry run touched source file")
	}

	real := h.Run(true, compare.NewBinaryComparator(65536), output.NewHumanFormatter(), io.Discard)
	if real.Stats.FilesDeleted != 1 {
		t.Errorf("delete run: FilesDeleted = %d, want 1", real.Stats.FilesDeleted)
	}
	if _, err := os.Stat(filepath.Join(h.sourceDir, "dup.txt")); !os.IsNotExist(err) {
		t.Error("delete run left the duplicate in place")
	}
}

func TestEndToEndWithExecComparator(t *testing.T) {
	if _, err := exec.LookPath("cmp"); err != nil {
		t.Skip("cmp not available")
	}

	h := NewTestHelper(t)
	h.CreateSourceFile("a.dat", []byte("compare me externally"))
	h.CreateSourceFile("b.dat", []byte("no twin for this one!!"))
	h.CreateDestFile("twin.dat", []byte("compare me externally"))

	report := h.Run(false, compare.NewExecComparator(""), output.NewHumanFormatter(), io.Discard)

	if report.Stats.FilesMatched != 1 {
		t.Errorf("FilesMatched = %d, want 1", report.Stats.FilesMatched)
	}
}

func TestEndToEndWithRateLimitedComparator(t *testing.T) {
	h := NewTestHelper(t)
	content := bytes.Repeat([]byte("payload"), 5000)
	h.CreateSourceFile("big.bin", content)
	h.CreateDestFile("copy.bin", content)

	comparator := compare.NewBinaryComparator(65536)
	limiter := ratelimit.NewLimiter(50 * 1024 * 1024)
	comparator.SetReaderWrapper(func(r io.Reader) io.Reader {
		return ratelimit.NewReader(r, limiter)
	})

	report := h.Run(false, comparator, output.NewHumanFormatter(), io.Discard)

	if report.Stats.FilesMatched != 1 {
		t.Errorf("FilesMatched = %d, want 1 with rate-limited reads", report.Stats.FilesMatched)
	}
}

func TestEndToEndJSONOutput(t *testing.T) {
	h := NewTestHelper(t)
	h.CreateSourceFile("dup.txt", []byte("foo"))
	h.CreateDestFile("other.txt", []byte("foo"))

	var buf bytes.Buffer
	report := h.Run(false, compare.NewBinaryComparator(65536), output.NewJSONFormatter(), &buf)

	if report.Stats.FilesMatched != 1 {
		t.Fatalf("FilesMatched = %d, want 1", report.Stats.FilesMatched)
	}
	if !bytes.Contains(buf.Bytes(), []byte(`"event":"summary"`)) {
		t.Errorf("JSON output missing summary event:\n%s", buf.String())
	}
	if !bytes.Contains(buf.Bytes(), []byte(`"action":"would_delete"`)) {
		t.Errorf("JSON output missing file event:\n%s", buf.String())
	}
}
