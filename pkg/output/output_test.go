package output

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sdejongh/dedupnorris/pkg/models"
)

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		bytes    int64
		expected string
	}{
		{0, "0 B"},
		{3, "3 B"},
		{1023, "1023 B"},
		{1024, "1.00 KB"},
		{1536, "1.50 KB"},
		{15 * 1024, "15.0 KB"},
		{200 * 1024, "200 KB"},
		{1024 * 1024, "1.00 MB"},
		{5 * 1024 * 1024 * 1024, "5.00 GB"},
		{2 * 1024 * 1024 * 1024 * 1024, "2.00 TB"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := FormatBytes(tt.bytes); got != tt.expected {
				t.Errorf("FormatBytes(%d) = %q, want %q", tt.bytes, got, tt.expected)
			}
		})
	}
}

func sampleOperation() *models.Operation {
	return &models.Operation{
		SourcePath: "/data/src",
		DestPath:   "/data/dest",
		Mode:       models.LookupBySize,
		Delete:     false,
	}
}

func sampleReport() *models.Report {
	return &models.Report{
		OperationID: "op-1",
		SourcePath:  "/data/src",
		DestPath:    "/data/dest",
		Mode:        models.LookupBySize,
		Delete:      true,
		Duration:    1500 * time.Millisecond,
		Stats: models.Statistics{
			FilesScanned: 10,
			FilesMatched: 4,
			FilesDeleted: 4,
			DirsDeleted:  1,
			BytesMatched: 2048,
		},
		Duplicates: []models.FileResult{
			{SourcePath: "/data/src/a.txt", MatchPath: "/data/dest/x.txt", Size: 1024, Action: models.ActionDeleted},
		},
		Status: models.StatusSuccess,
	}
}

func TestHumanFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := NewHumanFormatter()

	if err := f.Start(&buf, sampleOperation()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	f.IndexBuilt(100, 5)
	f.Result(&models.FileResult{
		SourcePath: "/data/src/a.txt",
		MatchPath:  "/data/dest/x.txt",
		Size:       3,
		Action:     models.ActionWouldDelete,
	})
	f.Result(&models.FileResult{SourcePath: "/data/src/b.txt", Action: models.ActionNoMatch})
	f.DirRemoved("/data/src/sub")
	f.Complete(sampleReport())

	out := buf.String()
	for _, want := range []string{
		"dry-run mode",
		"Indexed 100 destination files (5 excluded under source root)",
		"would delete /data/src/a.txt (3 B, matches /data/dest/x.txt)",
		"no match     /data/src/b.txt",
		"removed dir  /data/src/sub",
		"Duplicates:     4",
		"Space freed: 2.00 KB",
		"Status: success",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestJSONFormatterEvents(t *testing.T) {
	var buf bytes.Buffer
	f := NewJSONFormatter()

	if err := f.Start(&buf, sampleOperation()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	f.IndexBuilt(7, 0)
	f.Result(&models.FileResult{
		SourcePath: "/data/src/a.txt",
		MatchPath:  "/data/dest/x.txt",
		Size:       3,
		Action:     models.ActionWouldDelete,
	})
	f.Complete(sampleReport())

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d JSON lines, want 4:\n%s", len(lines), buf.String())
	}

	var event map[string]interface{}
	if err := json.Unmarshal([]byte(lines[2]), &event); err != nil {
		t.Fatalf("invalid JSON event: %v", err)
	}
	if event["event"] != "file" || event["action"] != "would_delete" {
		t.Errorf("unexpected file event: %v", event)
	}

	var summary map[string]interface{}
	if err := json.Unmarshal([]byte(lines[3]), &summary); err != nil {
		t.Fatalf("invalid JSON summary: %v", err)
	}
	if summary["event"] != "summary" || summary["files_matched"] != float64(4) {
		t.Errorf("unexpected summary: %v", summary)
	}
}

func TestWriteReportHuman(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.txt")

	if err := WriteReport(sampleReport(), path, "human"); err != nil {
		t.Fatalf("WriteReport failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read report: %v", err)
	}
	out := string(data)
	for _, want := range []string{
		"Deduplication Report",
		"Duplicates:    4 (2.00 KB)",
		"/data/src/a.txt -> /data/dest/x.txt",
		"Status: success",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
}

func TestWriteReportJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")

	if err := WriteReport(sampleReport(), path, "json"); err != nil {
		t.Fatalf("WriteReport failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read report: %v", err)
	}

	var out reportJSON
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("invalid report JSON: %v", err)
	}
	if out.FilesMatched != 4 || out.BytesMatched != 2048 {
		t.Errorf("unexpected counts in report: %+v", out)
	}
	if len(out.Duplicates) != 1 || out.Duplicates[0].Match != "/data/dest/x.txt" {
		t.Errorf("unexpected duplicates in report: %+v", out.Duplicates)
	}
}
