package holidays

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/lululau/calview/internal/calendar"
	"github.com/lululau/calview/internal/civil"
)

const sample = `[
  {"year": "2025", "holiday": {
    "10-01": {"holiday": true, "name": "国庆节", "wage": 3, "date": "2025-10-01"},
    "09-28": {"holiday": false, "name": "国庆节前补班", "wage": 1, "date": "2025-09-28"},
    "01-01": {"holiday": "yes", "name": "元旦", "wage": 3, "date": "2025-01-01"}
  }},
  {"year": "2024", "holiday": {}}
]`

func TestParseAndLookup(t *testing.T) {
	table, err := Parse([]byte(sample))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	mark := table.Lookup(2025, time.October, 1)
	if mark == nil || !mark.Holiday || mark.Name != "国庆节" {
		t.Fatalf("unexpected mark %+v", mark)
	}
	if mark := table.Lookup(2025, time.September, 28); mark == nil || mark.Holiday {
		t.Fatalf("expected workday mark, got %+v", mark)
	}
	if mark := table.Lookup(2025, time.January, 1); mark == nil || !mark.Holiday {
		t.Fatalf("string holiday field should count as holiday, got %+v", mark)
	}
	if mark := table.Lookup(2023, time.October, 1); mark != nil {
		t.Fatalf("expected no mark, got %+v", mark)
	}
	lo, hi, ok := table.Years()
	if !ok || lo != 2024 || hi != 2025 {
		t.Fatalf("Years=%d..%d ok=%v", lo, hi, ok)
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	if _, err := Parse([]byte("{not json")); err == nil {
		t.Fatalf("expected error")
	}
}

func TestAnnotateGrid(t *testing.T) {
	table, err := Parse([]byte(sample))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	svc := calendar.NewService(calendar.WithAnnotators(table))
	grid := svc.Month(civil.Date(2025, time.October, 1), nil)
	cell, ok := grid.Find(civil.Date(2025, time.September, 28))
	if !ok || cell.Mark == nil || cell.Mark.Holiday {
		t.Fatalf("expected leading workday mark, got %+v", cell)
	}
}

func TestLoadFromFileAndStale(t *testing.T) {
	path := filepath.Join(t.TempDir(), "holidays.json")
	if stale, err := Stale(path, MaxAge); err != nil || !stale {
		t.Fatalf("missing file should be stale, got %v %v", stale, err)
	}
	if err := os.WriteFile(path, []byte(sample), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFromFile(path); err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}
	if stale, err := Stale(path, MaxAge); err != nil || stale {
		t.Fatalf("fresh file should not be stale, got %v %v", stale, err)
	}
	old := time.Now().Add(-2 * MaxAge)
	if err := os.Chtimes(path, old, old); err != nil {
		t.Fatal(err)
	}
	if stale, _ := Stale(path, MaxAge); !stale {
		t.Fatalf("old file should be stale")
	}
}

func TestDownload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(sample))
	}))
	defer srv.Close()

	dest := filepath.Join(t.TempDir(), "cache", "holidays.json")
	var last int64
	table, err := Download(context.Background(), srv.Client(), srv.URL, dest, func(done, total int64) {
		last = done
	})
	if err != nil {
		t.Fatalf("Download failed: %v", err)
	}
	if last != int64(len(sample)) {
		t.Fatalf("progress reported %d bytes, want %d", last, len(sample))
	}
	if table.Lookup(2025, time.October, 1) == nil {
		t.Fatalf("downloaded table misses data")
	}
	if _, err := os.Stat(dest); err != nil {
		t.Fatalf("expected file at %s: %v", dest, err)
	}
}

func TestDownloadKeepsOldFileOnBadData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>"))
	}))
	defer srv.Close()

	dest := filepath.Join(t.TempDir(), "holidays.json")
	if err := os.WriteFile(dest, []byte(sample), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Download(context.Background(), srv.Client(), srv.URL, dest, nil); err == nil {
		t.Fatalf("expected parse error")
	}
	if _, err := LoadFromFile(dest); err != nil {
		t.Fatalf("old data should survive: %v", err)
	}
}

func TestDownloadHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()
	if _, err := Download(context.Background(), srv.Client(), srv.URL, filepath.Join(t.TempDir(), "h.json"), nil); err == nil {
		t.Fatalf("expected HTTP error")
	}
}
