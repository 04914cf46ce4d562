package export

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/faizmokh/gridlog/internal/config"
	"github.com/faizmokh/gridlog/internal/entry"
)

func testConfig(dir string) config.Config {
	cfg := config.Default()
	cfg.Export.Path = dir
	return cfg
}

func readRows(t *testing.T, path string) [][]string {
	t.Helper()
	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	return rows
}

func TestCSVSkipsEntirelyEmptyRows(t *testing.T) {
	tmp := t.TempDir()

	entries := []entry.Entry{
		{
			TaskNumber: "T-1",
			WorkCode:   "DEV",
			TimeLog:    "implemented export",
			StartTime:  "09:00",
			EndTime:    "17:30",
		},
		{},
		{TaskNumber: "T-3"},
	}

	path, err := CSV(entries, testConfig(tmp))
	if err != nil {
		t.Fatalf("CSV: %v", err)
	}

	rows := readRows(t, path)
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want header plus 2 entries", len(rows))
	}

	if rows[1][0] != "1" || rows[1][6] != "08:30" {
		t.Fatalf("complete row = %v", rows[1])
	}

	// The incomplete row keeps its position number and gets a placeholder
	// duration.
	if rows[2][0] != "3" {
		t.Fatalf("incomplete row number = %q, want %q", rows[2][0], "3")
	}
	if rows[2][6] != "00:00" {
		t.Fatalf("incomplete row duration = %q, want %q", rows[2][6], "00:00")
	}
}

func TestCSVWritesHeader(t *testing.T) {
	tmp := t.TempDir()

	path, err := CSV(nil, testConfig(tmp))
	if err != nil {
		t.Fatalf("CSV: %v", err)
	}

	rows := readRows(t, path)
	want := []string{"Row", "Task Number", "Work Code", "Time Log", "Start Time", "End Time", "Task Time"}
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want header only", len(rows))
	}
	for i := range want {
		if rows[0][i] != want[i] {
			t.Fatalf("header[%d] = %q, want %q", i, rows[0][i], want[i])
		}
	}
}

func TestCSVFilenameCarriesDate(t *testing.T) {
	tmp := t.TempDir()

	path, err := CSV(nil, testConfig(tmp))
	if err != nil {
		t.Fatalf("CSV: %v", err)
	}

	want := "gridlog_" + time.Now().Format("2006-01-02") + ".csv"
	if filepath.Base(path) != want {
		t.Fatalf("filename = %q, want %q", filepath.Base(path), want)
	}
}

func TestCSVCreatesExportDirectory(t *testing.T) {
	tmp := t.TempDir()
	nested := filepath.Join(tmp, "a", "b")

	if _, err := CSV(nil, testConfig(nested)); err != nil {
		t.Fatalf("CSV: %v", err)
	}
	if _, err := os.Stat(nested); err != nil {
		t.Fatalf("expected export directory to exist: %v", err)
	}
}
