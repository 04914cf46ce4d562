package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	homedir "github.com/mitchellh/go-homedir"

	"github.com/faizmokh/gridlog/internal/config"
	"github.com/faizmokh/gridlog/internal/entry"
)

// placeholderDuration stands in for rows whose duration cannot be derived.
const placeholderDuration = "00:00"

// CSV writes one row per entry that has any text at all; rows that are empty
// across every field are skipped, incomplete rows are kept. Row numbers refer
// to positions in the full list, so a skipped row leaves a gap. Returns the
// path of the written file.
func CSV(entries []entry.Entry, cfg config.Config) (string, error) {
	dir, err := homedir.Expand(cfg.Export.Path)
	if err != nil {
		return "", fmt.Errorf("expand export path: %w", err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export directory: %w", err)
	}

	name := fmt.Sprintf("gridlog_%s.csv", time.Now().Format("2006-01-02"))
	path := filepath.Join(dir, name)

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create export file: %w", err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	header := []string{"Row", "Task Number", "Work Code", "Time Log", "Start Time", "End Time", "Task Time"}
	if err := w.Write(header); err != nil {
		return "", fmt.Errorf("write header: %w", err)
	}

	for i, e := range entries {
		if e.IsEntirelyEmpty() {
			continue
		}
		duration, ok := e.Duration()
		if !ok {
			duration = placeholderDuration
		}
		record := []string{
			strconv.Itoa(i + 1),
			e.TaskNumber,
			e.WorkCode,
			e.TimeLog,
			e.StartTime,
			e.EndTime,
			duration,
		}
		if err := w.Write(record); err != nil {
			return "", fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flush export: %w", err)
	}
	return path, nil
}
