package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/faizmokh/gridlog/internal/entry"
)

const (
	dirPermissions  = 0o755
	filePermissions = 0o644

	entriesFileName = "entries.json"
	backupPrefix    = "entries_backup_"
	backupSuffix    = ".json"

	// backupKeep bounds how many timestamped copies survive a retention sweep.
	backupKeep = 10
)

// Store centralizes where the entry list lives on disk and how backups are
// named. Every successful save first writes a timestamped backup and prunes
// the oldest copies.
type Store struct {
	basePath string
	now      func() time.Time
}

// New constructs a Store rooted at the provided directory. If basePath is
// empty, it falls back to ~/.gridlog (or another location determined by
// ResolveBasePath).
func New(basePath string) (*Store, error) {
	var err error
	if basePath == "" {
		basePath, err = ResolveBasePath()
		if err != nil {
			return nil, err
		}
	}
	abs, err := filepath.Abs(basePath)
	if err != nil {
		return nil, err
	}

	return &Store{basePath: abs, now: time.Now}, nil
}

// BasePath returns the directory holding the entries file, config and backups.
func (s *Store) BasePath() string {
	return s.basePath
}

// EntriesPath resolves the absolute path of the primary entries file.
func (s *Store) EntriesPath() string {
	return filepath.Join(s.basePath, entriesFileName)
}

// Load reads the persisted entry list. Callers are expected to substitute a
// single blank entry when an error is returned; a missing or corrupt file is
// not a user-facing condition.
func (s *Store) Load() ([]entry.Entry, error) {
	if s == nil {
		return nil, errors.New("store.Store is nil")
	}

	data, err := os.ReadFile(s.EntriesPath())
	if err != nil {
		return nil, fmt.Errorf("read entries: %w", err)
	}

	var entries []entry.Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("decode entries: %w", err)
	}
	return entries, nil
}

// Save persists the full entry list. A timestamped backup is written first and
// the retention sweep keeps only the newest copies; failures pruning old
// backups never fail the save.
func (s *Store) Save(entries []entry.Entry) error {
	if s == nil {
		return errors.New("store.Store is nil")
	}

	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encode entries: %w", err)
	}

	if err := os.MkdirAll(s.basePath, dirPermissions); err != nil {
		return fmt.Errorf("create base directory: %w", err)
	}

	if err := s.writeBackup(data); err != nil {
		return err
	}
	s.pruneBackups()

	if err := os.WriteFile(s.EntriesPath(), data, filePermissions); err != nil {
		return fmt.Errorf("write entries: %w", err)
	}
	return nil
}

func (s *Store) writeBackup(data []byte) error {
	stamp := s.now().Format("20060102_150405")
	name := backupPrefix + stamp + backupSuffix
	if err := os.WriteFile(filepath.Join(s.basePath, name), data, filePermissions); err != nil {
		return fmt.Errorf("write backup: %w", err)
	}
	return nil
}

// pruneBackups removes all but the newest backupKeep backups, ordered by
// modification time. Best effort: unreadable metadata or a failed remove is
// ignored.
func (s *Store) pruneBackups() {
	dirEntries, err := os.ReadDir(s.basePath)
	if err != nil {
		return
	}

	type backup struct {
		path    string
		modTime time.Time
	}
	var backups []backup
	for _, de := range dirEntries {
		name := de.Name()
		if de.IsDir() || !strings.HasPrefix(name, backupPrefix) || !strings.HasSuffix(name, backupSuffix) {
			continue
		}
		info, err := de.Info()
		if err != nil {
			continue
		}
		backups = append(backups, backup{
			path:    filepath.Join(s.basePath, name),
			modTime: info.ModTime(),
		})
	}

	sort.Slice(backups, func(i, j int) bool {
		return backups[i].modTime.After(backups[j].modTime)
	})

	for _, old := range backups[min(len(backups), backupKeep):] {
		_ = os.Remove(old.path)
	}
}
