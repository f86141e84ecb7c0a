// Package persist owns the on-disk side of an edit cycle: loading a
// save file into memory and committing re-encoded bytes back without
// ever leaving the original in a half-written state.
package persist

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
)

// Store reads and writes one save file path.
type Store struct {
	path      string
	backupDir string // empty = alongside the save file
	log       *zap.Logger
}

func NewStore(path, backupDir string, log *zap.Logger) *Store {
	return &Store{path: path, backupDir: backupDir, log: log}
}

// Load reads the whole save file into memory.
func (s *Store) Load() ([]byte, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read save %s: %w", s.path, err)
	}
	s.log.Debug("loaded save", zap.String("path", s.path), zap.Int("bytes", len(data)))
	return data, nil
}

// Commit replaces the save file with data atomically: the bytes go to
// a temporary file in the same directory first and are renamed over
// the original, so a failed write never corrupts the existing save.
// With backup set, the previous file is copied aside first.
func (s *Store) Commit(data []byte, backup bool) error {
	if backup {
		if err := s.backupCurrent(); err != nil {
			return err
		}
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp save: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write temp save: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close temp save: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replace save %s: %w", s.path, err)
	}

	s.log.Info("committed save", zap.String("path", s.path), zap.Int("bytes", len(data)))
	return nil
}

// backupCurrent copies the existing save (if any) to a timestamped
// sibling file before it gets replaced.
func (s *Store) backupCurrent() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // nothing to back up
		}
		return fmt.Errorf("read save for backup: %w", err)
	}

	dir := s.backupDir
	if dir == "" {
		dir = filepath.Dir(s.path)
	} else if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create backup dir %s: %w", dir, err)
	}

	name := fmt.Sprintf("%s.%s.bak", filepath.Base(s.path), time.Now().Format("20060102-150405"))
	backupPath := filepath.Join(dir, name)
	if err := os.WriteFile(backupPath, data, 0o644); err != nil {
		return fmt.Errorf("write backup %s: %w", backupPath, err)
	}

	s.log.Info("backed up save", zap.String("path", backupPath))
	return nil
}
