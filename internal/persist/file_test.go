package persist

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestLoadCommitRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.logicworld")
	store := NewStore(path, "", zap.NewNop())

	if err := store.Commit([]byte("first"), false); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	data, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !bytes.Equal(data, []byte("first")) {
		t.Errorf("Load = %q", data)
	}

	if err := store.Commit([]byte("second"), false); err != nil {
		t.Fatalf("second Commit: %v", err)
	}
	data, _ = store.Load()
	if !bytes.Equal(data, []byte("second")) {
		t.Errorf("after overwrite Load = %q", data)
	}
}

func TestCommitLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(filepath.Join(dir, "data.logicworld"), "", zap.NewNop())
	if err := store.Commit([]byte("x"), false); err != nil {
		t.Fatalf("Commit: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if strings.Contains(e.Name(), ".tmp-") {
			t.Errorf("temp file left behind: %s", e.Name())
		}
	}
}

func TestCommitBackup(t *testing.T) {
	dir := t.TempDir()
	backupDir := filepath.Join(dir, "backups")
	path := filepath.Join(dir, "data.logicworld")
	store := NewStore(path, backupDir, zap.NewNop())

	// First commit: nothing to back up yet.
	if err := store.Commit([]byte("v1"), true); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if _, err := os.Stat(backupDir); !os.IsNotExist(err) {
		entries, _ := os.ReadDir(backupDir)
		if len(entries) != 0 {
			t.Errorf("backup created with no previous save")
		}
	}

	// Second commit must preserve the old bytes.
	if err := store.Commit([]byte("v2"), true); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	entries, err := os.ReadDir(backupDir)
	if err != nil {
		t.Fatalf("backup dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d backups, want 1", len(entries))
	}
	backed, err := os.ReadFile(filepath.Join(backupDir, entries[0].Name()))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(backed, []byte("v1")) {
		t.Errorf("backup = %q, want v1", backed)
	}
	if !strings.HasSuffix(entries[0].Name(), ".bak") {
		t.Errorf("backup name = %q", entries[0].Name())
	}
}

func TestLoadMissing(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "missing"), "", zap.NewNop())
	if _, err := store.Load(); err == nil {
		t.Error("loading a missing save should fail")
	}
}
