package db

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lorefile/lore/internal/config"
)

func TestOpenLocal_CreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".lore", "lore.db")

	gdb, err := OpenLocal(path)
	if err != nil {
		t.Fatalf("OpenLocal() error: %v", err)
	}
	defer Close(gdb)

	if _, err := MigrateToLatest(gdb); err != nil {
		t.Fatalf("MigrateToLatest() error: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("store file not created: %v", err)
	}
}

func TestOpen_UnknownBackend(t *testing.T) {
	cfg := &config.Config{}
	cfg.Store.Backend = "dolt"

	if _, err := Open(cfg); err == nil {
		t.Error("Open() with unknown backend should fail")
	}
}

func TestOpen_Local(t *testing.T) {
	cfg, err := config.Parse(nil)
	if err != nil {
		t.Fatalf("default config: %v", err)
	}
	cfg.RepoRoot = t.TempDir()

	gdb, err := Open(cfg)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	if err := Close(gdb); err != nil {
		t.Errorf("Close() error: %v", err)
	}
}
