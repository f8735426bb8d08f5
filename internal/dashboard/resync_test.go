package dashboard

import (
	"os"
	"testing"

	"github.com/lorefile/lore/internal/config"
	"github.com/lorefile/lore/internal/session"
	"github.com/lorefile/lore/internal/task"
)

func resyncConfig(t *testing.T, resync string) *config.Config {
	t.Helper()
	cfg, err := config.Parse([]byte("repo_root: " + t.TempDir() + "\ndashboard:\n  resync: \"" + resync + "\"\n"))
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	return cfg
}

func TestStartResync_InvalidSpec(t *testing.T) {
	gdb := testDB(t)

	if _, err := startResync(gdb, resyncConfig(t, "not a cron spec")); err == nil {
		t.Error("startResync() with a bad spec should fail")
	}
}

func TestStartResync_ValidSpec(t *testing.T) {
	gdb := testDB(t)

	stop, err := startResync(gdb, resyncConfig(t, "@hourly"))
	if err != nil {
		t.Fatalf("startResync() error: %v", err)
	}
	stop()
}

func TestResyncOnce_PicksUpAppendedRecords(t *testing.T) {
	gdb := testDB(t)
	cfg := resyncConfig(t, "@hourly")

	tasksPath := cfg.LegacyPath(cfg.Legacy.TasksFile)
	if err := os.WriteFile(tasksPath, []byte(`{"tasks": [{"id": "LF-001", "title": "a"}]}`), 0o644); err != nil {
		t.Fatalf("write tasks: %v", err)
	}
	logPath := cfg.LegacyPath(cfg.Legacy.SessionLog)
	if err := os.WriteFile(logPath, []byte("Date: 2024-01-01\nSession: 1\n"), 0o644); err != nil {
		t.Fatalf("write log: %v", err)
	}

	resyncOnce(gdb, cfg)
	if n, _ := task.Count(gdb); n != 1 {
		t.Fatalf("tasks = %d after first resync, want 1", n)
	}
	if n, _ := session.Count(gdb); n != 1 {
		t.Fatalf("sessions = %d after first resync, want 1", n)
	}

	// Append one record to each source; another pass imports only the new ones.
	if err := os.WriteFile(tasksPath, []byte(`{"tasks": [{"id": "LF-001", "title": "a"}, {"id": "LF-002", "title": "b"}]}`), 0o644); err != nil {
		t.Fatalf("rewrite tasks: %v", err)
	}
	appended := "Date: 2024-01-01\nSession: 1\n---\nDate: 2024-01-01\nSession: 2\n"
	if err := os.WriteFile(logPath, []byte(appended), 0o644); err != nil {
		t.Fatalf("rewrite log: %v", err)
	}

	resyncOnce(gdb, cfg)
	if n, _ := task.Count(gdb); n != 2 {
		t.Errorf("tasks = %d after second resync, want 2", n)
	}
	if n, _ := session.Count(gdb); n != 2 {
		t.Errorf("sessions = %d after second resync, want 2", n)
	}
}

func TestResyncOnce_MissingSourcesAreFine(t *testing.T) {
	gdb := testDB(t)

	resyncOnce(gdb, resyncConfig(t, "@hourly"))
	if n, _ := task.Count(gdb); n != 0 {
		t.Errorf("tasks = %d, want 0", n)
	}
}
