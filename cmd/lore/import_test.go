package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestImportCmd_Help(t *testing.T) {
	out, err := runLore(t, "import", "--help")
	if err != nil {
		t.Fatalf("import --help failed: %v", err)
	}
	for _, sub := range []string{"structured", "log", "runs"} {
		if !strings.Contains(out, sub) {
			t.Errorf("expected help to list %q subcommand, got: %s", sub, out)
		}
	}
}

func TestImportStructuredCmd(t *testing.T) {
	cfgPath := writeTestConfig(t)
	src := filepath.Join(t.TempDir(), "backlog.json")
	content := `{"tasks": [{"id": "LF-001", "title": "Add retry logic"}], "insights": [{"id": "INS-001", "content": "retries need jitter"}]}`
	if err := os.WriteFile(src, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	out, err := runLore(t, "import", "structured", src, "--config", cfgPath)
	if err != nil {
		t.Fatalf("import structured failed: %v", err)
	}
	if !strings.Contains(out, "Imported 1 tasks, 1 insights (0 skipped)") {
		t.Errorf("import output = %s", out)
	}

	out, err = runLore(t, "import", "structured", src, "--config", cfgPath)
	if err != nil {
		t.Fatalf("re-import failed: %v", err)
	}
	if !strings.Contains(out, "Imported 0 tasks, 0 insights (2 skipped)") {
		t.Errorf("re-import output = %s", out)
	}
}

func TestImportLogCmd(t *testing.T) {
	cfgPath := writeTestConfig(t)
	src := filepath.Join(t.TempDir(), "SESSION_LOG.md")
	content := "Date: 2024-01-01\nSession: 1\nOutcome: COMPLETE\n"
	if err := os.WriteFile(src, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	out, err := runLore(t, "import", "log", src, "--config", cfgPath)
	if err != nil {
		t.Fatalf("import log failed: %v", err)
	}
	if !strings.Contains(out, "Imported 1 sessions (0 skipped)") {
		t.Errorf("import output = %s", out)
	}

	out, err = runLore(t, "session", "show", "SES-20240101-01", "--config", cfgPath)
	if err != nil {
		t.Fatalf("session show failed: %v", err)
	}
	if !strings.Contains(out, "Outcome: COMPLETE") {
		t.Errorf("show output = %s", out)
	}
}

func TestImportRunsCmd(t *testing.T) {
	cfgPath := writeTestConfig(t)

	out, err := runLore(t, "import", "runs", "--config", cfgPath)
	if err != nil {
		t.Fatalf("import runs failed: %v", err)
	}
	if !strings.Contains(out, "No imports recorded.") {
		t.Errorf("empty ledger output = %s", out)
	}

	src := filepath.Join(t.TempDir(), "backlog.json")
	if err := os.WriteFile(src, []byte(`{"tasks": [{"id": "LF-001", "title": "x"}]}`), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if _, err := runLore(t, "import", "structured", src, "--config", cfgPath); err != nil {
		t.Fatalf("import structured failed: %v", err)
	}

	out, err = runLore(t, "import", "runs", "--config", cfgPath)
	if err != nil {
		t.Fatalf("import runs failed: %v", err)
	}
	if !strings.Contains(out, "structured") || !strings.Contains(out, src) {
		t.Errorf("ledger output = %s", out)
	}
}
