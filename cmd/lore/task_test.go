package main

import (
	"strings"
	"testing"
)

func TestTaskCmd_Help(t *testing.T) {
	out, err := runLore(t, "task", "--help")
	if err != nil {
		t.Fatalf("task --help failed: %v", err)
	}
	for _, sub := range []string{"add", "list", "show", "update", "done"} {
		if !strings.Contains(out, sub) {
			t.Errorf("expected help to list %q subcommand, got: %s", sub, out)
		}
	}
}

func TestTaskAddCmd_MissingRequiredFlags(t *testing.T) {
	if _, err := runLore(t, "task", "add"); err == nil {
		t.Fatal("expected error for missing --id and --title")
	}
}

func TestTaskLifecycle(t *testing.T) {
	cfgPath := writeTestConfig(t)

	out, err := runLore(t, "task", "add", "--config", cfgPath,
		"--id", "LF-001", "--title", "Add retry logic", "--priority", "high",
		"--acceptance", "retries back off", "--acceptance", "jitter applied")
	if err != nil {
		t.Fatalf("task add failed: %v", err)
	}
	if !strings.Contains(out, "Created task LF-001 [TODO/high]") {
		t.Errorf("add output = %s", out)
	}

	out, err = runLore(t, "task", "list", "--config", cfgPath)
	if err != nil {
		t.Fatalf("task list failed: %v", err)
	}
	if !strings.Contains(out, "LF-001") || !strings.Contains(out, "Add retry logic") {
		t.Errorf("list output = %s", out)
	}

	out, err = runLore(t, "task", "show", "LF-001", "--config", cfgPath)
	if err != nil {
		t.Fatalf("task show failed: %v", err)
	}
	if !strings.Contains(out, "Acceptance:") || !strings.Contains(out, "jitter applied") {
		t.Errorf("show output = %s", out)
	}

	out, err = runLore(t, "task", "update", "LF-001", "--config", cfgPath, "--status", "IN_PROGRESS")
	if err != nil {
		t.Fatalf("task update failed: %v", err)
	}
	if !strings.Contains(out, "[IN_PROGRESS/high]") {
		t.Errorf("update output = %s", out)
	}

	out, err = runLore(t, "task", "done", "LF-001", "--config", cfgPath)
	if err != nil {
		t.Fatalf("task done failed: %v", err)
	}
	if !strings.Contains(out, "marked DONE") {
		t.Errorf("done output = %s", out)
	}

	out, err = runLore(t, "task", "list", "--config", cfgPath, "--status", "TODO")
	if err != nil {
		t.Fatalf("filtered list failed: %v", err)
	}
	if !strings.Contains(out, "No tasks found.") {
		t.Errorf("filtered list output = %s", out)
	}
}

func TestTaskUpdateCmd_NoFields(t *testing.T) {
	cfgPath := writeTestConfig(t)

	_, err := runLore(t, "task", "update", "LF-001", "--config", cfgPath)
	if err == nil {
		t.Fatal("expected error for update with no fields")
	}
	if !strings.Contains(err.Error(), "nothing to update") {
		t.Errorf("error = %q", err)
	}
}

func TestTaskUpdateCmd_InvalidTransition(t *testing.T) {
	cfgPath := writeTestConfig(t)

	if _, err := runLore(t, "task", "add", "--config", cfgPath,
		"--id", "LF-001", "--title", "x", "--status", "DONE"); err != nil {
		t.Fatalf("task add failed: %v", err)
	}
	_, err := runLore(t, "task", "update", "LF-001", "--config", cfgPath, "--status", "IN_PROGRESS")
	if err == nil {
		t.Fatal("expected error for DONE -> IN_PROGRESS")
	}
	if !strings.Contains(err.Error(), "invalid status transition") {
		t.Errorf("error = %q", err)
	}
}
