package main

import (
	"strings"
	"testing"
)

func TestContextCmd_Help(t *testing.T) {
	out, err := runLore(t, "context", "--help")
	if err != nil {
		t.Fatalf("context --help failed: %v", err)
	}
	for _, sub := range []string{"set", "get", "list", "unset"} {
		if !strings.Contains(out, sub) {
			t.Errorf("expected help to list %q subcommand, got: %s", sub, out)
		}
	}
}

func TestContextLifecycle(t *testing.T) {
	cfgPath := writeTestConfig(t)

	out, err := runLore(t, "context", "set", "build_command", "make test", "--config", cfgPath)
	if err != nil {
		t.Fatalf("context set failed: %v", err)
	}
	if !strings.Contains(out, "Set build_command") {
		t.Errorf("set output = %s", out)
	}

	out, err = runLore(t, "context", "get", "build_command", "--config", cfgPath)
	if err != nil {
		t.Fatalf("context get failed: %v", err)
	}
	if strings.TrimSpace(out) != "make test" {
		t.Errorf("get output = %q", out)
	}

	// Setting again replaces the value.
	if _, err := runLore(t, "context", "set", "build_command", "go test ./...", "--config", cfgPath); err != nil {
		t.Fatalf("context set failed: %v", err)
	}
	out, _ = runLore(t, "context", "get", "build_command", "--config", cfgPath)
	if strings.TrimSpace(out) != "go test ./..." {
		t.Errorf("get after overwrite = %q", out)
	}

	out, err = runLore(t, "context", "list", "--config", cfgPath)
	if err != nil {
		t.Fatalf("context list failed: %v", err)
	}
	if !strings.Contains(out, "build_command") {
		t.Errorf("list output = %s", out)
	}

	if _, err := runLore(t, "context", "unset", "build_command", "--config", cfgPath); err != nil {
		t.Fatalf("context unset failed: %v", err)
	}
	if _, err := runLore(t, "context", "get", "build_command", "--config", cfgPath); err == nil {
		t.Error("get after unset should fail")
	}

	out, err = runLore(t, "context", "list", "--config", cfgPath)
	if err != nil {
		t.Fatalf("context list failed: %v", err)
	}
	if !strings.Contains(out, "No context entries.") {
		t.Errorf("empty list output = %s", out)
	}
}
