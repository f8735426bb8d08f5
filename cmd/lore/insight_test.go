package main

import (
	"strings"
	"testing"
)

func TestInsightCmd_Help(t *testing.T) {
	out, err := runLore(t, "insight", "--help")
	if err != nil {
		t.Fatalf("insight --help failed: %v", err)
	}
	for _, sub := range []string{"add", "list", "show", "link", "discussed"} {
		if !strings.Contains(out, sub) {
			t.Errorf("expected help to list %q subcommand, got: %s", sub, out)
		}
	}
}

func TestInsightLifecycle(t *testing.T) {
	cfgPath := writeTestConfig(t)

	out, err := runLore(t, "insight", "add", "--config", cfgPath,
		"--id", "INS-001", "--content", "retries need jitter", "--tags", "http,retry")
	if err != nil {
		t.Fatalf("insight add failed: %v", err)
	}
	if !strings.Contains(out, "Recorded insight INS-001 [technical]") {
		t.Errorf("add output = %s", out)
	}

	out, err = runLore(t, "insight", "show", "INS-001", "--config", cfgPath)
	if err != nil {
		t.Fatalf("insight show failed: %v", err)
	}
	if !strings.Contains(out, "retries need jitter") || !strings.Contains(out, "Tags: http, retry") {
		t.Errorf("show output = %s", out)
	}

	out, err = runLore(t, "insight", "discussed", "INS-001", "--config", cfgPath)
	if err != nil {
		t.Fatalf("insight discussed failed: %v", err)
	}
	if !strings.Contains(out, "marked discussed") {
		t.Errorf("discussed output = %s", out)
	}

	out, err = runLore(t, "insight", "list", "--config", cfgPath, "--status", "unprocessed")
	if err != nil {
		t.Fatalf("insight list failed: %v", err)
	}
	if !strings.Contains(out, "No insights found.") {
		t.Errorf("filtered list output = %s", out)
	}
}

func TestInsightLinkCmd(t *testing.T) {
	cfgPath := writeTestConfig(t)

	for _, id := range []string{"INS-001", "INS-002"} {
		if _, err := runLore(t, "insight", "add", "--config", cfgPath,
			"--id", id, "--content", "body "+id); err != nil {
			t.Fatalf("insight add %s failed: %v", id, err)
		}
	}

	out, err := runLore(t, "insight", "link", "INS-001", "INS-002", "--config", cfgPath)
	if err != nil {
		t.Fatalf("insight link failed: %v", err)
	}
	if !strings.Contains(out, "Linked INS-001 -> INS-002") {
		t.Errorf("link output = %s", out)
	}

	if _, err := runLore(t, "insight", "link", "INS-001", "INS-404", "--config", cfgPath); err == nil {
		t.Error("link to missing target should fail")
	}
}
