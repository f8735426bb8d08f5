package main

import (
	"strings"
	"testing"
)

func TestSearchCmd(t *testing.T) {
	cfgPath := writeTestConfig(t)

	if _, err := runLore(t, "task", "add", "--config", cfgPath,
		"--id", "LF-001", "--title", "Add retry logic"); err != nil {
		t.Fatalf("task add failed: %v", err)
	}
	if _, err := runLore(t, "insight", "add", "--config", cfgPath,
		"--id", "INS-001", "--content", "retry loops need jitter"); err != nil {
		t.Fatalf("insight add failed: %v", err)
	}

	out, err := runLore(t, "search", "retry", "--config", cfgPath)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if !strings.Contains(out, "LF-001") || !strings.Contains(out, "INS-001") {
		t.Errorf("search output = %s", out)
	}

	out, err = runLore(t, "search", "retry", "--config", cfgPath, "--kind", "tasks")
	if err != nil {
		t.Fatalf("restricted search failed: %v", err)
	}
	if !strings.Contains(out, "LF-001") || strings.Contains(out, "INS-001") {
		t.Errorf("restricted search output = %s", out)
	}
}

func TestSearchCmd_NoMatches(t *testing.T) {
	cfgPath := writeTestConfig(t)

	out, err := runLore(t, "search", "nonexistent", "--config", cfgPath)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if !strings.Contains(out, `No matches for "nonexistent".`) {
		t.Errorf("search output = %s", out)
	}
}

func TestSearchCmd_MultiWordQuery(t *testing.T) {
	cfgPath := writeTestConfig(t)

	if _, err := runLore(t, "insight", "add", "--config", cfgPath,
		"--id", "INS-001", "--content", "cache eviction races with refresh"); err != nil {
		t.Fatalf("insight add failed: %v", err)
	}

	out, err := runLore(t, "search", "cache", "eviction", "--config", cfgPath)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if !strings.Contains(out, "INS-001") {
		t.Errorf("search output = %s", out)
	}
}
