package main

import (
	"strings"
	"testing"
)

func TestDashboardCmd_Help(t *testing.T) {
	out, err := runLore(t, "dashboard", "--help")
	if err != nil {
		t.Fatalf("dashboard --help failed: %v", err)
	}
	if !strings.Contains(out, "--port") {
		t.Errorf("expected --port flag, got: %s", out)
	}
	if !strings.Contains(out, "--config") {
		t.Errorf("expected --config flag, got: %s", out)
	}
}

func TestNewDashboardCmd(t *testing.T) {
	cmd := newDashboardCmd()
	if cmd.Use != "dashboard" {
		t.Errorf("Use = %q, want dashboard", cmd.Use)
	}

	portFlag := cmd.Flags().Lookup("port")
	if portFlag == nil {
		t.Fatal("expected --port flag")
	}
	if portFlag.Shorthand != "p" {
		t.Errorf("--port shorthand = %q, want p", portFlag.Shorthand)
	}

	cfgFlag := cmd.Flags().Lookup("config")
	if cfgFlag == nil {
		t.Fatal("expected --config flag")
	}
	if cfgFlag.DefValue != "lore.yaml" {
		t.Errorf("--config default = %q, want lore.yaml", cfgFlag.DefValue)
	}
}
