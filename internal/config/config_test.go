package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadRejectsUnknownFields(t *testing.T) {
	path := writeConfig(t, `
agent:
  default_provider: anthropic
  extra_unknown_field: true
`)

	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for unknown field")
	}
}

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Agent.MaxIterations == 0 {
		t.Fatalf("expected default max_iterations to be applied")
	}
	if cfg.UI.Theme != "default" {
		t.Fatalf("expected default theme, got %q", cfg.UI.Theme)
	}
}

func TestLoadValidatesPermissionMode(t *testing.T) {
	path := writeConfig(t, `
automation:
  permission_mode: bogus
`)

	_, err := Load(path)
	if err == nil {
		t.Fatalf("expected validation error")
	}
	if !strings.Contains(err.Error(), "permission_mode") {
		t.Fatalf("expected permission_mode error, got %v", err)
	}
}

func TestLoadValidPermissionModes(t *testing.T) {
	modes := []string{"ask", "suggest", "auto-approved", "full-auto", "plan"}
	for _, mode := range modes {
		t.Run(mode, func(t *testing.T) {
			path := writeConfig(t, `
automation:
  permission_mode: `+mode+`
`)
			if _, err := Load(path); err != nil {
				t.Fatalf("expected config to load with permission_mode %q, got %v", mode, err)
			}
		})
	}
}

func TestLoadValidatesFullAutoRequiresAckFile(t *testing.T) {
	path := writeConfig(t, `
automation:
  full_auto:
    enabled: true
    require_ack: true
`)

	_, err := Load(path)
	if err == nil {
		t.Fatalf("expected validation error")
	}
	if !strings.Contains(err.Error(), "ack_file") {
		t.Fatalf("expected ack_file error, got %v", err)
	}
}

func TestLoadValidatesPluginEntryMissingPath(t *testing.T) {
	path := writeConfig(t, `
plugins:
  entries:
    sample:
      enabled: true
`)

	_, err := Load(path)
	if err == nil {
		t.Fatalf("expected validation error")
	}
	if !strings.Contains(err.Error(), "plugins.entries.sample") {
		t.Fatalf("expected plugin entry error, got %v", err)
	}
}

func TestLoadValidConfig(t *testing.T) {
	path := writeConfig(t, `
agent:
  default_provider: anthropic
  default_model: claude-sonnet-4-20250514
ui:
  theme: dark
llm:
  default_provider: anthropic
  providers:
    anthropic:
      api_key: test-key
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("expected config to load, got %v", err)
	}
	if cfg.Agent.DefaultModel != "claude-sonnet-4-20250514" {
		t.Fatalf("unexpected default model: %q", cfg.Agent.DefaultModel)
	}
}

func TestLoadParsesTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vtcode.toml")
	contents := `
[agent]
default_provider = "anthropic"
default_model = "claude-sonnet-4-20250514"

[ui]
theme = "dark"
`
	if err := os.WriteFile(path, []byte(strings.TrimSpace(contents)), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Agent.DefaultModel != "claude-sonnet-4-20250514" {
		t.Fatalf("unexpected default model: %q", cfg.Agent.DefaultModel)
	}
	if cfg.UI.Theme != "dark" {
		t.Fatalf("unexpected theme: %q", cfg.UI.Theme)
	}
}

func TestLoadWithOverridesAppliesKeyValue(t *testing.T) {
	path := writeConfig(t, `
ui:
  theme: dark
`)

	cfg, err := LoadWithOverrides(path, []string{"ui.theme=light"})
	if err != nil {
		t.Fatalf("LoadWithOverrides() error = %v", err)
	}
	if cfg.UI.Theme != "light" {
		t.Fatalf("expected override to win, got %q", cfg.UI.Theme)
	}
}

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "vtcode.yaml")
	if err := os.WriteFile(path, []byte(strings.TrimSpace(contents)), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}
