package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir(), "")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Format != "console" {
		t.Errorf("format = %q, want console", cfg.Format)
	}
	if cfg.ReportTheme != "dark" {
		t.Errorf("report_theme = %q, want dark", cfg.ReportTheme)
	}
	if cfg.Concurrency != 8 {
		t.Errorf("concurrency = %d, want 8", cfg.Concurrency)
	}
	if !cfg.Parallel {
		t.Error("parallel should default to true")
	}
}

func TestLoadDiscoveredFile(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, ".agentready.yaml", `
format: json
weights:
  readme_quality: 0.5
  lock_files: 0.5
excluded_attributes:
  - container_setup
exclude:
  - "generated/**"
`)

	cfg, err := Load(dir, "")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Format != "json" {
		t.Errorf("format = %q, want json", cfg.Format)
	}
	if cfg.Weights["readme_quality"] != 0.5 {
		t.Errorf("weights[readme_quality] = %v, want 0.5", cfg.Weights["readme_quality"])
	}
	if len(cfg.ExcludedAttributes) != 1 || cfg.ExcludedAttributes[0] != "container_setup" {
		t.Errorf("excluded_attributes = %v", cfg.ExcludedAttributes)
	}
	if len(cfg.Exclude) != 1 {
		t.Errorf("exclude = %v", cfg.Exclude)
	}
}

func TestLoadExplicitFile(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "custom.yaml", "format: markdown\n")

	cfg, err := Load(t.TempDir(), path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Format != "markdown" {
		t.Errorf("format = %q, want markdown", cfg.Format)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(t.TempDir(), filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("Load() with missing explicit file should error")
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantSub string
	}{
		{"bad format", "format: xml\n", "xml"},
		{"bad theme", "report_theme: blue\n", "blue"},
		{"zero concurrency", "concurrency: 0\n", "concurrency"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeConfig(t, dir, ".agentready.yaml", tt.content)

			_, err := Load(dir, "")
			if err == nil {
				t.Fatal("Load() should reject invalid config")
			}
			if !strings.Contains(strings.ToLower(err.Error()), strings.ToLower(tt.wantSub)) {
				t.Errorf("error %q does not mention %q", err, tt.wantSub)
			}
		})
	}
}
