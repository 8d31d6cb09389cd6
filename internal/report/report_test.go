package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/dotcommander/agentready/internal/models"
)

func fixtureAssessment() *models.Assessment {
	return &models.Assessment{
		Repository: &models.Repository{
			Path:      "/tmp/proj",
			Name:      "proj",
			Languages: map[string]int64{"Go": 1200},
			FileCount: 42,
			LineCount: 1200,
		},
		Findings: []models.Finding{
			{
				Attribute: models.Attribute{ID: "readme_quality", Name: "README Quality", Tier: models.TierEssential},
				Status:    models.StatusPass,
				Score:     100,
			},
			{
				Attribute:     models.Attribute{ID: "license_file", Name: "License File", Tier: models.TierImportant},
				Status:        models.StatusFail,
				Score:         0,
				MeasuredValue: "none",
				Remediation: &models.Remediation{
					Summary:  "Add a LICENSE file",
					Steps:    []string{"Choose a license"},
					Commands: []string{"touch LICENSE"},
				},
			},
			models.NotApplicable(models.Attribute{ID: "lock_files", Name: "Lock Files", Tier: models.TierEssential}, "no manifests"),
		},
		OverallScore:       78.5,
		CertificationLevel: models.CertificationGold,
		AssessedCount:      2,
		SkippedCount:       1,
		TotalCount:         3,
		Timestamp:          time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		Duration:           150 * time.Millisecond,
	}
}

func TestNewRenderer(t *testing.T) {
	for _, format := range []string{"console", "json", "markdown"} {
		if _, err := NewRenderer(format, Options{}); err != nil {
			t.Errorf("NewRenderer(%q) error: %v", format, err)
		}
	}
	if _, err := NewRenderer("xml", Options{}); err == nil {
		t.Error("NewRenderer should reject unsupported formats")
	}
}

func TestJSONRenderer(t *testing.T) {
	var buf bytes.Buffer
	if err := NewJSONRenderer().Render(&buf, fixtureAssessment()); err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded["overall_score"] != 78.5 {
		t.Errorf("overall_score = %v, want 78.5", decoded["overall_score"])
	}
	if decoded["certification_level"] != "gold" {
		t.Errorf("certification_level = %v, want gold", decoded["certification_level"])
	}
	if findings, ok := decoded["findings"].([]any); !ok || len(findings) != 3 {
		t.Errorf("findings = %v, want 3 entries", decoded["findings"])
	}
}

func TestMarkdownRenderer(t *testing.T) {
	var buf bytes.Buffer
	if err := NewMarkdownRenderer(Options{}).Render(&buf, fixtureAssessment()); err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"# Agent Readiness Report: proj",
		"78.5/100",
		"gold",
		"| ✓ | README Quality | Essential | 100 |",
		"## Remediation",
		"Add a LICENSE file",
		"touch LICENSE",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("markdown output missing %q", want)
		}
	}
}

func TestConsoleRendererQuiet(t *testing.T) {
	var buf bytes.Buffer
	if err := NewConsoleRenderer(Options{Quiet: true}).Render(&buf, fixtureAssessment()); err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	out := strings.TrimSpace(buf.String())
	if out != "78.5 gold" {
		t.Errorf("quiet output = %q, want %q", out, "78.5 gold")
	}
}

func TestConsoleRendererVerbose(t *testing.T) {
	var buf bytes.Buffer
	if err := NewConsoleRenderer(Options{Verbose: true}).Render(&buf, fixtureAssessment()); err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	out := buf.String()

	for _, want := range []string{"proj", "README Quality", "License File", "Add a LICENSE file", "2 assessed, 1 skipped, 3 total"} {
		if !strings.Contains(out, want) {
			t.Errorf("console output missing %q", want)
		}
	}
}
