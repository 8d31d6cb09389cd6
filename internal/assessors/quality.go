package assessors

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/dotcommander/agentready/internal/models"
)

var readmeSectionPattern = regexp.MustCompile(`(?m)^#{1,3}\s+\S`)

// ReadmeQualityAssessor checks that the README gives an agent enough to work
// with: the file exists, has real structure, and covers installation and
// usage.
type ReadmeQualityAssessor struct{}

func (a *ReadmeQualityAssessor) AttributeID() string { return "readme_quality" }
func (a *ReadmeQualityAssessor) Tier() int           { return models.TierEssential }

func (a *ReadmeQualityAssessor) Attribute() models.Attribute {
	return models.Attribute{
		ID:            a.AttributeID(),
		Name:          "README Quality",
		Category:      "Documentation Standards",
		Description:   "README documents what the project is, how to install it, and how to use it",
		Criteria:      "README.md present with sectioned install and usage documentation",
		Tier:          a.Tier(),
		DefaultWeight: 0.10,
	}
}

func (a *ReadmeQualityAssessor) Assess(repo *models.Repository) models.Finding {
	content, ok, err := readText(repo, "README.md")
	if err != nil {
		return models.ErrorFinding(a.Attribute(), fmt.Sprintf("reading README.md: %v", err))
	}
	if !ok {
		return models.Finding{
			Attribute:     a.Attribute(),
			Status:        models.StatusFail,
			Score:         0,
			MeasuredValue: "missing",
			Threshold:     "README.md present",
			Evidence:      []string{"README.md not found"},
			Remediation: &models.Remediation{
				Summary: "Add a README.md describing the project, installation, and usage",
				Steps: []string{
					"Open with a one-paragraph description of what the project does",
					"Add Installation and Usage sections with runnable commands",
				},
			},
		}
	}

	var score float64 = 40 // existing README with content is the baseline
	evidence := []string{"README.md found"}

	sections := readmeSectionPattern.FindAllString(content, -1)
	if len(sections) >= 3 {
		score += 30
		evidence = append(evidence, fmt.Sprintf("%d headed sections", len(sections)))
	} else {
		evidence = append(evidence, fmt.Sprintf("only %d headed sections (want ≥3)", len(sections)))
	}

	lower := strings.ToLower(content)
	hasInstall := strings.Contains(lower, "install") || strings.Contains(lower, "setup")
	hasUsage := strings.Contains(lower, "usage") || strings.Contains(lower, "example") ||
		strings.Contains(lower, "quick start") || strings.Contains(lower, "getting started")
	if hasInstall && hasUsage {
		score += 30
		evidence = append(evidence, "install and usage documentation present")
	} else {
		evidence = append(evidence,
			fmt.Sprintf("install: %s, usage: %s", checkmark(hasInstall), checkmark(hasUsage)))
	}

	status := statusForScore(score)
	finding := models.Finding{
		Attribute:     a.Attribute(),
		Status:        status,
		Score:         score,
		MeasuredValue: fmt.Sprintf("%d sections", len(sections)),
		Threshold:     "≥3 sections incl. install and usage",
		Evidence:      evidence,
	}
	if status == models.StatusFail {
		finding.Remediation = &models.Remediation{
			Summary: "Expand the README with structured install and usage documentation",
			Steps: []string{
				"Add Installation and Usage sections with copy-pastable commands",
				"Break long prose into headed sections",
			},
		}
	}
	return finding
}

// linterConfig names a linter configuration and where it lives. A path
// starting with "pyproject:" means a table inside pyproject.toml.
type linterConfig struct {
	language string
	tool     string
	paths    []string
}

var linterConfigs = []linterConfig{
	{"Go", "golangci-lint", []string{".golangci.yml", ".golangci.yaml", ".golangci.toml", ".golangci.json"}},
	{"Go", "staticcheck", []string{"staticcheck.conf"}},
	{"Python", "ruff", []string{"ruff.toml", ".ruff.toml", "pyproject:tool.ruff"}},
	{"Python", "flake8", []string{".flake8", "setup.cfg"}},
	{"JavaScript", "eslint", []string{".eslintrc", ".eslintrc.json", ".eslintrc.js", ".eslintrc.yml", "eslint.config.js", "eslint.config.mjs"}},
	{"TypeScript", "biome", []string{"biome.json"}},
	{"Rust", "clippy", []string{"clippy.toml", ".clippy.toml"}},
	{"Ruby", "rubocop", []string{".rubocop.yml"}},
}

// LinterConfigAssessor checks for a committed linter configuration matching
// the repository's primary language.
type LinterConfigAssessor struct{}

func (a *LinterConfigAssessor) AttributeID() string { return "linter_config" }
func (a *LinterConfigAssessor) Tier() int           { return models.TierCritical }

func (a *LinterConfigAssessor) Attribute() models.Attribute {
	return models.Attribute{
		ID:            a.AttributeID(),
		Name:          "Linter Configuration",
		Category:      "Code Quality",
		Description:   "Committed linter configuration gives agents an objective style target",
		Criteria:      "Linter config present for the repository's primary language",
		Tier:          a.Tier(),
		DefaultWeight: 0.03,
	}
}

func (a *LinterConfigAssessor) Assess(repo *models.Repository) models.Finding {
	primary := repo.PrimaryLanguage()
	if primary == "" {
		return models.NotApplicable(a.Attribute(), "no recognized source language")
	}

	var found []string
	var anyLanguage []string
	for _, lc := range linterConfigs {
		path, ok := a.locate(repo, lc)
		if !ok {
			continue
		}
		entry := fmt.Sprintf("%s (%s)", lc.tool, path)
		anyLanguage = append(anyLanguage, entry)
		if lc.language == primary {
			found = append(found, entry)
		}
	}

	// A linter for another language still counts for half: polyglot repos
	// often configure the dominant toolchain somewhere else.
	var score float64
	evidence := []string{"primary language: " + primary}
	switch {
	case len(found) > 0:
		score = 100
		evidence = append(evidence, "linter config found: "+strings.Join(found, ", "))
	case len(anyLanguage) > 0:
		score = 50
		evidence = append(evidence, "linter config for another language: "+strings.Join(anyLanguage, ", "))
	default:
		evidence = append(evidence, "no linter configuration found")
	}

	status := statusForScore(score)
	finding := models.Finding{
		Attribute:     a.Attribute(),
		Status:        status,
		Score:         score,
		MeasuredValue: fmt.Sprintf("%d matching configs", len(found)),
		Threshold:     "≥1 config for " + primary,
		Evidence:      evidence,
	}
	if status == models.StatusFail {
		finding.Remediation = &models.Remediation{
			Summary: "Commit a linter configuration for " + primary,
			Steps:   []string{"Adopt the standard linter for the language and commit its config"},
			Tools:   []string{"golangci-lint", "ruff", "eslint", "rubocop"},
		}
	}
	return finding
}

func (a *LinterConfigAssessor) locate(repo *models.Repository, lc linterConfig) (string, bool) {
	for _, p := range lc.paths {
		if table, ok := strings.CutPrefix(p, "pyproject:"); ok {
			if pyprojectHasTable(repo, table) {
				return "pyproject.toml [" + table + "]", true
			}
			continue
		}
		if exists(repo, p) {
			return p, true
		}
	}
	return "", false
}

// pyprojectHasTable reports whether pyproject.toml declares the given dotted
// table. A plain substring test on the header line is enough here; full TOML
// parsing is reserved for checks that need values.
func pyprojectHasTable(repo *models.Repository, table string) bool {
	content, ok, err := readText(repo, "pyproject.toml")
	if !ok || err != nil {
		return false
	}
	return strings.Contains(content, "["+table+"]") || strings.Contains(content, "["+table+".")
}
