package assessors

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dotcommander/agentready/internal/models"
)

// A .gitignore below this size is unlikely to cover the usual build
// artifacts and editor droppings.
const minGitignoreBytes = 50

// GitignoreAssessor checks for a .gitignore with meaningful coverage.
type GitignoreAssessor struct{}

func (a *GitignoreAssessor) AttributeID() string { return "gitignore_completeness" }
func (a *GitignoreAssessor) Tier() int           { return models.TierCritical }

func (a *GitignoreAssessor) Attribute() models.Attribute {
	return models.Attribute{
		ID:            a.AttributeID(),
		Name:          ".gitignore Completeness",
		Category:      "Git & Version Control",
		Description:   "Comprehensive .gitignore keeps noise out of the working tree",
		Criteria:      ".gitignore exists and covers common patterns",
		Tier:          a.Tier(),
		DefaultWeight: 0.03,
	}
}

func (a *GitignoreAssessor) Assess(repo *models.Repository) models.Finding {
	content, ok, err := readText(repo, ".gitignore")
	if err != nil {
		return models.ErrorFinding(a.Attribute(), fmt.Sprintf("reading .gitignore: %v", err))
	}
	if !ok {
		return models.Finding{
			Attribute:     a.Attribute(),
			Status:        models.StatusFail,
			Score:         0,
			MeasuredValue: "missing",
			Threshold:     "present",
			Evidence:      []string{".gitignore not found"},
			Remediation: &models.Remediation{
				Summary:  "Create a .gitignore with common patterns for your language",
				Commands: []string{"curl -o .gitignore https://raw.githubusercontent.com/github/gitignore/main/Go.gitignore"},
			},
		}
	}

	size := len(content)
	var score float64 = 50
	if size > minGitignoreBytes {
		score = 100
	}
	status := statusForScore(score)

	finding := models.Finding{
		Attribute:     a.Attribute(),
		Status:        status,
		Score:         score,
		MeasuredValue: fmt.Sprintf("%d bytes", size),
		Threshold:     fmt.Sprintf(">%d bytes", minGitignoreBytes),
		Evidence:      []string{fmt.Sprintf(".gitignore found (%d bytes)", size)},
	}
	if status == models.StatusFail {
		finding.Remediation = &models.Remediation{
			Summary: "Expand .gitignore coverage",
			Steps:   []string{"Add patterns for build artifacts, caches, and editor files"},
		}
	}
	return finding
}

// commitlintConfigs are the filenames that indicate commitlint is set up.
var commitlintConfigs = []string{
	".commitlintrc.json", ".commitlintrc.yaml", ".commitlintrc.yml",
	".commitlintrc.js", "commitlint.config.js", "commitlint.config.mjs",
}

// preCommitConfig mirrors the part of .pre-commit-config.yaml we inspect.
type preCommitConfig struct {
	Repos []struct {
		Repo  string `yaml:"repo"`
		Hooks []struct {
			ID string `yaml:"id"`
		} `yaml:"hooks"`
	} `yaml:"repos"`
}

// ConventionalCommitsAssessor checks for tooling that enforces conventional
// commit messages. Commit history itself is out of reach for a filesystem
// check, so configured enforcement is the signal.
type ConventionalCommitsAssessor struct{}

func (a *ConventionalCommitsAssessor) AttributeID() string { return "conventional_commits" }
func (a *ConventionalCommitsAssessor) Tier() int           { return models.TierCritical }

func (a *ConventionalCommitsAssessor) Attribute() models.Attribute {
	return models.Attribute{
		ID:            a.AttributeID(),
		Name:          "Conventional Commit Messages",
		Category:      "Git & Version Control",
		Description:   "Commit messages follow the conventional commit format",
		Criteria:      "commitlint, husky, or a conventional-pre-commit hook configured",
		Tier:          a.Tier(),
		DefaultWeight: 0.03,
	}
}

func (a *ConventionalCommitsAssessor) Assess(repo *models.Repository) models.Finding {
	var evidence []string

	if file, ok := firstExisting(repo, commitlintConfigs); ok {
		evidence = append(evidence, "commitlint configuration found: "+file)
	}
	if isDir(repo, ".husky") {
		evidence = append(evidence, "husky hooks directory found")
	}
	if hookEvidence, err := a.checkPreCommit(repo); err != nil {
		return models.ErrorFinding(a.Attribute(), err.Error())
	} else if hookEvidence != "" {
		evidence = append(evidence, hookEvidence)
	}

	if len(evidence) > 0 {
		return models.Finding{
			Attribute:     a.Attribute(),
			Status:        models.StatusPass,
			Score:         100,
			MeasuredValue: "configured",
			Threshold:     "configured",
			Evidence:      evidence,
		}
	}

	return models.Finding{
		Attribute:     a.Attribute(),
		Status:        models.StatusFail,
		Score:         0,
		MeasuredValue: "not configured",
		Threshold:     "configured",
		Evidence:      []string{"no conventional commit enforcement detected"},
		Remediation: &models.Remediation{
			Summary: "Enforce conventional commit messages with a commit-msg hook",
			Steps: []string{
				"Node projects: install commitlint with the conventional config and wire it through husky",
				"Python projects: add the conventional-pre-commit hook to .pre-commit-config.yaml",
			},
			Tools: []string{"commitlint", "husky", "pre-commit"},
			Commands: []string{
				"npm install --save-dev @commitlint/cli @commitlint/config-conventional husky",
				"pre-commit install --hook-type commit-msg",
			},
			Citations: []models.Citation{{
				Source: "conventionalcommits.org",
				Title:  "Conventional Commits 1.0.0",
				URL:    "https://www.conventionalcommits.org/en/v1.0.0/",
			}},
		},
	}
}

// checkPreCommit looks for the conventional-pre-commit hook. A config that
// fails to parse as YAML falls back to a substring check rather than an
// error: a malformed config is a repo problem, not an assessor failure.
func (a *ConventionalCommitsAssessor) checkPreCommit(repo *models.Repository) (string, error) {
	content, ok, err := readText(repo, ".pre-commit-config.yaml")
	if err != nil {
		return "", fmt.Errorf("reading .pre-commit-config.yaml: %w", err)
	}
	if !ok {
		return "", nil
	}

	var cfg preCommitConfig
	if err := yaml.Unmarshal([]byte(content), &cfg); err != nil {
		if strings.Contains(content, "conventional-pre-commit") {
			return "conventional-pre-commit referenced in .pre-commit-config.yaml", nil
		}
		return "", nil
	}

	for _, r := range cfg.Repos {
		if !strings.Contains(r.Repo, "conventional-pre-commit") {
			continue
		}
		for _, h := range r.Hooks {
			if h.ID == "conventional-pre-commit" {
				return "conventional-pre-commit hook configured in .pre-commit-config.yaml", nil
			}
		}
	}
	return "", nil
}
