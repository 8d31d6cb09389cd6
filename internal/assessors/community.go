package assessors

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"

	"github.com/dotcommander/agentready/internal/models"
)

// prTemplatePaths are the locations GitHub recognizes for a PR template.
var prTemplatePaths = []string{
	".github/PULL_REQUEST_TEMPLATE.md",
	".github/pull_request_template.md",
	"PULL_REQUEST_TEMPLATE.md",
	"docs/PULL_REQUEST_TEMPLATE.md",
}

// IssuePRTemplatesAssessor checks for GitHub issue and pull request
// templates. Templates give agents a structure to fill in when opening
// issues or PRs.
type IssuePRTemplatesAssessor struct{}

func (a *IssuePRTemplatesAssessor) AttributeID() string { return "issue_pr_templates" }
func (a *IssuePRTemplatesAssessor) Tier() int           { return models.TierImportant }

func (a *IssuePRTemplatesAssessor) Attribute() models.Attribute {
	return models.Attribute{
		ID:            a.AttributeID(),
		Name:          "Issue & Pull Request Templates",
		Category:      "Repository Structure",
		Description:   "Standardized templates for issues and pull requests",
		Criteria:      "PR template plus at least two issue templates in .github/",
		Tier:          a.Tier(),
		DefaultWeight: 0.015,
	}
}

func (a *IssuePRTemplatesAssessor) Assess(repo *models.Repository) models.Finding {
	var score float64
	var evidence []string

	// PR template: 50 points.
	prTemplate, hasPR := firstExisting(repo, prTemplatePaths)
	if hasPR {
		score += 50
		evidence = append(evidence, "PR template found: "+prTemplate)
	} else {
		evidence = append(evidence, "no PR template found")
	}

	// Issue templates: 50 points for two or more, half credit for one.
	issueCount, err := a.countIssueTemplates(repo)
	if err != nil {
		return models.ErrorFinding(a.Attribute(), err.Error())
	}
	switch {
	case issueCount >= 2:
		score += 50
		evidence = append(evidence, fmt.Sprintf("issue templates found: %d", issueCount))
	case issueCount == 1:
		score += 25
		evidence = append(evidence, "issue template directory has 1 template (want ≥2)")
	default:
		evidence = append(evidence, "no issue templates found")
	}

	status := statusForScore(score)
	finding := models.Finding{
		Attribute:     a.Attribute(),
		Status:        status,
		Score:         score,
		MeasuredValue: fmt.Sprintf("PR:%s issues:%d", checkmark(hasPR), issueCount),
		Threshold:     "PR template + ≥2 issue templates",
		Evidence:      evidence,
	}
	if status == models.StatusFail {
		finding.Remediation = &models.Remediation{
			Summary: "Add issue and PR templates under .github/",
			Steps: []string{
				"Create .github/PULL_REQUEST_TEMPLATE.md",
				"Create .github/ISSUE_TEMPLATE/ with bug_report and feature_request templates",
			},
			Commands: []string{"mkdir -p .github/ISSUE_TEMPLATE"},
			Citations: []models.Citation{{
				Source: "GitHub Docs",
				Title:  "About issue and pull request templates",
				URL:    "https://docs.github.com/en/communities/using-templates-to-encourage-useful-issues-and-pull-requests/about-issue-and-pull-request-templates",
			}},
		}
	}
	return finding
}

func (a *IssuePRTemplatesAssessor) countIssueTemplates(repo *models.Repository) (int, error) {
	dir := filepath.Join(repo.Path, ".github", "ISSUE_TEMPLATE")
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("reading issue template directory: %w", err)
	}

	count := 0
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".md", ".yml", ".yaml":
			// config.yml configures the chooser, it is not a template
			if strings.EqualFold(e.Name(), "config.yml") || strings.EqualFold(e.Name(), "config.yaml") {
				continue
			}
			count++
		}
	}
	return count, nil
}

// workflowFile mirrors the top-level shape of a GitHub Actions workflow.
type workflowFile struct {
	Jobs map[string]any `yaml:"jobs"`
}

// CIWorkflowsAssessor checks for continuous integration configuration and
// that at least one workflow actually defines jobs.
type CIWorkflowsAssessor struct{}

func (a *CIWorkflowsAssessor) AttributeID() string { return "ci_workflows" }
func (a *CIWorkflowsAssessor) Tier() int           { return models.TierImportant }

func (a *CIWorkflowsAssessor) Attribute() models.Attribute {
	return models.Attribute{
		ID:            a.AttributeID(),
		Name:          "CI Workflows",
		Category:      "Build & Development",
		Description:   "Continuous integration runs checks on every change",
		Criteria:      "At least one CI workflow with defined jobs",
		Tier:          a.Tier(),
		DefaultWeight: 0.015,
	}
}

func (a *CIWorkflowsAssessor) Assess(repo *models.Repository) models.Finding {
	workflows, err := a.findWorkflows(repo)
	if err != nil {
		return models.ErrorFinding(a.Attribute(), err.Error())
	}

	// Other CI systems count as a full pass without job inspection.
	otherCI := []string{".gitlab-ci.yml", ".circleci/config.yml", ".travis.yml", "Jenkinsfile", ".drone.yml"}
	if file, ok := firstExisting(repo, otherCI); ok && len(workflows) == 0 {
		return models.Finding{
			Attribute:     a.Attribute(),
			Status:        models.StatusPass,
			Score:         100,
			MeasuredValue: file,
			Threshold:     "≥1 CI configuration",
			Evidence:      []string{"CI configuration found: " + file},
		}
	}

	if len(workflows) == 0 {
		return models.Finding{
			Attribute:     a.Attribute(),
			Status:        models.StatusFail,
			Score:         0,
			MeasuredValue: "none",
			Threshold:     "≥1 CI configuration",
			Evidence:      []string{"no CI workflows found"},
			Remediation: &models.Remediation{
				Summary:  "Add a CI workflow that builds and tests on every push",
				Steps:    []string{"Create .github/workflows/ci.yml running the test suite"},
				Commands: []string{"mkdir -p .github/workflows"},
			},
		}
	}

	// Half credit for workflows that parse but define no jobs.
	withJobs := 0
	for _, wf := range workflows {
		content, ok, readErr := readText(repo, filepath.FromSlash(wf))
		if readErr != nil || !ok {
			continue
		}
		var parsed workflowFile
		if yaml.Unmarshal([]byte(content), &parsed) == nil && len(parsed.Jobs) > 0 {
			withJobs++
		}
	}

	var score float64 = 50
	if withJobs > 0 {
		score = 100
	}
	status := statusForScore(score)

	finding := models.Finding{
		Attribute:     a.Attribute(),
		Status:        status,
		Score:         score,
		MeasuredValue: fmt.Sprintf("%d workflows, %d with jobs", len(workflows), withJobs),
		Threshold:     "≥1 workflow with jobs",
		Evidence:      []string{"workflows: " + strings.Join(workflows, ", ")},
	}
	if status == models.StatusFail {
		finding.Remediation = &models.Remediation{
			Summary: "Define jobs in the CI workflow",
			Steps:   []string{"Add a jobs: section running build and test steps"},
		}
	}
	return finding
}

func (a *CIWorkflowsAssessor) findWorkflows(repo *models.Repository) ([]string, error) {
	matches, err := doublestar.Glob(os.DirFS(repo.Path), ".github/workflows/*.{yml,yaml}")
	if err != nil {
		return nil, fmt.Errorf("globbing workflows: %w", err)
	}
	return matches, nil
}

// licenseFiles are the filenames commonly used for a repository license.
var licenseFiles = []string{
	"LICENSE", "LICENSE.md", "LICENSE.txt", "COPYING", "COPYING.md", "UNLICENSE",
}

// LicenseFileAssessor checks for a license file at the repository root.
type LicenseFileAssessor struct{}

func (a *LicenseFileAssessor) AttributeID() string { return "license_file" }
func (a *LicenseFileAssessor) Tier() int           { return models.TierImportant }

func (a *LicenseFileAssessor) Attribute() models.Attribute {
	return models.Attribute{
		ID:            a.AttributeID(),
		Name:          "License File",
		Category:      "Documentation Standards",
		Description:   "Explicit license tells agents what reuse is permitted",
		Criteria:      "LICENSE or COPYING file at the repository root",
		Tier:          a.Tier(),
		DefaultWeight: 0.015,
	}
}

func (a *LicenseFileAssessor) Assess(repo *models.Repository) models.Finding {
	if file, ok := firstExisting(repo, licenseFiles); ok {
		return models.Finding{
			Attribute:     a.Attribute(),
			Status:        models.StatusPass,
			Score:         100,
			MeasuredValue: file,
			Threshold:     "license file present",
			Evidence:      []string{"license file found: " + file},
		}
	}
	return models.Finding{
		Attribute:     a.Attribute(),
		Status:        models.StatusFail,
		Score:         0,
		MeasuredValue: "none",
		Threshold:     "license file present",
		Evidence:      []string{"no license file found"},
		Remediation: &models.Remediation{
			Summary: "Add a LICENSE file",
			Steps:   []string{"Choose a license and commit it as LICENSE at the repository root"},
			Citations: []models.Citation{{
				Source: "choosealicense.com",
				Title:  "Choose an open source license",
				URL:    "https://choosealicense.com/",
			}},
		},
	}
}

// securityScanners are tool names whose mention in a workflow indicates
// automated security scanning.
var securityScanners = []string{
	"codeql", "gosec", "trivy", "snyk", "bandit", "semgrep", "gitleaks", "trufflehog", "grype",
}

// SecurityScanningAssessor checks for automated security scanning: a scanner
// wired into CI, Dependabot, or a standalone scanner config.
type SecurityScanningAssessor struct{}

func (a *SecurityScanningAssessor) AttributeID() string { return "security_scanning" }
func (a *SecurityScanningAssessor) Tier() int           { return models.TierAdvanced }

func (a *SecurityScanningAssessor) Attribute() models.Attribute {
	return models.Attribute{
		ID:            a.AttributeID(),
		Name:          "Security Scanning Automation",
		Category:      "Security",
		Description:   "Automated scanning catches vulnerable dependencies and leaked secrets",
		Criteria:      "Scanner in CI, Dependabot config, or scanner config file",
		Tier:          a.Tier(),
		DefaultWeight: 0.01,
	}
}

func (a *SecurityScanningAssessor) Assess(repo *models.Repository) models.Finding {
	var evidence []string

	if file, ok := firstExisting(repo, []string{".github/dependabot.yml", ".github/dependabot.yaml", "renovate.json", ".renovaterc.json"}); ok {
		evidence = append(evidence, "dependency update automation: "+file)
	}
	if file, ok := firstExisting(repo, []string{".gitleaks.toml", ".trivyignore", ".semgrep.yml", ".snyk"}); ok {
		evidence = append(evidence, "scanner configuration: "+file)
	}

	matches, _ := doublestar.Glob(os.DirFS(repo.Path), ".github/workflows/*.{yml,yaml}")
	for _, wf := range matches {
		content, ok, err := readText(repo, filepath.FromSlash(wf))
		if err != nil || !ok {
			continue
		}
		lower := strings.ToLower(content)
		for _, scanner := range securityScanners {
			if strings.Contains(lower, scanner) {
				evidence = append(evidence, fmt.Sprintf("%s referenced in %s", scanner, wf))
				break
			}
		}
	}

	if len(evidence) > 0 {
		return models.Finding{
			Attribute:     a.Attribute(),
			Status:        models.StatusPass,
			Score:         100,
			MeasuredValue: fmt.Sprintf("%d signals", len(evidence)),
			Threshold:     "≥1 scanning signal",
			Evidence:      evidence,
		}
	}

	return models.Finding{
		Attribute:     a.Attribute(),
		Status:        models.StatusFail,
		Score:         0,
		MeasuredValue: "none",
		Threshold:     "≥1 scanning signal",
		Evidence:      []string{"no security scanning automation detected"},
		Remediation: &models.Remediation{
			Summary: "Wire a security scanner into CI",
			Steps: []string{
				"Enable Dependabot or Renovate for dependency updates",
				"Add a scanning step (CodeQL, trivy, or gitleaks) to the CI workflow",
			},
			Tools: []string{"dependabot", "codeql", "trivy", "gitleaks"},
		},
	}
}

// containerFiles indicate a reproducible containerized environment.
var containerFiles = []string{
	"Dockerfile", "Containerfile", "docker-compose.yml", "docker-compose.yaml",
	"compose.yml", "compose.yaml", ".devcontainer/devcontainer.json",
}

// ContainerSetupAssessor checks for container or devcontainer configuration.
type ContainerSetupAssessor struct{}

func (a *ContainerSetupAssessor) AttributeID() string { return "container_setup" }
func (a *ContainerSetupAssessor) Tier() int           { return models.TierAdvanced }

func (a *ContainerSetupAssessor) Attribute() models.Attribute {
	return models.Attribute{
		ID:            a.AttributeID(),
		Name:          "Container/Virtualization Setup",
		Category:      "Build & Development",
		Description:   "Container configuration gives agents a reproducible environment",
		Criteria:      "Dockerfile, compose file, or devcontainer present",
		Tier:          a.Tier(),
		DefaultWeight: 0.01,
	}
}

func (a *ContainerSetupAssessor) Assess(repo *models.Repository) models.Finding {
	var found []string
	for _, f := range containerFiles {
		if exists(repo, filepath.FromSlash(f)) {
			found = append(found, f)
		}
	}

	if len(found) > 0 {
		return models.Finding{
			Attribute:     a.Attribute(),
			Status:        models.StatusPass,
			Score:         100,
			MeasuredValue: strings.Join(found, ", "),
			Threshold:     "≥1 container file",
			Evidence:      []string{"container setup found: " + strings.Join(found, ", ")},
		}
	}

	return models.Finding{
		Attribute:     a.Attribute(),
		Status:        models.StatusFail,
		Score:         0,
		MeasuredValue: "none",
		Threshold:     "≥1 container file",
		Evidence:      []string{"no container configuration found"},
		Remediation: &models.Remediation{
			Summary:  "Add a Dockerfile or devcontainer for a reproducible environment",
			Steps:    []string{"Write a Dockerfile that builds and runs the project"},
			Commands: []string{"docker init"},
		},
	}
}
