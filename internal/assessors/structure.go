package assessors

import (
	"bufio"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/dotcommander/agentready/internal/models"
)

// sourceDirCandidates are directory names that indicate a dedicated source
// tree, across the ecosystems we recognize.
var sourceDirCandidates = []string{"src", "lib", "app", "cmd", "internal", "pkg"}

// testDirCandidates are directory names that indicate a dedicated test tree.
var testDirCandidates = []string{"tests", "test", "spec"}

// StandardLayoutAssessor checks for a conventional project layout: a
// recognizable source directory plus a test directory. Standard layouts help
// agents navigate unfamiliar code.
type StandardLayoutAssessor struct{}

func (a *StandardLayoutAssessor) AttributeID() string { return "standard_layout" }
func (a *StandardLayoutAssessor) Tier() int           { return models.TierEssential }

func (a *StandardLayoutAssessor) Attribute() models.Attribute {
	return models.Attribute{
		ID:            a.AttributeID(),
		Name:          "Standard Project Layout",
		Category:      "Repository Structure",
		Description:   "Follows a standard project structure for its language",
		Criteria:      "Recognizable source directory and test directory present",
		Tier:          a.Tier(),
		DefaultWeight: 0.10,
	}
}

func (a *StandardLayoutAssessor) Assess(repo *models.Repository) models.Finding {
	sourceDir, hasSource := a.findSourceDir(repo)
	testDir, hasTests := firstExisting(repo, testDirCandidates)

	// Go repositories routinely colocate *_test.go files with the code
	// instead of keeping a test directory.
	if !hasTests && repo.Languages["Go"] > 0 && hasColocatedGoTests(repo) {
		testDir, hasTests = "*_test.go (colocated)", true
	}

	// Test-only repositories have nothing to lay out.
	if !hasSource && hasTests && looksTestOnly(repo) {
		return models.NotApplicable(a.Attribute(), "test-only repository (no source code to organize)")
	}

	found := 0
	if hasSource {
		found++
	}
	if hasTests {
		found++
	}
	score := ProportionalScore(float64(found), 2, true)
	status := statusForScore(score)

	sourceEvidence := "source directory: ✗ (no src/, lib/, cmd/, or package dir)"
	if hasSource {
		sourceEvidence = fmt.Sprintf("source directory: ✓ (%s/)", sourceDir)
	}
	testEvidence := "test directory: ✗"
	if hasTests {
		testEvidence = fmt.Sprintf("tests: ✓ (%s)", testDir)
	}

	finding := models.Finding{
		Attribute:     a.Attribute(),
		Status:        status,
		Score:         score,
		MeasuredValue: fmt.Sprintf("%d/2 standard directories", found),
		Threshold:     "2/2 standard directories",
		Evidence:      []string{sourceEvidence, testEvidence},
	}
	if status == models.StatusFail {
		finding.Remediation = a.remediation(hasSource, hasTests)
	}
	return finding
}

// findSourceDir looks for a source tree: first a conventional name, then any
// top-level directory outside the blocklist that contains source files.
func (a *StandardLayoutAssessor) findSourceDir(repo *models.Repository) (string, bool) {
	for _, c := range sourceDirCandidates {
		if isDir(repo, c) {
			return c, true
		}
	}

	entries, err := os.ReadDir(repo.Path)
	if err != nil {
		return "", false
	}
	for _, e := range entries {
		if !e.IsDir() || skipDir(e.Name()) {
			continue
		}
		name := strings.ToLower(e.Name())
		if containsString(testDirCandidates, name) || nonSourceDirs[name] ||
			name == "docs" || name == "doc" || name == "examples" || name == "scripts" {
			continue
		}
		if dirHasSourceFiles(filepath.Join(repo.Path, e.Name())) {
			return e.Name(), true
		}
	}
	return "", false
}

func (a *StandardLayoutAssessor) remediation(hasSource, hasTests bool) *models.Remediation {
	r := &models.Remediation{
		Summary: "Organize code into standard source and test directories",
	}
	if !hasSource {
		r.Steps = append(r.Steps,
			"Create a dedicated source directory (src/, or cmd/ + internal/ for Go)",
			"Move application code out of the repository root")
		r.Commands = append(r.Commands, "mkdir -p src")
	}
	if !hasTests {
		r.Steps = append(r.Steps,
			"Create a test directory and add at least one test file")
		r.Commands = append(r.Commands, "mkdir -p tests")
	}
	r.Citations = []models.Citation{{
		Source:    "golang-standards",
		Title:     "Standard Go Project Layout",
		URL:       "https://github.com/golang-standards/project-layout",
		Relevance: "Community conventions for structuring repositories",
	}}
	return r
}

// looksTestOnly detects repositories that exist purely to hold tests.
func looksTestOnly(repo *models.Repository) bool {
	indicators := []string{"conftest.py", "pytest.ini", "tox.ini"}
	if _, ok := firstExisting(repo, indicators); ok {
		return true
	}
	lower := strings.ToLower(repo.Name)
	for _, pattern := range []string{"test", "spec"} {
		if strings.Contains(lower, pattern) {
			return true
		}
	}
	return false
}

func hasColocatedGoTests(repo *models.Repository) bool {
	found := false
	_ = filepath.WalkDir(repo.Path, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if path != repo.Path && skipDir(d.Name()) {
				return fs.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(d.Name(), "_test.go") {
			found = true
			return fs.SkipAll
		}
		return nil
	})
	return found
}

func dirHasSourceFiles(dir string) bool {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if languageForExtension(filepath.Ext(e.Name())) != "" {
			return true
		}
	}
	return false
}

// languageForExtension maps a file extension to a language name. Kept here
// so layout checks do not depend on the scanner package; the scanner carries
// the authoritative table.
func languageForExtension(ext string) string {
	switch strings.ToLower(ext) {
	case ".go":
		return "Go"
	case ".py":
		return "Python"
	case ".js", ".jsx", ".mjs":
		return "JavaScript"
	case ".ts", ".tsx":
		return "TypeScript"
	case ".rs":
		return "Rust"
	case ".rb":
		return "Ruby"
	case ".java":
		return "Java"
	case ".c", ".h":
		return "C"
	case ".cpp", ".cc", ".hpp":
		return "C++"
	default:
		return ""
	}
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// setupCommandPatterns match a single setup command in README text.
var setupCommandPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?im)^\s*((?:make|just|task)\s+(?:setup|install|bootstrap|dev))\s*$`),
	regexp.MustCompile(`(?im)^\s*((?:npm|yarn|pnpm|pip|poetry|uv|cargo|go|bundle)\s+(?:install|setup|sync|mod download|build))\s*$`),
	regexp.MustCompile(`(?im)^\s*(\./(?:setup|bootstrap|install)\.sh)\s*$`),
}

// setupFiles are automation entry points that make setup a single command.
var setupFiles = []string{"Makefile", "Justfile", "justfile", "Taskfile.yml", "setup.sh", "bootstrap.sh"}

// OneCommandSetupAssessor checks that a fresh clone can be made workable with
// one documented command.
type OneCommandSetupAssessor struct{}

func (a *OneCommandSetupAssessor) AttributeID() string { return "one_command_setup" }
func (a *OneCommandSetupAssessor) Tier() int           { return models.TierCritical }

func (a *OneCommandSetupAssessor) Attribute() models.Attribute {
	return models.Attribute{
		ID:            a.AttributeID(),
		Name:          "One-Command Build/Setup",
		Category:      "Build & Development",
		Description:   "Single command sets up a development environment from a fresh clone",
		Criteria:      "Setup command documented prominently, automation file present",
		Tier:          a.Tier(),
		DefaultWeight: 0.03,
	}
}

func (a *OneCommandSetupAssessor) Assess(repo *models.Repository) models.Finding {
	readme, ok, err := readText(repo, "README.md")
	if err != nil {
		return models.ErrorFinding(a.Attribute(), fmt.Sprintf("reading README.md: %v", err))
	}
	if !ok {
		return models.NotApplicable(a.Attribute(), "no README found, cannot assess setup documentation")
	}

	var score float64
	var evidence []string

	// Documented setup command: 40 points.
	command := findSetupCommand(readme)
	if command != "" {
		score += 40
		evidence = append(evidence, fmt.Sprintf("setup command found in README: %q", command))
	} else {
		evidence = append(evidence, "no clear setup command found in README")
	}

	// Automation file: 30 points.
	if file, ok := firstExisting(repo, setupFiles); ok {
		score += 30
		evidence = append(evidence, "setup automation found: "+file)
	} else {
		evidence = append(evidence, "no Makefile or setup script found")
	}

	// Prominence: 30 points when setup appears in the first README sections.
	if setupIsProminent(readme) {
		score += 30
		evidence = append(evidence, "setup instructions in a prominent README location")
	} else {
		evidence = append(evidence, "setup instructions not in the first three README sections")
	}

	status := statusForScore(score)
	measured := command
	if measured == "" {
		measured = "multi-step setup"
	}

	finding := models.Finding{
		Attribute:     a.Attribute(),
		Status:        status,
		Score:         score,
		MeasuredValue: measured,
		Threshold:     "single documented command",
		Evidence:      evidence,
	}
	if status == models.StatusFail {
		finding.Remediation = &models.Remediation{
			Summary: "Provide a single command that prepares a development environment",
			Steps: []string{
				"Add a setup target to a Makefile (or a setup.sh script)",
				"Make the target idempotent so it is safe to re-run",
				"Document it in a Quick Start section near the top of the README",
			},
			Tools:    []string{"make", "just", "task"},
			Commands: []string{"make setup"},
		}
	}
	return finding
}

func findSetupCommand(readme string) string {
	for _, re := range setupCommandPatterns {
		if m := re.FindStringSubmatch(readme); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	return ""
}

func setupIsProminent(readme string) bool {
	sections := regexp.MustCompile(`(?m)^##\s+`).Split(readme, -1)
	limit := len(sections)
	if limit > 4 {
		limit = 4
	}
	head := strings.ToLower(strings.Join(sections[:limit], "\n"))
	for _, kw := range []string{"install", "setup", "quick start", "getting started"} {
		if strings.Contains(head, kw) {
			return true
		}
	}
	return false
}

// layerDirs are layer-based organization anti-patterns: technical layers
// instead of feature boundaries.
var layerDirs = []string{"models", "views", "controllers", "services"}

// catchAllNames are module basenames that accumulate unrelated code.
var catchAllNames = map[string]bool{
	"utils": true, "helpers": true, "common": true, "misc": true,
}

// SeparationOfConcernsAssessor checks that code is organized by feature with
// cohesive, well-named modules. Composition: directory organization 40%,
// file cohesion 30%, module naming 30%.
type SeparationOfConcernsAssessor struct{}

func (a *SeparationOfConcernsAssessor) AttributeID() string { return "separation_of_concerns" }
func (a *SeparationOfConcernsAssessor) Tier() int           { return models.TierCritical }

func (a *SeparationOfConcernsAssessor) Attribute() models.Attribute {
	return models.Attribute{
		ID:            a.AttributeID(),
		Name:          "Separation of Concerns",
		Category:      "Code Organization",
		Description:   "Code organized with single responsibility per module",
		Criteria:      "Feature-based organization, cohesive modules, low coupling",
		Tier:          a.Tier(),
		DefaultWeight: 0.03,
	}
}

func (a *SeparationOfConcernsAssessor) Assess(repo *models.Repository) models.Finding {
	var evidence []string

	orgScore, layers := a.directoryOrganization(repo)
	if len(layers) == 0 {
		evidence = append(evidence, "feature-based or flat directory organization")
	} else {
		evidence = append(evidence, "layer-based directories detected: "+strings.Join(layers, ", "))
	}

	total, oversized, err := countOversizedSourceFiles(repo.Path)
	if err != nil {
		return models.ErrorFinding(a.Attribute(), fmt.Sprintf("walking source tree: %v", err))
	}
	cohesionScore := 100.0
	if total > 0 {
		cohesionScore = ProportionalScore(float64(total-oversized), float64(total), true)
	}
	evidence = append(evidence, fmt.Sprintf("file cohesion: %d/%d files over %d lines", oversized, total, fileSizeLimit))

	namingScore, catchAlls := a.moduleNaming(repo)
	if len(catchAlls) == 0 {
		evidence = append(evidence, "no catch-all modules (utils, helpers) detected")
	} else {
		limit := len(catchAlls)
		if limit > 3 {
			limit = 3
		}
		evidence = append(evidence, "catch-all modules found: "+strings.Join(catchAlls[:limit], ", "))
	}

	score := orgScore*0.4 + cohesionScore*0.3 + namingScore*0.3
	status := statusForScore(score)

	finding := models.Finding{
		Attribute: a.Attribute(),
		Status:    status,
		Score:     score,
		MeasuredValue: fmt.Sprintf("organization:%.0f, cohesion:%.0f, naming:%.0f",
			orgScore, cohesionScore, namingScore),
		Threshold: fmt.Sprintf("≥%.0f overall", passThreshold),
		Evidence:  evidence,
	}
	if status == models.StatusFail {
		finding.Remediation = &models.Remediation{
			Summary: "Refactor code to improve separation of concerns",
			Steps: []string{
				"Organize by feature or domain (auth/, users/, billing/), not technical layer (models/, views/, controllers/)",
				fmt.Sprintf("Break files over %d lines into focused modules", fileSizeLimit),
				"Eliminate catch-all modules (utils, helpers, common, misc)",
			},
			Citations: []models.Citation{{
				Source:    "Martin Fowler",
				Title:     "PresentationDomainDataLayering",
				URL:       "https://martinfowler.com/bliki/PresentationDomainDataLayering.html",
				Relevance: "Layering versus feature organization",
			}},
		}
	}
	return finding
}

// directoryOrganization penalizes layer-based directories. Looks under src/
// when present, otherwise the repository root. Each layer directory costs 15
// points, floored at 60.
func (a *SeparationOfConcernsAssessor) directoryOrganization(repo *models.Repository) (float64, []string) {
	base := []string{}
	if isDir(repo, "src") {
		base = []string{"src"}
	}

	var found []string
	for _, layer := range layerDirs {
		if isDir(repo, append(append([]string{}, base...), layer)...) {
			found = append(found, layer)
		}
	}
	if len(found) == 0 {
		return 100, nil
	}
	score := 100 - float64(len(found))*15
	if score < 60 {
		score = 60
	}
	return score, found
}

// moduleNaming penalizes catch-all source files 20 points each, floored at 0.
func (a *SeparationOfConcernsAssessor) moduleNaming(repo *models.Repository) (float64, []string) {
	var found []string
	_ = filepath.WalkDir(repo.Path, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if path != repo.Path && skipDir(d.Name()) {
				return fs.SkipDir
			}
			return nil
		}
		ext := filepath.Ext(d.Name())
		if languageForExtension(ext) == "" {
			return nil
		}
		base := strings.ToLower(strings.TrimSuffix(d.Name(), ext))
		if catchAllNames[base] {
			found = append(found, d.Name())
		}
		return nil
	})

	score := 100 - float64(len(found))*20
	if score < 0 {
		score = 0
	}
	return score, found
}

// Source files above this many lines strain agent context windows.
const fileSizeLimit = 500

// FileSizeLimitsAssessor measures how much of the source tree stays under a
// line-count ceiling. Partial credit is proportional to the share of files
// within the limit.
type FileSizeLimitsAssessor struct{}

func (a *FileSizeLimitsAssessor) AttributeID() string { return "file_size_limits" }
func (a *FileSizeLimitsAssessor) Tier() int           { return models.TierCritical }

func (a *FileSizeLimitsAssessor) Attribute() models.Attribute {
	return models.Attribute{
		ID:            a.AttributeID(),
		Name:          "File Size Limits",
		Category:      "Context Window Optimization",
		Description:   "Source files stay small enough to fit in an agent's working context",
		Criteria:      fmt.Sprintf("Source files at or under %d lines", fileSizeLimit),
		Tier:          a.Tier(),
		DefaultWeight: 0.03,
	}
}

func (a *FileSizeLimitsAssessor) Assess(repo *models.Repository) models.Finding {
	total, oversized, err := countOversizedSourceFiles(repo.Path)
	if err != nil {
		return models.ErrorFinding(a.Attribute(), fmt.Sprintf("walking source tree: %v", err))
	}
	if total == 0 {
		return models.NotApplicable(a.Attribute(), "no source files found")
	}

	score := ProportionalScore(float64(total-oversized), float64(total), true)
	status := statusForScore(score)

	finding := models.Finding{
		Attribute:     a.Attribute(),
		Status:        status,
		Score:         score,
		MeasuredValue: fmt.Sprintf("%d/%d files over %d lines", oversized, total, fileSizeLimit),
		Threshold:     fmt.Sprintf("all files ≤%d lines", fileSizeLimit),
		Evidence: []string{
			fmt.Sprintf("%d source files scanned, %d exceed %d lines", total, oversized, fileSizeLimit),
		},
	}
	if status == models.StatusFail {
		finding.Remediation = &models.Remediation{
			Summary: "Split oversized source files into focused modules",
			Steps: []string{
				fmt.Sprintf("Identify files over %d lines", fileSizeLimit),
				"Extract cohesive pieces into their own files, grouped by responsibility",
			},
		}
	}
	return finding
}

func countOversizedSourceFiles(root string) (total, oversized int, err error) {
	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // unreadable entries do not fail the whole check
		}
		if d.IsDir() {
			if path != root && skipDir(d.Name()) {
				return fs.SkipDir
			}
			return nil
		}
		if languageForExtension(filepath.Ext(d.Name())) == "" {
			return nil
		}
		lines, err := countLines(path)
		if err != nil {
			return nil
		}
		total++
		if lines > fileSizeLimit {
			oversized++
		}
		return nil
	})
	return total, oversized, walkErr
}

func countLines(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	lines := 0
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	for sc.Scan() {
		lines++
	}
	return lines, sc.Err()
}
