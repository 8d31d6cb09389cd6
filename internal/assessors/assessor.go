// Package assessors implements the per-attribute readiness checks.
//
// Every check implements the Assessor interface and returns exactly one
// Finding for its attribute. Assessors are pure read-only functions of the
// repository's on-disk state: expected absence of a feature is a fail or
// not_applicable finding, never an error, and only genuine I/O failures
// (unreadable files, permission problems) surface as error findings.
package assessors

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/dotcommander/agentready/internal/models"
)

// Assessor inspects a repository and produces exactly one finding for one
// attribute. Implementations must not mutate the repository and must not
// panic for expected conditions; multiple assessors may run concurrently
// over the same repository.
type Assessor interface {
	// AttributeID returns the stable key for this assessor's attribute.
	AttributeID() string

	// Tier returns the priority bucket (1 Essential .. 4 Advanced).
	Tier() int

	// Attribute returns the full attribute definition, including its
	// default weight.
	Attribute() models.Attribute

	// Assess inspects the repository and returns the finding.
	Assess(repo *models.Repository) models.Finding
}

// Score threshold at or above which a finding passes.
const passThreshold = 75.0

// ProportionalScore maps a measured value against a threshold to a score in
// [0, 100]. With higherIsBetter, the score grows with measured/threshold and
// caps at 100; otherwise meeting or beating the threshold from below is 100
// and the score decays as measured exceeds it. Float precision is retained;
// callers must not round, so the weighted mean stays reproducible.
func ProportionalScore(measured, threshold float64, higherIsBetter bool) float64 {
	var score float64
	if higherIsBetter {
		if threshold <= 0 {
			return 100
		}
		score = measured / threshold * 100
	} else {
		if measured <= threshold {
			return 100
		}
		if measured <= 0 {
			return 100
		}
		score = threshold / measured * 100
	}
	if score > 100 {
		return 100
	}
	if score < 0 {
		return 0
	}
	return score
}

// statusForScore applies the uniform pass cutoff.
func statusForScore(score float64) string {
	if score >= passThreshold {
		return models.StatusPass
	}
	return models.StatusFail
}

// exists reports whether a path exists under the repository root.
func exists(repo *models.Repository, rel ...string) bool {
	_, err := os.Stat(filepath.Join(append([]string{repo.Path}, rel...)...))
	return err == nil
}

// isDir reports whether a path under the repository root is a directory.
func isDir(repo *models.Repository, rel ...string) bool {
	info, err := os.Stat(filepath.Join(append([]string{repo.Path}, rel...)...))
	return err == nil && info.IsDir()
}

// readText reads a file under the repository root. A missing file is
// reported through ok=false with a nil error; err is reserved for genuine
// I/O failures that should become error findings.
func readText(repo *models.Repository, rel ...string) (content string, ok bool, err error) {
	data, err := os.ReadFile(filepath.Join(append([]string{repo.Path}, rel...)...))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", false, nil
		}
		return "", false, err
	}
	return string(data), true, nil
}

// firstExisting returns the first of the candidate paths that exists, or
// ok=false when none do.
func firstExisting(repo *models.Repository, candidates []string) (string, bool) {
	for _, c := range candidates {
		if exists(repo, filepath.FromSlash(c)) {
			return c, true
		}
	}
	return "", false
}

// checkmark renders a found/missing marker for evidence lines.
func checkmark(found bool) string {
	if found {
		return "✓"
	}
	return "✗"
}

// nonSourceDirs lists directory names that never count as source and are
// skipped when walking repository trees. Constructed once at startup and
// never mutated.
var nonSourceDirs = map[string]bool{
	".git": true, ".github": true, ".hg": true, ".svn": true,
	"node_modules": true, "vendor": true, "third_party": true,
	".venv": true, "venv": true, "env": true, "__pycache__": true,
	".tox": true, ".pytest_cache": true, ".mypy_cache": true,
	"build": true, "dist": true, "target": true, "htmlcov": true,
	".eggs": true, ".idea": true, ".vscode": true, "testdata": true,
}

// skipDir reports whether a directory entry should be skipped during walks.
func skipDir(name string) bool {
	if nonSourceDirs[strings.ToLower(name)] {
		return true
	}
	return strings.HasPrefix(name, ".") && name != ".github"
}
