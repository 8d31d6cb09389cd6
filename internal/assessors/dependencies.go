package assessors

import (
	"fmt"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/dotcommander/agentready/internal/models"
)

// manifestLock pairs a dependency manifest with the lock files that pin it.
type manifestLock struct {
	manifest string
	locks    []string
}

// manifestLocks covers the ecosystems we recognize. Matched in order.
var manifestLocks = []manifestLock{
	{"go.mod", []string{"go.sum"}},
	{"package.json", []string{"package-lock.json", "yarn.lock", "pnpm-lock.yaml", "bun.lockb"}},
	{"pyproject.toml", []string{"uv.lock", "poetry.lock", "Pipfile.lock", "pdm.lock"}},
	{"setup.py", []string{"uv.lock", "poetry.lock", "Pipfile.lock", "requirements.txt"}},
	{"Cargo.toml", []string{"Cargo.lock"}},
	{"Gemfile", []string{"Gemfile.lock"}},
	{"composer.json", []string{"composer.lock"}},
}

// LockFilesAssessor checks that every dependency manifest in the repository
// has a matching lock file, so an agent can reproduce the environment
// exactly.
type LockFilesAssessor struct{}

func (a *LockFilesAssessor) AttributeID() string { return "lock_files" }
func (a *LockFilesAssessor) Tier() int           { return models.TierEssential }

func (a *LockFilesAssessor) Attribute() models.Attribute {
	return models.Attribute{
		ID:            a.AttributeID(),
		Name:          "Lock Files for Reproducibility",
		Category:      "Dependency Management",
		Description:   "Lock files pin dependency versions for reproducible builds",
		Criteria:      "Every dependency manifest has a corresponding lock file",
		Tier:          a.Tier(),
		DefaultWeight: 0.10,
	}
}

func (a *LockFilesAssessor) Assess(repo *models.Repository) models.Finding {
	var manifests, locked, missing []string

	for _, ml := range manifestLocks {
		if !exists(repo, ml.manifest) {
			continue
		}
		manifests = append(manifests, ml.manifest)
		if lock, ok := firstExisting(repo, ml.locks); ok {
			locked = append(locked, lock)
		} else {
			missing = append(missing, ml.manifest)
		}
	}

	if len(manifests) == 0 {
		return models.NotApplicable(a.Attribute(), "no dependency manifest found")
	}

	// Python libraries that declare pinned constraints in pyproject.toml are
	// acceptable without a separate lock file.
	if len(missing) == 1 && missing[0] == "pyproject.toml" && a.isPythonLibrary(repo) {
		locked = append(locked, "pyproject.toml (library constraints)")
		missing = nil
	}

	score := ProportionalScore(float64(len(manifests)-len(missing)), float64(len(manifests)), true)
	status := statusForScore(score)

	evidence := []string{
		fmt.Sprintf("manifests found: %s", strings.Join(manifests, ", ")),
	}
	if len(locked) > 0 {
		evidence = append(evidence, "lock files: "+strings.Join(locked, ", "))
	}
	if len(missing) > 0 {
		evidence = append(evidence, "missing locks for: "+strings.Join(missing, ", "))
	}

	finding := models.Finding{
		Attribute:     a.Attribute(),
		Status:        status,
		Score:         score,
		MeasuredValue: fmt.Sprintf("%d/%d manifests locked", len(manifests)-len(missing), len(manifests)),
		Threshold:     "all manifests locked",
		Evidence:      evidence,
	}
	if status == models.StatusFail {
		finding.Remediation = a.remediation(missing)
	}
	return finding
}

// pyprojectFile is the subset of pyproject.toml we need for library
// detection.
type pyprojectFile struct {
	Project struct {
		Name    string            `toml:"name"`
		Scripts map[string]string `toml:"scripts"`
	} `toml:"project"`
	Tool struct {
		Poetry struct {
			Name    string         `toml:"name"`
			Plugins map[string]any `toml:"plugins"`
		} `toml:"poetry"`
	} `toml:"tool"`
}

// isPythonLibrary reports whether pyproject.toml declares entry points,
// which marks a distributable package rather than an application.
func (a *LockFilesAssessor) isPythonLibrary(repo *models.Repository) bool {
	content, ok, err := readText(repo, "pyproject.toml")
	if !ok || err != nil {
		return false
	}
	var pp pyprojectFile
	if err := toml.Unmarshal([]byte(content), &pp); err != nil {
		return false
	}
	return len(pp.Project.Scripts) > 0 || len(pp.Tool.Poetry.Plugins) > 0
}

func (a *LockFilesAssessor) remediation(missing []string) *models.Remediation {
	r := &models.Remediation{
		Summary: "Generate lock files for every dependency manifest",
		Steps:   []string{"Run your package manager's lock command and commit the result"},
	}
	for _, m := range missing {
		switch m {
		case "go.mod":
			r.Commands = append(r.Commands, "go mod tidy")
		case "package.json":
			r.Commands = append(r.Commands, "npm install  # generates package-lock.json")
		case "pyproject.toml", "setup.py":
			r.Commands = append(r.Commands, "uv lock", "poetry lock")
		case "Cargo.toml":
			r.Commands = append(r.Commands, "cargo build  # generates Cargo.lock")
		case "Gemfile":
			r.Commands = append(r.Commands, "bundle lock")
		case "composer.json":
			r.Commands = append(r.Commands, "composer update --lock")
		}
	}
	return r
}
