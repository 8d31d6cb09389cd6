package assessors

import (
	"testing"

	"github.com/dotcommander/agentready/internal/models"
)

func TestLockFilesAssessor(t *testing.T) {
	a := &LockFilesAssessor{}

	t.Run("no manifest is not applicable", func(t *testing.T) {
		repo := repoWithFiles(t, map[string]string{"README.md": "# Proj\n"})
		f := a.Assess(repo)
		wantStatus(t, f, models.StatusNotApplicable)
	})

	t.Run("locked manifest passes", func(t *testing.T) {
		repo := repoWithFiles(t, map[string]string{
			"go.mod": "module example.com/x\n",
			"go.sum": "example.com/y v1.0.0 h1:abc=\n",
		})
		f := a.Assess(repo)
		wantStatus(t, f, models.StatusPass)
		wantScore(t, f, 100)
	})

	t.Run("unlocked manifest fails", func(t *testing.T) {
		repo := repoWithFiles(t, map[string]string{
			"package.json": `{"name": "x"}`,
		})
		f := a.Assess(repo)
		wantStatus(t, f, models.StatusFail)
		wantScore(t, f, 0)
		if f.Remediation == nil {
			t.Error("failing finding should carry remediation")
		}
	})

	t.Run("mixed ecosystems score proportionally", func(t *testing.T) {
		repo := repoWithFiles(t, map[string]string{
			"go.mod":       "module example.com/x\n",
			"go.sum":       "example.com/y v1.0.0 h1:abc=\n",
			"package.json": `{"name": "x"}`,
		})
		f := a.Assess(repo)
		wantStatus(t, f, models.StatusFail)
		wantScore(t, f, 50)
	})

	t.Run("python library without lock is accepted", func(t *testing.T) {
		repo := repoWithFiles(t, map[string]string{
			"pyproject.toml": "[project]\nname = \"pkg\"\n\n[project.scripts]\npkg = \"pkg.cli:main\"\n",
		})
		f := a.Assess(repo)
		wantStatus(t, f, models.StatusPass)
		wantScore(t, f, 100)
	})

	t.Run("python application without lock fails", func(t *testing.T) {
		repo := repoWithFiles(t, map[string]string{
			"pyproject.toml": "[project]\nname = \"app\"\n",
		})
		f := a.Assess(repo)
		wantStatus(t, f, models.StatusFail)
	})
}
