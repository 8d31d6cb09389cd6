package assessors

import (
	"strings"
	"testing"

	"github.com/dotcommander/agentready/internal/models"
)

func TestGitignoreAssessor(t *testing.T) {
	a := &GitignoreAssessor{}

	t.Run("missing gitignore fails", func(t *testing.T) {
		repo := repoWithFiles(t, nil)
		f := a.Assess(repo)
		wantStatus(t, f, models.StatusFail)
		wantScore(t, f, 0)
		if f.Remediation == nil {
			t.Error("failing finding should carry remediation")
		}
	})

	t.Run("tiny gitignore gets half credit", func(t *testing.T) {
		repo := repoWithFiles(t, map[string]string{".gitignore": "*.log\n"})
		f := a.Assess(repo)
		wantStatus(t, f, models.StatusFail)
		wantScore(t, f, 50)
	})

	t.Run("substantial gitignore passes", func(t *testing.T) {
		repo := repoWithFiles(t, map[string]string{
			".gitignore": strings.Repeat("*.log\n__pycache__/\n.env\ndist/\n", 4),
		})
		f := a.Assess(repo)
		wantStatus(t, f, models.StatusPass)
		wantScore(t, f, 100)
	})
}

func TestConventionalCommitsAssessor(t *testing.T) {
	a := &ConventionalCommitsAssessor{}

	t.Run("no enforcement fails", func(t *testing.T) {
		repo := repoWithFiles(t, nil)
		f := a.Assess(repo)
		wantStatus(t, f, models.StatusFail)
		wantScore(t, f, 0)
	})

	t.Run("commitlint config passes", func(t *testing.T) {
		repo := repoWithFiles(t, map[string]string{
			".commitlintrc.json": `{"extends": ["@commitlint/config-conventional"]}`,
		})
		f := a.Assess(repo)
		wantStatus(t, f, models.StatusPass)
		wantScore(t, f, 100)
	})

	t.Run("conventional pre-commit hook passes", func(t *testing.T) {
		repo := repoWithFiles(t, map[string]string{
			".pre-commit-config.yaml": `repos:
  - repo: https://github.com/compilerla/conventional-pre-commit
    rev: v3.0.0
    hooks:
      - id: conventional-pre-commit
`,
		})
		f := a.Assess(repo)
		wantStatus(t, f, models.StatusPass)
	})

	t.Run("unrelated pre-commit hooks fail", func(t *testing.T) {
		repo := repoWithFiles(t, map[string]string{
			".pre-commit-config.yaml": `repos:
  - repo: https://github.com/psf/black
    hooks:
      - id: black
`,
		})
		f := a.Assess(repo)
		wantStatus(t, f, models.StatusFail)
	})
}
