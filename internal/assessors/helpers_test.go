package assessors

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dotcommander/agentready/internal/models"
)

// repoWithFiles builds a throwaway repository containing the given files.
// Paths use forward slashes; parent directories are created as needed.
func repoWithFiles(t *testing.T, files map[string]string) *models.Repository {
	t.Helper()
	dir := t.TempDir()
	for path, content := range files {
		full := filepath.Join(dir, filepath.FromSlash(path))
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return &models.Repository{
		Path:      dir,
		Name:      "proj",
		Languages: map[string]int64{},
	}
}

func wantStatus(t *testing.T, f models.Finding, status string) {
	t.Helper()
	if f.Status != status {
		t.Errorf("status = %q, want %q (evidence: %v)", f.Status, status, f.Evidence)
	}
}

func wantScore(t *testing.T, f models.Finding, score float64) {
	t.Helper()
	if f.Score != score {
		t.Errorf("score = %v, want %v (evidence: %v)", f.Score, score, f.Evidence)
	}
}

// linesOfCode fabricates file content with the given number of lines.
func linesOfCode(n int) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		b.WriteString("x = 1\n")
	}
	return b.String()
}
