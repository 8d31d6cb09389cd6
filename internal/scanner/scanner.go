// Package scanner builds the read-only repository view that assessors
// consume: file and line counts, a language breakdown, and git metadata.
// The scan happens once, before assessment begins; the resulting Repository
// is never mutated afterward.
package scanner

import (
	"bufio"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/dotcommander/agentready/internal/models"
)

// skippedDirs are never descended into during a scan.
var skippedDirs = map[string]bool{
	".git": true, ".hg": true, ".svn": true,
	"node_modules": true, "vendor": true, "third_party": true,
	".venv": true, "venv": true, "__pycache__": true,
	".tox": true, ".mypy_cache": true, ".pytest_cache": true,
	"build": true, "dist": true, "target": true,
	".idea": true, ".vscode": true,
}

// Scanner walks a repository tree and produces a models.Repository.
type Scanner struct {
	excludes  []string          // doublestar globs, relative to the root
	overrides map[string]string // extension -> language, lowercase keys
}

// New creates a scanner. excludes are doublestar globs (relative to the
// scanned root) whose matches are left out of all counts. overrides maps
// file extensions (".tpl") to language names, taking precedence over the
// built-in table; an empty language value drops the extension entirely.
func New(excludes []string, overrides map[string]string) *Scanner {
	s := &Scanner{excludes: excludes}
	if len(overrides) > 0 {
		s.overrides = make(map[string]string, len(overrides))
		for ext, lang := range overrides {
			if !strings.HasPrefix(ext, ".") {
				ext = "." + ext
			}
			s.overrides[strings.ToLower(ext)] = lang
		}
	}
	return s
}

// languageFor resolves a filename to a language, config overrides first.
func (s *Scanner) languageFor(name string) string {
	if s.overrides != nil {
		idx := strings.LastIndexByte(name, '.')
		if idx >= 0 {
			if lang, ok := s.overrides[strings.ToLower(name[idx:])]; ok {
				return lang
			}
		}
	}
	return languageForFile(name)
}

// Scan walks the tree rooted at root and returns the repository view.
func (s *Scanner) Scan(root string) (*models.Repository, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving repository path: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("repository path: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("repository path %s is not a directory", abs)
	}

	repo := &models.Repository{
		Path:      abs,
		Name:      filepath.Base(abs),
		Languages: make(map[string]int64),
	}

	err = filepath.WalkDir(abs, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // unreadable entries are skipped, not fatal
		}
		rel, relErr := filepath.Rel(abs, path)
		if relErr != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if path != abs && (skippedDirs[d.Name()] || s.excluded(rel)) {
				return fs.SkipDir
			}
			return nil
		}
		if s.excluded(rel) {
			return nil
		}

		repo.FileCount++
		if lang := s.languageFor(d.Name()); lang != "" {
			lines := countFileLines(path)
			repo.Languages[lang] += lines
			repo.LineCount += lines
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking repository: %w", err)
	}

	s.readGitMetadata(repo)

	slog.Debug("repository scanned",
		"name", repo.Name,
		"files", repo.FileCount,
		"lines", repo.LineCount,
		"languages", len(repo.Languages))
	return repo, nil
}

// excluded reports whether a relative path matches any exclude glob.
func (s *Scanner) excluded(rel string) bool {
	for _, pattern := range s.excludes {
		if ok, err := doublestar.Match(pattern, rel); err == nil && ok {
			return true
		}
	}
	return false
}

func countFileLines(path string) int64 {
	f, err := os.Open(path)
	if err != nil {
		return 0
	}
	defer f.Close()

	var lines int64
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	for sc.Scan() {
		lines++
	}
	return lines
}

// readGitMetadata fills in branch, commit, and remote url when the
// repository is a git checkout. All failures are silent: git metadata is
// best-effort context, not a requirement.
func (s *Scanner) readGitMetadata(repo *models.Repository) {
	gitDir := filepath.Join(repo.Path, ".git")

	head, err := os.ReadFile(filepath.Join(gitDir, "HEAD"))
	if err != nil {
		return
	}
	headStr := strings.TrimSpace(string(head))

	if ref, ok := strings.CutPrefix(headStr, "ref: "); ok {
		repo.Branch = strings.TrimPrefix(ref, "refs/heads/")
		if commit, err := os.ReadFile(filepath.Join(gitDir, filepath.FromSlash(ref))); err == nil {
			repo.Commit = strings.TrimSpace(string(commit))
		}
	} else {
		// Detached HEAD holds the commit hash directly.
		repo.Commit = headStr
	}

	repo.RemoteURL = parseOriginURL(filepath.Join(gitDir, "config"))
}

// parseOriginURL pulls the origin url out of .git/config. The file is INI
// style; a line scan for the url key inside the origin section is all the
// parsing this needs.
func parseOriginURL(configPath string) string {
	content, err := os.ReadFile(configPath)
	if err != nil {
		return ""
	}

	inOrigin := false
	for _, line := range strings.Split(string(content), "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "[") {
			inOrigin = trimmed == `[remote "origin"]`
			continue
		}
		if !inOrigin {
			continue
		}
		if value, ok := strings.CutPrefix(trimmed, "url"); ok {
			return strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(value), "="))
		}
	}
	return ""
}
