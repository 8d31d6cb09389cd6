package models

// Repository is a read-only view of the target codebase handed to every
// assessor. It is constructed once by the scanner before assessment begins
// and never mutated during a run, so assessors may read it concurrently.
type Repository struct {
	Path      string           `json:"path"`
	Name      string           `json:"name"`
	RemoteURL string           `json:"remote_url,omitempty"`
	Branch    string           `json:"branch,omitempty"`
	Commit    string           `json:"commit,omitempty"`
	Languages map[string]int64 `json:"languages,omitempty"` // language name -> line count
	FileCount int              `json:"file_count"`
	LineCount int64            `json:"line_count"`
}

// PrimaryLanguage returns the language with the largest line count, or an
// empty string for an empty repository. Ties break alphabetically so the
// answer is stable across runs.
func (r *Repository) PrimaryLanguage() string {
	var best string
	var bestLines int64 = -1
	for lang, lines := range r.Languages {
		if lines > bestLines || (lines == bestLines && lang < best) {
			best = lang
			bestLines = lines
		}
	}
	return best
}
