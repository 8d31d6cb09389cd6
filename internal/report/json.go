package report

import (
	"encoding/json"
	"io"

	"github.com/dotcommander/agentready/internal/models"
)

// JSONRenderer writes the full assessment as indented JSON, suitable for
// piping into other tooling.
type JSONRenderer struct{}

// NewJSONRenderer creates the JSON renderer.
func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{}
}

// Render encodes the assessment.
func (r *JSONRenderer) Render(w io.Writer, a *models.Assessment) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(a)
}
