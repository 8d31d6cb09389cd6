// Package report renders assessments for human and machine consumption.
package report

import (
	"fmt"
	"io"

	"github.com/dotcommander/agentready/internal/models"
)

// Renderer writes one assessment to an output stream.
type Renderer interface {
	Render(w io.Writer, a *models.Assessment) error
}

// Options control rendering detail shared across formats.
type Options struct {
	Quiet   bool
	Verbose bool // include remediation detail for failing findings
	Theme   string
}

// NewRenderer selects a renderer by format name.
func NewRenderer(format string, opts Options) (Renderer, error) {
	switch format {
	case "console":
		return NewConsoleRenderer(opts), nil
	case "json":
		return NewJSONRenderer(), nil
	case "markdown":
		return NewMarkdownRenderer(opts), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// statusMarker maps a finding status to its display marker.
func statusMarker(status string) string {
	switch status {
	case models.StatusPass:
		return "✓"
	case models.StatusFail:
		return "✗"
	case models.StatusNotApplicable:
		return "–"
	default:
		return "!"
	}
}
