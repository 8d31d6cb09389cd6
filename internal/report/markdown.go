package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dotcommander/agentready/internal/models"
)

// MarkdownRenderer writes a report suitable for committing to the
// repository or posting as a PR comment.
type MarkdownRenderer struct {
	opts Options
}

// NewMarkdownRenderer creates the markdown renderer.
func NewMarkdownRenderer(opts Options) *MarkdownRenderer {
	return &MarkdownRenderer{opts: opts}
}

// Render writes the assessment as markdown.
func (r *MarkdownRenderer) Render(w io.Writer, a *models.Assessment) error {
	fmt.Fprintf(w, "# Agent Readiness Report: %s\n\n", a.Repository.Name)
	fmt.Fprintf(w, "**Score:** %.1f/100 — **%s**\n\n", a.OverallScore, a.CertificationLevel)
	fmt.Fprintf(w, "%d assessed, %d skipped, %d total. Generated %s in %v.\n\n",
		a.AssessedCount, a.SkippedCount, a.TotalCount,
		a.Timestamp.UTC().Format(time.RFC3339), a.Duration.Round(time.Millisecond))

	fmt.Fprintln(w, "| Status | Attribute | Tier | Score | Measured |")
	fmt.Fprintln(w, "|--------|-----------|------|-------|----------|")
	for _, f := range a.Findings {
		score := "—"
		if f.Counted() {
			score = fmt.Sprintf("%.0f", f.Score)
		}
		fmt.Fprintf(w, "| %s | %s | %s | %s | %s |\n",
			statusMarker(f.Status), f.Attribute.Name,
			models.TierName(f.Attribute.Tier), score,
			escapePipes(f.MeasuredValue))
	}
	fmt.Fprintln(w)

	if r.opts.Verbose {
		r.renderEvidence(w, a)
	}
	r.renderRemediations(w, a)
	return nil
}

func (r *MarkdownRenderer) renderEvidence(w io.Writer, a *models.Assessment) {
	fmt.Fprintln(w, "## Evidence")
	fmt.Fprintln(w)
	for _, f := range a.Findings {
		if len(f.Evidence) == 0 {
			continue
		}
		fmt.Fprintf(w, "**%s**\n\n", f.Attribute.Name)
		for _, e := range f.Evidence {
			fmt.Fprintf(w, "- %s\n", e)
		}
		fmt.Fprintln(w)
	}
}

func (r *MarkdownRenderer) renderRemediations(w io.Writer, a *models.Assessment) {
	wrote := false
	for _, f := range a.Findings {
		if f.Remediation == nil {
			continue
		}
		if !wrote {
			fmt.Fprintln(w, "## Remediation")
			fmt.Fprintln(w)
			wrote = true
		}
		fmt.Fprintf(w, "### %s\n\n%s\n\n", f.Attribute.Name, f.Remediation.Summary)
		for _, step := range f.Remediation.Steps {
			fmt.Fprintf(w, "1. %s\n", step)
		}
		if len(f.Remediation.Commands) > 0 {
			fmt.Fprintf(w, "\n```sh\n%s\n```\n", strings.Join(f.Remediation.Commands, "\n"))
		}
		for _, c := range f.Remediation.Citations {
			fmt.Fprintf(w, "\n- [%s — %s](%s)\n", c.Source, c.Title, c.URL)
		}
		fmt.Fprintln(w)
	}
}

func escapePipes(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
