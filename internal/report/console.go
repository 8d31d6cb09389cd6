package report

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/dotcommander/agentready/internal/models"
)

// ConsoleRenderer writes a styled terminal report.
type ConsoleRenderer struct {
	opts Options

	pass    lipgloss.Style
	fail    lipgloss.Style
	skip    lipgloss.Style
	errored lipgloss.Style
	header  lipgloss.Style
	badge   lipgloss.Style
}

// certificationColors maps each level to its badge color.
var certificationColors = map[models.CertificationLevel]lipgloss.Color{
	models.CertificationPlatinum:         lipgloss.Color("15"), // bright white
	models.CertificationGold:             lipgloss.Color("11"), // yellow
	models.CertificationSilver:           lipgloss.Color("7"),  // gray
	models.CertificationBronze:           lipgloss.Color("3"),  // dark yellow
	models.CertificationNeedsImprovement: lipgloss.Color("9"),  // red
}

// NewConsoleRenderer creates the console renderer. The theme only affects
// the de-emphasized secondary text, which needs different contrast on light
// terminals.
func NewConsoleRenderer(opts Options) *ConsoleRenderer {
	dim := lipgloss.Color("8")
	if opts.Theme == "light" {
		dim = lipgloss.Color("7")
	}
	return &ConsoleRenderer{
		opts:    opts,
		pass:    lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		fail:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		skip:    lipgloss.NewStyle().Foreground(dim),
		errored: lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		header:  lipgloss.NewStyle().Bold(true),
		badge:   lipgloss.NewStyle().Bold(true),
	}
}

// Render writes the assessment. In quiet mode only the score line appears.
func (r *ConsoleRenderer) Render(w io.Writer, a *models.Assessment) error {
	if r.opts.Quiet {
		_, err := fmt.Fprintf(w, "%.1f %s\n", a.OverallScore, a.CertificationLevel)
		return err
	}

	fmt.Fprintf(w, "%s\n", r.header.Render(a.Repository.Name))
	if lang := a.Repository.PrimaryLanguage(); lang != "" {
		fmt.Fprintf(w, "  %s, %d files, %d lines\n", lang, a.Repository.FileCount, a.Repository.LineCount)
	}
	fmt.Fprintln(w)

	for _, f := range a.Findings {
		r.renderFinding(w, f)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%d assessed, %d skipped, %d total (%v)\n",
		a.AssessedCount, a.SkippedCount, a.TotalCount, a.Duration.Round(time.Millisecond))

	badgeStyle := r.badge.Foreground(certificationColors[a.CertificationLevel])
	fmt.Fprintf(w, "Score: %.1f/100  %s\n",
		a.OverallScore, badgeStyle.Render(string(a.CertificationLevel)))
	return nil
}

func (r *ConsoleRenderer) renderFinding(w io.Writer, f models.Finding) {
	style := r.styleFor(f.Status)
	fmt.Fprintf(w, "%s %s", style.Render(statusMarker(f.Status)), f.Attribute.Name)

	switch f.Status {
	case models.StatusPass, models.StatusFail:
		fmt.Fprintf(w, " (%.0f)", f.Score)
	case models.StatusError:
		fmt.Fprint(w, " (error)")
	}
	fmt.Fprintln(w)

	if !r.opts.Verbose {
		return
	}
	for _, e := range f.Evidence {
		fmt.Fprintf(w, "    %s\n", r.skip.Render(e))
	}
	if f.Remediation != nil {
		fmt.Fprintf(w, "    → %s\n", f.Remediation.Summary)
		for _, step := range f.Remediation.Steps {
			fmt.Fprintf(w, "      - %s\n", step)
		}
	}
}

func (r *ConsoleRenderer) styleFor(status string) lipgloss.Style {
	switch status {
	case models.StatusPass:
		return r.pass
	case models.StatusFail:
		return r.fail
	case models.StatusError:
		return r.errored
	default:
		return r.skip
	}
}
