package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dotcommander/agentready/internal/assessors"
	"github.com/dotcommander/agentready/internal/config"
	"github.com/dotcommander/agentready/internal/engine"
	"github.com/dotcommander/agentready/internal/report"
	"github.com/dotcommander/agentready/internal/scanner"
)

var assessCmd = &cobra.Command{
	Use:   "assess [path]",
	Short: "Assess a repository's agent readiness",
	Long: `Assess runs every readiness check against the repository and prints the
weighted score, certification level, and per-attribute findings. Running
agentready with no subcommand does the same thing.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "."
		if len(args) == 1 {
			path = args[0]
		}
		return runAssess(cmd, path)
	},
}

func init() {
	rootCmd.AddCommand(assessCmd)
}

// runAssess is the main pipeline: load config, scan the repository, run the
// engine, render the report.
func runAssess(cmd *cobra.Command, path string) error {
	cfg, err := config.Load(path, configFile)
	if err != nil {
		return err
	}
	applyFlags(cmd, cfg)

	repo, err := scanner.New(cfg.Exclude, cfg.LanguageOverrides).Scan(path)
	if err != nil {
		return err
	}

	registry, err := assessors.All()
	if err != nil {
		return err
	}

	assessment, err := engine.New(registry, cfg).Run(cmd.Context(), repo)
	if err != nil {
		return err
	}

	renderer, err := report.NewRenderer(cfg.Format, report.Options{
		Quiet:   cfg.Quiet,
		Verbose: cfg.Verbose,
		Theme:   cfg.ReportTheme,
	})
	if err != nil {
		return err
	}

	out, closeOut, err := openOutput(cfg)
	if err != nil {
		return err
	}
	defer closeOut()

	if err := renderer.Render(out, assessment); err != nil {
		return fmt.Errorf("rendering report: %w", err)
	}

	if minScore > 0 && assessment.OverallScore < minScore {
		return fmt.Errorf("score %.1f is below required minimum %.1f",
			assessment.OverallScore, minScore)
	}
	return nil
}

// applyFlags lets command-line flags override whatever the config file and
// environment resolved. Only flags the user actually set take effect.
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("format") {
		cfg.Format = outputFormat
	}
	if cmd.Flags().Changed("quiet") {
		cfg.Quiet = quiet
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = verbose
	}
	if cmd.Flags().Changed("sequential") {
		cfg.Parallel = !sequential
	}
}

// openOutput picks the report destination: an explicit --output file, the
// configured output_dir (with a format-appropriate name), or stdout.
func openOutput(cfg *config.Config) (io.Writer, func(), error) {
	target := outputFile
	if target == "" && cfg.OutputDir != "" {
		if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("creating output directory: %w", err)
		}
		target = filepath.Join(cfg.OutputDir, "agentready-report"+reportExtension(cfg.Format))
	}
	if target == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(target)
	if err != nil {
		return nil, nil, fmt.Errorf("creating output file: %w", err)
	}
	return f, func() { f.Close() }, nil
}

func reportExtension(format string) string {
	switch format {
	case "json":
		return ".json"
	case "markdown":
		return ".md"
	default:
		return ".txt"
	}
}
