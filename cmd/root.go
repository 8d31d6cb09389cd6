// Package cmd wires the agentready CLI.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	configFile   string
	quiet        bool
	verbose      bool
	outputFormat string
	outputFile   string
	minScore     float64
	sequential   bool
)

var rootCmd = &cobra.Command{
	Use:   "agentready [path]",
	Short: "Assess how ready a repository is for AI coding agents",
	Long: `agentready scores a repository against a checklist of agent-readiness
attributes: project structure, dependency locking, documentation, CI, and
more. Each attribute is assessed independently and the weighted results roll
up into an overall score and certification level.

By default agentready assesses the current directory. Pass a path to assess
a different repository.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "."
		if len(args) == 1 {
			path = args[0]
		}
		return runAssess(cmd, path)
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the CLI and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(setupLogging)

	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Config file (default: .agentready.yaml in the assessed directory)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress everything except the score line")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show evidence and remediation detail")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "format", "f", "", "Output format (console|json|markdown)")
	rootCmd.PersistentFlags().StringVarP(&outputFile, "output", "o", "", "Write the report to a file instead of stdout")
	rootCmd.PersistentFlags().Float64Var(&minScore, "min-score", 0, "Exit non-zero when the overall score is below this value")
	rootCmd.PersistentFlags().BoolVar(&sequential, "sequential", false, "Run assessors one at a time")
}

// setupLogging routes structured logs to stderr so stdout stays clean for
// report output. Debug level only with --verbose.
func setupLogging() {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	if quiet {
		level = slog.LevelError
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}
