package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dotcommander/agentready/internal/assessors"
	"github.com/dotcommander/agentready/internal/models"
)

var attributesCmd = &cobra.Command{
	Use:   "attributes",
	Short: "List every attribute agentready assesses",
	RunE: func(cmd *cobra.Command, args []string) error {
		registry, err := assessors.All()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		currentTier := 0
		for _, a := range registry {
			attr := a.Attribute()
			if attr.Tier != currentTier {
				currentTier = attr.Tier
				fmt.Fprintf(out, "\nTier %d — %s\n", currentTier, models.TierName(currentTier))
			}
			fmt.Fprintf(out, "  %-24s %-32s weight %.3f\n", attr.ID, attr.Name, attr.DefaultWeight)
			if verbose {
				fmt.Fprintf(out, "      %s\n", attr.Description)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(attributesCmd)
}
