package commands

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"go.trai.ch/delta/internal/core/domain"
)

// timePrecision rounds durations for display.
const timePrecision = time.Millisecond

func (c *CLI) newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print cache hit and miss counters per tier",
		Long: "Print cache hit and miss counters per tier.\n\n" +
			"Hit and miss counters cover only the lookups made by this invocation; " +
			"entry counts reflect the persisted tiers.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			stats, err := c.app.Stats(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "total: %d hits, %d misses\n", stats.Hits, stats.Misses)
			printTier(out, "local", stats.Local)
			printTier(out, "global", stats.Global)
			return nil
		},
	}
}

func printTier(out io.Writer, name string, tier domain.TierStats) {
	fmt.Fprintf(out, "  %-6s %d hits, %d misses, %d entries\n", name, tier.Hits, tier.Misses, tier.Entries)
}
