package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) newGCCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "gc",
		Short: "Sweep expired entries from both cache tiers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			removed, err := c.app.GC(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed %d expired cache entries\n", removed)
			return nil
		},
	}
}
