package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.trai.ch/delta/internal/app"
	"go.trai.ch/delta/internal/core/domain"
)

func (c *CLI) newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [targets...]",
		Short: "Detect changes, rebuild affected units, and run impacted tests",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			noCache, _ := cmd.Flags().GetBool("no-cache")
			outcome, err := c.app.Run(cmd.Context(), args, app.RunOptions{
				NoCache: noCache,
			})
			if err != nil {
				return err
			}
			printOutcome(cmd, outcome)
			return nil
		},
	}
	cmd.Flags().BoolP("no-cache", "n", false, "Bypass the outcome cache and force execution")
	return cmd
}

func printOutcome(cmd *cobra.Command, o *domain.Outcome) {
	out := cmd.OutOrStdout()

	if o.FromCache {
		fmt.Fprintf(out, "cache hit (%s), reusing prior outcome\n", o.Fingerprint)
	}
	fmt.Fprintf(out, "rebuilt %d unit(s), preserved %d\n", len(o.Rebuilt), len(o.Preserved))
	if len(o.Rebuilt) > 0 {
		fmt.Fprintf(out, "  rebuilt: %s\n", strings.Join(o.Rebuilt, ", "))
	}

	for _, ur := range o.UnitResults {
		status := "ok"
		if !ur.Success {
			status = "failed"
		}
		fmt.Fprintf(out, "  build %-20s %-6s %s\n", ur.Unit, status, ur.Duration.Round(timePrecision))
	}

	if o.FullSuite {
		fmt.Fprintln(out, "test coverage incomplete, ran the full suite")
	}
	for _, tr := range o.TestResults {
		status := "pass"
		if !tr.Passed {
			status = "fail"
		}
		fmt.Fprintf(out, "  test  %-20s %-6s %s\n", tr.Test, status, tr.Duration.Round(timePrecision))
	}
}
