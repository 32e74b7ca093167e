package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var usageCmd = &cobra.Command{
	Use:   "usage",
	Short: "Show the usage snapshot as a plain table",
	Long: `Show consumption against your plan limits.

The numbers are a read-only snapshot from the platform; re-run the command
to refresh them.`,
	RunE: runUsage,
}

func runUsage(cmd *cobra.Command, args []string) error {
	if err := requireAuth(); err != nil {
		return err
	}

	stats, err := backend.Usage(context.Background())
	if err != nil {
		return fmt.Errorf("get usage: %w", err)
	}

	fmt.Printf("Usage\n")
	fmt.Printf("═══════════════════════════════════════\n\n")
	fmt.Printf("  %-22s %8d / %d\n", "API calls this month", stats.APICallsThisMonth, stats.APICallsLimit)
	fmt.Printf("  %-22s %8d / %d\n", "Data sections", stats.SectionsCount, stats.SectionsLimit)
	fmt.Printf("  %-22s %8d per minute\n", "Rate limit", stats.RequestsPerMinuteLimit)

	return nil
}
