package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Account overview with current usage",
	RunE:  runDashboard,
}

func runDashboard(cmd *cobra.Command, args []string) error {
	if err := requireAuth(); err != nil {
		return err
	}

	tenant := auth.Tenant()
	theme := defaultTheme

	fmt.Printf("%s\n", theme.accentStyle().Render(fmt.Sprintf("Welcome back, %s!", tenant.Name)))
	fmt.Printf("Plan: %s\n\n", tenant.Plan)

	stats, err := backend.Usage(context.Background())
	if err != nil {
		return fmt.Errorf("load usage stats: %w", err)
	}

	fmt.Printf("API calls this month\n")
	fmt.Printf("  %s  %d / %d\n\n",
		theme.renderBar(stats.APICallsThisMonth, stats.APICallsLimit, 30),
		stats.APICallsThisMonth, stats.APICallsLimit)

	fmt.Printf("Data sections\n")
	fmt.Printf("  %s  %d / %d\n\n",
		theme.renderBar(stats.SectionsCount, stats.SectionsLimit, 30),
		stats.SectionsCount, stats.SectionsLimit)

	fmt.Printf("Rate limit: %d requests per minute\n\n", stats.RequestsPerMinuteLimit)

	fmt.Println(theme.hintStyle().Render("Next: 'databot data add' to grow your knowledge base, 'databot chat' to talk to it."))
	return nil
}
