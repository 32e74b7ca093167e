package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/databot-ai/databot-go/internal/api"
)

var (
	tenantUpdateName  string
	tenantUpdateEmail string
	keyCreateName     string
)

var tenantCmd = &cobra.Command{
	Use:   "tenant",
	Short: "Manage your tenant profile and API keys",
	RunE:  runTenantShow,
}

var tenantShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the tenant profile and plan limits",
	RunE:  runTenantShow,
}

var tenantUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update the tenant name and/or email",
	Long: `Update profile fields. Only name and email are editable; the plan and
its limits are managed by the platform.

Examples:
  databot tenant update --name "Acme Support"
  databot tenant update --email ops@acme.example`,
	RunE: runTenantUpdate,
}

var tenantKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List API keys (masked hints only)",
	RunE:  runTenantKeys,
}

var tenantKeysCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new API key",
	Long: `Create a new API key for the embeddable widget or direct API access.

The full secret is printed exactly once, right here. It cannot be fetched
again; every later listing shows only a masked hint.`,
	RunE: runTenantKeysCreate,
}

func init() {
	tenantUpdateCmd.Flags().StringVar(&tenantUpdateName, "name", "", "new account name")
	tenantUpdateCmd.Flags().StringVar(&tenantUpdateEmail, "email", "", "new account email")
	tenantKeysCreateCmd.Flags().StringVar(&keyCreateName, "name", "", "key name")

	tenantKeysCmd.AddCommand(tenantKeysCreateCmd)
	tenantCmd.AddCommand(tenantShowCmd)
	tenantCmd.AddCommand(tenantUpdateCmd)
	tenantCmd.AddCommand(tenantKeysCmd)
}

func runTenantShow(cmd *cobra.Command, args []string) error {
	if err := requireAuth(); err != nil {
		return err
	}

	tenant, err := backend.Profile(context.Background())
	if err != nil {
		return fmt.Errorf("get profile: %w", err)
	}

	fmt.Printf("%s <%s>\n", tenant.Name, tenant.Email)
	fmt.Printf("Plan: %s\n", tenant.Plan)
	fmt.Printf("Limits:\n")
	fmt.Printf("  Messages per month: %d\n", tenant.Limits.MonthlyMessages)
	fmt.Printf("  Data items:         %d\n", tenant.Limits.MaxDataItems)
	fmt.Printf("  Max chunk size:     %d\n", tenant.Limits.MaxChunkSize)
	return nil
}

func runTenantUpdate(cmd *cobra.Command, args []string) error {
	if err := requireAuth(); err != nil {
		return err
	}
	if tenantUpdateName == "" && tenantUpdateEmail == "" {
		fmt.Println("No updates specified.")
		return nil
	}

	input := api.UpdateProfileInput{}
	if tenantUpdateName != "" {
		input.Name = &tenantUpdateName
	}
	if tenantUpdateEmail != "" {
		input.Email = &tenantUpdateEmail
	}

	tenant, err := backend.UpdateProfile(context.Background(), input)
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}

	// Merge the confirmed profile into the session; the token stays as is.
	if err := auth.MergeTenant(tenant); err != nil {
		logger.Warn("failed to refresh cached profile", "error", err)
	}

	fmt.Printf("Profile updated: %s <%s>\n", tenant.Name, tenant.Email)
	return nil
}

func runTenantKeys(cmd *cobra.Command, args []string) error {
	if err := requireAuth(); err != nil {
		return err
	}

	keys, err := backend.ListAPIKeys(context.Background())
	if err != nil {
		return fmt.Errorf("list api keys: %w", err)
	}

	if len(keys) == 0 {
		fmt.Println("No API keys yet. Create one with 'databot tenant keys create'.")
		return nil
	}

	fmt.Printf("API keys (%d):\n\n", len(keys))
	for _, key := range keys {
		lastUsed := "never used"
		if key.LastUsed != nil {
			lastUsed = "last used " + key.LastUsed.Format("2006-01-02")
		}
		fmt.Printf("- %s  %s  (%s, created %s)\n",
			key.Name, key.Hint, lastUsed, key.CreatedAt.Format("2006-01-02"))
	}
	return nil
}

func runTenantKeysCreate(cmd *cobra.Command, args []string) error {
	if err := requireAuth(); err != nil {
		return err
	}

	key, err := backend.CreateAPIKey(context.Background(), keyCreateName)
	if err != nil {
		return fmt.Errorf("create api key: %w", err)
	}

	theme := defaultTheme
	fmt.Println(theme.successStyle().Render("API key created."))
	fmt.Println()
	fmt.Println(theme.errorStyle().Render("Save this key now — it will not be shown again:"))
	fmt.Printf("\n  %s\n\n", key.APIKey)
	fmt.Println(theme.hintStyle().Render("Listings only ever show a masked hint of this key."))
	return nil
}
