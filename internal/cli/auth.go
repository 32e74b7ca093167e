package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var registerName string

var registerCmd = &cobra.Command{
	Use:   "register <email>",
	Short: "Create a new tenant account",
	Long: `Create a new tenant account and sign in.

The password is prompted and never echoed.

Examples:
  databot register jane@example.com --name "Jane's Support Bot"`,
	Args: cobra.ExactArgs(1),
	RunE: runRegister,
}

var loginCmd = &cobra.Command{
	Use:   "login <email>",
	Short: "Sign in to your tenant account",
	Args:  cobra.ExactArgs(1),
	RunE:  runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and forget the stored session",
	RunE:  runLogout,
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in tenant profile",
	RunE:  runWhoami,
}

func init() {
	registerCmd.Flags().StringVar(&registerName, "name", "", "account name (defaults to the email's local part)")
}

func runRegister(cmd *cobra.Command, args []string) error {
	email := args[0]

	name := registerName
	if name == "" {
		name = strings.SplitN(email, "@", 2)[0]
	}

	password, err := promptPassword("Password")
	if err != nil {
		return err
	}
	confirm, err := promptPassword("Confirm password")
	if err != nil {
		return err
	}
	if password != confirm {
		return fmt.Errorf("passwords do not match")
	}

	tenant, token, err := backend.Register(context.Background(), name, email, password)
	if err != nil {
		return fmt.Errorf("register: %w", err)
	}
	if err := auth.SetAuth(tenant, token); err != nil {
		return fmt.Errorf("store session: %w", err)
	}

	fmt.Printf("Welcome, %s! Your account is on the %s plan.\n", tenant.Name, tenant.Plan)
	return nil
}

func runLogin(cmd *cobra.Command, args []string) error {
	email := args[0]

	password, err := promptPassword("Password")
	if err != nil {
		return err
	}

	tenant, token, err := backend.Login(context.Background(), email, password)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	if err := auth.SetAuth(tenant, token); err != nil {
		return fmt.Errorf("store session: %w", err)
	}

	fmt.Printf("Signed in as %s (%s).\n", tenant.Name, tenant.Email)
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	if err := auth.Logout(); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	fmt.Println("Signed out.")
	return nil
}

func runWhoami(cmd *cobra.Command, args []string) error {
	if err := requireAuth(); err != nil {
		return err
	}

	// Refresh from the backend; fall back to the cached profile offline.
	tenant, err := backend.Profile(context.Background())
	if err != nil {
		logger.Debug("profile fetch failed, using cached copy", "error", err)
		tenant = auth.Tenant()
		if tenant == nil {
			return fmt.Errorf("fetch profile: %w", err)
		}
	}

	fmt.Printf("%s <%s>\n", tenant.Name, tenant.Email)
	fmt.Printf("Plan: %s\n", tenant.Plan)
	if verbose {
		fmt.Printf("Tenant ID: %s\n", tenant.ID)
		fmt.Printf("Limits: %d messages/month, %d data items, %d chunk size\n",
			tenant.Limits.MonthlyMessages, tenant.Limits.MaxDataItems, tenant.Limits.MaxChunkSize)
	}
	return nil
}

// promptPassword reads a password from the terminal without echo.
func promptPassword(label string) (string, error) {
	fmt.Fprintf(os.Stderr, "%s: ", label)
	b, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(b), nil
}
