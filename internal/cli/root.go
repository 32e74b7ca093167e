// Package cli implements the databot command tree.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/databot-ai/databot-go/internal/api"
	"github.com/databot-ai/databot-go/internal/config"
	"github.com/databot-ai/databot-go/internal/state"
)

var (
	// Version is set at build time.
	Version = "0.1.0"

	// Global flags
	verbose bool

	// Wired in PersistentPreRunE; one set per process. Tests construct
	// their own stores and clients instead of touching these.
	cfg      config.Config
	logger   *slog.Logger
	logClose func() error
	creds    *config.FileCredentialStore
	auth     *state.AuthStore
	chatSt   *state.ChatStore
	dataSt   *state.DataStore
	backend  *api.Client
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "databot",
	Short: "A chatbot trained on your own data",
	Long: `DataBot turns your documents and notes into an AI assistant.

Register text or upload documents (PDF, Word, Markdown, plain text) into
your knowledge base; the platform chunks and embeds them, then answers
questions grounded in your data with source citations. Manage your tenant
profile, API keys, and usage from the same tool.

Sign up with 'databot register', then 'databot data add' and 'databot chat'.`,
	Version:           Version,
	PersistentPreRunE: setup,
	PersistentPostRun: teardown,
}

func setup(cmd *cobra.Command, args []string) error {
	// info and help need no config, no network, no session.
	switch cmd.Name() {
	case "version", "help", "info":
		return nil
	}

	cfg = config.Load()
	logger, logClose = config.SetupLogger(cfg.LogFile, cfg.LogLevel)

	creds = config.NewFileCredentialStore(cfg.CredentialsPath)
	auth = state.NewAuthStore(creds)
	if stored, err := creds.Load(); err != nil {
		logger.Warn("could not read stored credentials", "error", err)
	} else if stored != nil {
		auth.Restore(stored.Tenant, stored.Token)
	}

	chatSt = state.NewChatStore()
	dataSt = state.NewDataStore()

	backend = api.New(cfg.APIURL,
		api.WithTimeout(cfg.Timeout),
		api.WithLogger(logger),
		api.WithTokenSource(auth.Token),
		api.WithUnauthorizedHandler(func() {
			// Fires once per 401 response. Logout is idempotent, so
			// overlapping requests that both come back 401 land in the
			// same logged-out state.
			if err := auth.Logout(); err != nil {
				logger.Warn("failed to clear stored session", "error", err)
			}
			fmt.Fprintln(os.Stderr, "Session expired. Run 'databot login' to sign in again.")
		}),
	)

	return nil
}

func teardown(cmd *cobra.Command, args []string) {
	if logClose != nil {
		if err := logClose(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to close log file: %v\n", err)
		}
	}
}

// requireAuth gates protected commands. All three conditions are checked
// together; a partially cleared session must not slip through on the
// derived flag alone.
func requireAuth() error {
	if !auth.Authenticated() || auth.Tenant() == nil || auth.Token() == "" {
		return fmt.Errorf("not logged in: run 'databot login' first")
	}
	return nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(dataCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(tenantCmd)
	rootCmd.AddCommand(usageCmd)
	rootCmd.AddCommand(infoCmd)
}
