package cmd

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"oauthrelay/internal/oauth"
)

// Exit codes for CLI commands.
const (
	// ExitCodeSuccess indicates successful execution.
	ExitCodeSuccess = 0
	// ExitCodeError indicates a general error (command failed, invalid arguments).
	ExitCodeError = 1
	// ExitCodeReauthRequired indicates the app has no usable refresh token and
	// must go through /auth again.
	ExitCodeReauthRequired = 2
)

// configPath is the YAML configuration file shared by all commands.
var configPath string

// debug enables debug logging for all commands.
var debug bool

// rootCmd represents the base command for the oauthrelay application.
// It is the entry point when the application is called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "oauthrelay",
	Short: "OAuth2 authorization-code relay for multiple apps sharing one client",
	Long: `oauthrelay lets several apps share one registered Google OAuth client.

An app sends its user to /auth?app=<id>&redirect=<url>. After consent the
relay stores the refresh token for that app and sends the user back. The app
can then call /refresh?app=<id> whenever it needs a fresh access token.

Refresh tokens are kept in memory, a local JSON file, a JSON file in a GitHub
repository, or a Valkey hash.`,
	// SilenceUsage prevents Cobra from printing the usage message on errors that are handled by the application.
	SilenceUsage: true,
}

// SetVersion sets the version for the root command.
// This function is typically called from the main package to inject the application version at build time.
func SetVersion(v string) {
	rootCmd.Version = v
}

// GetVersion returns the current version of the application.
func GetVersion() string {
	return rootCmd.Version
}

// Execute is the main entry point for the CLI application.
// This function is called by main.main().
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "oauthrelay version %s\n" .Version}}`)

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(getExitCode(err))
	}
}

// getExitCode determines the appropriate exit code based on the error type.
func getExitCode(err error) int {
	if errors.Is(err, oauth.ErrTokenRevoked) || oauth.KindOf(err) == oauth.KindUnknownTenant {
		return ExitCodeReauthRequired
	}
	return ExitCodeError
}

func init() {
	rootCmd.AddCommand(newVersionCmd())

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Configuration file (default ./oauthrelay.yaml if present)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
}
