package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"oauthrelay/internal/app"
)

// serveCmd starts the HTTP relay.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the relay HTTP server",
	Long: `Starts the relay HTTP server.

Routes:
  GET /auth?app=<id>&redirect=<url>   start authorization for an app
  GET /google/callback                provider redirect target (server.callbackPath)
  GET /refresh?app=<id>               fresh access token as the provider's JSON
  GET /health                         liveness probe
  GET /metrics                        Prometheus metrics

Configuration:
  Defaults are overridden by the YAML file (--config, or ./oauthrelay.yaml if
  present), which is overridden by environment variables such as
  GOOGLE_CLIENT_ID, GOOGLE_CLIENT_SECRET, PORT, OAUTH_RELAY_PUBLIC_URL and
  OAUTH_RELAY_STORE.

The server stops gracefully on SIGINT or SIGTERM.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

// runServe is the main entry point for the serve command
func runServe(cmd *cobra.Command, args []string) error {
	application, err := app.NewApplication(app.NewConfig(debug, configPath))
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return application.Run(ctx)
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
