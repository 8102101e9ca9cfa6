package cmd

import (
	"context"
	"fmt"
	"io"
	"slices"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"oauthrelay/internal/app"
	"oauthrelay/internal/oauth"
)

var tokensCmd = &cobra.Command{
	Use:   "tokens",
	Short: "Inspect and use stored refresh tokens",
	Long: `Works directly on the configured token store, without a running server.
Uses the same configuration as 'oauthrelay serve'.`,
}

var tokensListCmd = &cobra.Command{
	Use:   "list",
	Short: "List apps with a stored refresh token",
	Long: `Lists every app that has completed authorization. Tokens are masked;
only their last characters are shown so two tokens can be told apart.`,
	Args: cobra.NoArgs,
	RunE: runTokensList,
}

var tokensRefreshCmd = &cobra.Command{
	Use:   "refresh <app>",
	Short: "Exchange an app's refresh token and print the provider response",
	Long: `Performs the same exchange as GET /refresh?app=<app> and prints the
provider's JSON response. Exits with code 2 when the app has to authorize again.`,
	Args: cobra.ExactArgs(1),
	RunE: runTokensRefresh,
}

func newTokensApplication() (*app.Application, error) {
	application, err := app.NewApplication(app.NewConfig(debug, configPath))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize application: %w", err)
	}
	return application, nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func runTokensList(cmd *cobra.Command, args []string) error {
	application, err := newTokensApplication()
	if err != nil {
		return err
	}
	defer application.Close()

	tokens, err := application.Services().Store.Snapshot(commandContext(cmd))
	if err != nil {
		return fmt.Errorf("failed to list tokens: %w", err)
	}
	renderTokens(cmd.OutOrStdout(), tokens)
	return nil
}

func runTokensRefresh(cmd *cobra.Command, args []string) error {
	application, err := newTokensApplication()
	if err != nil {
		return err
	}
	defer application.Close()

	token, err := application.Services().Relay.Refresh(commandContext(cmd), args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if _, err := out.Write(token.Raw); err != nil {
		return err
	}
	_, err = fmt.Fprintln(out)
	return err
}

// renderTokens prints the app -> masked token table, sorted by app.
func renderTokens(w io.Writer, tokens map[string]string) {
	if len(tokens) == 0 {
		fmt.Fprintln(w, text.FgYellow.Sprint("No refresh tokens stored"))
		return
	}

	apps := make([]string, 0, len(tokens))
	for appID := range tokens {
		apps = append(apps, appID)
	}
	slices.Sort(apps)

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"APP", "REFRESH TOKEN"})
	for _, appID := range apps {
		t.AppendRow(table.Row{appID, oauth.NewRedactedToken(tokens[appID]).Hint()})
	}
	t.AppendFooter(table.Row{"Total", len(apps)})
	t.Render()
}

func init() {
	tokensCmd.AddCommand(tokensListCmd)
	tokensCmd.AddCommand(tokensRefreshCmd)
	rootCmd.AddCommand(tokensCmd)
}
