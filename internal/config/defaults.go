package config

const (
	// DefaultCallbackPath is the default path for OAuth callbacks
	DefaultCallbackPath = "/google/callback"

	// DefaultAuthURL is Google's v2 consent endpoint.
	DefaultAuthURL = "https://accounts.google.com/o/oauth2/v2/auth"

	// DefaultScope grants Drive access, which is what the relayed apps use.
	DefaultScope = "https://www.googleapis.com/auth/drive"

	DefaultTokenFile = "tokens.json"

	DefaultGitHubCommitMessage = "Update tokens.json"

	DefaultValkeyKey = "oauthrelay:tokens"

	DefaultHTTPTimeoutSeconds = 30
)

// GetDefaultConfig returns the default configuration. The token endpoint is
// left empty so the Google endpoint from golang.org/x/oauth2/google applies.
func GetDefaultConfig() RelayConfig {
	return RelayConfig{
		Server: ServerConfig{
			Host:         "0.0.0.0",
			Port:         3000,
			PublicURL:    "http://localhost:3000",
			CallbackPath: DefaultCallbackPath,
		},
		OAuth: OAuthConfig{
			Scopes:             []string{DefaultScope},
			AuthURL:            DefaultAuthURL,
			HTTPTimeoutSeconds: DefaultHTTPTimeoutSeconds,
		},
		Store: StoreConfig{
			Backend: StoreBackendMemory,
			File: FileStoreConfig{
				Path: DefaultTokenFile,
			},
			GitHub: GitHubStoreConfig{
				Path:          DefaultTokenFile,
				CommitMessage: DefaultGitHubCommitMessage,
			},
			Valkey: ValkeyStoreConfig{
				Key: DefaultValkeyKey,
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}
