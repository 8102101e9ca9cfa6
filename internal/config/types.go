package config

import (
	"strings"
)

// RelayConfig is the top-level configuration structure for oauthrelay.
type RelayConfig struct {
	Server  ServerConfig  `yaml:"server"`
	OAuth   OAuthConfig   `yaml:"oauth"`
	Store   StoreConfig   `yaml:"store"`
	Logging LoggingConfig `yaml:"logging"`
}

// ServerConfig defines the HTTP listener and the externally reachable address
// used to build the OAuth callback URL.
type ServerConfig struct {
	Host string `yaml:"host,omitempty" env:"OAUTH_RELAY_HOST"`
	Port int    `yaml:"port,omitempty" env:"PORT"`

	// PublicURL is the base URL under which the provider can reach this service,
	// e.g. https://oauth-relay.example.com.
	PublicURL string `yaml:"publicURL,omitempty" env:"OAUTH_RELAY_PUBLIC_URL"`

	// CallbackPath is the path the provider redirects to after consent.
	CallbackPath string `yaml:"callbackPath,omitempty" env:"OAUTH_RELAY_CALLBACK_PATH"`
}

// RedirectURL returns the callback URL registered with the provider.
// It is the only place the callback URL is derived; both the consent
// redirect and the code exchange use it.
func (s ServerConfig) RedirectURL() string {
	return strings.TrimSuffix(s.PublicURL, "/") + s.CallbackPath
}

// OAuthConfig holds the shared OAuth client registration.
type OAuthConfig struct {
	ClientID     string   `yaml:"clientID,omitempty" env:"GOOGLE_CLIENT_ID"`
	ClientSecret string   `yaml:"clientSecret,omitempty" env:"GOOGLE_CLIENT_SECRET"`
	Scopes       []string `yaml:"scopes,omitempty" env:"OAUTH_RELAY_SCOPES" envSeparator:","`
	AuthURL      string   `yaml:"authURL,omitempty" env:"OAUTH_RELAY_AUTH_URL"`
	TokenURL     string   `yaml:"tokenURL,omitempty" env:"OAUTH_RELAY_TOKEN_URL"`

	// HTTPTimeoutSeconds bounds each token endpoint call.
	HTTPTimeoutSeconds int `yaml:"httpTimeoutSeconds,omitempty" env:"OAUTH_RELAY_HTTP_TIMEOUT_SECONDS"`
}

// Store backends.
const (
	StoreBackendMemory = "memory"
	StoreBackendFile   = "file"
	StoreBackendGitHub = "github"
	StoreBackendValkey = "valkey"
)

// StoreConfig selects and configures the token store backend.
type StoreConfig struct {
	Backend string            `yaml:"backend,omitempty" env:"OAUTH_RELAY_STORE"`
	File    FileStoreConfig   `yaml:"file,omitempty"`
	GitHub  GitHubStoreConfig `yaml:"github,omitempty"`
	Valkey  ValkeyStoreConfig `yaml:"valkey,omitempty"`
}

// FileStoreConfig configures the local JSON document backend.
type FileStoreConfig struct {
	Path string `yaml:"path,omitempty" env:"OAUTH_RELAY_TOKEN_FILE"`
}

// GitHubStoreConfig configures the GitHub contents API backend.
type GitHubStoreConfig struct {
	// Repository is "owner/name".
	Repository    string `yaml:"repository,omitempty" env:"GITHUB_REPO"`
	Path          string `yaml:"path,omitempty" env:"GITHUB_FILE"`
	Branch        string `yaml:"branch,omitempty" env:"GITHUB_BRANCH"`
	Token         string `yaml:"token,omitempty" env:"GITHUB_TOKEN"`
	APIURL        string `yaml:"apiURL,omitempty" env:"GITHUB_API_URL"`
	CommitMessage string `yaml:"commitMessage,omitempty" env:"GITHUB_COMMIT_MESSAGE"`
}

// Owner returns the owner part of Repository.
func (g GitHubStoreConfig) Owner() string {
	owner, _, _ := strings.Cut(g.Repository, "/")
	return owner
}

// Name returns the repository name part of Repository.
func (g GitHubStoreConfig) Name() string {
	_, name, _ := strings.Cut(g.Repository, "/")
	return name
}

// ValkeyStoreConfig configures the Valkey hash backend.
type ValkeyStoreConfig struct {
	Address  string `yaml:"address,omitempty" env:"VALKEY_ADDR"`
	Password string `yaml:"password,omitempty" env:"VALKEY_PASSWORD"`
	DB       int    `yaml:"db,omitempty" env:"VALKEY_DB"`
	Key      string `yaml:"key,omitempty" env:"VALKEY_KEY"`
}

// LoggingConfig controls log verbosity and encoding.
type LoggingConfig struct {
	Level  string `yaml:"level,omitempty" env:"OAUTH_RELAY_LOG_LEVEL"`
	Format string `yaml:"format,omitempty" env:"OAUTH_RELAY_LOG_FORMAT"`
}
