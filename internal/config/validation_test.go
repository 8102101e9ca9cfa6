package config

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() RelayConfig {
	cfg := GetDefaultConfig()
	cfg.OAuth.ClientID = "client-id"
	cfg.OAuth.ClientSecret = "client-secret"
	cfg.Server.PublicURL = "https://relay.example.com"
	return cfg
}

func TestValidate_Defaults(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidate_MissingCredentials(t *testing.T) {
	cfg := GetDefaultConfig()

	err := cfg.Validate()
	require.Error(t, err)

	var verrs ValidationErrors
	require.True(t, errors.As(err, &verrs))
	fields := map[string]bool{}
	for _, e := range verrs {
		fields[e.Field] = true
	}
	assert.True(t, fields["oauth.clientID"])
	assert.True(t, fields["oauth.clientSecret"])
}

func TestValidate_Fields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*RelayConfig)
		field  string
	}{
		{"relative public url", func(c *RelayConfig) { c.Server.PublicURL = "relay.example.com" }, "server.publicURL"},
		{"callback without slash", func(c *RelayConfig) { c.Server.CallbackPath = "callback" }, "server.callbackPath"},
		{"callback on built-in route", func(c *RelayConfig) { c.Server.CallbackPath = "/refresh" }, "server.callbackPath"},
		{"bad port", func(c *RelayConfig) { c.Server.Port = 70000 }, "server.port"},
		{"negative port", func(c *RelayConfig) { c.Server.Port = -1 }, "server.port"},
		{"no scopes", func(c *RelayConfig) { c.OAuth.Scopes = nil }, "oauth.scopes"},
		{"bad token url", func(c *RelayConfig) { c.OAuth.TokenURL = "ftp://x" }, "oauth.tokenURL"},
		{"unknown backend", func(c *RelayConfig) { c.Store.Backend = "s3" }, "store.backend"},
		{"empty backend", func(c *RelayConfig) { c.Store.Backend = "" }, "store.backend"},
		{"file without path", func(c *RelayConfig) {
			c.Store.Backend = StoreBackendFile
			c.Store.File.Path = ""
		}, "store.file.path"},
		{"github bad repository", func(c *RelayConfig) {
			c.Store.Backend = StoreBackendGitHub
			c.Store.GitHub.Repository = "just-a-name"
			c.Store.GitHub.Token = "ghp_x"
		}, "store.github.repository"},
		{"github missing token", func(c *RelayConfig) {
			c.Store.Backend = StoreBackendGitHub
			c.Store.GitHub.Repository = "acme/state"
		}, "store.github.token"},
		{"valkey missing address", func(c *RelayConfig) { c.Store.Backend = StoreBackendValkey }, "store.valkey.address"},
		{"bad log level", func(c *RelayConfig) { c.Logging.Level = "chatty" }, "logging.level"},
		{"bad log format", func(c *RelayConfig) { c.Logging.Format = "xml" }, "logging.format"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(&cfg)

			err := cfg.Validate()
			require.Error(t, err)

			var verrs ValidationErrors
			require.True(t, errors.As(err, &verrs))
			require.Len(t, verrs, 1, "unexpected errors: %v", err)
			assert.Equal(t, tc.field, verrs[0].Field)
		})
	}
}

func TestValidate_DoesNotLeakSecrets(t *testing.T) {
	cfg := validConfig()
	cfg.Store.Backend = StoreBackendGitHub
	cfg.Store.GitHub.Repository = "bad"
	cfg.Store.GitHub.Token = "ghp_supersecret"

	err := cfg.Validate()
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "ghp_supersecret")
	assert.NotContains(t, err.Error(), "client-secret")
}

func TestValidationErrors_Error(t *testing.T) {
	var errs ValidationErrors
	assert.Equal(t, "no validation errors", errs.Error())

	errs.Add("a", "is required")
	assert.Equal(t, "field 'a': is required", errs.Error())

	errs.Add("b", "is wrong")
	assert.Equal(t, "validation failed: field 'a': is required; field 'b': is wrong", errs.Error())
}
