package config

import (
	"fmt"
	"net/url"
	"slices"
	"strings"

	"oauthrelay/pkg/logging"
)

// reservedPaths are served by the relay itself and cannot be the callback.
var reservedPaths = []string{"/auth", "/refresh", "/health", "/metrics"}

// ValidationError represents a validation error with context
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

// Error implements the error interface
func (ve ValidationError) Error() string {
	if ve.Field == "" {
		return ve.Message
	}
	return fmt.Sprintf("field '%s': %s", ve.Field, ve.Message)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for multiple validation errors
func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "no validation errors"
	}
	if len(ve) == 1 {
		return ve[0].Error()
	}

	var messages []string
	for _, err := range ve {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(messages, "; "))
}

// HasErrors returns true if there are any validation errors
func (ve ValidationErrors) HasErrors() bool {
	return len(ve) > 0
}

// Add adds a new validation error
func (ve *ValidationErrors) Add(field, message string, value ...interface{}) {
	var val interface{}
	if len(value) > 0 {
		val = value[0]
	}
	*ve = append(*ve, ValidationError{
		Field:   field,
		Value:   val,
		Message: message,
	})
}

func (ve *ValidationErrors) required(field, value string) {
	if strings.TrimSpace(value) == "" {
		ve.Add(field, "is required")
	}
}

// Validate checks the configuration and returns every problem found, or nil.
// Secrets are never included in the error values.
func (c RelayConfig) Validate() error {
	var errs ValidationErrors

	errs.required("oauth.clientID", c.OAuth.ClientID)
	errs.required("oauth.clientSecret", c.OAuth.ClientSecret)
	if len(c.OAuth.Scopes) == 0 {
		errs.Add("oauth.scopes", "must contain at least one scope")
	}
	for _, field := range []struct{ name, value string }{
		{"oauth.authURL", c.OAuth.AuthURL},
		{"oauth.tokenURL", c.OAuth.TokenURL},
	} {
		if field.value != "" && !isHTTPURL(field.value) {
			errs.Add(field.name, "must be an absolute http(s) URL", field.value)
		}
	}
	if c.OAuth.HTTPTimeoutSeconds < 0 {
		errs.Add("oauth.httpTimeoutSeconds", "must not be negative", c.OAuth.HTTPTimeoutSeconds)
	}

	// 0 binds an ephemeral port.
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		errs.Add("server.port", "must be between 0 and 65535", c.Server.Port)
	}
	if !isHTTPURL(c.Server.PublicURL) {
		errs.Add("server.publicURL", "must be an absolute http(s) URL", c.Server.PublicURL)
	} else if strings.HasPrefix(c.Server.PublicURL, "http://") && !isLocalURL(c.Server.PublicURL) {
		logging.Warn("ConfigValidation", "server.publicURL %s is not HTTPS; authorization codes will travel in clear text", c.Server.PublicURL)
	}
	if !strings.HasPrefix(c.Server.CallbackPath, "/") {
		errs.Add("server.callbackPath", "must start with '/'", c.Server.CallbackPath)
	} else if slices.Contains(reservedPaths, c.Server.CallbackPath) {
		errs.Add("server.callbackPath", "collides with a built-in route", c.Server.CallbackPath)
	}

	switch c.Store.Backend {
	case StoreBackendMemory:
	case StoreBackendFile:
		errs.required("store.file.path", c.Store.File.Path)
	case StoreBackendGitHub:
		gh := c.Store.GitHub
		if gh.Owner() == "" || gh.Name() == "" || strings.Count(gh.Repository, "/") != 1 {
			errs.Add("store.github.repository", "must have the form owner/name", gh.Repository)
		}
		errs.required("store.github.path", gh.Path)
		errs.required("store.github.token", gh.Token)
		if gh.APIURL != "" && !isHTTPURL(gh.APIURL) {
			errs.Add("store.github.apiURL", "must be an absolute http(s) URL", gh.APIURL)
		}
	case StoreBackendValkey:
		errs.required("store.valkey.address", c.Store.Valkey.Address)
		errs.required("store.valkey.key", c.Store.Valkey.Key)
		if c.Store.Valkey.DB < 0 {
			errs.Add("store.valkey.db", "must not be negative", c.Store.Valkey.DB)
		}
	default:
		errs.Add("store.backend", fmt.Sprintf("must be one of %s, %s, %s, %s",
			StoreBackendMemory, StoreBackendFile, StoreBackendGitHub, StoreBackendValkey), c.Store.Backend)
	}

	if _, ok := logging.ParseLevel(c.Logging.Level); !ok {
		errs.Add("logging.level", "must be one of debug, info, warn, error", c.Logging.Level)
	}
	switch logging.Format(c.Logging.Format) {
	case logging.FormatText, logging.FormatJSON, "":
	default:
		errs.Add("logging.format", "must be text or json", c.Logging.Format)
	}

	if errs.HasErrors() {
		return errs
	}
	return nil
}

func isHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func isLocalURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	host := u.Hostname()
	return host == "localhost" || host == "127.0.0.1" || host == "::1"
}
