package oauth

import (
	"encoding/json"
	"time"
)

// Grant types sent to the token endpoint.
const (
	grantTypeAuthorizationCode = "authorization_code"
	grantTypeRefreshToken      = "refresh_token"
)

// TokenResponse is the token endpoint's answer.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type,omitempty"`
	RefreshToken string `json:"refresh_token,omitempty"`
	ExpiresIn    int    `json:"expires_in,omitempty"`
	Scope        string `json:"scope,omitempty"`
	IDToken      string `json:"id_token,omitempty"`

	// Raw is the response body exactly as received. /refresh hands it back
	// unmodified.
	Raw json.RawMessage `json:"-"`
}

// ExpiresAt converts ExpiresIn into an absolute time relative to issuedAt.
// It returns the zero time when the provider did not send a lifetime.
func (t *TokenResponse) ExpiresAt(issuedAt time.Time) time.Time {
	if t.ExpiresIn <= 0 {
		return time.Time{}
	}
	return issuedAt.Add(time.Duration(t.ExpiresIn) * time.Second)
}

// providerError is the RFC 6749 section 5.2 error body.
type providerError struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}
