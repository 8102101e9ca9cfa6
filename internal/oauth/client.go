package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"oauthrelay/internal/config"
	"oauthrelay/internal/metrics"
	"oauthrelay/pkg/logging"
)

// maxTokenResponseSize bounds how much of a token endpoint response is read.
const maxTokenResponseSize = 1 << 20

// Client talks to the provider on behalf of every tenant, using the single
// shared client registration.
type Client struct {
	config     *oauth2.Config
	httpClient *http.Client
}

// NewClient creates a client for the given registration. redirectURL must be
// the callback URL registered with the provider; it is sent both in the
// consent URL and in the code exchange.
func NewClient(cfg config.OAuthConfig, redirectURL string) *Client {
	endpoint := google.Endpoint
	if cfg.AuthURL != "" {
		endpoint.AuthURL = cfg.AuthURL
	}
	if cfg.TokenURL != "" {
		endpoint.TokenURL = cfg.TokenURL
	}
	endpoint.AuthStyle = oauth2.AuthStyleInParams

	timeout := time.Duration(cfg.HTTPTimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = config.DefaultHTTPTimeoutSeconds * time.Second
	}

	return &Client{
		config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Endpoint:     endpoint,
			RedirectURL:  redirectURL,
			Scopes:       cfg.Scopes,
		},
		httpClient: &http.Client{Timeout: timeout},
	}
}

// RedirectURL returns the callback URL sent to the provider.
func (c *Client) RedirectURL() string {
	return c.config.RedirectURL
}

// AuthCodeURL returns the consent URL for state. Offline access and a forced
// consent prompt make the provider issue a refresh token every time, even
// when the user approved the client before.
func (c *Client) AuthCodeURL(state string) string {
	return c.config.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce)
}

// ExchangeCode redeems an authorization code.
func (c *Client) ExchangeCode(ctx context.Context, code string) (*TokenResponse, error) {
	data := url.Values{}
	data.Set("grant_type", grantTypeAuthorizationCode)
	data.Set("code", code)
	data.Set("redirect_uri", c.config.RedirectURL)
	return c.exchange(ctx, grantTypeAuthorizationCode, data)
}

// ExchangeRefreshToken redeems a stored refresh token for a new access token.
func (c *Client) ExchangeRefreshToken(ctx context.Context, refreshToken string) (*TokenResponse, error) {
	data := url.Values{}
	data.Set("grant_type", grantTypeRefreshToken)
	data.Set("refresh_token", refreshToken)
	return c.exchange(ctx, grantTypeRefreshToken, data)
}

func (c *Client) exchange(ctx context.Context, grantType string, data url.Values) (token *TokenResponse, err error) {
	start := time.Now()
	defer func() {
		outcome := metrics.OutcomeSuccess
		if err != nil {
			outcome = metrics.OutcomeError
		}
		metrics.UpstreamRequests.WithLabelValues(grantType, outcome).Inc()
		metrics.UpstreamDuration.WithLabelValues(grantType).Observe(time.Since(start).Seconds())
	}()

	data.Set("client_id", c.config.ClientID)
	data.Set("client_secret", c.config.ClientSecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.Endpoint.TokenURL, strings.NewReader(data.Encode()))
	if err != nil {
		return nil, &UpstreamError{GrantType: grantType, Err: fmt.Errorf("failed to create token request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &UpstreamError{GrantType: grantType, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxTokenResponseSize))
	if err != nil {
		return nil, &UpstreamError{GrantType: grantType, StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to read token response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		upstreamErr := &UpstreamError{GrantType: grantType, StatusCode: resp.StatusCode, Body: body}
		var perr providerError
		if json.Unmarshal(body, &perr) == nil {
			upstreamErr.ErrorCode = perr.Error
			upstreamErr.Description = perr.ErrorDescription
		}
		logging.Debug("OAuth", "Token endpoint rejected %s grant: status=%d error=%s", grantType, resp.StatusCode, upstreamErr.ErrorCode)
		return nil, upstreamErr
	}

	token = &TokenResponse{}
	if err := json.Unmarshal(body, token); err != nil {
		return nil, &UpstreamError{GrantType: grantType, StatusCode: resp.StatusCode, Body: body, Err: fmt.Errorf("failed to parse token response: %w", err)}
	}
	token.Raw = body

	logging.Debug("OAuth", "Token endpoint accepted %s grant (expires_in=%d, refresh_token=%t)",
		grantType, token.ExpiresIn, token.RefreshToken != "")

	return token, nil
}
