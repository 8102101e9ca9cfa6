package oauth

import (
	"context"
	"errors"
	"time"

	"oauthrelay/internal/metrics"
	"oauthrelay/internal/tokenstore"
	"oauthrelay/pkg/logging"
)

// Exchanger is the provider side of the relay. *Client implements it.
type Exchanger interface {
	AuthCodeURL(state string) string
	ExchangeCode(ctx context.Context, code string) (*TokenResponse, error)
	ExchangeRefreshToken(ctx context.Context, refreshToken string) (*TokenResponse, error)
}

// Relay runs the three flow operations against one Exchanger and one token
// store. It holds no state of its own; concurrent flows for the same tenant
// race in the store and the last write wins.
type Relay struct {
	exchanger Exchanger
	store     tokenstore.Store
}

// NewRelay creates a relay.
func NewRelay(exchanger Exchanger, store tokenstore.Store) *Relay {
	return &Relay{
		exchanger: exchanger,
		store:     store,
	}
}

// Begin returns the consent URL that starts the flow for tenantID. After
// consent the user ends up at returnURL.
func (r *Relay) Begin(tenantID, returnURL string) (consentURL string, err error) {
	defer observe("begin", &err)

	if tenantID == "" || returnURL == "" {
		return "", newError(KindMissingParameter, "Missing app or redirect", nil)
	}

	state, err := EncodeState(tenantID, returnURL)
	if err != nil {
		return "", err
	}

	logging.Info("OAuthRelay", "Starting authorization for app=%s", tenantID)
	return r.exchanger.AuthCodeURL(state), nil
}

// Complete handles the provider callback: it redeems code, stores the
// refresh token under the tenant carried in state and returns the URL the
// user should be sent to.
func (r *Relay) Complete(ctx context.Context, code, state string) (returnURL string, err error) {
	defer observe("complete", &err)

	if state == "" {
		return "", newError(KindMissingParameter, "Missing state", nil)
	}
	tenantID, returnURL, err := DecodeState(state)
	if err != nil {
		return "", err
	}
	if code == "" {
		return "", newError(KindMissingParameter, "Missing code", nil)
	}

	token, err := r.exchanger.ExchangeCode(ctx, code)
	if err != nil {
		logging.Error("OAuthRelay", err, "Code exchange failed for app=%s", tenantID)
		return "", newError(KindUpstream, "Error obtaining tokens", err)
	}
	if token.RefreshToken == "" {
		err := &UpstreamError{GrantType: grantTypeAuthorizationCode, StatusCode: 200, Err: errors.New("response contained no refresh_token")}
		logging.Warn("OAuthRelay", "Provider returned no refresh token for app=%s", tenantID)
		return "", newError(KindUpstream, "Error obtaining tokens", err)
	}

	if err := r.store.Set(ctx, tenantID, token.RefreshToken); err != nil {
		return "", newError(KindStore, "Error storing tokens", err)
	}

	logging.Info("OAuthRelay", "Stored refresh token %s for app=%s", NewRedactedToken(token.RefreshToken).Hint(), tenantID)
	return returnURL, nil
}

// Deny handles a callback in which the provider reports an error instead of
// a code, typically because the user declined consent.
func (r *Relay) Deny(state, errorCode, description string) (err error) {
	defer observe("complete", &err)

	tenantID := "unknown"
	if id, _, decodeErr := DecodeState(state); decodeErr == nil {
		tenantID = id
	}
	logging.Warn("OAuthRelay", "Authorization denied for app=%s: %s %s", tenantID, errorCode, description)

	message := "Authorization denied: " + errorCode
	if description != "" {
		message += " (" + description + ")"
	}
	return newError(KindAuthorizationDenied, message, nil)
}

// Refresh exchanges the stored refresh token of tenantID for a new access
// token. An empty or unknown tenant fails without contacting the provider.
func (r *Relay) Refresh(ctx context.Context, tenantID string) (token *TokenResponse, err error) {
	defer observe("refresh", &err)

	if tenantID == "" {
		return nil, newError(KindUnknownTenant, "No refresh token stored for this app", nil)
	}

	refreshToken, err := r.store.Get(ctx, tenantID)
	if err != nil {
		if errors.Is(err, tokenstore.ErrNotFound) {
			return nil, newError(KindUnknownTenant, "No refresh token stored for this app", err)
		}
		return nil, newError(KindStore, "Error reading token store", err)
	}

	token, err = r.exchanger.ExchangeRefreshToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, ErrTokenRevoked) {
			logging.Warn("OAuthRelay", "Refresh token for app=%s was rejected; app must re-authorize via /auth", tenantID)
			return nil, newError(KindUpstream, "Error refreshing token: re-authorization required", err)
		}
		logging.Error("OAuthRelay", err, "Refresh failed for app=%s", tenantID)
		return nil, newError(KindUpstream, "Error refreshing token", err)
	}

	if expiresAt := token.ExpiresAt(time.Now()); !expiresAt.IsZero() {
		logging.Debug("OAuthRelay", "Refreshed access token for app=%s, expires at %s", tenantID, expiresAt.Format(time.RFC3339))
	} else {
		logging.Debug("OAuthRelay", "Refreshed access token for app=%s", tenantID)
	}
	return token, nil
}

func observe(operation string, err *error) {
	outcome := metrics.OutcomeSuccess
	if *err != nil {
		outcome = string(KindOf(*err))
		if outcome == "" {
			outcome = metrics.OutcomeError
		}
	}
	metrics.FlowOperations.WithLabelValues(operation, outcome).Inc()
}
