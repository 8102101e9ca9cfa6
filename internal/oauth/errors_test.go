package oauth

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		kind Kind
		want int
	}{
		{KindMissingParameter, http.StatusBadRequest},
		{KindInvalidParameter, http.StatusBadRequest},
		{KindMalformedState, http.StatusBadRequest},
		{KindUnknownTenant, http.StatusBadRequest},
		{KindAuthorizationDenied, http.StatusBadRequest},
		{KindUpstream, http.StatusInternalServerError},
		{KindStore, http.StatusInternalServerError},
		{"", http.StatusInternalServerError},
	}
	for _, tc := range tests {
		t.Run(string(tc.kind), func(t *testing.T) {
			assert.Equal(t, tc.want, HTTPStatus(tc.kind))
		})
	}
}

func TestKindOf(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", newError(KindStore, "Error storing tokens", errors.New("disk full")))
	assert.Equal(t, KindStore, KindOf(err))
	assert.Equal(t, Kind(""), KindOf(errors.New("plain")))
	assert.Equal(t, Kind(""), KindOf(nil))
}

func TestError_Message(t *testing.T) {
	assert.Equal(t, "Missing state", newError(KindMissingParameter, "Missing state", nil).Error())
	assert.Equal(t, "Error storing tokens: disk full",
		newError(KindStore, "Error storing tokens", errors.New("disk full")).Error())
}

func TestUpstreamError_TokenRevoked(t *testing.T) {
	revoked := &UpstreamError{GrantType: grantTypeRefreshToken, StatusCode: 400, ErrorCode: "invalid_grant"}
	assert.True(t, errors.Is(revoked, ErrTokenRevoked))
	assert.True(t, errors.Is(newError(KindUpstream, "Error refreshing token", revoked), ErrTokenRevoked))

	// invalid_grant on the code exchange means a bad or reused code.
	badCode := &UpstreamError{GrantType: grantTypeAuthorizationCode, StatusCode: 400, ErrorCode: "invalid_grant"}
	assert.False(t, errors.Is(badCode, ErrTokenRevoked))

	other := &UpstreamError{GrantType: grantTypeRefreshToken, StatusCode: 401, ErrorCode: "invalid_client"}
	assert.False(t, errors.Is(other, ErrTokenRevoked))
}

func TestUpstreamError_Detail(t *testing.T) {
	withBody := &UpstreamError{GrantType: grantTypeRefreshToken, StatusCode: 400, Body: []byte(`{"error":"invalid_grant"}`)}
	assert.Equal(t, `{"error":"invalid_grant"}`, withBody.Detail())

	transport := &UpstreamError{GrantType: grantTypeRefreshToken, Err: errors.New("connection refused")}
	assert.Equal(t, "refresh_token request failed: connection refused", transport.Detail())
	assert.ErrorContains(t, transport, "connection refused")
}
