package oauth

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies relay failures. The value doubles as the outcome label of
// the flow metrics.
type Kind string

const (
	KindMissingParameter    Kind = "missing_parameter"
	KindInvalidParameter    Kind = "invalid_parameter"
	KindMalformedState      Kind = "malformed_state"
	KindUnknownTenant       Kind = "unknown_tenant"
	KindAuthorizationDenied Kind = "authorization_denied"
	KindUpstream            Kind = "upstream_error"
	KindStore               Kind = "store_error"
)

// ErrTokenRevoked matches, via errors.Is, an UpstreamError for a refresh
// token the provider no longer accepts (invalid_grant). The app has to go
// through /auth again.
var ErrTokenRevoked = errors.New("refresh token revoked or expired")

// Error is returned by every Relay operation.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func newError(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the Kind of the first *Error in err's chain, or "" for
// errors that did not originate in the relay.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// HTTPStatus maps a Kind to the status code the HTTP surface answers with.
// Caller mistakes are 400, everything else is 500.
func HTTPStatus(kind Kind) int {
	switch kind {
	case KindMissingParameter, KindInvalidParameter, KindMalformedState,
		KindUnknownTenant, KindAuthorizationDenied:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// UpstreamError describes a failed call to the token endpoint. StatusCode is
// 0 when no response was received, in which case Err holds the cause.
type UpstreamError struct {
	GrantType   string
	StatusCode  int
	ErrorCode   string
	Description string

	// Body is the raw response body, returned to the caller as-is.
	Body []byte

	Err error
}

func (e *UpstreamError) Error() string {
	switch {
	case e.StatusCode == 0:
		return fmt.Sprintf("%s request failed: %v", e.GrantType, e.Err)
	case e.ErrorCode != "" && e.Description != "":
		return fmt.Sprintf("%s request returned %d: %s (%s)", e.GrantType, e.StatusCode, e.ErrorCode, e.Description)
	case e.ErrorCode != "":
		return fmt.Sprintf("%s request returned %d: %s", e.GrantType, e.StatusCode, e.ErrorCode)
	case e.Err != nil:
		return fmt.Sprintf("%s request returned %d: %v", e.GrantType, e.StatusCode, e.Err)
	default:
		return fmt.Sprintf("%s request returned %d", e.GrantType, e.StatusCode)
	}
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// Is reports ErrTokenRevoked for invalid_grant answers to a refresh.
func (e *UpstreamError) Is(target error) bool {
	return target == ErrTokenRevoked &&
		e.GrantType == grantTypeRefreshToken &&
		e.ErrorCode == "invalid_grant"
}

// Detail is the text shown to HTTP callers: the provider's body when there
// is one, otherwise the error itself.
func (e *UpstreamError) Detail() string {
	if len(e.Body) > 0 {
		return string(e.Body)
	}
	return e.Error()
}
