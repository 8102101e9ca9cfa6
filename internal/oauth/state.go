package oauth

import (
	"strings"
)

// stateSeparator joins tenant and return URL inside the state parameter.
// Tenant IDs may not contain it; the return URL may.
const stateSeparator = "|"

// EncodeState builds the state value that carries the tenant and its return
// URL through the provider round trip. The result is not escaped; query
// encoding happens when the consent URL is built.
//
// The state is not signed. Anyone can craft a callback that stores a token
// under an arbitrary tenant or redirects to an arbitrary URL.
func EncodeState(tenantID, returnURL string) (string, error) {
	if strings.Contains(tenantID, stateSeparator) {
		return "", newError(KindInvalidParameter, "Invalid app: must not contain "+stateSeparator, nil)
	}
	return tenantID + stateSeparator + returnURL, nil
}

// DecodeState splits a state value, as received in the callback query, back
// into tenant and return URL.
func DecodeState(state string) (tenantID, returnURL string, err error) {
	tenantID, returnURL, ok := strings.Cut(state, stateSeparator)
	if !ok || tenantID == "" || returnURL == "" {
		return "", "", newError(KindMalformedState, "Malformed state", nil)
	}
	return tenantID, returnURL, nil
}
