package oauth

// hintSuffixLength is how many trailing characters Hint reveals.
const hintSuffixLength = 4

// hintMinLength is the shortest token for which Hint reveals anything.
const hintMinLength = 16

// RedactedToken wraps a refresh token so it cannot end up in logs, error
// strings or JSON by accident. Formatting with %s, %v or %#v and marshalling
// all produce "[REDACTED]".
//
//	token := oauth.NewRedactedToken(refreshToken)
//	logging.Info("OAuthRelay", "stored %s", token)   // stored [REDACTED]
//	logging.Info("OAuthRelay", "stored %s", token.Hint()) // stored [REDACTED ...x9Qa]
type RedactedToken struct {
	value string
}

// NewRedactedToken wraps value.
func NewRedactedToken(value string) RedactedToken {
	return RedactedToken{value: value}
}

// Hint identifies the token by its last characters so operators can tell two
// tokens apart without seeing them. Short tokens are fully masked.
func (t RedactedToken) Hint() string {
	if len(t.value) < hintMinLength {
		return "[REDACTED]"
	}
	return "[REDACTED ..." + t.value[len(t.value)-hintSuffixLength:] + "]"
}

func (t RedactedToken) String() string {
	return "[REDACTED]"
}

func (t RedactedToken) GoString() string {
	return "oauth.RedactedToken{[REDACTED]}"
}

func (t RedactedToken) MarshalJSON() ([]byte, error) {
	return []byte(`"[REDACTED]"`), nil
}
