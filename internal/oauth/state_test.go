package oauth

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestState_RoundTrip(t *testing.T) {
	tests := []struct {
		tenant    string
		returnURL string
	}{
		{tenant: "app1", returnURL: "https://x/y"},
		{tenant: "reporting", returnURL: "https://example.com/cb?next=/a|b&x=1"},
		{tenant: "ä-unicode", returnURL: "http://localhost:8080/"},
	}

	for _, tc := range tests {
		t.Run(tc.tenant, func(t *testing.T) {
			state, err := EncodeState(tc.tenant, tc.returnURL)
			require.NoError(t, err)

			tenant, returnURL, err := DecodeState(state)
			require.NoError(t, err)
			assert.Equal(t, tc.tenant, tenant)
			assert.Equal(t, tc.returnURL, returnURL)
		})
	}
}

func TestState_SurvivesQueryEncoding(t *testing.T) {
	state, err := EncodeState("app1", "https://x/y")
	require.NoError(t, err)

	encoded := url.Values{"state": {state}}.Encode()
	assert.Equal(t, "state=app1%7Chttps%3A%2F%2Fx%2Fy", encoded)

	decoded, err := url.ParseQuery(encoded)
	require.NoError(t, err)
	tenant, returnURL, err := DecodeState(decoded.Get("state"))
	require.NoError(t, err)
	assert.Equal(t, "app1", tenant)
	assert.Equal(t, "https://x/y", returnURL)
}

func TestEncodeState_RejectsSeparatorInTenant(t *testing.T) {
	_, err := EncodeState("app|1", "https://x/y")
	require.Error(t, err)
	assert.Equal(t, KindInvalidParameter, KindOf(err))
}

func TestDecodeState_Malformed(t *testing.T) {
	for _, state := range []string{"app1", "", "|https://x/y", "app1|"} {
		t.Run(state, func(t *testing.T) {
			_, _, err := DecodeState(state)
			require.Error(t, err)
			assert.Equal(t, KindMalformedState, KindOf(err))
		})
	}
}
