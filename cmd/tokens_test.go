package cmd

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTestConfig creates a config file using a file token store seeded
// with tokens, and returns its path.
func writeTestConfig(t *testing.T, tokenURL string, tokens string) string {
	t.Helper()
	dir := t.TempDir()
	tokenFile := filepath.Join(dir, "tokens.json")
	require.NoError(t, os.WriteFile(tokenFile, []byte(tokens), 0o600))

	cfg := fmt.Sprintf(`oauth:
  clientID: client-id
  clientSecret: client-secret
  tokenURL: %s
store:
  backend: file
  file:
    path: %s
`, tokenURL, tokenFile)
	path := filepath.Join(dir, "oauthrelay.yaml")
	require.NoError(t, os.WriteFile(path, []byte(cfg), 0o600))
	return path
}

func executeRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
		configPath = ""
		debug = false
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func TestRenderTokens(t *testing.T) {
	var buf bytes.Buffer
	renderTokens(&buf, map[string]string{
		"reporting": "1//0gABCDEFGHIJKLMNOPzz99",
		"billing":   "1//0gQRSTUVWXYZabcdefyy88",
	})

	out := buf.String()
	assert.Contains(t, out, "APP")
	assert.Contains(t, out, "[REDACTED ...zz99]")
	assert.NotContains(t, out, "1//0gABCDEFGHIJKLMNOPzz99")
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("billing")), bytes.Index(buf.Bytes(), []byte("reporting")))
}

func TestRenderTokens_Empty(t *testing.T) {
	var buf bytes.Buffer
	renderTokens(&buf, map[string]string{})
	assert.Contains(t, buf.String(), "No refresh tokens stored")
}

func TestTokensList(t *testing.T) {
	cfg := writeTestConfig(t, "https://oauth2.googleapis.com/token", `{"app1":"1//0gABCDEFGHIJKLMNOPqq11"}`)

	out, err := executeRoot(t, "tokens", "list", "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "app1")
	assert.Contains(t, out, "[REDACTED ...qq11]")
}

func TestTokensRefresh(t *testing.T) {
	body := `{"access_token":"at2","expires_in":3599,"token_type":"Bearer"}`
	var gotRefreshToken string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		gotRefreshToken = r.PostForm.Get("refresh_token")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	defer srv.Close()

	cfg := writeTestConfig(t, srv.URL, `{"app1":"rt123"}`)

	out, err := executeRoot(t, "tokens", "refresh", "app1", "--config", cfg)
	require.NoError(t, err)
	assert.Equal(t, body+"\n", out)
	assert.Equal(t, "rt123", gotRefreshToken)
}

func TestTokensRefresh_UnknownApp(t *testing.T) {
	cfg := writeTestConfig(t, "http://127.0.0.1:1/token", `{}`)

	_, err := executeRoot(t, "tokens", "refresh", "nobody", "--config", cfg)
	require.Error(t, err)
	assert.Equal(t, ExitCodeReauthRequired, getExitCode(err))
}

func TestTokensRefresh_EmptyApp(t *testing.T) {
	cfg := writeTestConfig(t, "http://127.0.0.1:1/token", `{"app1":"rt123"}`)

	_, err := executeRoot(t, "tokens", "refresh", "", "--config", cfg)
	require.Error(t, err)
	assert.Equal(t, ExitCodeReauthRequired, getExitCode(err))
}
