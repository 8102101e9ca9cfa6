package tokenstore

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"oauthrelay/internal/config"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.StoreConfig
		want    any
		wantErr bool
	}{
		{
			name:    "empty backend",
			cfg:     config.StoreConfig{},
			wantErr: true,
		},
		{
			name: "memory",
			cfg:  config.StoreConfig{Backend: config.StoreBackendMemory},
			want: &MemoryStore{},
		},
		{
			name: "file",
			cfg: config.StoreConfig{
				Backend: config.StoreBackendFile,
				File:    config.FileStoreConfig{Path: filepath.Join(t.TempDir(), "tokens.json")},
			},
			want: &FileStore{},
		},
		{
			name: "github",
			cfg: config.StoreConfig{
				Backend: config.StoreBackendGitHub,
				GitHub: config.GitHubStoreConfig{
					Repository: "acme/state",
					Path:       "tokens.json",
					Token:      "ghp_test",
				},
			},
			want: &GitHubStore{},
		},
		{
			name: "github without repository",
			cfg: config.StoreConfig{
				Backend: config.StoreBackendGitHub,
				GitHub:  config.GitHubStoreConfig{Path: "tokens.json"},
			},
			wantErr: true,
		},
		{
			name:    "unknown backend",
			cfg:     config.StoreConfig{Backend: "s3"},
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s, err := New(tc.cfg)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)

			wrapped, ok := s.(*instrumentedStore)
			require.True(t, ok, "store should be instrumented")
			assert.IsType(t, tc.want, wrapped.next)
		})
	}
}
