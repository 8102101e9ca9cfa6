package tokenstore

import (
	"fmt"
	"net/http"
	"time"

	"oauthrelay/internal/config"
	"oauthrelay/pkg/logging"
)

// New builds the backend selected in cfg, wrapped with metrics and logging.
func New(cfg config.StoreConfig) (Store, error) {
	var (
		store Store
		err   error
	)

	switch cfg.Backend {
	case config.StoreBackendMemory:
		store = NewMemoryStore()
		logging.Warn("TokenStore", "Using in-memory token store; refresh tokens are lost on restart")
	case config.StoreBackendFile:
		fileStore := NewFileStore(cfg.File.Path)
		logging.Info("TokenStore", "Using file token store at %s", fileStore.Path())
		store = fileStore
	case config.StoreBackendGitHub:
		store, err = NewGitHubStore(GitHubOptions{
			Owner:         cfg.GitHub.Owner(),
			Repo:          cfg.GitHub.Name(),
			Path:          cfg.GitHub.Path,
			Branch:        cfg.GitHub.Branch,
			Token:         cfg.GitHub.Token,
			BaseURL:       cfg.GitHub.APIURL,
			CommitMessage: cfg.GitHub.CommitMessage,
			HTTPClient:    &http.Client{Timeout: 30 * time.Second},
		})
		if err == nil {
			logging.Info("TokenStore", "Using github token store at %s/%s", cfg.GitHub.Repository, cfg.GitHub.Path)
		}
	case config.StoreBackendValkey:
		store, err = NewValkeyStore(ValkeyOptions{
			Address:  cfg.Valkey.Address,
			Password: cfg.Valkey.Password,
			DB:       cfg.Valkey.DB,
			Key:      cfg.Valkey.Key,
		})
		if err == nil {
			logging.Info("TokenStore", "Using valkey token store at %s (hash %s)", cfg.Valkey.Address, cfg.Valkey.Key)
		}
	default:
		return nil, fmt.Errorf("unknown token store backend %q", cfg.Backend)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create %s token store: %w", cfg.Backend, err)
	}

	return Instrument(cfg.Backend, store), nil
}
