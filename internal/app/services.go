package app

import (
	"fmt"
	"io"

	"oauthrelay/internal/oauth"
	"oauthrelay/internal/server"
	"oauthrelay/internal/tokenstore"
	"oauthrelay/pkg/logging"
)

// Services holds the wired components of a running relay.
type Services struct {
	Store  tokenstore.Store
	Client *oauth.Client
	Relay  *oauth.Relay
	Server *server.Server
}

// InitializeServices builds the component graph from cfg.RelayConfig:
// token store, exchange client, relay, HTTP handler and server.
func InitializeServices(cfg *Config) (*Services, error) {
	relayCfg := cfg.RelayConfig

	store, err := tokenstore.New(relayCfg.Store)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token store: %w", err)
	}

	client := oauth.NewClient(relayCfg.OAuth, relayCfg.Server.RedirectURL())
	relay := oauth.NewRelay(client, store)
	handler := oauth.NewHandler(relay, relayCfg.Server.CallbackPath)

	logging.Info("Services", "OAuth callback URL is %s", client.RedirectURL())

	return &Services{
		Store:  store,
		Client: client,
		Relay:  relay,
		Server: server.New(relayCfg.Server, handler),
	}, nil
}

// Close releases resources held by the token store backend.
func (s *Services) Close() {
	if closer, ok := s.Store.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			logging.Warn("Services", "Failed to close token store: %v", err)
		}
	}
}
