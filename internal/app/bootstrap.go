package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"oauthrelay/internal/config"
	"oauthrelay/pkg/logging"
)

// Application represents the main application structure that bootstraps and
// runs the relay.
//
// Initialization happens in NewApplication: load and validate configuration,
// configure logging, build the services. Run then serves until a signal or
// context cancellation.
//
//	cfg := app.NewConfig(false, "/etc/oauthrelay/oauthrelay.yaml")
//	application, err := app.NewApplication(cfg)
//	if err != nil {
//	    return fmt.Errorf("failed to create application: %w", err)
//	}
//	return application.Run(ctx)
type Application struct {
	config   *Config
	services *Services
}

// NewApplication loads configuration (unless cfg.RelayConfig is already set),
// validates it, initializes logging and wires the services.
func NewApplication(cfg *Config) (*Application, error) {
	if cfg.RelayConfig == nil {
		relayCfg, err := config.LoadConfig(cfg.ConfigPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load configuration: %w", err)
		}
		cfg.RelayConfig = &relayCfg
	}

	if err := cfg.RelayConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	initLogging(cfg)

	services, err := InitializeServices(cfg)
	if err != nil {
		logging.Error("Bootstrap", err, "Failed to initialize services")
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	return &Application{
		config:   cfg,
		services: services,
	}, nil
}

// initLogging applies the configured level and format. --debug wins over
// the configured level. Logs go to stderr so command output on stdout stays
// machine readable.
func initLogging(cfg *Config) {
	level, _ := logging.ParseLevel(cfg.RelayConfig.Logging.Level)
	if cfg.Debug {
		level = logging.LevelDebug
	}
	logging.Init(level, logging.Format(cfg.RelayConfig.Logging.Format), os.Stderr)
}

// Services returns the wired components.
func (a *Application) Services() *Services {
	return a.services
}

// Run serves HTTP until ctx is cancelled or SIGINT/SIGTERM arrives, then
// shuts down gracefully and closes the token store.
func (a *Application) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	defer a.Close()

	logging.Info("Bootstrap", "Starting oauthrelay (store=%s, callback=%s)",
		a.config.RelayConfig.Store.Backend, a.config.RelayConfig.Server.RedirectURL())

	if err := a.services.Server.Run(ctx); err != nil {
		logging.Error("Bootstrap", err, "Server stopped with error")
		return err
	}
	logging.Info("Bootstrap", "Stopped")
	return nil
}

// Close releases resources. Run calls it on exit; commands that never call
// Run must call it themselves.
func (a *Application) Close() {
	a.services.Close()
}
