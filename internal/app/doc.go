// Package app bootstraps the relay.
//
// NewApplication loads the layered configuration (defaults, YAML file,
// environment), validates it, configures logging and wires the services:
//
//	tokenstore.New(store config) ──┐
//	oauth.NewClient(oauth config) ─┼─> oauth.NewRelay ─> oauth.NewHandler ─> server.New
//
// Run serves until SIGINT, SIGTERM or context cancellation. The CLI's
// tokens commands use the same Services without starting the server.
package app
