// Package logging provides the process-wide structured logger for oauthrelay.
//
// It is a thin layer over log/slog. Every entry carries a subsystem attribute
// so operators can filter relay traffic ("OAuthRelay"), storage ("TokenStore"),
// HTTP access logs ("HTTP") and startup ("Bootstrap").
//
// # Usage
//
//	logging.Init(logging.LevelInfo, logging.FormatJSON, os.Stderr)
//
//	logging.Info("Bootstrap", "Listening on %s", addr)
//	logging.Debug("TokenStore", "Loaded %d records from %s", n, path)
//	logging.Warn("OAuthRelay", "Callback without state parameter")
//	logging.Error("OAuthRelay", err, "Code exchange failed for app=%s", tenant)
//
// Refresh tokens and client secrets must never be passed to these functions.
package logging
