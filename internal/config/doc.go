// Package config provides configuration management for oauthrelay.
//
// Configuration is resolved in three layers, later layers winning:
//
//  1. Built-in defaults (GetDefaultConfig)
//  2. A YAML file, given with --config or ./oauthrelay.yaml when present
//  3. Environment variables
//
// The environment names keep compatibility with earlier deployments of the
// relay: GOOGLE_CLIENT_ID, GOOGLE_CLIENT_SECRET, PORT, GITHUB_TOKEN,
// GITHUB_REPO and GITHUB_FILE are honoured as-is.
//
// # Example
//
//	server:
//	  publicURL: https://oauth-relay.example.com
//	  callbackPath: /google/callback
//	oauth:
//	  clientID: 1234.apps.googleusercontent.com
//	  scopes:
//	    - https://www.googleapis.com/auth/drive
//	store:
//	  backend: github
//	  github:
//	    repository: acme/oauth-relay-state
//	    path: tokens.json
//
// Secrets (client secret, GitHub token, Valkey password) are usually supplied
// through the environment rather than the file.
package config
