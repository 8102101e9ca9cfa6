// Package tokenstore persists the refresh token of each relayed app.
//
// All backends implement Store:
//
//   - MemoryStore: process-lifetime map, lost on restart
//   - FileStore: one pretty-printed JSON object on local disk
//   - GitHubStore: the same JSON object in a GitHub repository, written with
//     the previous blob SHA as an optimistic concurrency guard
//   - ValkeyStore: one Valkey hash with a field per app
//
// The document backends (file, github) rewrite the whole mapping on every
// Set. Two callbacks for different apps that land at the same time can
// therefore lose one of the updates; the github backend reports the collision
// as ErrRevisionConflict instead of overwriting silently, the file backend
// does not detect it. The valkey backend writes single fields and is not
// affected.
//
// New selects the backend from configuration and wraps it with Instrument,
// which adds Prometheus counters and error logging.
package tokenstore
