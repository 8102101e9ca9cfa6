// Package oauth relays the OAuth 2.0 authorization code flow for many apps
// that share one registered client.
//
// # Flow
//
//  1. An app sends the user to GET /auth?app=<id>&redirect=<url>. Relay.Begin
//     packs app and redirect into the state parameter and the user is sent
//     to the provider's consent page with offline access and a forced prompt.
//  2. The provider redirects to the callback path with code and state.
//     Relay.Complete unpacks the state, redeems the code and stores the
//     refresh token under the app id, then redirects to the app's URL.
//  3. Later the app calls GET /refresh?app=<id>. Relay.Refresh redeems the
//     stored refresh token and returns the provider's JSON unchanged.
//
// # Components
//
//   - EncodeState / DecodeState: the "app|redirect" state format
//   - Client: consent URL and token endpoint calls (golang.org/x/oauth2 config)
//   - Relay: the three operations over an Exchanger and a tokenstore.Store
//   - Handler: the HTTP routes
//
// # Errors
//
// Every Relay operation returns *Error. Its Kind decides the HTTP status
// (see HTTPStatus): caller mistakes are 400, provider and storage failures
// are 500. Provider failures wrap *UpstreamError, which carries the
// provider's status and body; a refresh token the provider rejects with
// invalid_grant also matches ErrTokenRevoked.
//
// # Security
//
// The state parameter is neither signed nor bound to a browser session. A
// forged callback can store a token under any app id, and the redirect
// parameter is an open redirect. /refresh has no access control. Deploy
// the relay where only trusted apps can reach it.
//
// Refresh tokens are never logged; RedactedToken masks them.
package oauth
