package oauth

import (
	"errors"
	"net/http"

	"oauthrelay/pkg/logging"
)

// Handler exposes a Relay over HTTP.
type Handler struct {
	relay        *Relay
	callbackPath string
}

// NewHandler creates a handler. callbackPath is where the provider sends
// the user back to and must match the redirect URL the client was built with.
func NewHandler(relay *Relay, callbackPath string) *Handler {
	return &Handler{
		relay:        relay,
		callbackPath: callbackPath,
	}
}

// Register adds the flow routes to mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /auth", h.HandleAuth)
	mux.HandleFunc("GET "+h.callbackPath, h.HandleCallback)
	mux.HandleFunc("GET /refresh", h.HandleRefresh)
}

// HandleAuth starts a flow: GET /auth?app=<tenant>&redirect=<url>.
func (h *Handler) HandleAuth(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	consentURL, err := h.relay.Begin(query.Get("app"), query.Get("redirect"))
	if err != nil {
		writeError(w, err)
		return
	}
	http.Redirect(w, r, consentURL, http.StatusFound)
}

// HandleCallback finishes a flow. The provider calls it with either code and
// state, or error and state.
func (h *Handler) HandleCallback(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	if providerErr := query.Get("error"); providerErr != "" {
		writeError(w, h.relay.Deny(query.Get("state"), providerErr, query.Get("error_description")))
		return
	}

	returnURL, err := h.relay.Complete(r.Context(), query.Get("code"), query.Get("state"))
	if err != nil {
		writeError(w, err)
		return
	}
	http.Redirect(w, r, returnURL, http.StatusFound)
}

// HandleRefresh returns a fresh access token for a tenant:
// GET /refresh?app=<tenant>. The body is the provider's JSON as received.
func (h *Handler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	token, err := h.relay.Refresh(r.Context(), r.URL.Query().Get("app"))
	if err != nil {
		writeError(w, err)
		return
	}

	setSecurityHeaders(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(token.Raw)
}

// setSecurityHeaders keeps token material out of caches and off other origins.
func setSecurityHeaders(w http.ResponseWriter) {
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("Referrer-Policy", "no-referrer")
	w.Header().Set("Cache-Control", "no-store")
}

// writeError answers with the status of the error's kind and a plain-text
// message. For provider failures the provider's body is included.
func writeError(w http.ResponseWriter, err error) {
	status := HTTPStatus(KindOf(err))

	setSecurityHeaders(w)
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(errorText(err)))

	if status >= http.StatusInternalServerError {
		logging.Debug("OAuthRelay", "Responded %d: %v", status, err)
	}
}

func errorText(err error) string {
	var relayErr *Error
	if !errors.As(err, &relayErr) {
		return "Internal error"
	}
	if relayErr.Err == nil {
		return relayErr.Message
	}
	if HTTPStatus(relayErr.Kind) < http.StatusInternalServerError {
		return relayErr.Message
	}

	var upstreamErr *UpstreamError
	if errors.As(relayErr.Err, &upstreamErr) {
		return relayErr.Message + ": " + upstreamErr.Detail()
	}
	return relayErr.Message + ": " + relayErr.Err.Error()
}
