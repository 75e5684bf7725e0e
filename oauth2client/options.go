package oauth2client

import (
	"log"
	"net/http"
	"time"
)

// Logger is an interface for optional logging in Manager.
// Implementations can log token acquisition and refresh events if desired.
type Logger interface {
	Printf(format string, args ...any)
}

// Option is a functional option for configuring Manager.
type Option func(*Manager)

// WithLogger sets a custom logger for token lifecycle events.
// If not set, no logging will occur.
func WithLogger(logger Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// WithLoggingEnabled enables logging using the default Go log package.
// This is a convenience option that sets the logger to log.Default().
func WithLoggingEnabled() Option {
	return func(m *Manager) {
		m.logger = log.Default()
	}
}

// WithHTTPClient routes all token endpoint requests through the given client.
// Useful for custom transports, proxies, and tests.
func WithHTTPClient(client *http.Client) Option {
	return func(m *Manager) {
		m.httpClient = client
	}
}

// WithExpiryLeeway overrides the safety margin subtracted from token lifetimes.
// Tokens within the margin of their expiry are renewed early. Default is one minute.
func WithExpiryLeeway(leeway time.Duration) Option {
	return func(m *Manager) {
		m.expiryLeeway = leeway
	}
}

// WithTokenCallback registers a persistence callback invoked after every
// successful grant, refresh, and SetTokens call, before the token is handed to
// the original caller. A callback error is surfaced to that caller but does not
// undo the token update.
func WithTokenCallback(cb TokenCallback) Option {
	return func(m *Manager) {
		m.store.onRefresh = cb
	}
}

// WithTokenEndpoint overrides the token endpoint derived from Credentials.
func WithTokenEndpoint(url string) Option {
	return func(m *Manager) {
		m.tokenURL = url
	}
}

// WithAuthorizeEndpoint overrides the authorization endpoint derived from
// Credentials.
func WithAuthorizeEndpoint(url string) Option {
	return func(m *Manager) {
		m.authURL = url
	}
}
