package testutil

import (
	"bytes"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
)

// NewLocalHTTPServer starts an HTTP server bound to IPv4 loopback only.
// The sandbox blocks IPv6 listeners, so force tcp4 to keep tests runnable.
func NewLocalHTTPServer(tb testing.TB, handler http.Handler) *httptest.Server {
	tb.Helper()

	listener, err := net.Listen("tcp4", "127.0.0.1:0")
	if err != nil {
		tb.Fatalf("failed to create IPv4 listener: %v", err)
	}

	server := httptest.NewUnstartedServer(handler)
	server.Listener = listener
	server.Start()

	return server
}

// RoundTripFunc allows inlining http.RoundTripper implementations.
type RoundTripFunc func(*http.Request) (*http.Response, error)

// RoundTrip calls the underlying function.
func (f RoundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

// TokenHandler serves one token endpoint request. form holds the decoded request
// body; the request body itself is already consumed when the handler runs.
type TokenHandler func(req *http.Request, form url.Values) (*http.Response, error)

// TokenEndpoint simulates a school's OAuth2 token endpoint without real sockets.
// It records the form body of every request and serves responses through a custom
// RoundTripper. Recording is mutex-guarded so concurrency tests can count calls.
type TokenEndpoint struct {
	URL string

	mu       sync.Mutex
	requests []url.Values
	handler  TokenHandler
}

// NewTokenEndpoint builds a mock token endpoint backed by an in-memory
// RoundTripper. If handler is nil, it serves a default successful token response.
func NewTokenEndpoint(tb testing.TB, handler TokenHandler) *TokenEndpoint {
	tb.Helper()

	if handler == nil {
		handler = StaticJSONResponse(`{
			"access_token": "mock-access-token",
			"token_type": "Bearer",
			"expires_in": 3600
		}`)
	}

	return &TokenEndpoint{
		URL:     "https://mock-school.learnworlds.test/oauth2/access_token",
		handler: handler,
	}
}

// Client returns an http.Client whose transport records requests and delegates to
// the endpoint's handler.
func (e *TokenEndpoint) Client() *http.Client {
	return &http.Client{Transport: RoundTripFunc(e.roundTrip)}
}

func (e *TokenEndpoint) roundTrip(req *http.Request) (*http.Response, error) {
	form := url.Values{}
	if req.Body != nil {
		body, err := io.ReadAll(req.Body)
		if err != nil {
			return nil, err
		}
		req.Body = io.NopCloser(bytes.NewReader(body))
		if parsed, err := url.ParseQuery(string(body)); err == nil {
			form = parsed
		}
	}

	e.mu.Lock()
	e.requests = append(e.requests, form)
	handler := e.handler
	e.mu.Unlock()

	return handler(req, form)
}

// Requests returns a copy of the recorded request bodies, in arrival order.
func (e *TokenEndpoint) Requests() []url.Values {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]url.Values, len(e.requests))
	copy(out, e.requests)
	return out
}

// Count returns the number of token requests served so far.
func (e *TokenEndpoint) Count() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.requests)
}

// SetHandler swaps the response handler, e.g. to fail the next refresh.
func (e *TokenEndpoint) SetHandler(handler TokenHandler) {
	e.mu.Lock()
	e.handler = handler
	e.mu.Unlock()
}

// StaticJSONResponse returns a handler that always responds 200 with the provided
// JSON body.
func StaticJSONResponse(body string) TokenHandler {
	return JSONResponse(http.StatusOK, body)
}

// JSONResponse returns a handler that responds with the given status and JSON body.
func JSONResponse(status int, body string) TokenHandler {
	return func(req *http.Request, _ url.Values) (*http.Response, error) {
		header := make(http.Header)
		header.Set("Content-Type", "application/json")
		return &http.Response{
			StatusCode: status,
			Header:     header,
			Body:       io.NopCloser(strings.NewReader(body)),
			Request:    req,
		}, nil
	}
}
