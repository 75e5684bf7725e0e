package httpclient

import (
	"fmt"
	"net/http"

	"github.com/checkoutjoy/learnworlds-go/oauth2client"
)

// BearerTransport is an http.RoundTripper that authenticates every outgoing
// request with the Manager's current Bearer token.
//
// Before each request it asks the Manager for a valid access token (which may
// renew it, subject to the Manager's single-flight coordination) and sets the
// Authorization header on a clone of the request. When the resource API answers
// 401 the cached tokens are cleared so the next call re-authenticates.
type BearerTransport struct {
	// Base is the underlying HTTP transport. If nil, http.DefaultTransport is used.
	Base http.RoundTripper

	// Manager provides and renews the session's access tokens.
	Manager *oauth2client.Manager
}

// RoundTrip implements http.RoundTripper. The token fetch respects the request
// context's cancellation and deadline.
func (t *BearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.Manager == nil {
		return nil, fmt.Errorf("httpclient: Manager is nil")
	}

	token, err := t.Manager.EnsureValidToken(req.Context())
	if err != nil {
		return nil, fmt.Errorf("httpclient: failed to get token: %w", err)
	}

	// Clone the request to avoid modifying the original.
	reqClone := req.Clone(req.Context())
	reqClone.Header.Set("Authorization", "Bearer "+token)

	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}

	resp, err := base.RoundTrip(reqClone)
	if err != nil {
		return nil, err
	}

	// The server no longer accepts the token (revoked or expired server-side
	// despite the local expiry): drop it and let the next call re-authenticate.
	if resp.StatusCode == http.StatusUnauthorized {
		t.Manager.ClearTokens()
	}

	return resp, nil
}

// NewBearerTransport creates a BearerTransport over the given manager.
// The base transport defaults to http.DefaultTransport if nil.
func NewBearerTransport(m *oauth2client.Manager, base http.RoundTripper) *BearerTransport {
	if base == nil {
		base = http.DefaultTransport
	}

	return &BearerTransport{
		Base:    base,
		Manager: m,
	}
}
