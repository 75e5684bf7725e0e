package httpclient

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/checkoutjoy/learnworlds-go/internal/testutil"
	"github.com/checkoutjoy/learnworlds-go/oauth2client"
)

func testManager(t *testing.T, token string, expiresAt time.Time) *oauth2client.Manager {
	t.Helper()

	m := oauth2client.New(oauth2client.Credentials{
		SchoolDomain: "academy",
		ClientID:     "client",
		ClientSecret: "secret",
	})
	if err := m.SetTokens(oauth2client.TokenSet{
		AccessToken: token,
		ExpiresAt:   expiresAt,
	}); err != nil {
		t.Fatalf("SetTokens failed: %v", err)
	}
	return m
}

func staticResponse(status int, body string) testutil.RoundTripFunc {
	return func(req *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: status,
			Header:     make(http.Header),
			Body:       io.NopCloser(strings.NewReader(body)),
			Request:    req,
		}, nil
	}
}

func TestBearerTransport_AttachesToken(t *testing.T) {
	m := testManager(t, "api-token", time.Now().Add(time.Hour))

	var gotAuth string
	base := testutil.RoundTripFunc(func(req *http.Request) (*http.Response, error) {
		gotAuth = req.Header.Get("Authorization")
		return staticResponse(http.StatusOK, `{}`)(req)
	})

	client := &http.Client{Transport: NewBearerTransport(m, base)}
	resp, err := client.Get("https://academy.learnworlds.com/admin/api/v2/courses")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()

	if gotAuth != "Bearer api-token" {
		t.Errorf("expected 'Bearer api-token', got %q", gotAuth)
	}
}

func TestBearerTransport_DoesNotMutateOriginalRequest(t *testing.T) {
	m := testManager(t, "api-token", time.Now().Add(time.Hour))

	transport := NewBearerTransport(m, staticResponse(http.StatusOK, `{}`))

	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, "https://academy.learnworlds.com/x", nil)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}

	resp, err := transport.RoundTrip(req)
	if err != nil {
		t.Fatalf("RoundTrip failed: %v", err)
	}
	resp.Body.Close()

	if req.Header.Get("Authorization") != "" {
		t.Error("original request must not gain an Authorization header")
	}
}

func TestBearerTransport_ClearsTokensOn401(t *testing.T) {
	m := testManager(t, "revoked-token", time.Now().Add(time.Hour))

	transport := NewBearerTransport(m, staticResponse(http.StatusUnauthorized, `{"error":"unauthorized"}`))
	client := &http.Client{Transport: transport}

	resp, err := client.Get("https://academy.learnworlds.com/admin/api/v2/courses")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected the 401 to pass through, got %d", resp.StatusCode)
	}
	if _, ok := m.Tokens(); ok {
		t.Error("tokens must be cleared after a 401 so the next call re-authenticates")
	}
}

func TestBearerTransport_TokenFailureAbortsRequest(t *testing.T) {
	// Empty manager, no grant retained: EnsureValidToken must fail and the base
	// transport must never see the request.
	m := oauth2client.New(oauth2client.Credentials{
		SchoolDomain: "academy",
		ClientID:     "client",
		ClientSecret: "secret",
	})

	baseCalled := false
	base := testutil.RoundTripFunc(func(req *http.Request) (*http.Response, error) {
		baseCalled = true
		return staticResponse(http.StatusOK, `{}`)(req)
	})

	client := &http.Client{Transport: NewBearerTransport(m, base)}
	if _, err := client.Get("https://academy.learnworlds.com/x"); err == nil {
		t.Fatal("expected the request to fail without a token")
	}
	if baseCalled {
		t.Error("base transport must not be reached without a token")
	}
}

func TestBearerTransport_NilManager(t *testing.T) {
	transport := &BearerTransport{}

	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, "https://academy.learnworlds.com/x", nil)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}

	if _, err := transport.RoundTrip(req); err == nil {
		t.Fatal("expected an error with a nil Manager")
	}
}
