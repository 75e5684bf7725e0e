package httpclient

import (
	"crypto/tls"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/checkoutjoy/learnworlds-go/internal/testutil"
	"github.com/checkoutjoy/learnworlds-go/oauth2client"
)

func TestBuilder_Defaults(t *testing.T) {
	client, err := NewBuilder().Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if client.Timeout != 30*time.Second {
		t.Errorf("expected default 30s timeout, got %v", client.Timeout)
	}

	transport, ok := client.Transport.(*http.Transport)
	if !ok {
		t.Fatalf("expected *http.Transport, got %T", client.Transport)
	}
	if transport.TLSClientConfig == nil || transport.TLSClientConfig.MinVersion < tls.VersionTLS12 {
		t.Error("expected TLS 1.2 minimum by default")
	}
}

func TestBuilder_WithManagerWrapsTransport(t *testing.T) {
	m := oauth2client.New(oauth2client.Credentials{
		SchoolDomain: "academy",
		ClientID:     "client",
		ClientSecret: "secret",
	})

	client, err := NewBuilder().WithManager(m).Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	bearer, ok := client.Transport.(*BearerTransport)
	if !ok {
		t.Fatalf("expected *BearerTransport, got %T", client.Transport)
	}
	if bearer.Manager != m {
		t.Error("transport must use the configured manager")
	}
}

func TestBuilder_WithTimeout(t *testing.T) {
	client, err := NewBuilder().WithTimeout(5 * time.Second).Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if client.Timeout != 5*time.Second {
		t.Errorf("expected 5s timeout, got %v", client.Timeout)
	}
}

func TestBuilder_WithoutRedirects(t *testing.T) {
	client, err := NewBuilder().WithoutRedirects().Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if client.CheckRedirect == nil {
		t.Fatal("expected a CheckRedirect policy")
	}
	if err := client.CheckRedirect(nil, nil); err != http.ErrUseLastResponse {
		t.Errorf("expected ErrUseLastResponse, got %v", err)
	}
}

func TestBuilder_WithTLSCustomCA(t *testing.T) {
	caPath := filepath.Join(t.TempDir(), "ca.pem")
	testutil.WriteTestCACert(t, caPath)

	client, err := NewBuilder().WithTLS(caPath, "", "").Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	transport, ok := client.Transport.(*http.Transport)
	if !ok {
		t.Fatalf("expected *http.Transport, got %T", client.Transport)
	}
	if transport.TLSClientConfig.RootCAs == nil {
		t.Error("expected a custom root CA pool")
	}
}

func TestBuilder_WithTLSClientCert(t *testing.T) {
	dir := t.TempDir()
	certPath := filepath.Join(dir, "client.pem")
	keyPath := filepath.Join(dir, "client.key")
	testutil.WriteTestCertAndKey(t, certPath, keyPath)

	client, err := NewBuilder().WithTLS("", certPath, keyPath).Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	transport := client.Transport.(*http.Transport)
	if len(transport.TLSClientConfig.Certificates) != 1 {
		t.Error("expected a client certificate for mTLS")
	}
}

func TestBuilder_TLSErrors(t *testing.T) {
	tests := []struct {
		name  string
		build func() (*http.Client, error)
	}{
		{
			name: "missing CA file",
			build: func() (*http.Client, error) {
				return NewBuilder().WithTLS("/nonexistent/ca.pem", "", "").Build()
			},
		},
		{
			name: "cert without key",
			build: func() (*http.Client, error) {
				return NewBuilder().WithTLS("", "/nonexistent/client.pem", "").Build()
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.build(); err == nil {
				t.Fatal("expected an error")
			}
		})
	}
}

func TestBuilder_WithBaseTransport(t *testing.T) {
	base := testutil.RoundTripFunc(func(req *http.Request) (*http.Response, error) {
		return nil, nil
	})

	client, err := NewBuilder().WithBaseTransport(base).Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if _, ok := client.Transport.(testutil.RoundTripFunc); !ok {
		t.Errorf("expected the custom base transport, got %T", client.Transport)
	}
}
