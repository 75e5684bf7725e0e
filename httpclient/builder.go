package httpclient

import (
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/checkoutjoy/learnworlds-go/oauth2client"
)

// Builder provides a fluent interface for constructing HTTP clients that carry a
// school session's Bearer tokens, with optional TLS/mTLS configuration.
type Builder struct {
	manager *oauth2client.Manager

	tlsEnabled    bool
	tlsCAFile     string
	tlsCertFile   string
	tlsKeyFile    string
	tlsSkipVerify bool

	timeout         time.Duration
	baseTransport   http.RoundTripper
	followRedirects bool
}

// NewBuilder creates a new HTTP client builder.
func NewBuilder() *Builder {
	return &Builder{
		timeout:         30 * time.Second,
		followRedirects: true,
	}
}

// WithManager sets the token manager whose session authenticates outgoing requests.
func (b *Builder) WithManager(m *oauth2client.Manager) *Builder {
	b.manager = m
	return b
}

// WithTLS enables TLS for the connection.
//
// caFile sets a CA certificate for server verification (system roots if empty);
// certFile/keyFile configure a client certificate for mTLS and must be provided
// together.
func (b *Builder) WithTLS(caFile, certFile, keyFile string) *Builder {
	b.tlsEnabled = true
	b.tlsCAFile = caFile
	b.tlsCertFile = certFile
	b.tlsKeyFile = keyFile
	return b
}

// WithInsecureSkipVerify disables TLS certificate verification. Test use only.
func (b *Builder) WithInsecureSkipVerify() *Builder {
	b.tlsSkipVerify = true
	return b
}

// WithTimeout sets the request timeout for the HTTP client. Default is 30 seconds.
func (b *Builder) WithTimeout(timeout time.Duration) *Builder {
	b.timeout = timeout
	return b
}

// WithBaseTransport sets a custom base transport, e.g. for middleware or a custom
// connection pool.
func (b *Builder) WithBaseTransport(transport http.RoundTripper) *Builder {
	b.baseTransport = transport
	return b
}

// WithoutRedirects disables automatic redirect following.
func (b *Builder) WithoutRedirects() *Builder {
	b.followRedirects = false
	return b
}

// Build constructs the HTTP client with the configured options.
func (b *Builder) Build() (*http.Client, error) {
	transport := b.baseTransport
	if transport == nil {
		httpTransport, ok := http.DefaultTransport.(*http.Transport)
		if !ok {
			return nil, errors.New("httpclient: default transport is not *http.Transport; set a base transport")
		}
		httpTransport = httpTransport.Clone()

		if b.tlsEnabled || b.tlsSkipVerify {
			tlsConfig, err := b.buildTLSConfig()
			if err != nil {
				return nil, fmt.Errorf("httpclient: TLS config failed: %w", err)
			}
			httpTransport.TLSClientConfig = tlsConfig
		} else {
			httpTransport.TLSClientConfig = &tls.Config{
				MinVersion: tls.VersionTLS12,
			}
		}

		transport = httpTransport
	}

	if b.manager != nil {
		transport = NewBearerTransport(b.manager, transport)
	}

	client := &http.Client{
		Transport: transport,
		Timeout:   b.timeout,
	}

	if !b.followRedirects {
		client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		}
	}

	return client, nil
}

// buildTLSConfig constructs the TLS configuration for the HTTP client.
func (b *Builder) buildTLSConfig() (*tls.Config, error) {
	tlsConfig := &tls.Config{
		MinVersion:         tls.VersionTLS12,
		InsecureSkipVerify: b.tlsSkipVerify, // #nosec G402
	}

	if b.tlsCAFile != "" {
		caCert, err := os.ReadFile(b.tlsCAFile)
		if err != nil {
			return nil, fmt.Errorf("read CA file: %w", err)
		}

		certPool := x509.NewCertPool()
		if !certPool.AppendCertsFromPEM(caCert) {
			return nil, errors.New("failed to parse CA certificate")
		}
		tlsConfig.RootCAs = certPool
	}

	if b.tlsCertFile != "" && b.tlsKeyFile != "" {
		cert, err := tls.LoadX509KeyPair(b.tlsCertFile, b.tlsKeyFile)
		if err != nil {
			return nil, fmt.Errorf("load client certificate: %w", err)
		}
		tlsConfig.Certificates = []tls.Certificate{cert}
	} else if b.tlsCertFile != "" || b.tlsKeyFile != "" {
		return nil, errors.New("both TLS cert and key files must be provided for mTLS")
	}

	return tlsConfig, nil
}

// NewHTTPClient is a convenience function that creates an HTTP client
// authenticating with the given manager's session. For more configuration
// options, use Builder instead.
func NewHTTPClient(m *oauth2client.Manager) *http.Client {
	return &http.Client{
		Transport: NewBearerTransport(m, nil),
		Timeout:   30 * time.Second,
	}
}
