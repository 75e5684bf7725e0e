package oauth2client

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"
)

// Manager owns the token lifecycle for one school session: one Credentials set,
// one cached TokenSet, and at most one in-flight token request at any instant.
// It is safe for concurrent use without external locking.
type Manager struct {
	creds    Credentials
	tokenURL string
	authURL  string

	store        *tokenStore
	httpClient   *http.Client
	expiryLeeway time.Duration
	logger       Logger

	mu      sync.Mutex // guards pending and retained
	pending *refreshCall
	// retained remembers client credentials grant parameters so expiry can re-run
	// the grant. Flows that issue refresh tokens retain nothing.
	retained *retainedGrant
}

type retainedGrant struct {
	scope string
}

// refreshCall is the shared handle for one in-flight token renewal. The starter
// fills token/err and closes done; late callers block on done instead of issuing
// their own request.
type refreshCall struct {
	done      chan struct{}
	token     string
	err       error
	discarded bool // SetTokens or ClearTokens raced the renewal; its result is dropped
}

// New creates a Manager for the school identified by creds. The zero leeway
// defaults to one minute before expiry.
func New(creds Credentials, opts ...Option) *Manager {
	m := &Manager{
		creds:        creds,
		tokenURL:     creds.TokenURL(),
		authURL:      creds.AuthorizeURL(),
		store:        &tokenStore{},
		expiryLeeway: time.Minute,
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// AuthenticateWithClientCredentials runs the two-legged flow and installs the
// resulting TokenSet. The grant parameters are retained: when the token expires,
// EnsureValidToken re-runs this grant since the flow issues no refresh token.
//
// scope is a space-delimited list, e.g. "courses:read users:read".
func (m *Manager) AuthenticateWithClientCredentials(ctx context.Context, scope string) (TokenSet, error) {
	ts, err := m.clientCredentialsGrant(ctx, scope)
	if err != nil {
		return TokenSet{}, err
	}

	m.mu.Lock()
	m.retained = &retainedGrant{scope: scope}
	m.mu.Unlock()

	return m.install(ctx, ts)
}

// AuthorizationURL builds the redirect URL that starts the authorization code
// flow. The result is deterministic for a given school, client id, and scope.
func (m *Manager) AuthorizationURL(scope string) string {
	return m.oauthConfig(scope).AuthCodeURL("")
}

// ExchangeAuthorizationCode trades the code delivered to the redirect URI for a
// TokenSet, including a refresh token, and installs it.
func (m *Manager) ExchangeAuthorizationCode(ctx context.Context, code, redirectURI string) (TokenSet, error) {
	ts, err := m.exchangeGrant(ctx, code, redirectURI)
	if err != nil {
		return TokenSet{}, err
	}
	return m.install(ctx, ts)
}

// AuthenticateWithPassword runs the resource-owner password flow and installs the
// resulting TokenSet. The credentials themselves are not retained; renewal relies
// on the refresh token the response carries.
func (m *Manager) AuthenticateWithPassword(ctx context.Context, username, password, scope string) (TokenSet, error) {
	ts, err := m.passwordGrant(ctx, username, password, scope)
	if err != nil {
		return TokenSet{}, err
	}
	return m.install(ctx, ts)
}

// Tokens returns the currently held TokenSet, if any. It never triggers network
// activity.
func (m *Manager) Tokens() (TokenSet, bool) {
	return m.store.get()
}

// SetTokens restores a previously persisted session. The TokenSet is trusted
// verbatim, expiry included, and the persistence callback fires for it. If a
// refresh is in flight its result is discarded: the explicitly set tokens win.
func (m *Manager) SetTokens(tokens TokenSet) error {
	// Mark and write under the coordination lock so a resolving renewal observes
	// either neither or both. The callback fires outside the lock.
	m.mu.Lock()
	if m.pending != nil {
		m.pending.discarded = true
	}
	m.store.write(tokens)
	m.mu.Unlock()

	return m.store.notify(context.Background(), tokens)
}

// ClearTokens drops the held TokenSet, typically after the resource API answered
// 401 with a token the server no longer accepts. The next EnsureValidToken call
// re-authenticates (or fails with reauthentication_required).
func (m *Manager) ClearTokens() {
	m.mu.Lock()
	if m.pending != nil {
		m.pending.discarded = true
	}
	m.store.clear()
	m.mu.Unlock()
}

// EnsureValidToken returns an access token with more than the expiry leeway of
// lifetime left, renewing it first when necessary. Renewal is single-flight: when
// N callers arrive with an expired token, exactly one token request goes out and
// all N observe its outcome.
//
// Renewal prefers the refresh grant; without a refresh token it re-runs a retained
// client credentials grant; with neither it fails with kind
// reauthentication_required. On failure the held TokenSet is left untouched.
func (m *Manager) EnsureValidToken(ctx context.Context) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	// Fast path: no locking beyond the store's read lock.
	if ts, ok := m.store.get(); ok && ts.Valid(m.expiryLeeway) {
		return ts.AccessToken, nil
	}

	m.mu.Lock()
	if call := m.pending; call != nil {
		m.mu.Unlock()
		return m.awaitRenewal(ctx, call)
	}

	// Re-check under the coordination lock: a renewal may have completed between
	// the fast path and Lock.
	if ts, ok := m.store.get(); ok && ts.Valid(m.expiryLeeway) {
		m.mu.Unlock()
		return ts.AccessToken, nil
	}

	current, _ := m.store.get()
	retained := m.retained
	call := &refreshCall{done: make(chan struct{})}
	m.pending = call
	m.mu.Unlock()

	m.runRenewal(ctx, call, current, retained)
	return m.awaitRenewal(ctx, call)
}

// runRenewal performs the actual token request for one refreshCall and publishes
// the outcome. The in-progress marker is cleared unconditionally so a failure
// never wedges the Manager.
func (m *Manager) runRenewal(ctx context.Context, call *refreshCall, current TokenSet, retained *retainedGrant) {
	// Detach cancellation: the renewal serves every waiter, not just the caller
	// that happened to start it.
	detached := context.WithoutCancel(ctx)

	var (
		next TokenSet
		err  error
	)
	switch {
	case current.RefreshToken != "":
		next, err = m.refreshGrant(detached, current.RefreshToken)
	case retained != nil:
		next, err = m.clientCredentialsGrant(detached, retained.scope)
	default:
		err = &AuthenticationError{Kind: KindReauthenticationRequired}
	}

	// Publish under the coordination lock. SetTokens and ClearTokens mark the
	// call discarded and mutate the store under the same lock, so the discarded
	// branch never reads a store that is halfway between the two.
	var renewed bool
	m.mu.Lock()
	switch {
	case call.discarded:
		// SetTokens/ClearTokens won the race; waiters observe the store as the
		// embedding application left it.
		if ts, ok := m.store.get(); ok {
			call.token = ts.AccessToken
		} else {
			call.err = &AuthenticationError{Kind: KindReauthenticationRequired}
		}
	case err != nil:
		call.err = err
	default:
		m.store.write(next)
		call.token = next.AccessToken
		renewed = true
	}
	if m.pending == call {
		m.pending = nil
	}
	m.mu.Unlock()

	if renewed {
		if cbErr := m.store.notify(detached, next); cbErr != nil {
			call.err = fmt.Errorf("oauth2client: token callback: %w", cbErr)
		} else {
			m.logf("oauth2client: renewed access token (expires: %s)", next.ExpiresAt.Format(time.RFC3339))
		}
	} else if err != nil && !call.discarded {
		m.logf("oauth2client: token renewal failed: %v", err)
	}
	close(call.done)
}

// awaitRenewal blocks until the shared renewal resolves or the caller's own
// context is done.
func (m *Manager) awaitRenewal(ctx context.Context, call *refreshCall) (string, error) {
	select {
	case <-call.done:
		if call.err != nil {
			return "", call.err
		}
		return call.token, nil
	case <-ctx.Done():
		return "", fmt.Errorf("oauth2client: waiting for token renewal: %w", ctx.Err())
	}
}

// install writes a freshly granted TokenSet to the store. The callback error, if
// any, is surfaced alongside the (already installed) TokenSet.
func (m *Manager) install(ctx context.Context, ts TokenSet) (TokenSet, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := m.store.set(ctx, ts); err != nil {
		return ts, fmt.Errorf("oauth2client: token callback: %w", err)
	}
	m.logf("oauth2client: obtained access token (expires: %s)", ts.ExpiresAt.Format(time.RFC3339))
	return ts, nil
}

func (m *Manager) logf(format string, args ...any) {
	if m.logger != nil {
		m.logger.Printf(format, args...)
	}
}
