package oauth2client

import (
	"context"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// The wire work of every grant is delegated to golang.org/x/oauth2, which handles
// form encoding, expires_in conversion, and error payload parsing. LearnWorlds
// expects client_id/client_secret in the request body, hence AuthStyleInParams.

// oauthConfig builds the x/oauth2 config shared by the authorization code,
// password, and refresh grants.
func (m *Manager) oauthConfig(scope string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     m.creds.ClientID,
		ClientSecret: m.creds.ClientSecret,
		Scopes:       strings.Fields(scope),
		Endpoint: oauth2.Endpoint{
			AuthURL:   m.authURL,
			TokenURL:  m.tokenURL,
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}
}

// callContext prepares the context handed to x/oauth2, routing token requests
// through the Manager's HTTP client when one is configured.
func (m *Manager) callContext(ctx context.Context) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	if m.httpClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, m.httpClient)
	}
	return ctx
}

// clientCredentialsGrant runs the two-legged flow. The response never carries a
// refresh token; expiry triggers a re-run of this grant instead of a refresh.
func (m *Manager) clientCredentialsGrant(ctx context.Context, scope string) (TokenSet, error) {
	cfg := &clientcredentials.Config{
		ClientID:     m.creds.ClientID,
		ClientSecret: m.creds.ClientSecret,
		TokenURL:     m.tokenURL,
		Scopes:       strings.Fields(scope),
		AuthStyle:    oauth2.AuthStyleInParams,
	}

	tok, err := cfg.Token(m.callContext(ctx))
	if err != nil {
		return TokenSet{}, classifyTokenError(err)
	}
	return fromOAuth2Token(tok), nil
}

// exchangeGrant trades an authorization code for a TokenSet. The redirect URI must
// match the one used when the code was issued.
func (m *Manager) exchangeGrant(ctx context.Context, code, redirectURI string) (TokenSet, error) {
	cfg := m.oauthConfig("")

	tok, err := cfg.Exchange(m.callContext(ctx), code,
		oauth2.SetAuthURLParam("redirect_uri", redirectURI))
	if err != nil {
		return TokenSet{}, classifyTokenError(err)
	}
	return fromOAuth2Token(tok), nil
}

// passwordGrant runs the resource-owner password flow.
func (m *Manager) passwordGrant(ctx context.Context, username, password, scope string) (TokenSet, error) {
	cfg := m.oauthConfig(scope)

	tok, err := cfg.PasswordCredentialsToken(m.callContext(ctx), username, password)
	if err != nil {
		return TokenSet{}, classifyTokenError(err)
	}
	return fromOAuth2Token(tok), nil
}

// refreshGrant issues a grant_type=refresh_token request. Servers may rotate the
// refresh token or omit it; an omitted token keeps the previous one usable.
func (m *Manager) refreshGrant(ctx context.Context, refreshToken string) (TokenSet, error) {
	cfg := m.oauthConfig("")

	src := cfg.TokenSource(m.callContext(ctx), &oauth2.Token{RefreshToken: refreshToken})
	tok, err := src.Token()
	if err != nil {
		return TokenSet{}, classifyTokenError(err)
	}

	ts := fromOAuth2Token(tok)
	if ts.RefreshToken == "" {
		ts.RefreshToken = refreshToken
	}
	return ts, nil
}
