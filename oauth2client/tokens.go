package oauth2client

import (
	"time"

	"golang.org/x/oauth2"
)

// TokenSet is the bearer credential state issued by the school's token endpoint.
// ExpiresAt is always an absolute instant, computed at acquisition time from the
// server-reported lifetime. The zero RefreshToken means the set came from the
// client credentials flow (or the server withheld one).
//
// TokenSet is JSON-tagged so persistence callbacks can store it verbatim and feed
// it back through SetTokens later.
type TokenSet struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	ExpiresAt    time.Time `json:"expires_at"`
	Scope        string    `json:"scope,omitempty"`
}

// Valid reports whether the access token is present and not within leeway of its
// expiry. A zero ExpiresAt means the server reported no lifetime; such tokens are
// treated as valid until cleared.
func (t TokenSet) Valid(leeway time.Duration) bool {
	if t.AccessToken == "" {
		return false
	}
	if t.ExpiresAt.IsZero() {
		return true
	}
	return time.Until(t.ExpiresAt) > leeway
}

// fromOAuth2Token converts an x/oauth2 token, which already carries the absolute
// expiry derived from expires_in, into a TokenSet.
func fromOAuth2Token(tok *oauth2.Token) TokenSet {
	ts := TokenSet{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		ExpiresAt:    tok.Expiry,
	}
	if scope, ok := tok.Extra("scope").(string); ok {
		ts.Scope = scope
	}
	return ts
}
