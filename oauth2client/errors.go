package oauth2client

import (
	"errors"
	"fmt"
	"net"
	"net/http"

	"golang.org/x/oauth2"
)

// Kind classifies an AuthenticationError.
type Kind string

// Error kinds returned by the Manager. They mirror the OAuth2 error codes where one
// exists and add transport-level and SDK-level classes.
const (
	// KindInvalidClient indicates the token endpoint rejected the client id/secret.
	KindInvalidClient Kind = "invalid_client"

	// KindInvalidGrant indicates a rejected authorization code, refresh token, or
	// resource-owner credentials.
	KindInvalidGrant Kind = "invalid_grant"

	// KindInvalidResponse indicates a malformed token endpoint response, for example
	// a 2xx payload missing access_token.
	KindInvalidResponse Kind = "invalid_response"

	// KindNetwork indicates the token endpoint could not be reached.
	KindNetwork Kind = "network"

	// KindReauthenticationRequired indicates no refresh path exists: there is no
	// refresh token and no retained grant to re-run.
	KindReauthenticationRequired Kind = "reauthentication_required"
)

// AuthenticationError is the typed failure returned by every grant, refresh, and
// EnsureValidToken call. StatusCode and Body carry the token endpoint's response
// when one was received.
type AuthenticationError struct {
	Kind       Kind
	StatusCode int    // HTTP status from the token endpoint, 0 when transport failed
	Body       string // raw response body when available
	Err        error  // underlying cause, nil for reauthentication_required
}

// Error implements the error interface.
func (e *AuthenticationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("oauth2client: %s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("oauth2client: %s", e.Kind)
}

// Unwrap exposes the underlying cause for errors.Is/errors.As chains.
func (e *AuthenticationError) Unwrap() error { return e.Err }

// classifyTokenError maps errors surfaced by golang.org/x/oauth2 onto the
// AuthenticationError taxonomy. Raw transport and decode errors never leak untyped.
func classifyTokenError(err error) *AuthenticationError {
	var authErr *AuthenticationError
	if errors.As(err, &authErr) {
		return authErr
	}

	var retrieve *oauth2.RetrieveError
	if errors.As(err, &retrieve) {
		classified := &AuthenticationError{
			Kind: KindInvalidResponse,
			Body: string(retrieve.Body),
			Err:  err,
		}
		if retrieve.Response != nil {
			classified.StatusCode = retrieve.Response.StatusCode
		}
		switch retrieve.ErrorCode {
		case "invalid_client", "unauthorized_client":
			classified.Kind = KindInvalidClient
		case "invalid_grant":
			classified.Kind = KindInvalidGrant
		case "":
			// Non-standard error payload; fall back to the HTTP status.
			if classified.StatusCode == http.StatusUnauthorized {
				classified.Kind = KindInvalidClient
			}
		}
		return classified
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return &AuthenticationError{Kind: KindNetwork, Err: err}
	}

	// x/oauth2 reports missing access_token and similar payload defects as plain
	// errors without a RetrieveError wrapper.
	return &AuthenticationError{Kind: KindInvalidResponse, Err: err}
}
