// Package oauth2client manages the OAuth2 token lifecycle for a single LearnWorlds school.
//
// A Manager owns one credential set and one cached TokenSet. It acquires tokens through
// the client credentials, authorization code, or resource-owner password flow, refreshes
// them before expiry, and guarantees that concurrent callers never race on a refresh:
// at most one token request is in flight per Manager, and every concurrent caller
// observes the same outcome.
//
// # Features
//
//   - Client credentials, authorization code, and password grants against the school's
//     /oauth2/access_token endpoint
//   - EnsureValidToken with early renewal and single-flight refresh coordination
//   - Session restoration via SetTokens and a persistence callback fired after every
//     successful grant or refresh (WithTokenCallback)
//   - Typed AuthenticationError taxonomy (invalid_client, invalid_grant,
//     invalid_response, network, reauthentication_required)
//   - gRPC unary and stream client interceptors that inject Bearer tokens
//   - Optional logging (WithLogger, WithLoggingEnabled)
//
// # Quick Start
//
//	m := oauth2client.New(oauth2client.Credentials{
//	    SchoolDomain: "academy",
//	    ClientID:     "client-id",
//	    ClientSecret: "client-secret",
//	})
//
//	if _, err := m.AuthenticateWithClientCredentials(ctx, "courses:read"); err != nil {
//	    log.Fatal(err)
//	}
//
//	token, err := m.EnsureValidToken(ctx) // cached until ~60s before expiry
//
// # Notes
//
//   - One Manager corresponds to one school session; there is no cross-instance cache.
//   - The Manager never retries failed token requests; retry policy belongs to the caller.
package oauth2client
