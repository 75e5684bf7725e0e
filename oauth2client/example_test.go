package oauth2client_test

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/checkoutjoy/learnworlds-go/oauth2client"
)

func ExampleNew() {
	m := oauth2client.New(oauth2client.Credentials{
		SchoolDomain: "academy",
		ClientID:     "client-id",
		ClientSecret: "client-secret",
	})

	if _, err := m.AuthenticateWithClientCredentials(context.Background(), "courses:read"); err != nil {
		log.Fatal(err)
	}

	token, err := m.EnsureValidToken(context.Background())
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("Bearer " + token)
}

func ExampleManager_AuthorizationURL() {
	m := oauth2client.New(oauth2client.Credentials{
		SchoolDomain: "academy",
		ClientID:     "client-id",
		ClientSecret: "client-secret",
	})

	// Send the user here; the school redirects back with ?code=...
	fmt.Println(m.AuthorizationURL("courses:read users:read"))

	// Later, on the redirect handler:
	tokens, err := m.ExchangeAuthorizationCode(context.Background(), "received-code", "https://app.example.com/callback")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(tokens.RefreshToken)
}

func ExampleWithTokenCallback() {
	// Persist every granted or refreshed session to disk, and restore it on the
	// next start without re-authenticating.
	m := oauth2client.New(oauth2client.Credentials{
		SchoolDomain: "academy",
		ClientID:     "client-id",
		ClientSecret: "client-secret",
	}, oauth2client.WithTokenCallback(func(_ context.Context, tokens oauth2client.TokenSet) error {
		data, err := json.Marshal(tokens)
		if err != nil {
			return err
		}
		return os.WriteFile("session.json", data, 0o600)
	}))

	if data, err := os.ReadFile("session.json"); err == nil {
		var tokens oauth2client.TokenSet
		if err := json.Unmarshal(data, &tokens); err == nil {
			_ = m.SetTokens(tokens)
		}
	}
}
