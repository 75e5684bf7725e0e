// Package httpclient constructs HTTP clients that authenticate against a
// LearnWorlds school using an oauth2client.Manager session.
//
// BearerTransport injects the session's Bearer token into every request, renewing
// it through the Manager when needed, and clears the cached tokens when the API
// answers 401 so the next call re-authenticates. The fluent Builder adds TLS
// (custom CA, mTLS, insecure for tests), timeouts, base transports, and redirect
// handling on top.
//
// # Quick Start
//
//	m := oauth2client.New(oauth2client.Credentials{
//	    SchoolDomain: "academy",
//	    ClientID:     "client-id",
//	    ClientSecret: "client-secret",
//	})
//
//	client, err := httpclient.NewBuilder().
//	    WithManager(m).
//	    WithTimeout(60 * time.Second).
//	    Build()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	resp, err := client.Get("https://academy.learnworlds.com/admin/api/v2/courses")
package httpclient
