// Package learnworlds is a typed client for the LearnWorlds admin API.
//
// It sits on top of oauth2client and httpclient: every request carries a valid
// Bearer token for the school session, with token renewal handled transparently
// by the Manager. Non-2xx responses are returned as *APIError.
//
// # Quick Start
//
//	creds, err := learnworlds.CredentialsFromEnv() // LEARNWORLDS_SCHOOL_DOMAIN etc.
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	client, err := learnworlds.New(creds)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	if _, err := client.Auth().AuthenticateWithClientCredentials(ctx, "courses:read"); err != nil {
//	    log.Fatal(err)
//	}
//
//	courses, err := client.ListCourses(ctx, learnworlds.Page{Number: 1, ItemsPerPage: 20})
package learnworlds
