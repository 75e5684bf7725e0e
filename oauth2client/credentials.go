package oauth2client

// DefaultAPIHost is the production LearnWorlds host suffix. School URLs are formed
// as https://{SchoolDomain}.{APIHost}.
const DefaultAPIHost = "learnworlds.com"

// Credentials identifies one school and one API client. The struct is read-only
// for the lifetime of a Manager; construct a new Manager to switch schools.
type Credentials struct {
	// SchoolDomain is the school's subdomain, e.g. "academy" for
	// academy.learnworlds.com.
	SchoolDomain string

	// ClientID and ClientSecret are issued in the school's API settings.
	ClientID     string
	ClientSecret string

	// APIHost overrides DefaultAPIHost, mainly for staging environments.
	APIHost string
}

// BaseURL returns the school's root URL.
func (c Credentials) BaseURL() string {
	host := c.APIHost
	if host == "" {
		host = DefaultAPIHost
	}
	return "https://" + c.SchoolDomain + "." + host
}

// TokenURL returns the school's OAuth2 token endpoint.
func (c Credentials) TokenURL() string {
	return c.BaseURL() + "/oauth2/access_token"
}

// AuthorizeURL returns the school's OAuth2 authorization endpoint used by the
// authorization code flow.
func (c Credentials) AuthorizeURL() string {
	return c.BaseURL() + "/oauth2/authorize"
}
