package learnworlds

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/checkoutjoy/learnworlds-go/httpclient"
	"github.com/checkoutjoy/learnworlds-go/oauth2client"
)

// apiPath is the admin API prefix under the school's domain.
const apiPath = "/admin/api/v2"

// Client is a typed client for one school's admin API. It owns an
// oauth2client.Manager for the session and an HTTP client whose transport
// injects the session's Bearer token.
type Client struct {
	baseURL  string
	clientID string
	httpc    *http.Client
	auth     *oauth2client.Manager
}

// Option configures a Client.
type Option func(*clientOptions)

type clientOptions struct {
	baseURL  string
	authOpts []oauth2client.Option
}

// WithBaseURL overrides the school base URL derived from the credentials,
// mainly for tests against a local server. The admin API path is still appended.
func WithBaseURL(url string) Option {
	return func(o *clientOptions) {
		o.baseURL = url
	}
}

// WithAuthOptions passes options through to the underlying token manager,
// e.g. oauth2client.WithTokenCallback for session persistence.
func WithAuthOptions(opts ...oauth2client.Option) Option {
	return func(o *clientOptions) {
		o.authOpts = append(o.authOpts, opts...)
	}
}

// New builds a Client for the school identified by creds.
func New(creds oauth2client.Credentials, opts ...Option) (*Client, error) {
	options := clientOptions{baseURL: creds.BaseURL()}
	for _, opt := range opts {
		opt(&options)
	}

	auth := oauth2client.New(creds, options.authOpts...)

	httpc, err := httpclient.NewBuilder().
		WithManager(auth).
		Build()
	if err != nil {
		return nil, fmt.Errorf("learnworlds: build HTTP client: %w", err)
	}

	return &Client{
		baseURL:  options.baseURL + apiPath,
		clientID: creds.ClientID,
		httpc:    httpc,
		auth:     auth,
	}, nil
}

// Auth exposes the session's token manager for explicit authentication and
// session restoration.
func (c *Client) Auth() *oauth2client.Manager {
	return c.auth
}

// ListCourses returns one page of the school's courses.
func (c *Client) ListCourses(ctx context.Context, page Page) ([]Course, Meta, error) {
	var out struct {
		Data []Course `json:"data"`
		Meta Meta     `json:"meta"`
	}
	if err := c.get(ctx, "/courses", page.values(), &out); err != nil {
		return nil, Meta{}, err
	}
	return out.Data, out.Meta, nil
}

// GetCourse returns a single course by id.
func (c *Client) GetCourse(ctx context.Context, id string) (Course, error) {
	var out Course
	if err := c.get(ctx, "/courses/"+url.PathEscape(id), nil, &out); err != nil {
		return Course{}, err
	}
	return out, nil
}

// ListUsers returns one page of the school's users.
func (c *Client) ListUsers(ctx context.Context, page Page) ([]User, Meta, error) {
	var out struct {
		Data []User `json:"data"`
		Meta Meta   `json:"meta"`
	}
	if err := c.get(ctx, "/users", page.values(), &out); err != nil {
		return nil, Meta{}, err
	}
	return out.Data, out.Meta, nil
}

// Me returns the user the session's tokens belong to. With client credentials
// this is the school's admin user.
func (c *Client) Me(ctx context.Context) (User, error) {
	var out User
	if err := c.get(ctx, "/users/me", nil, &out); err != nil {
		return User{}, err
	}
	return out, nil
}

// GetUser returns a single user by id or email.
func (c *Client) GetUser(ctx context.Context, id string) (User, error) {
	var out User
	if err := c.get(ctx, "/users/"+url.PathEscape(id), nil, &out); err != nil {
		return User{}, err
	}
	return out, nil
}

func (p Page) values() url.Values {
	v := url.Values{}
	if p.Number > 0 {
		v.Set("page", strconv.Itoa(p.Number))
	}
	if p.ItemsPerPage > 0 {
		v.Set("items_per_page", strconv.Itoa(p.ItemsPerPage))
	}
	return v
}

// get performs an authenticated GET and decodes the JSON response into v.
func (c *Client) get(ctx context.Context, path string, query url.Values, v any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("learnworlds: build request: %w", err)
	}
	// The admin API requires the client id alongside the Bearer token.
	req.Header.Set("Lw-Client", c.clientID)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("learnworlds: %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("learnworlds: decode %s response: %w", path, err)
	}
	return nil
}
