package learnworlds

import "fmt"

// Course is a school course as returned by the admin API.
type Course struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Categories  []string `json:"categories,omitempty"`
	Access      string   `json:"access,omitempty"` // free, paid, private
	Created     int64    `json:"created,omitempty"`
	Modified    int64    `json:"modified,omitempty"`
}

// User is a school member as returned by the admin API.
type User struct {
	ID       string   `json:"id"`
	Email    string   `json:"email"`
	Username string   `json:"username,omitempty"`
	IsAdmin  bool     `json:"is_admin,omitempty"`
	Tags     []string `json:"tags,omitempty"`
	Created  int64    `json:"created,omitempty"`
}

// Page selects one page of a list endpoint. The zero value requests the API's
// defaults.
type Page struct {
	Number       int // 1-based
	ItemsPerPage int
}

// Meta is the pagination envelope the API attaches to list responses.
type Meta struct {
	Page         int `json:"page"`
	TotalItems   int `json:"totalItems"`
	TotalPages   int `json:"totalPages"`
	ItemsPerPage int `json:"itemsPerPage"`
}

// APIError is a non-2xx response from the admin API.
type APIError struct {
	StatusCode int
	Body       string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("learnworlds: API responded %d: %s", e.StatusCode, e.Body)
}
