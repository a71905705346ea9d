package authsdk

import (
	"net/http"
	"strings"
	"time"
)

// Client is a low-level client for the Duet auth service. Every call takes
// the credentials it needs explicitly and performs exactly one request; use
// Session for stored tokens and automatic refresh.
type Client struct {
	// BaseURL is the root of the auth service, without a trailing slash.
	BaseURL string
	// HTTPClient is the underlying HTTP client. Replace it to change
	// timeouts or transport behaviour.
	HTTPClient *http.Client
}

// NewClient creates a client for the auth service at the given base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *Client) url(path string) string {
	return c.BaseURL + path
}
