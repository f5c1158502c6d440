package pypistats

import (
	"context"
	stderrors "errors"
	"net/http"
	"strings"
	"time"

	"github.com/matzehuels/pypeek/pkg/cache"
	"github.com/matzehuels/pypeek/pkg/errors"
	"github.com/matzehuels/pypeek/pkg/integrations"
)

// DefaultBaseURL is the root of the pypistats.org API.
const DefaultBaseURL = "https://pypistats.org/api"

// Client queries pypistats.org for recent download counts.
//
// All methods are safe for concurrent use by multiple goroutines.
type Client struct {
	*integrations.Client
	baseURL string
}

// Option configures a [Client].
type Option func(*Client)

// WithBaseURL points the client at a different API root.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.baseURL = strings.TrimRight(u, "/")
		}
	}
}

// WithHTTPClient replaces the HTTP client used for requests.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.Client.WithHTTPClient(h) }
}

// NewClient creates a statistics client that caches responses in backend
// for cacheTTL.
func NewClient(backend cache.Cache, cacheTTL time.Duration, opts ...Option) *Client {
	c := &Client{
		Client:  integrations.NewClient(backend, "pypistats", cacheTTL, nil),
		baseURL: DefaultBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type recentResponse struct {
	Data struct {
		LastDay   int `json:"last_day"`
		LastWeek  int `json:"last_week"`
		LastMonth int `json:"last_month"`
	} `json:"data"`
	Package string `json:"package"`
}

// RecentDownloads returns the package's download count over the last month.
//
// The name is lowercased before the lookup. A package the service does not
// track (404) has 0 downloads and no error. Any other non-200 status, or a
// body that cannot be decoded, returns 0 with [errors.ErrStatsUnavailable].
// Transport failures are returned unchanged.
func (c *Client) RecentDownloads(ctx context.Context, name string, refresh bool) (int, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return 0, errors.New(errors.ErrCodeInvalidInput, "package name cannot be empty")
	}

	var resp recentResponse
	err := c.Get(ctx, integrations.JoinURL(c.baseURL, "packages", name, "recent"), refresh, &resp)
	switch {
	case err == nil:
		return resp.Data.LastMonth, nil
	case stderrors.Is(err, errors.ErrNotFound):
		return 0, nil
	case stderrors.Is(err, errors.ErrMalformedResponse):
		return 0, errors.Wrap(errors.ErrCodeStatsUnavailable, err, "pypistats %s", name)
	}

	var se *integrations.StatusError
	if stderrors.As(err, &se) {
		return 0, errors.Wrap(errors.ErrCodeStatsUnavailable, se, "pypistats %s", name)
	}
	return 0, err
}
