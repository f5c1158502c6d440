package integrations

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/matzehuels/pypeek/pkg/cache"
	"github.com/matzehuels/pypeek/pkg/errors"
	"github.com/matzehuels/pypeek/pkg/observability"
)

// Client provides shared HTTP functionality for the remote API clients.
// It handles response caching and common request headers. Requests are
// never retried; failures are returned to the caller as-is.
//
// All methods are safe for concurrent use if the cache backend is.
type Client struct {
	http      *http.Client
	cache     cache.Cache
	keyer     cache.Keyer
	namespace string
	ttl       time.Duration
	headers   map[string]string
}

// NewClient creates a Client that caches successful responses in backend
// under namespace for ttl. Pass nil for backend to disable caching, and nil
// for headers if no default headers are needed.
func NewClient(backend cache.Cache, namespace string, ttl time.Duration, headers map[string]string) *Client {
	if backend == nil {
		backend = cache.NewNullCache()
	}
	return &Client{
		http:      NewHTTPClient(httpTimeout),
		cache:     backend,
		keyer:     cache.NewDefaultKeyer(),
		namespace: namespace,
		ttl:       ttl,
		headers:   headers,
	}
}

// WithHTTPClient replaces the underlying HTTP client and returns c.
func (c *Client) WithHTTPClient(h *http.Client) *Client {
	if h != nil {
		c.http = h
	}
	return c
}

// Fetch returns the body of a successful GET to url. When refresh is false a
// fresh cached body is returned without contacting the server. Only 200
// responses are cached.
//
// Errors:
//   - [errors.ErrNotFound] for a 404 response
//   - [errors.ErrNetwork] for transport failures and any other non-200
//     status; status failures carry a [*StatusError]
func (c *Client) Fetch(ctx context.Context, url string, refresh bool) ([]byte, error) {
	return c.fetch(ctx, url, refresh, nil)
}

// Get performs a GET request and JSON-decodes the response into v.
// A body that is not valid JSON yields [errors.ErrMalformedResponse] and is
// never cached.
func (c *Client) Get(ctx context.Context, url string, refresh bool, v any) error {
	_, err := c.fetch(ctx, url, refresh, func(data []byte) error {
		if err := json.Unmarshal(data, v); err != nil {
			return errors.Wrap(errors.ErrCodeMalformedResponse, err, "decode %s", url)
		}
		return nil
	})
	return err
}

// fetch serves url from the cache or the network. When accept is non-nil a
// body is only returned, and only stored, once accept has taken it. A cached
// body that accept rejects is evicted and fetched again.
func (c *Client) fetch(ctx context.Context, url string, refresh bool, accept func([]byte) error) ([]byte, error) {
	key := c.keyer.HTTPKey(c.namespace, url)
	hooks := observability.Cache()
	if !refresh {
		if data, ok, _ := c.cache.Get(ctx, key); ok {
			if accept == nil || accept(data) == nil {
				hooks.OnCacheHit(ctx, c.namespace)
				return data, nil
			}
			_ = c.cache.Delete(ctx, key)
		}
		hooks.OnCacheMiss(ctx, c.namespace)
	}

	data, err := c.doRequest(ctx, url)
	if err != nil {
		return nil, err
	}
	if accept != nil {
		if err := accept(data); err != nil {
			return nil, err
		}
	}
	if err := c.cache.Set(ctx, key, data, c.ttl); err == nil {
		hooks.OnCacheSet(ctx, c.namespace, len(data))
	}
	return data, nil
}

// GetText performs a GET request and returns the response body as a string.
// Useful for non-JSON endpoints such as HTML pages.
func (c *Client) GetText(ctx context.Context, url string, refresh bool) (string, error) {
	data, err := c.Fetch(ctx, url, refresh)
	return string(data), err
}

func (c *Client) doRequest(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "build request")
	}
	req.Header.Set("User-Agent", userAgent)
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	hooks := observability.HTTP()
	host, path := req.URL.Host, req.URL.Path
	hooks.OnRequest(ctx, req.Method, host, path)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		hooks.OnError(ctx, req.Method, host, path, err)
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "GET %s", url)
	}
	defer resp.Body.Close()
	hooks.OnResponse(ctx, req.Method, host, path, resp.StatusCode, time.Since(start))

	if err := checkStatus(url, resp.StatusCode); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "read %s", url)
	}
	return data, nil
}

// StatusError records an unexpected HTTP status.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("status %d", e.StatusCode)
}

func checkStatus(url string, code int) error {
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusNotFound:
		return errors.New(errors.ErrCodeNotFound, "GET %s", url)
	default:
		return errors.Wrap(errors.ErrCodeNetwork, &StatusError{StatusCode: code}, "GET %s", url)
	}
}
