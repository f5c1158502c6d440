package pypi

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/matzehuels/pypeek/pkg/cache"
	"github.com/matzehuels/pypeek/pkg/errors"
	"github.com/matzehuels/pypeek/pkg/integrations"
)

const (
	// DefaultBaseURL is the root of the PyPI JSON API.
	DefaultBaseURL = "https://pypi.org/pypi"

	// DefaultSearchURL is the PyPI web search page.
	DefaultSearchURL = "https://pypi.org/search/"
)

// PackageInfo holds metadata for one release of a Python package.
//
// Zero values: all fields are empty.
// This struct is safe for concurrent reads after construction.
type PackageInfo struct {
	Name     string // Display name as published (e.g., "Flask")
	Version  string // Release version (e.g., "3.0.0")
	Summary  string // Short package description (may be empty)
	Author   string // Author name (may be empty)
	License  string // Short license name or SPDX expression (may be empty)
	HomePage string // Homepage URL (may be empty)
}

// Client provides access to the PyPI search page and JSON API.
// It handles HTTP requests with transparent response caching.
//
// All methods are safe for concurrent use by multiple goroutines.
type Client struct {
	*integrations.Client
	baseURL   string
	searchURL string
}

// Option configures a [Client].
type Option func(*Client)

// WithBaseURL points the JSON API at a different index root
// (e.g., "https://test.pypi.org/pypi").
func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.baseURL = strings.TrimRight(u, "/")
		}
	}
}

// WithSearchURL points searches at a different search page.
func WithSearchURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.searchURL = u
		}
	}
}

// WithHTTPClient replaces the HTTP client used for requests.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.Client.WithHTTPClient(h) }
}

// NewClient creates a PyPI client with the given cache backend.
//
// Parameters:
//   - backend: Cache backend for HTTP response caching (use cache.NewNullCache() for no caching)
//   - cacheTTL: How long responses are cached (typical: 1-24 hours)
//
// The returned Client is safe for concurrent use.
func NewClient(backend cache.Cache, cacheTTL time.Duration, opts ...Option) *Client {
	c := &Client{
		Client:    integrations.NewClient(backend, "pypi", cacheTTL, nil),
		baseURL:   DefaultBaseURL,
		searchURL: DefaultSearchURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchPackage retrieves metadata for a Python package from PyPI.
//
// When version is empty the latest release is returned, otherwise the
// metadata of that exact release. If refresh is true, the cache is bypassed.
//
// Returns:
//   - PackageInfo populated with metadata on success
//   - [errors.ErrInvalidInput] for names or versions that cannot form a request
//   - [errors.ErrNotFound] if the package or release doesn't exist
//   - [errors.ErrMalformedResponse] if the body is not a JSON document
//   - [errors.ErrNetwork] for transport failures and other HTTP statuses
//
// The returned PackageInfo pointer is never nil if err is nil.
func (c *Client) FetchPackage(ctx context.Context, name, version string, refresh bool) (*PackageInfo, error) {
	if err := errors.ValidatePackageName(name); err != nil {
		return nil, err
	}

	url := integrations.JoinURL(c.baseURL, name, "json")
	if version != "" {
		if err := errors.ValidateVersion(version); err != nil {
			return nil, err
		}
		url = integrations.JoinURL(c.baseURL, name, version, "json")
	}

	var data apiResponse
	if err := c.Get(ctx, url, refresh, &data); err != nil {
		if stderrors.Is(err, errors.ErrNotFound) {
			return nil, fmt.Errorf("%w: pypi package %s", err, describe(name, version))
		}
		return nil, err
	}
	if data.Info.Name == "" {
		return nil, errors.New(errors.ErrCodeMalformedResponse, "pypi package %s: response has no info.name", describe(name, version))
	}

	return &PackageInfo{
		Name:     data.Info.Name,
		Version:  data.Info.Version,
		Summary:  data.Info.Summary,
		Author:   data.Info.Author,
		License:  data.Info.license(),
		HomePage: data.Info.homePage(),
	}, nil
}

func describe(name, version string) string {
	if version == "" {
		return name
	}
	return name + "==" + version
}

type apiResponse struct {
	Info apiInfo `json:"info"`
}

type apiInfo struct {
	Name              string         `json:"name"`
	Version           string         `json:"version"`
	Summary           string         `json:"summary"`
	Author            string         `json:"author"`
	License           string         `json:"license"`
	LicenseExpression string         `json:"license_expression"`
	Classifiers       []string       `json:"classifiers"`
	HomePage          string         `json:"home_page"`
	ProjectURLs       map[string]any `json:"project_urls"`
}

// license picks a display name in order: the SPDX expression, a one-line
// license field, then the last segment of a "License ::" classifier.
// Multi-line fields hold full license texts and are skipped.
func (i apiInfo) license() string {
	if expr := strings.TrimSpace(i.LicenseExpression); expr != "" {
		return expr
	}
	if l := strings.TrimSpace(i.License); l != "" && !strings.Contains(l, "\n") && len(l) <= maxLicenseLen {
		return l
	}
	for _, c := range i.Classifiers {
		if rest, ok := strings.CutPrefix(c, "License :: "); ok {
			segs := strings.Split(rest, " :: ")
			if last := segs[len(segs)-1]; last != "OSI Approved" {
				return last
			}
		}
	}
	return ""
}

const maxLicenseLen = 80

// homePage returns home_page, or the "Homepage" project URL that newer
// metadata uses instead.
func (i apiInfo) homePage() string {
	if i.HomePage != "" {
		return i.HomePage
	}
	for k, v := range i.ProjectURLs {
		if s, ok := v.(string); ok && strings.EqualFold(strings.ReplaceAll(k, " ", ""), "homepage") {
			return s
		}
	}
	return ""
}
