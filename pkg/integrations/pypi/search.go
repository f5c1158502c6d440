package pypi

import (
	"context"
	"io"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/matzehuels/pypeek/pkg/errors"
)

// nameClass marks the element holding a package name in a search hit.
const nameClass = "package-snippet__name"

// Order selects how search results are ranked.
type Order string

// Supported search orders.
const (
	OrderRelevance   Order = "relevance"
	OrderLastUpdated Order = "last_updated"
	OrderTrending    Order = "trending"
)

// ParseOrder converts a user-supplied order name. The empty string selects
// [OrderRelevance].
func ParseOrder(s string) (Order, error) {
	switch o := Order(strings.TrimSpace(s)); o {
	case "":
		return OrderRelevance, nil
	case OrderRelevance, OrderLastUpdated, OrderTrending:
		return o, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidInput, "unknown search order %q (want relevance, last_updated or trending)", s)
	}
}

// param returns the value of the search page's "o" parameter.
func (o Order) param() (string, error) {
	switch o {
	case "", OrderRelevance:
		return "", nil
	case OrderLastUpdated:
		return "-created", nil
	case OrderTrending:
		return "-zscore", nil
	default:
		return "", errors.New(errors.ErrCodeInvalidInput, "unknown search order %q", string(o))
	}
}

// SearchQuery describes one page of a PyPI search.
type SearchQuery struct {
	Text        string   // Free-text query
	Order       Order    // Result ranking; zero value is relevance
	Classifiers []string // Trove classifiers, e.g. "Framework :: Django"
	Page        int      // 1-based page number; 0 means 1
}

func (q SearchQuery) values() (url.Values, error) {
	o, err := q.Order.param()
	if err != nil {
		return nil, err
	}
	page := q.Page
	if page == 0 {
		page = 1
	}
	if page < 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "page must be >= 1, got %d", q.Page)
	}

	v := url.Values{}
	v.Set("q", q.Text)
	for _, c := range q.Classifiers {
		v.Add("c", c)
	}
	v.Set("page", strconv.Itoa(page))
	v.Set("o", o)
	return v, nil
}

// Search runs q against the PyPI search page and returns the package names
// of every hit, in page order.
//
// No matches is not an error: Search returns (nil, nil) and callers report
// it to the user. Transport failures and non-200 statuses return an error.
func (c *Client) Search(ctx context.Context, q SearchQuery, refresh bool) ([]string, error) {
	params, err := q.values()
	if err != nil {
		return nil, err
	}

	body, err := c.GetText(ctx, c.searchURL+"?"+params.Encode(), refresh)
	if err != nil {
		return nil, err
	}
	return parseSearchResults(strings.NewReader(body))
}

// parseSearchResults extracts the text of every element whose class list
// contains nameClass.
func parseSearchResults(r io.Reader) ([]string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeMalformedResponse, err, "parse search page")
	}

	var names []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && hasClass(n, nameClass) {
			if name := extractText(n); name != "" {
				names = append(names, name)
			}
			return
		}
		for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
			walk(ch)
		}
	}
	walk(doc)
	return names, nil
}

func hasClass(n *html.Node, class string) bool {
	for _, a := range n.Attr {
		if a.Key == "class" {
			for _, f := range strings.Fields(a.Val) {
				if f == class {
					return true
				}
			}
		}
	}
	return false
}

func extractText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(b.String())
}
