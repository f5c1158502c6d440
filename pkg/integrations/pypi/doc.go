// Package pypi provides an HTTP client for the Python Package Index.
//
// # Overview
//
// Two endpoints are used:
//
//   - The web search page (https://pypi.org/search/), parsed as HTML
//   - The JSON API (https://pypi.org/pypi/<name>[/<version>]/json)
//
// # Usage
//
//	client := pypi.NewClient(backend, 24*time.Hour)  // Cache TTL
//
//	names, err := client.Search(ctx, pypi.SearchQuery{Text: "http client"}, false)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if len(names) == 0 {
//	    fmt.Println("no matches")
//	}
//
//	pkg, err := client.FetchPackage(ctx, "fastapi", "", false)  // "" = latest
//	fmt.Println(pkg.Name, pkg.Version, pkg.Author)
//
// # Search
//
// [Client.Search] sends the query text, classifiers, page and an ordering
// parameter, then returns the text of every element carrying the
// "package-snippet__name" class. An empty result is reported as a nil slice
// with a nil error, so callers can tell "no matches" apart from a failure.
//
// # Caching
//
// Responses are cached to reduce load on PyPI and speed up repeated requests.
// The cache TTL is set when creating the client. Pass refresh=true to bypass
// the cache.
package pypi
