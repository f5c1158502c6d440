// Package integrations provides HTTP clients for the remote services pypeek
// talks to.
//
// # Overview
//
// Each service has its own subpackage:
//
//   - [pypi]: Python Package Index search page and JSON API
//   - [pypistats]: recent download counts from pypistats.org
//
// # Shared Infrastructure
//
// The [Client] type provides shared HTTP functionality used by every
// service client:
//
//   - GET with default headers and a request timeout
//   - Transparent response caching via [cache.Cache] (namespaced keys,
//     configurable TTL, refresh to bypass)
//   - Status mapping: 404 becomes [errors.ErrNotFound], other failures
//     become [errors.ErrNetwork]
//   - JSON decoding, with undecodable bodies reported as
//     [errors.ErrMalformedResponse]
//
// Requests are never retried. Callers decide retry policy.
//
// # Client Pattern
//
//	backend, _ := cache.NewFileCache(dir)
//	client := pypi.NewClient(backend, 24*time.Hour)
//	pkg, err := client.FetchPackage(ctx, "fastapi", "", false)  // false = use cache
//
// Pass [cache.NewNullCache] for a cache-free client.
//
// [pypi]: github.com/matzehuels/pypeek/pkg/integrations/pypi
// [pypistats]: github.com/matzehuels/pypeek/pkg/integrations/pypistats
// [cache.Cache]: github.com/matzehuels/pypeek/pkg/cache.Cache
// [cache.NewNullCache]: github.com/matzehuels/pypeek/pkg/cache.NewNullCache
// [errors.ErrNotFound]: github.com/matzehuels/pypeek/pkg/errors.ErrNotFound
// [errors.ErrNetwork]: github.com/matzehuels/pypeek/pkg/errors.ErrNetwork
// [errors.ErrMalformedResponse]: github.com/matzehuels/pypeek/pkg/errors.ErrMalformedResponse
package integrations
