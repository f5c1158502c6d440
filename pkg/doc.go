// Package pkg provides the libraries behind the pypeek command.
//
// # Overview
//
// pypeek looks up Python packages on PyPI and cross-references them with
// local environments. The packages are layered:
//
//  1. [integrations] - HTTP clients for PyPI ([integrations/pypi]) and
//     pypistats.org ([integrations/pypistats]) over a shared cached client
//  2. [inventory] and [manifest] - where identifiers come from: "pip list"
//     or dependency files
//  3. [listing] - normalization into uniform records, sorting, presentation
//  4. [cache], [config], [errors], [observability], [buildinfo] - support
//
// # Data Flow
//
//	search page / pip list / manifest file
//	         ↓
//	    []listing.Identifier (name, optional pinned version)
//	         ↓
//	    listing.Normalizer (PyPI metadata + last month's downloads)
//	         ↓
//	    listing.Presenter or listing.WriteJSON
//
// # Quick Start
//
//	backend := cache.NewNullCache()
//	index := pypi.NewClient(backend, time.Hour)
//	stats := pypistats.NewClient(backend, time.Hour)
//
//	names, _ := index.Search(ctx, pypi.SearchQuery{Text: "requests"}, false)
//	ids := make([]listing.Identifier, len(names))
//	for i, n := range names {
//	    ids[i] = listing.Identifier{Name: n}
//	}
//	records, _ := listing.NewNormalizer(index, stats, listing.Options{}).Normalize(ctx, ids)
//	_ = listing.NewPresenter(os.Stdout, listing.PlainStyles()).Display(records, listing.SortInstalls)
package pkg
