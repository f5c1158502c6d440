// Package pypistats fetches recent download counts from pypistats.org.
//
// Download counts are cosmetic: a package the service does not track is
// reported as 0 downloads, and callers are expected to degrade any
// [errors.ErrStatsUnavailable] result to 0 rather than abort.
//
//	client := pypistats.NewClient(backend, 24*time.Hour)
//	n, err := client.RecentDownloads(ctx, "Requests", false)  // looks up "requests"
//
// [errors.ErrStatsUnavailable]: github.com/matzehuels/pypeek/pkg/errors.ErrStatsUnavailable
package pypistats
