package listing

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/pypeek/pkg/errors"
	"github.com/matzehuels/pypeek/pkg/integrations/pypi"
	"github.com/matzehuels/pypeek/pkg/observability"
)

// DefaultWorkers bounds concurrent lookups in [Normalizer.Normalize].
const DefaultWorkers = 4

// MetadataFetcher looks up index metadata; satisfied by *pypi.Client.
type MetadataFetcher interface {
	FetchPackage(ctx context.Context, name, version string, refresh bool) (*pypi.PackageInfo, error)
}

// DownloadCounter looks up recent downloads; satisfied by *pypistats.Client.
type DownloadCounter interface {
	RecentDownloads(ctx context.Context, name string, refresh bool) (int, error)
}

// Options tunes a [Normalizer].
type Options struct {
	Workers int         // concurrent identifiers; <= 0 selects DefaultWorkers, 1 is sequential
	Refresh bool        // bypass the response cache
	Logger  *log.Logger // nil selects log.Default()
}

// Normalizer merges index metadata and download counts into records.
type Normalizer struct {
	meta  MetadataFetcher
	stats DownloadCounter
	opts  Options
}

// NewNormalizer creates a Normalizer.
func NewNormalizer(meta MetadataFetcher, stats DownloadCounter, opts Options) *Normalizer {
	if opts.Workers <= 0 {
		opts.Workers = DefaultWorkers
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	return &Normalizer{meta: meta, stats: stats, opts: opts}
}

// Normalize returns one record per identifier, in input order.
//
// Lookups for different identifiers run concurrently (bounded by
// Options.Workers). The first hard failure cancels the remaining lookups
// and is returned; a missing pinned release and unavailable statistics are
// not hard failures.
func (n *Normalizer) Normalize(ctx context.Context, ids []Identifier) ([]Record, error) {
	hooks := observability.Listing()
	hooks.OnNormalizeStart(ctx, len(ids))
	start := time.Now()

	records := make([]Record, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(n.opts.Workers)
	for i, id := range ids {
		g.Go(func() error {
			rec, err := n.normalizeOne(gctx, id)
			if err != nil {
				return fmt.Errorf("%s: %w", id, err)
			}
			records[i] = rec
			return nil
		})
	}
	err := g.Wait()
	hooks.OnNormalizeComplete(ctx, len(ids), time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (n *Normalizer) normalizeOne(ctx context.Context, id Identifier) (Record, error) {
	info, status, err := n.fetch(ctx, id)
	if err != nil {
		return Record{}, err
	}

	downloads, err := n.stats.RecentDownloads(ctx, info.Name, n.opts.Refresh)
	if err != nil {
		if !stderrors.Is(err, errors.ErrStatsUnavailable) {
			return Record{}, err
		}
		n.opts.Logger.Warn("download statistics unavailable", "package", info.Name, "err", err)
		downloads = 0
	}

	rec := Record{
		Name:             info.Name,
		Version:          info.Version,
		Summary:          info.Summary,
		Author:           info.Author,
		Downloads:        downloads,
		License:          info.License,
		HomePage:         info.HomePage,
		Status:           status,
		RequestedVersion: id.Version,
		ResolvedVersion:  info.Version,
	}
	if status == StatusLatestFallback {
		rec.Version = fallbackVersion(id.Version, info.Version)
	}
	return rec, nil
}

// fetch resolves metadata for id. A pinned release that the index does not
// serve (not found, or answered with a non-JSON body) falls back to the
// latest release. Failures of the unpinned lookup are always returned.
func (n *Normalizer) fetch(ctx context.Context, id Identifier) (*pypi.PackageInfo, RecordStatus, error) {
	info, err := n.meta.FetchPackage(ctx, id.Name, id.Version, n.opts.Refresh)
	if err == nil {
		return info, StatusExact, nil
	}
	if id.Version == "" || !releaseUnavailable(err) {
		return nil, StatusExact, err
	}

	n.opts.Logger.Debug("release unavailable, using latest", "package", id.Name, "version", id.Version, "err", err)
	info, err = n.meta.FetchPackage(ctx, id.Name, "", n.opts.Refresh)
	if err != nil {
		return nil, StatusExact, err
	}
	observability.Listing().OnFallback(ctx, id.Name, id.Version, info.Version)
	return info, StatusLatestFallback, nil
}

func releaseUnavailable(err error) bool {
	return stderrors.Is(err, errors.ErrNotFound) || stderrors.Is(err, errors.ErrMalformedResponse)
}
