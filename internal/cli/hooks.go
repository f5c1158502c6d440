package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pypeek/pkg/observability"
)

// logHooks reports library events as debug log lines.
type logHooks struct {
	logger *log.Logger
}

// registerLogHooks routes observability events to logger. Called for --verbose.
func registerLogHooks(logger *log.Logger) {
	h := &logHooks{logger: logger}
	observability.SetListingHooks(h)
	observability.SetCacheHooks(h)
	observability.SetHTTPHooks(h)
}

func (h *logHooks) OnNormalizeStart(_ context.Context, count int) {
	h.logger.Debug("resolving packages", "count", count)
}

func (h *logHooks) OnNormalizeComplete(_ context.Context, count int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("resolving failed", "count", count, "took", d.Round(time.Millisecond), "err", err)
		return
	}
	h.logger.Debug("resolved packages", "count", count, "took", d.Round(time.Millisecond))
}

func (h *logHooks) OnFallback(_ context.Context, name, requested, latest string) {
	h.logger.Warn("release not on PyPI, showing latest", "package", name, "requested", requested, "latest", latest)
}

func (h *logHooks) OnCacheHit(_ context.Context, namespace string) {
	h.logger.Debug("cache hit", "service", namespace)
}

func (h *logHooks) OnCacheMiss(_ context.Context, namespace string) {
	h.logger.Debug("cache miss", "service", namespace)
}

func (h *logHooks) OnCacheSet(_ context.Context, namespace string, size int) {
	h.logger.Debug("cached response", "service", namespace, "bytes", size)
}

func (h *logHooks) OnRequest(_ context.Context, method, host, path string) {
	h.logger.Debug("request", "method", method, "host", host, "path", path)
}

func (h *logHooks) OnResponse(_ context.Context, method, host, path string, status int, d time.Duration) {
	h.logger.Debug("response", "method", method, "host", host, "path", path, "status", status, "took", d.Round(time.Millisecond))
}

func (h *logHooks) OnError(_ context.Context, method, host, path string, err error) {
	h.logger.Debug("request failed", "method", method, "host", host, "path", path, "err", err)
}

var (
	_ observability.ListingHooks = (*logHooks)(nil)
	_ observability.CacheHooks   = (*logHooks)(nil)
	_ observability.HTTPHooks    = (*logHooks)(nil)
)
