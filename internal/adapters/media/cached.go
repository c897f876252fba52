package media

import (
	"context"
	"log/slog"

	"voice-session-bot/internal/core/domain"
	"voice-session-bot/internal/core/ports"
	"voice-session-bot/internal/metrics"
)

// CachedResolver consults the metadata cache before the wrapped resolver and
// stores fresh results. Cache failures never fail a resolution.
type CachedResolver struct {
	next  ports.MediaResolver
	cache ports.MetadataCache
}

func NewCachedResolver(next ports.MediaResolver, cache ports.MetadataCache) *CachedResolver {
	return &CachedResolver{next: next, cache: cache}
}

func (c *CachedResolver) Resolve(ctx context.Context, source string) (domain.TrackDescriptor, error) {
	cached, err := c.cache.Get(ctx, source)
	switch {
	case err != nil:
		metrics.MetadataCacheLookups.WithLabelValues("error").Inc()
		slog.Warn("Metadata cache lookup failed", "source", source, "error", err)
	case cached != nil:
		metrics.MetadataCacheLookups.WithLabelValues("hit").Inc()
		return *cached, nil
	default:
		metrics.MetadataCacheLookups.WithLabelValues("miss").Inc()
	}

	track, err := c.next.Resolve(ctx, source)
	if err != nil {
		return domain.TrackDescriptor{}, err
	}

	if err := c.cache.Set(ctx, source, track); err != nil {
		slog.Warn("Failed to cache metadata", "source", source, "error", err)
	}
	return track, nil
}
