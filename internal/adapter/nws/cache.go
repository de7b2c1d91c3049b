package nws

import (
	"context"
	"time"

	"github.com/couchcryptid/disaster-helper/internal/domain"
	"github.com/couchcryptid/disaster-helper/internal/observability"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

// CachedProvider wraps a WeatherProvider with an expiring LRU cache keyed by
// the coordinate rounded to the API's four-decimal precision.
type CachedProvider struct {
	inner   domain.WeatherProvider
	cache   *expirable.LRU[string, domain.RawWeather]
	metrics *observability.Metrics
}

// NewCachedProvider creates a cache decorator around a weather provider.
func NewCachedProvider(inner domain.WeatherProvider, maxEntries int, ttl time.Duration, metrics *observability.Metrics) *CachedProvider {
	return &CachedProvider{
		inner:   inner,
		cache:   expirable.NewLRU[string, domain.RawWeather](maxEntries, nil, ttl),
		metrics: metrics,
	}
}

func (c *CachedProvider) Fetch(ctx context.Context, at domain.Coordinates) (domain.RawWeather, error) {
	key := formatPoint(at)
	if raw, ok := c.cache.Get(key); ok {
		c.metrics.WeatherCache.WithLabelValues("hit").Inc()
		return raw, nil
	}
	c.metrics.WeatherCache.WithLabelValues("miss").Inc()

	raw, err := c.inner.Fetch(ctx, at)
	if err != nil {
		return raw, err
	}
	// A report missing its advisories is served once and refetched next time.
	if !raw.AdvisoriesUnavailable {
		c.cache.Add(key, raw)
	}
	return raw, nil
}
