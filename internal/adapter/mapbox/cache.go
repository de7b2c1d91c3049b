package mapbox

import (
	"context"
	"fmt"
	"math"

	"github.com/couchcryptid/disaster-helper/internal/domain"
	"github.com/couchcryptid/disaster-helper/internal/observability"
	lru "github.com/hashicorp/golang-lru/v2"
)

// cellPrecision rounds coordinates to four decimals (about 11 m) so repeated
// SOS requests from a jittering GPS fix share one cache entry.
const cellPrecision = 1e4

// CachedGeocoder is an LRU cache in front of a Geocoder, keyed by grid cell.
type CachedGeocoder struct {
	inner   domain.Geocoder
	cache   *lru.Cache[string, domain.Place]
	metrics *observability.Metrics
}

// NewCachedGeocoder wraps inner. maxEntries must be positive.
func NewCachedGeocoder(inner domain.Geocoder, maxEntries int, metrics *observability.Metrics) (*CachedGeocoder, error) {
	cache, err := lru.New[string, domain.Place](maxEntries)
	if err != nil {
		return nil, fmt.Errorf("create geocode cache: %w", err)
	}
	return &CachedGeocoder{inner: inner, cache: cache, metrics: metrics}, nil
}

func cellKey(at domain.Coordinates) string {
	return fmt.Sprintf("%.0f:%.0f", math.Round(at.Lat*cellPrecision), math.Round(at.Lon*cellPrecision))
}

func (c *CachedGeocoder) ReverseGeocode(ctx context.Context, at domain.Coordinates) (domain.Place, error) {
	key := cellKey(at)
	if place, ok := c.cache.Get(key); ok {
		c.metrics.GeocodeCache.WithLabelValues("hit").Inc()
		return place, nil
	}
	c.metrics.GeocodeCache.WithLabelValues("miss").Inc()

	place, err := c.inner.ReverseGeocode(ctx, at)
	if err != nil {
		return place, err
	}
	// Empty results stay uncached; the next fix may land on a road.
	if place.Address != "" {
		c.cache.Add(key, place)
	}
	return place, nil
}
