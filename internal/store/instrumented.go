package store

import (
	"context"
	"strings"

	"github.com/couchcryptid/disaster-helper/internal/observability"
)

// Instrumented counts backend loads and saves per collection.
type Instrumented struct {
	inner   Backend
	metrics *observability.Metrics
}

// NewInstrumented wraps inner with operation counters.
func NewInstrumented(inner Backend, metrics *observability.Metrics) *Instrumented {
	return &Instrumented{inner: inner, metrics: metrics}
}

func (b *Instrumented) Load(ctx context.Context, key string) ([]byte, bool, error) {
	data, ok, err := b.inner.Load(ctx, key)
	outcome := "success"
	switch {
	case err != nil:
		outcome = "error"
	case !ok:
		outcome = "absent"
	}
	b.metrics.StoreOperations.WithLabelValues(collectionOf(key), "load", outcome).Inc()
	return data, ok, err
}

func (b *Instrumented) Save(ctx context.Context, key string, data []byte) error {
	err := b.inner.Save(ctx, key, data)
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	b.metrics.StoreOperations.WithLabelValues(collectionOf(key), "save", outcome).Inc()
	return err
}

// collectionOf strips the session prefix from a scoped key.
func collectionOf(key string) string {
	if i := strings.LastIndex(key, ":"); i >= 0 {
		return key[i+1:]
	}
	return key
}
