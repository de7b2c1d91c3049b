package observability

import (
	"context"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
)

// ReadinessGroup is ready when every member is ready. Nil members are skipped.
type ReadinessGroup []sharedobs.ReadinessChecker

// CheckReadiness returns the first member's error, if any.
func (g ReadinessGroup) CheckReadiness(ctx context.Context) error {
	for _, c := range g {
		if c == nil {
			continue
		}
		if err := c.CheckReadiness(ctx); err != nil {
			return err
		}
	}
	return nil
}
