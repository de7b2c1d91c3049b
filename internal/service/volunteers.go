package service

import (
	"context"
	"fmt"

	"github.com/couchcryptid/disaster-helper/internal/domain"
)

// Volunteers forwards sign-ups.
type Volunteers struct {
	submitter domain.VolunteerSubmitter
}

// NewVolunteers creates the volunteer service. A nil submitter disables the feature.
func NewVolunteers(submitter domain.VolunteerSubmitter) *Volunteers {
	return &Volunteers{submitter: submitter}
}

// Submit validates app and forwards it.
func (s *Volunteers) Submit(ctx context.Context, app domain.VolunteerApplication) error {
	if s.submitter == nil {
		return ErrFeatureDisabled
	}
	if err := app.Validate(); err != nil {
		return err
	}
	if err := s.submitter.SubmitVolunteer(ctx, app); err != nil {
		return fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	return nil
}
