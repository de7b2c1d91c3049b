package service

import (
	"context"
	"log/slog"

	"github.com/couchcryptid/disaster-helper/internal/domain"
)

// SOS builds distress deep links.
type SOS struct {
	number   string
	geocoder domain.Geocoder
	logger   *slog.Logger
}

// NewSOS creates the SOS service. geocoder may be nil.
func NewSOS(number string, geocoder domain.Geocoder, logger *slog.Logger) *SOS {
	return &SOS{number: number, geocoder: geocoder, logger: logger}
}

// Build returns the link for at. A nil location omits the map link.
func (s *SOS) Build(ctx context.Context, at *domain.Coordinates) domain.SOSLink {
	link := domain.BuildSOSLink(s.number, at)
	return domain.EnrichSOSLink(ctx, link, at, s.geocoder, s.logger)
}
