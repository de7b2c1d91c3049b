package domain

import (
	"context"
	"log/slog"
)

// EnrichSOSLink attaches the reverse-geocoded place for at to link.
// A nil geocoder, a nil location, an empty result or a provider error all
// leave the link unchanged (graceful degradation).
func EnrichSOSLink(ctx context.Context, link SOSLink, at *Coordinates, geocoder Geocoder, logger *slog.Logger) SOSLink {
	if geocoder == nil || at == nil {
		return link
	}

	place, err := geocoder.ReverseGeocode(ctx, *at)
	if err != nil {
		logger.Warn("reverse geocoding failed",
			"lat", at.Lat,
			"lon", at.Lon,
			"error", err,
		)
		return link
	}
	if place.Name == "" && place.Address == "" {
		return link
	}
	link.Place = &place
	return link
}
