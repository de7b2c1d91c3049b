package service

import (
	"context"
	"log/slog"

	"github.com/couchcryptid/disaster-helper/internal/domain"
	"github.com/couchcryptid/disaster-helper/internal/observability"
)

// fallbackWarning is shown once with a substituted sample report.
const fallbackWarning = "Live weather is unavailable; showing sample conditions."

// WeatherResult is a report plus an optional one-shot warning.
type WeatherResult struct {
	Report  domain.WeatherReport `json:"report"`
	Warning string               `json:"warning,omitempty"`
}

// Weather produces reports for a location.
type Weather struct {
	provider domain.WeatherProvider
	home     domain.Coordinates
	metrics  *observability.Metrics
	logger   *slog.Logger
}

// NewWeather creates the weather service. provider may be nil, in which
// case every report is the sample.
func NewWeather(provider domain.WeatherProvider, home domain.Coordinates, metrics *observability.Metrics, logger *slog.Logger) *Weather {
	return &Weather{provider: provider, home: home, metrics: metrics, logger: logger}
}

// Report fetches conditions for at, or the home location when at is nil.
// Provider failures yield the sample report with a warning.
func (s *Weather) Report(ctx context.Context, at *domain.Coordinates) WeatherResult {
	loc := s.home
	if at != nil {
		loc = *at
	}
	if s.provider == nil {
		s.metrics.WeatherRequests.WithLabelValues("fallback").Inc()
		return WeatherResult{Report: domain.SampleWeatherReport(), Warning: fallbackWarning}
	}

	raw, err := s.provider.Fetch(ctx, loc)
	if err != nil {
		s.logger.Warn("weather provider failed, using sample report", "error", err, "lat", loc.Lat, "lon", loc.Lon)
		s.metrics.WeatherRequests.WithLabelValues("fallback").Inc()
		return WeatherResult{Report: domain.SampleWeatherReport(), Warning: fallbackWarning}
	}
	s.metrics.WeatherRequests.WithLabelValues("success").Inc()
	return WeatherResult{Report: domain.BuildWeatherReport(raw)}
}
