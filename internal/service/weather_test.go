package service

import (
	"context"
	"testing"

	"github.com/couchcryptid/disaster-helper/internal/domain"
	"github.com/couchcryptid/disaster-helper/internal/observability"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var home = domain.Coordinates{Lat: 40.7128, Lon: -74.006}

func TestWeather_LiveReport(t *testing.T) {
	p := &stubProvider{raw: domain.RawWeather{
		Location:    "Denver, CO",
		Temperature: 41,
		Description: "Light Snow",
		Advisories:  []domain.RawAdvisory{{Event: "Winter Storm Warning", Description: "Heavy snow"}},
	}}
	m := observability.NewMetricsForTesting()
	svc := NewWeather(p, home, m, discardLogger())

	at := domain.Coordinates{Lat: 39.74, Lon: -104.99}
	res := svc.Report(context.Background(), &at)

	assert.Equal(t, at, p.at)
	assert.Empty(t, res.Warning)
	assert.False(t, res.Report.Fallback)
	assert.Equal(t, domain.ConditionSnow, res.Report.Condition)
	require.Len(t, res.Report.Alerts, 1)
	assert.Equal(t, domain.AdvisoryHigh, res.Report.Alerts[0].Severity)
	assert.InDelta(t, 1, testutil.ToFloat64(m.WeatherRequests.WithLabelValues("success")), 0)
}

func TestWeather_MissingCoordinatesUseHome(t *testing.T) {
	p := &stubProvider{raw: domain.RawWeather{Description: "Sunny"}}
	svc := NewWeather(p, home, observability.NewMetricsForTesting(), discardLogger())

	svc.Report(context.Background(), nil)
	assert.Equal(t, home, p.at)
}

func TestWeather_ProviderFailureFallsBack(t *testing.T) {
	m := observability.NewMetricsForTesting()
	svc := NewWeather(&stubProvider{err: errBoom}, home, m, discardLogger())

	res := svc.Report(context.Background(), nil)
	assert.True(t, res.Report.Fallback)
	assert.NotEmpty(t, res.Warning)
	assert.Equal(t, "Current Location", res.Report.Location)
	assert.InDelta(t, 1, testutil.ToFloat64(m.WeatherRequests.WithLabelValues("fallback")), 0)
}

func TestWeather_NoProvider(t *testing.T) {
	svc := NewWeather(nil, home, observability.NewMetricsForTesting(), discardLogger())

	res := svc.Report(context.Background(), nil)
	assert.True(t, res.Report.Fallback)
	assert.NotEmpty(t, res.Warning)
}
