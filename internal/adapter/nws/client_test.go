package nws

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/couchcryptid/disaster-helper/internal/domain"
	"github.com/couchcryptid/disaster-helper/internal/observability"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testUserAgent     = "disaster-helper-test"
	contentTypeJSON   = "application/geo+json"
	headerContentType = "Content-Type"
)

var testPoint = domain.Coordinates{Lat: 40.71284, Lon: -74.00601}

func testClient(baseURL string) *Client {
	return NewClient(baseURL, testUserAgent, 5*time.Second, observability.NewMetricsForTesting(),
		slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func writeJSON(t *testing.T, w http.ResponseWriter, body string) {
	t.Helper()
	w.Header().Set(headerContentType, contentTypeJSON)
	_, err := io.WriteString(w, body)
	require.NoError(t, err)
}

// nwsServer fakes the three NWS endpoints the client calls.
func nwsServer(t *testing.T, alertsStatus int) *httptest.Server {
	t.Helper()
	var srv *httptest.Server
	mux := http.NewServeMux()
	mux.HandleFunc("GET /points/{point}", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "40.7128,-74.0060", r.PathValue("point"))
		assert.Equal(t, testUserAgent, r.Header.Get("User-Agent"))
		writeJSON(t, w, fmt.Sprintf(`{"properties":{"forecast":"%s/gridpoints/OKX/33,35/forecast",
			"relativeLocation":{"properties":{"city":"Hoboken","state":"NJ"}}}}`, srv.URL))
	})
	mux.HandleFunc("GET /gridpoints/OKX/33,35/forecast", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(t, w, `{"properties":{"periods":[
			{"name":"Tonight","isDaytime":false,"temperature":61,"temperatureUnit":"F","windSpeed":"5 to 10 mph","windDirection":"NE","shortForecast":"Patchy Fog","relativeHumidity":{"value":88}},
			{"name":"Saturday","isDaytime":true,"temperature":72,"temperatureUnit":"F","windSpeed":"10 mph","windDirection":"S","shortForecast":"Sunny"},
			{"name":"Saturday Night","isDaytime":false,"temperature":60,"temperatureUnit":"F","shortForecast":"Clear"},
			{"name":"Sunday","isDaytime":true,"temperature":20,"temperatureUnit":"C","shortForecast":"Chance Rain Showers"},
			{"name":"Monday","isDaytime":true,"temperature":65,"temperatureUnit":"F","shortForecast":"Thunderstorms"},
			{"name":"Tuesday","isDaytime":true,"temperature":50,"temperatureUnit":"F","shortForecast":"Snow Likely"},
			{"name":"Wednesday","isDaytime":true,"temperature":55,"temperatureUnit":"F","shortForecast":"Cloudy"}
		]}}`)
	})
	mux.HandleFunc("GET /alerts/active", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "40.7128,-74.0060", r.URL.Query().Get("point"))
		if alertsStatus != http.StatusOK {
			w.WriteHeader(alertsStatus)
			return
		}
		writeJSON(t, w, `{"features":[
			{"properties":{"event":"Coastal Flood Advisory","headline":"Coastal Flood Advisory until 6 PM","description":"Minor flooding"}},
			{"properties":{"event":"Heat Warning","headline":"","description":"Dangerous heat"}}
		]}`)
	})
	srv = httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_Fetch_Success(t *testing.T) {
	srv := nwsServer(t, http.StatusOK)

	raw, err := testClient(srv.URL).Fetch(context.Background(), testPoint)
	require.NoError(t, err)

	assert.Equal(t, "Hoboken, NJ", raw.Location)
	assert.Equal(t, 61, raw.Temperature)
	assert.Equal(t, 88, raw.Humidity)
	assert.Equal(t, 10, raw.WindSpeed)
	assert.Equal(t, "NE", raw.WindDirection)
	assert.Equal(t, "Patchy Fog", raw.Description)

	require.Len(t, raw.Forecast, 5)
	assert.Equal(t, "Tonight", raw.Forecast[0].Day)
	assert.Equal(t, "Saturday", raw.Forecast[1].Day)
	assert.Equal(t, "Sunday", raw.Forecast[2].Day, "night periods after the first are skipped")
	assert.Equal(t, 68, raw.Forecast[2].Temperature, "celsius is converted")
	assert.Equal(t, "Tuesday", raw.Forecast[4].Day)

	require.Len(t, raw.Advisories, 2)
	assert.Equal(t, "Coastal Flood Advisory", raw.Advisories[0].Event)
	assert.Equal(t, "Coastal Flood Advisory until 6 PM", raw.Advisories[0].Description)
	assert.Equal(t, "Dangerous heat", raw.Advisories[1].Description, "falls back to description when headline is empty")
	assert.False(t, raw.AdvisoriesUnavailable)
}

func TestClient_Fetch_AlertsFailureIsNotFatal(t *testing.T) {
	srv := nwsServer(t, http.StatusInternalServerError)

	raw, err := testClient(srv.URL).Fetch(context.Background(), testPoint)
	require.NoError(t, err)
	assert.Empty(t, raw.Advisories)
	assert.True(t, raw.AdvisoriesUnavailable)
	assert.Len(t, raw.Forecast, 5)
}

func TestClient_Fetch_PointsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"title":"Data Unavailable For Requested Point"}`))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Fetch(context.Background(), testPoint)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")
	assert.Contains(t, err.Error(), "Data Unavailable")
}

func TestClient_Fetch_MalformedJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(t, w, `{not json`)
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Fetch(context.Background(), testPoint)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode response")
}

func TestClient_Fetch_ContextCancelled(t *testing.T) {
	srv := nwsServer(t, http.StatusOK)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := testClient(srv.URL).Fetch(ctx, testPoint)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestClient_FetchAdvisories(t *testing.T) {
	srv := nwsServer(t, http.StatusOK)

	advisories, err := testClient(srv.URL).FetchAdvisories(context.Background(), testPoint)
	require.NoError(t, err)
	require.Len(t, advisories, 2)
	assert.Equal(t, "Heat Warning", advisories[1].Event)
}

func TestParseWindSpeed(t *testing.T) {
	assert.Equal(t, 10, parseWindSpeed("10 mph"))
	assert.Equal(t, 15, parseWindSpeed("5 to 15 mph"))
	assert.Equal(t, 0, parseWindSpeed(""))
}

func TestToFahrenheit(t *testing.T) {
	assert.Equal(t, 72, toFahrenheit(72, "F"))
	assert.Equal(t, 32, toFahrenheit(0, "C"))
	assert.Equal(t, -4, toFahrenheit(-20, "C"))
}

// --- CachedProvider tests ---

type countingProvider struct {
	calls int
	raw   domain.RawWeather
	err   error
}

func (p *countingProvider) Fetch(_ context.Context, _ domain.Coordinates) (domain.RawWeather, error) {
	p.calls++
	return p.raw, p.err
}

func TestCachedProvider_Hit(t *testing.T) {
	inner := &countingProvider{raw: domain.RawWeather{Location: "Hoboken, NJ"}}
	metrics := observability.NewMetricsForTesting()
	cached := NewCachedProvider(inner, 10, time.Minute, metrics)

	r1, err := cached.Fetch(context.Background(), testPoint)
	require.NoError(t, err)
	r2, err := cached.Fetch(context.Background(), domain.Coordinates{Lat: 40.71281, Lon: -74.00599})
	require.NoError(t, err)

	assert.Equal(t, r1, r2)
	assert.Equal(t, 1, inner.calls, "nearby coordinates share a cache entry")
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.WeatherCache.WithLabelValues("hit")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.WeatherCache.WithLabelValues("miss")), 0)
}

func TestCachedProvider_ErrorsNotCached(t *testing.T) {
	inner := &countingProvider{err: errors.New("timeout")}
	cached := NewCachedProvider(inner, 10, time.Minute, observability.NewMetricsForTesting())

	_, err := cached.Fetch(context.Background(), testPoint)
	require.Error(t, err)
	_, err = cached.Fetch(context.Background(), testPoint)
	require.Error(t, err)

	assert.Equal(t, 2, inner.calls)
}

func TestCachedProvider_ReportWithoutAdvisoriesNotCached(t *testing.T) {
	inner := &countingProvider{raw: domain.RawWeather{Location: "Hoboken, NJ", AdvisoriesUnavailable: true}}
	cached := NewCachedProvider(inner, 10, time.Minute, observability.NewMetricsForTesting())

	r1, err := cached.Fetch(context.Background(), testPoint)
	require.NoError(t, err)
	assert.Equal(t, "Hoboken, NJ", r1.Location)

	inner.raw = domain.RawWeather{Location: "Hoboken, NJ", Advisories: []domain.RawAdvisory{{Event: "Heat Warning"}}}
	r2, err := cached.Fetch(context.Background(), testPoint)
	require.NoError(t, err)
	require.Len(t, r2.Advisories, 1)

	_, err = cached.Fetch(context.Background(), testPoint)
	require.NoError(t, err)
	assert.Equal(t, 2, inner.calls, "the complete report is cached")
}

func TestCachedProvider_Expiry(t *testing.T) {
	inner := &countingProvider{}
	cached := NewCachedProvider(inner, 10, 20*time.Millisecond, observability.NewMetricsForTesting())

	_, _ = cached.Fetch(context.Background(), testPoint)
	time.Sleep(60 * time.Millisecond)
	_, _ = cached.Fetch(context.Background(), testPoint)

	assert.Equal(t, 2, inner.calls)
}

