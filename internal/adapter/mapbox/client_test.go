package mapbox

import (
	"context"
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

const testToken = "test-token"

var (
	austin     = domain.Coordinates{Lat: 30.2672, Lon: -97.7431}
	oceanPoint = domain.Coordinates{Lat: 0.1, Lon: -160}
)

func testMetrics() *observability.Metrics {
	return observability.NewMetricsForTesting()
}

func testClient(baseURL string) *Client {
	return &Client{
		token:      testToken,
		httpClient: &http.Client{Timeout: 5 * time.Second},
		baseURL:    baseURL,
		metrics:    testMetrics(),
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func serveJSON(t *testing.T, body string, check func(*http.Request)) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if check != nil {
			check(r)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_ReverseGeocode_Address(t *testing.T) {
	srv := serveJSON(t, `{"type":"FeatureCollection","features":[{"properties":{
		"feature_type":"address",
		"name":"301 W 2nd St",
		"full_address":"301 W 2nd St, Austin, Texas 78701, United States",
		"context":{"place":{"name":"Austin"}}}}]}`,
		func(r *http.Request) {
			assert.Equal(t, "/reverse", r.URL.Path)
			q := r.URL.Query()
			assert.Equal(t, "-97.743100", q.Get("longitude"))
			assert.Equal(t, "30.267200", q.Get("latitude"))
			assert.Equal(t, "address,street,place", q.Get("types"))
			assert.Equal(t, "1", q.Get("limit"))
			assert.Equal(t, testToken, q.Get("access_token"))
		})

	c := testClient(srv.URL)
	place, err := c.ReverseGeocode(context.Background(), austin)
	require.NoError(t, err)

	assert.Equal(t, domain.Place{
		Name:     "301 W 2nd St",
		Address:  "301 W 2nd St, Austin, Texas 78701, United States",
		Locality: "Austin",
		Kind:     "address",
	}, place)
	assert.InDelta(t, 1, testutil.ToFloat64(c.metrics.GeocodeRequests.WithLabelValues("success")), 0)
}

func TestClient_ReverseGeocode_PlaceIsItsOwnLocality(t *testing.T) {
	srv := serveJSON(t, `{"features":[{"properties":{
		"feature_type":"place","name":"Austin","full_address":"Austin, Texas, United States"}}]}`, nil)

	place, err := testClient(srv.URL).ReverseGeocode(context.Background(), austin)
	require.NoError(t, err)
	assert.Equal(t, "Austin", place.Locality)
	assert.Equal(t, "place", place.Kind)
}

func TestClient_ReverseGeocode_NoResults(t *testing.T) {
	srv := serveJSON(t, `{"type":"FeatureCollection","features":[]}`, nil)

	c := testClient(srv.URL)
	place, err := c.ReverseGeocode(context.Background(), oceanPoint)
	require.NoError(t, err)
	assert.Equal(t, domain.Place{}, place)
	assert.InDelta(t, 1, testutil.ToFloat64(c.metrics.GeocodeRequests.WithLabelValues("empty")), 0)
}

func TestClient_ReverseGeocode_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Not Authorized - Invalid Token"}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	_, err := c.ReverseGeocode(context.Background(), austin)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mapbox API error: status 401")
	assert.InDelta(t, 1, testutil.ToFloat64(c.metrics.GeocodeRequests.WithLabelValues("error")), 0)
}

func TestClient_ReverseGeocode_MalformedBody(t *testing.T) {
	srv := serveJSON(t, `{"features":`, nil)

	_, err := testClient(srv.URL).ReverseGeocode(context.Background(), austin)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode response")
}

func TestClient_ReverseGeocode_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	c.httpClient = &http.Client{Timeout: 50 * time.Millisecond}

	_, err := c.ReverseGeocode(context.Background(), austin)
	require.Error(t, err)
}
