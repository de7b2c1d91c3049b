package mapbox

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/couchcryptid/disaster-helper/internal/domain"
	"github.com/couchcryptid/disaster-helper/internal/observability"
)

const defaultBaseURL = "https://api.mapbox.com/search/geocode/v6"

// featureTypes are the feature kinds worth putting in a distress message,
// most specific first.
const featureTypes = "address,street,place"

// Client implements domain.Geocoder against the Mapbox v6 reverse geocoding
// endpoint.
type Client struct {
	token      string
	httpClient *http.Client
	baseURL    string
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates a Mapbox geocoding client.
func NewClient(token string, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		token:      token,
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    defaultBaseURL,
		metrics:    metrics,
		logger:     logger,
	}
}

// ReverseGeocode returns the feature nearest to at. Open water and other
// unaddressable points yield an empty Place and no error.
func (c *Client) ReverseGeocode(ctx context.Context, at domain.Coordinates) (domain.Place, error) {
	params := url.Values{
		"longitude":    {strconv.FormatFloat(at.Lon, 'f', 6, 64)},
		"latitude":     {strconv.FormatFloat(at.Lat, 'f', 6, 64)},
		"types":        {featureTypes},
		"limit":        {"1"},
		"access_token": {c.token},
	}

	start := time.Now()
	place, err := c.reverse(ctx, c.baseURL+"/reverse?"+params.Encode())
	c.metrics.GeocodeAPIDuration.Observe(time.Since(start).Seconds())

	outcome := "success"
	switch {
	case err != nil:
		outcome = "error"
	case place.Address == "" && place.Name == "":
		outcome = "empty"
	}
	c.metrics.GeocodeRequests.WithLabelValues(outcome).Inc()
	if err != nil {
		c.logger.Debug("mapbox reverse geocode failed", "error", err)
	}
	return place, err
}

func (c *Client) reverse(ctx context.Context, fullURL string) (domain.Place, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return domain.Place{}, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.Place{}, fmt.Errorf("reverse geocode request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return domain.Place{}, fmt.Errorf("mapbox API error: status %d: %s", resp.StatusCode, body)
	}

	var fc featureCollection
	if err := json.NewDecoder(resp.Body).Decode(&fc); err != nil {
		return domain.Place{}, fmt.Errorf("decode response: %w", err)
	}
	if len(fc.Features) == 0 {
		return domain.Place{}, nil
	}
	return fc.Features[0].Properties.place(), nil
}

// v6 response types. Only the fields a distress message needs are decoded.

type featureCollection struct {
	Features []feature `json:"features"`
}

type feature struct {
	Properties properties `json:"properties"`
}

type properties struct {
	FeatureType string `json:"feature_type"`
	Name        string `json:"name"`
	FullAddress string `json:"full_address"`
	Context     struct {
		Place *struct {
			Name string `json:"name"`
		} `json:"place"`
	} `json:"context"`
}

func (p properties) place() domain.Place {
	out := domain.Place{
		Name:    p.Name,
		Address: p.FullAddress,
		Kind:    p.FeatureType,
	}
	if p.Context.Place != nil {
		out.Locality = p.Context.Place.Name
	}
	// A place-level feature is its own locality.
	if out.Locality == "" && p.FeatureType == "place" {
		out.Locality = p.Name
	}
	return out
}
