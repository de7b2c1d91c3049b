// Package nws fetches current conditions, forecasts and active advisories
// from the National Weather Service API (api.weather.gov).
package nws

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/couchcryptid/disaster-helper/internal/domain"
	"github.com/couchcryptid/disaster-helper/internal/observability"
)

// forecastDays is how many daytime periods are kept from the forecast.
const forecastDays = 5

// Client implements domain.WeatherProvider using the NWS API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates an NWS client. The API rejects requests without a
// User-Agent identifying the caller.
func NewClient(baseURL, userAgent string, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		userAgent:  userAgent,
		metrics:    metrics,
		logger:     logger,
	}
}

// Fetch resolves the grid point for at, then loads its forecast and the
// active advisories. Advisory failures are logged, leave the list empty and
// mark the result as AdvisoriesUnavailable.
func (c *Client) Fetch(ctx context.Context, at domain.Coordinates) (domain.RawWeather, error) {
	start := time.Now()
	defer func() { c.metrics.WeatherAPIDuration.Observe(time.Since(start).Seconds()) }()

	point := formatPoint(at)

	var pt pointResponse
	if err := c.getJSON(ctx, c.baseURL+"/points/"+point, &pt); err != nil {
		return domain.RawWeather{}, fmt.Errorf("points lookup: %w", err)
	}
	if pt.Properties.Forecast == "" {
		return domain.RawWeather{}, fmt.Errorf("points lookup: no forecast for %s", point)
	}

	var fc forecastResponse
	if err := c.getJSON(ctx, pt.Properties.Forecast, &fc); err != nil {
		return domain.RawWeather{}, fmt.Errorf("forecast: %w", err)
	}
	if len(fc.Properties.Periods) == 0 {
		return domain.RawWeather{}, fmt.Errorf("forecast: no periods for %s", point)
	}

	raw := buildRawWeather(pt, fc)

	advisories, err := c.FetchAdvisories(ctx, at)
	if err != nil {
		c.logger.Warn("weather advisories unavailable", "point", point, "error", err)
		raw.AdvisoriesUnavailable = true
	} else {
		raw.Advisories = advisories
	}
	return raw, nil
}

// FetchAdvisories returns only the active advisories for at.
func (c *Client) FetchAdvisories(ctx context.Context, at domain.Coordinates) ([]domain.RawAdvisory, error) {
	var alerts alertsResponse
	if err := c.getJSON(ctx, c.baseURL+"/alerts/active?point="+formatPoint(at), &alerts); err != nil {
		return nil, fmt.Errorf("active alerts: %w", err)
	}
	out := make([]domain.RawAdvisory, 0, len(alerts.Features))
	for _, f := range alerts.Features {
		out = append(out, domain.RawAdvisory{
			Event:       f.Properties.Event,
			Description: firstNonEmpty(f.Properties.Headline, f.Properties.Description),
		})
	}
	return out, nil
}

func (c *Client) getJSON(ctx context.Context, url string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/geo+json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("nws API error: status %d: %s", resp.StatusCode, body)
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func buildRawWeather(pt pointResponse, fc forecastResponse) domain.RawWeather {
	now := fc.Properties.Periods[0]
	raw := domain.RawWeather{
		Location:      pt.location(),
		Temperature:   toFahrenheit(now.Temperature, now.TemperatureUnit),
		Humidity:      int(now.RelativeHumidity.Value),
		WindSpeed:     parseWindSpeed(now.WindSpeed),
		WindDirection: now.WindDirection,
		Description:   now.ShortForecast,
		Forecast:      make([]domain.RawForecastDay, 0, forecastDays),
	}

	for i, p := range fc.Properties.Periods {
		if len(raw.Forecast) == forecastDays {
			break
		}
		// The first period may be "Tonight"; keep it so the list starts at the current period.
		if i > 0 && !p.IsDaytime {
			continue
		}
		raw.Forecast = append(raw.Forecast, domain.RawForecastDay{
			Day:         p.Name,
			Temperature: toFahrenheit(p.Temperature, p.TemperatureUnit),
			Description: p.ShortForecast,
		})
	}
	return raw
}

// NWS accepts at most four decimal places in point coordinates.
func formatPoint(at domain.Coordinates) string {
	return strconv.FormatFloat(at.Lat, 'f', 4, 64) + "," + strconv.FormatFloat(at.Lon, 'f', 4, 64)
}

var windSpeedRe = regexp.MustCompile(`\d+`)

// parseWindSpeed takes the upper bound of "5 to 10 mph" style ranges.
func parseWindSpeed(s string) int {
	best := 0
	for _, m := range windSpeedRe.FindAllString(s, -1) {
		if n, err := strconv.Atoi(m); err == nil && n > best {
			best = n
		}
	}
	return best
}

func toFahrenheit(t float64, unit string) int {
	if strings.EqualFold(unit, "C") {
		t = t*9/5 + 32
	}
	if t < 0 {
		return int(t - 0.5)
	}
	return int(t + 0.5)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

// NWS API response types.

type pointResponse struct {
	Properties struct {
		Forecast         string `json:"forecast"`
		RelativeLocation struct {
			Properties struct {
				City  string `json:"city"`
				State string `json:"state"`
			} `json:"properties"`
		} `json:"relativeLocation"`
	} `json:"properties"`
}

func (p pointResponse) location() string {
	loc := p.Properties.RelativeLocation.Properties
	switch {
	case loc.City != "" && loc.State != "":
		return loc.City + ", " + loc.State
	case loc.City != "":
		return loc.City
	default:
		return "Current Location"
	}
}

type forecastResponse struct {
	Properties struct {
		Periods []period `json:"periods"`
	} `json:"properties"`
}

type period struct {
	Name             string  `json:"name"`
	IsDaytime        bool    `json:"isDaytime"`
	Temperature      float64 `json:"temperature"`
	TemperatureUnit  string  `json:"temperatureUnit"`
	WindSpeed        string  `json:"windSpeed"`
	WindDirection    string  `json:"windDirection"`
	ShortForecast    string  `json:"shortForecast"`
	RelativeHumidity struct {
		Value float64 `json:"value"`
	} `json:"relativeHumidity"`
}

type alertsResponse struct {
	Features []struct {
		Properties struct {
			Event       string `json:"event"`
			Headline    string `json:"headline"`
			Description string `json:"description"`
		} `json:"properties"`
	} `json:"features"`
}
