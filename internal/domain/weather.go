package domain

import (
	"context"
	"strings"
	"time"
)

// Condition is the fixed six-value weather condition shown to users.
type Condition string

const (
	ConditionClear  Condition = "clear"
	ConditionCloudy Condition = "cloudy"
	ConditionRain   Condition = "rain"
	ConditionStorm  Condition = "storm"
	ConditionSnow   Condition = "snow"
	ConditionFog    Condition = "fog"
)

// AdvisorySeverity is the three-level urgency of a weather advisory.
type AdvisorySeverity string

const (
	AdvisoryHigh   AdvisorySeverity = "high"
	AdvisoryMedium AdvisorySeverity = "medium"
	AdvisoryLow    AdvisorySeverity = "low"
)

// Coordinates is a WGS-84 latitude/longitude pair.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// conditionRule maps provider text containing any keyword to a condition.
type conditionRule struct {
	keywords  []string
	condition Condition
}

// conditionRules are evaluated in order; "Thunderstorms and rain" is a storm
// and "Rain and snow" is snow.
var conditionRules = []conditionRule{
	{keywords: []string{"thunder", "storm", "hurricane", "tornado", "lightning"}, condition: ConditionStorm},
	{keywords: []string{"snow", "sleet", "blizzard", "flurr", "ice pellets", "freezing"}, condition: ConditionSnow},
	{keywords: []string{"rain", "shower", "drizzle"}, condition: ConditionRain},
	{keywords: []string{"fog", "mist", "haze", "smoke"}, condition: ConditionFog},
	{keywords: []string{"cloud", "overcast"}, condition: ConditionCloudy},
	{keywords: []string{"clear", "sunny", "fair"}, condition: ConditionClear},
}

// MapCondition maps a provider condition string onto the six-value enum.
// Unrecognised text maps to cloudy.
func MapCondition(text string) Condition {
	lower := strings.ToLower(text)
	for _, r := range conditionRules {
		for _, kw := range r.keywords {
			if strings.Contains(lower, kw) {
				return r.condition
			}
		}
	}
	return ConditionCloudy
}

var (
	highAdvisoryKeywords   = []string{"warning", "emergency", "extreme", "severe", "tornado", "hurricane"}
	mediumAdvisoryKeywords = []string{"watch", "advisory", "statement", "flood"}
)

// ClassifyAdvisory derives an advisory's severity from its event name by
// case-insensitive substring match against the high list, then the medium
// list. Anything else is low.
func ClassifyAdvisory(event string) AdvisorySeverity {
	lower := strings.ToLower(event)
	if containsAny(lower, highAdvisoryKeywords) {
		return AdvisoryHigh
	}
	if containsAny(lower, mediumAdvisoryKeywords) {
		return AdvisoryMedium
	}
	return AdvisoryLow
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

// RawWeather is what a weather provider returns before classification.
type RawWeather struct {
	Location      string
	Temperature   int
	Humidity      int
	WindSpeed     int
	WindDirection string
	Description   string
	Forecast      []RawForecastDay
	Advisories    []RawAdvisory

	// AdvisoriesUnavailable is set when the forecast loaded but the
	// advisory lookup failed, so Advisories may be incomplete.
	AdvisoriesUnavailable bool
}

// RawForecastDay is one provider forecast period.
type RawForecastDay struct {
	Day         string
	Temperature int
	Description string
}

// RawAdvisory is one active provider advisory.
type RawAdvisory struct {
	Event       string
	Description string
}

// WeatherProvider fetches current conditions, forecast and advisories.
type WeatherProvider interface {
	Fetch(ctx context.Context, at Coordinates) (RawWeather, error)
}

// AdvisorySource fetches only the active advisories for a location.
type AdvisorySource interface {
	FetchAdvisories(ctx context.Context, at Coordinates) ([]RawAdvisory, error)
}

// ForecastDay is a classified forecast period.
type ForecastDay struct {
	Day         string    `json:"day"`
	Temperature int       `json:"temperature"`
	Condition   Condition `json:"condition"`
}

// Advisory is a classified weather advisory.
type Advisory struct {
	Type        string           `json:"type"`
	Description string           `json:"description"`
	Severity    AdvisorySeverity `json:"severity"`
}

// WeatherReport is the weather view model.
type WeatherReport struct {
	Location      string        `json:"location"`
	Temperature   int           `json:"temperature"`
	Humidity      int           `json:"humidity"`
	WindSpeed     int           `json:"windSpeed"`
	WindDirection string        `json:"windDirection"`
	Description   string        `json:"description"`
	Condition     Condition     `json:"condition"`
	Forecast      []ForecastDay `json:"forecast"`
	Alerts        []Advisory    `json:"alerts"`
	LastUpdated   string        `json:"lastUpdated"`
	Fallback      bool          `json:"fallback"`
}

// maxForecastDays caps the forecast shown to the user.
const maxForecastDays = 5

// BuildWeatherReport classifies a provider response.
func BuildWeatherReport(raw RawWeather) WeatherReport {
	report := WeatherReport{
		Location:      raw.Location,
		Temperature:   raw.Temperature,
		Humidity:      raw.Humidity,
		WindSpeed:     raw.WindSpeed,
		WindDirection: raw.WindDirection,
		Description:   raw.Description,
		Condition:     MapCondition(raw.Description),
		Forecast:      make([]ForecastDay, 0, maxForecastDays),
		Alerts:        ClassifyAdvisories(raw.Advisories),
		LastUpdated:   Now().Format(time.Kitchen),
	}
	for i, f := range raw.Forecast {
		if i == maxForecastDays {
			break
		}
		report.Forecast = append(report.Forecast, ForecastDay{
			Day:         f.Day,
			Temperature: f.Temperature,
			Condition:   MapCondition(f.Description),
		})
	}
	return report
}

// ClassifyAdvisories converts provider advisories into classified ones.
func ClassifyAdvisories(raw []RawAdvisory) []Advisory {
	out := make([]Advisory, 0, len(raw))
	for _, a := range raw {
		out = append(out, Advisory{
			Type:        a.Event,
			Description: a.Description,
			Severity:    ClassifyAdvisory(a.Event),
		})
	}
	return out
}

// SampleWeatherReport is the static report substituted when the provider
// cannot be reached.
func SampleWeatherReport() WeatherReport {
	return WeatherReport{
		Location:      "Current Location",
		Temperature:   68,
		Humidity:      75,
		WindSpeed:     12,
		WindDirection: "NE",
		Description:   "Partly Cloudy",
		Condition:     ConditionCloudy,
		Forecast: []ForecastDay{
			{Day: "Today", Temperature: 68, Condition: ConditionCloudy},
			{Day: "Tomorrow", Temperature: 72, Condition: ConditionClear},
			{Day: "Wed", Temperature: 65, Condition: ConditionRain},
			{Day: "Thu", Temperature: 63, Condition: ConditionRain},
			{Day: "Fri", Temperature: 70, Condition: ConditionCloudy},
		},
		Alerts: []Advisory{
			{Type: "Flood Watch", Description: "Potential flooding in low-lying areas due to recent rainfall.", Severity: AdvisoryMedium},
		},
		LastUpdated: Now().Format(time.Kitchen),
		Fallback:    true,
	}
}
