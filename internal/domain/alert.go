package domain

import (
	"strings"
	"time"
)

// Severity is the user-facing urgency of an alert.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
)

// Valid reports whether s is one of the four alert severities.
func (s Severity) Valid() bool {
	switch s {
	case SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow:
		return true
	}
	return false
}

const (
	defaultAlertType        = "Weather"
	defaultAlertInstruction = "Stay safe"
)

// Alert is a user- or system-declared hazard notice.
type Alert struct {
	ID           string   `json:"id"`
	Type         string   `json:"type"`
	Title        string   `json:"title"`
	Location     string   `json:"location"`
	Time         string   `json:"time"`
	Severity     Severity `json:"severity"`
	Description  string   `json:"description"`
	Instructions []string `json:"instructions"`
}

// AlertInput carries the editable fields of an alert.
type AlertInput struct {
	Type         string   `json:"type"`
	Title        string   `json:"title"`
	Location     string   `json:"location"`
	Severity     Severity `json:"severity"`
	Description  string   `json:"description"`
	Instructions []string `json:"instructions"`
}

// NewAlert validates the input and builds an alert stamped with the current time.
func NewAlert(in AlertInput) (Alert, error) {
	a := Alert{ID: newID(), Time: Now().Format(time.RFC3339)}
	if err := a.apply(in); err != nil {
		return Alert{}, err
	}
	return a, nil
}

// WithInput returns a copy of the alert with its editable fields replaced.
// The id and time are kept.
func (a Alert) WithInput(in AlertInput) (Alert, error) {
	if err := a.apply(in); err != nil {
		return Alert{}, err
	}
	return a, nil
}

func (a *Alert) apply(in AlertInput) error {
	switch {
	case strings.TrimSpace(in.Title) == "":
		return required("title")
	case strings.TrimSpace(in.Location) == "":
		return required("location")
	case strings.TrimSpace(in.Description) == "":
		return required("description")
	}

	severity := in.Severity
	if severity == "" {
		severity = SeverityMedium
	}
	if !severity.Valid() {
		return invalid("severity", string(severity))
	}

	typ := strings.TrimSpace(in.Type)
	if typ == "" {
		typ = defaultAlertType
	}

	a.Type = typ
	a.Title = strings.TrimSpace(in.Title)
	a.Location = strings.TrimSpace(in.Location)
	a.Severity = severity
	a.Description = strings.TrimSpace(in.Description)
	a.Instructions = cleanInstructions(in.Instructions)
	return nil
}

// cleanInstructions drops blank steps; an empty result becomes the single
// default instruction.
func cleanInstructions(steps []string) []string {
	out := make([]string, 0, len(steps))
	for _, s := range steps {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return []string{defaultAlertInstruction}
	}
	return out
}

// SeedAlerts returns the alerts shown before the user has changed anything.
func SeedAlerts() []Alert {
	return []Alert{
		{
			ID:          "1",
			Type:        "Weather",
			Title:       "Flash Flood Warning",
			Location:    "Downtown Area",
			Time:        "2 hours ago",
			Severity:    SeverityHigh,
			Description: "Flash flooding is occurring or imminent in the downtown area. Avoid flood waters and seek higher ground immediately.",
			Instructions: []string{
				"Move to higher ground immediately",
				"Do not walk or drive through flood waters",
				"Stay away from power lines and electrical wires",
				"Be prepared to evacuate if directed",
			},
		},
		{
			ID:          "2",
			Type:        "Infrastructure",
			Title:       "Power Outage",
			Location:    "Western District",
			Time:        "5 hours ago",
			Severity:    SeverityMedium,
			Description: "A widespread power outage is affecting the western district. Utility crews are working to restore service.",
			Instructions: []string{
				"Keep refrigerators closed to maintain cold temperature",
				"Use flashlights instead of candles",
				"Unplug major appliances to prevent damage",
				"Check on vulnerable neighbors if safe to do so",
			},
		},
		{
			ID:          "3",
			Type:        "Weather",
			Title:       "Severe Thunderstorm",
			Location:    "City-wide",
			Time:        "1 day ago",
			Severity:    SeverityMedium,
			Description: "Severe thunderstorms with heavy rainfall and strong winds are expected within the next 6 hours.",
			Instructions: []string{
				"Secure outdoor objects that could blow away",
				"Stay inside and away from windows",
				"Avoid using electrical equipment",
				"Prepare for potential power outages",
			},
		},
		{
			ID:          "4",
			Type:        "Health",
			Title:       "Air Quality Warning",
			Location:    "Northern Region",
			Time:        "2 days ago",
			Severity:    SeverityLow,
			Description: "Poor air quality due to wildfire smoke. People with respiratory conditions should take precautions.",
			Instructions: []string{
				"Stay indoors when possible",
				"Keep windows and doors closed",
				"Use air purifiers if available",
				"Wear a mask when outdoors if you have respiratory issues",
			},
		},
	}
}

const advisoryIDPrefix = "advisory"

// IsAdvisoryAlert reports whether id was produced by AlertFromAdvisory.
func IsAdvisoryAlert(id string) bool {
	return strings.HasPrefix(id, advisoryIDPrefix+"-")
}

// AlertFromAdvisory converts a weather advisory into a system-declared alert.
// The id is derived from the advisory so repeated imports collapse.
func AlertFromAdvisory(adv Advisory, location string) Alert {
	severity := SeverityLow
	switch adv.Severity {
	case AdvisoryHigh:
		severity = SeverityHigh
	case AdvisoryMedium:
		severity = SeverityMedium
	}
	desc := strings.TrimSpace(adv.Description)
	if desc == "" {
		desc = adv.Type
	}
	return Alert{
		ID:           deterministicID(advisoryIDPrefix, adv.Type, adv.Description),
		Type:         defaultAlertType,
		Title:        adv.Type,
		Location:     location,
		Time:         Now().Format(time.RFC3339),
		Severity:     severity,
		Description:  desc,
		Instructions: []string{"Follow instructions from local authorities", defaultAlertInstruction},
	}
}
