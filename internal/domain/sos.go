package domain

import (
	"net/url"
	"strconv"
	"strings"
)

const (
	sosMessage     = "Emergency SOS! I need immediate assistance."
	mapsBaseURL    = "https://www.google.com/maps?q="
	composeBaseURL = "https://api.whatsapp.com/send"
)

// SOSLink is an outbound deep link that opens a messaging app with a
// pre-filled distress message.
type SOSLink struct {
	Message    string `json:"message"`
	MapsURL    string `json:"mapsUrl"`
	ComposeURL string `json:"composeUrl"`
	Place      *Place `json:"place,omitempty"`
}

// BuildSOSLink composes the distress message for number. A nil location
// (geolocation unavailable or denied) produces the message without a map link.
func BuildSOSLink(number string, at *Coordinates) SOSLink {
	link := SOSLink{Message: sosMessage}
	if at != nil {
		link.MapsURL = MapsURL(*at)
		link.Message = sosMessage + " My location: " + link.MapsURL
	}
	link.ComposeURL = composeBaseURL + "?phone=" + url.QueryEscape(number) + "&text=" + escapeComponent(link.Message)
	return link
}

// MapsURL returns a map search link for the coordinate.
func MapsURL(at Coordinates) string {
	return mapsBaseURL + formatCoord(at.Lat) + "," + formatCoord(at.Lon)
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// escapeComponent percent-encodes s for use as a query value, with spaces
// as %20 rather than '+'.
func escapeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
