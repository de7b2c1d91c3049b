package domain

import "context"

// Place is the nearest addressable feature to a coordinate.
type Place struct {
	Name     string `json:"name"`
	Address  string `json:"address"`
	Locality string `json:"locality,omitempty"`
	Kind     string `json:"kind,omitempty"` // address, street or place
}

// Geocoder resolves coordinates to a human-readable place.
type Geocoder interface {
	ReverseGeocode(ctx context.Context, at Coordinates) (Place, error)
}
