package domain

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- mock geocoder ---

type mockGeocoder struct {
	result Place
	err    error
	calls  int
}

func (m *mockGeocoder) ReverseGeocode(_ context.Context, _ Coordinates) (Place, error) {
	m.calls++
	return m.result, m.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// --- tests ---

func TestEnrichSOSLink_NilGeocoder(t *testing.T) {
	at := &Coordinates{Lat: 30.2672, Lon: -97.7431}
	link := BuildSOSLink("911", at)

	result := EnrichSOSLink(context.Background(), link, at, nil, discardLogger())

	assert.Nil(t, result.Place)
	assert.Equal(t, link, result)
}

func TestEnrichSOSLink_NoLocation(t *testing.T) {
	geo := &mockGeocoder{result: Place{Name: "Austin"}}
	link := BuildSOSLink("911", nil)

	result := EnrichSOSLink(context.Background(), link, nil, geo, discardLogger())

	assert.Nil(t, result.Place)
	assert.Equal(t, 0, geo.calls)
}

func TestEnrichSOSLink_ReverseGeocode(t *testing.T) {
	geo := &mockGeocoder{result: Place{
		Name:     "Austin",
		Address:  "Austin, Texas, United States",
		Locality: "Austin",
		Kind:     "place",
	}}
	at := &Coordinates{Lat: 30.2672, Lon: -97.7431}

	result := EnrichSOSLink(context.Background(), BuildSOSLink("911", at), at, geo, discardLogger())

	require.NotNil(t, result.Place)
	assert.Equal(t, "Austin", result.Place.Name)
	assert.Equal(t, "Austin, Texas, United States", result.Place.Address)
	assert.Equal(t, 1, geo.calls)
}

func TestEnrichSOSLink_GeocoderError(t *testing.T) {
	geo := &mockGeocoder{err: errors.New("API timeout")}
	at := &Coordinates{Lat: 30.2672, Lon: -97.7431}
	link := BuildSOSLink("911", at)

	result := EnrichSOSLink(context.Background(), link, at, geo, discardLogger())

	assert.Nil(t, result.Place)
	assert.Equal(t, link.Message, result.Message)
}

func TestEnrichSOSLink_EmptyResult(t *testing.T) {
	geo := &mockGeocoder{}
	at := &Coordinates{Lat: 1, Lon: 2}

	result := EnrichSOSLink(context.Background(), BuildSOSLink("911", at), at, geo, discardLogger())

	assert.Nil(t, result.Place)
	assert.Equal(t, 1, geo.calls)
}
