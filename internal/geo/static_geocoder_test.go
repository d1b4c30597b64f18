package geo

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGeocoder() *StaticGeocoder {
	return NewStaticGeocoder(
		WithDelay(0),
		WithRand(rand.New(rand.NewSource(42))),
	)
}

func TestGeocodeKnownLocation(t *testing.T) {
	g := newTestGeocoder()

	result, err := g.Geocode(context.Background(), "Rio Tietê")
	require.NoError(t, err)

	assert.Equal(t, -23.5505, result.Latitude)
	assert.Equal(t, -46.6333, result.Longitude)
	assert.Equal(t, "Rio Tietê, São Paulo, SP", result.FormattedAddress)
}

func TestGeocodePartialMatch(t *testing.T) {
	g := newTestGeocoder()

	result, err := g.Geocode(context.Background(), "Sensor na Marginal Pinheiros, km 12")
	require.NoError(t, err)

	assert.Equal(t, -23.5629, result.Latitude)
	assert.Equal(t, -46.6544, result.Longitude)
}

func TestGeocodeUnknownFallsBackToJitteredDefault(t *testing.T) {
	g := newTestGeocoder()

	result, err := g.Geocode(context.Background(), "Rua Inexistente 999")
	require.NoError(t, err)

	assert.InDelta(t, -23.5505, result.Latitude, fallbackJitter)
	assert.InDelta(t, -46.6333, result.Longitude, fallbackJitter)
	assert.Equal(t, "Rua Inexistente 999, São Paulo, SP", result.FormattedAddress)
}

func TestGeocodeCaseAndWhitespaceInsensitive(t *testing.T) {
	g := newTestGeocoder()

	result, err := g.Geocode(context.Background(), "  RIO TIETÊ  ")
	require.NoError(t, err)

	assert.Equal(t, "Rio Tietê, São Paulo, SP", result.FormattedAddress)
}

func TestReverseGeocodeNearKnownLocation(t *testing.T) {
	g := newTestGeocoder()

	address, err := g.ReverseGeocode(context.Background(), -23.5508, -46.6330)
	require.NoError(t, err)

	assert.Contains(t, address, "São Paulo, SP")
	assert.NotContains(t, address, "Lat:")
}

func TestReverseGeocodeFarFromKnownLocations(t *testing.T) {
	g := newTestGeocoder()

	address, err := g.ReverseGeocode(context.Background(), -25.0, -48.0)
	require.NoError(t, err)

	assert.Equal(t, "Lat: -25.0000, Lng: -48.0000, São Paulo, SP", address)
}

func TestGeocodeCancelledContext(t *testing.T) {
	g := newTestGeocoder()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := g.Geocode(ctx, "Rio Tietê")
	assert.ErrorIs(t, err, context.Canceled)
}
