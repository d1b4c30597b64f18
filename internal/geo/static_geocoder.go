package geo

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"
)

// São Paulo region defaults used when an address is unknown.
const (
	defaultLatitude  = -23.5505
	defaultLongitude = -46.6333
	fallbackJitter   = 0.05 // degrees, ~5km
	proximityRadius  = 0.01 // degrees, ~1km
)

type knownLocation struct {
	Latitude         float64
	Longitude        float64
	FormattedAddress string
}

// knownLocations is the fixed table of monitored São Paulo waterways and
// landmarks. Keys are normalized (lowercase, trimmed).
var knownLocations = map[string]knownLocation{
	"rio tietê":           {-23.5505, -46.6333, "Rio Tietê, São Paulo, SP"},
	"rio pinheiros":       {-23.5629, -46.6544, "Rio Pinheiros, São Paulo, SP"},
	"marginal tietê":      {-23.5505, -46.6333, "Marginal Tietê, São Paulo, SP"},
	"marginal pinheiros":  {-23.5629, -46.6544, "Marginal Pinheiros, São Paulo, SP"},
	"ponte das bandeiras": {-23.5398, -46.6122, "Ponte das Bandeiras, São Paulo, SP"},
	"ponte octavio frias": {-23.5745, -46.6890, "Ponte Octavio Frias de Oliveira, São Paulo, SP"},
	"são paulo":           {-23.5505, -46.6333, "São Paulo, SP, Brasil"},
	"centro":              {-23.5505, -46.6333, "Centro, São Paulo, SP"},
	"vila madalena":       {-23.5505, -46.6875, "Vila Madalena, São Paulo, SP"},
	"brooklin":            {-23.6108, -46.7022, "Brooklin, São Paulo, SP"},
}

// StaticGeocoder answers from the known-location table, falling back to
// jittered São Paulo coordinates for unknown addresses.
type StaticGeocoder struct {
	rand  *rand.Rand
	delay time.Duration
}

// Option configures a StaticGeocoder.
type Option func(*StaticGeocoder)

// WithRand injects a deterministic random source (tests).
func WithRand(r *rand.Rand) Option {
	return func(g *StaticGeocoder) { g.rand = r }
}

// WithDelay sets the simulated provider latency.
func WithDelay(d time.Duration) Option {
	return func(g *StaticGeocoder) { g.delay = d }
}

func NewStaticGeocoder(opts ...Option) *StaticGeocoder {
	g := &StaticGeocoder{
		rand:  rand.New(rand.NewSource(time.Now().UnixNano())),
		delay: 500 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Geocode resolves an address: exact table match first, then partial
// match, then the jittered default. Known locations always return the
// fixed coordinate pair.
func (g *StaticGeocoder) Geocode(ctx context.Context, address string) (*Result, error) {
	if err := g.sleep(ctx); err != nil {
		return nil, err
	}

	normalized := strings.ToLower(strings.TrimSpace(address))

	if loc, ok := knownLocations[normalized]; ok {
		return resultFrom(loc), nil
	}

	for key, loc := range knownLocations {
		if strings.Contains(normalized, key) || strings.Contains(key, normalized) {
			return resultFrom(loc), nil
		}
	}

	return &Result{
		Latitude:         defaultLatitude + (g.rand.Float64()-0.5)*fallbackJitter,
		Longitude:        defaultLongitude + (g.rand.Float64()-0.5)*fallbackJitter,
		FormattedAddress: fmt.Sprintf("%s, São Paulo, SP", address),
	}, nil
}

// ReverseGeocode returns the name of a known location within ~1km of the
// coordinates, otherwise a generic formatted address.
func (g *StaticGeocoder) ReverseGeocode(ctx context.Context, latitude, longitude float64) (string, error) {
	if err := g.sleep(ctx); err != nil {
		return "", err
	}

	for _, loc := range knownLocations {
		distance := math.Sqrt(math.Pow(latitude-loc.Latitude, 2) + math.Pow(longitude-loc.Longitude, 2))
		if distance < proximityRadius {
			return loc.FormattedAddress, nil
		}
	}

	return fmt.Sprintf("Lat: %.4f, Lng: %.4f, São Paulo, SP", latitude, longitude), nil
}

func (g *StaticGeocoder) sleep(ctx context.Context) error {
	if g.delay <= 0 {
		return ctx.Err()
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(g.delay):
		return nil
	}
}

func resultFrom(loc knownLocation) *Result {
	return &Result{
		Latitude:         loc.Latitude,
		Longitude:        loc.Longitude,
		FormattedAddress: loc.FormattedAddress,
	}
}
