package geo

import "context"

// Result is a resolved location.
type Result struct {
	Latitude         float64 `json:"latitude"`
	Longitude        float64 `json:"longitude"`
	FormattedAddress string  `json:"formatted_address"`
}

// Geocoder resolves free-text locations and coordinates. The production
// implementation would call a real provider (Google Maps, Nominatim);
// the shipped one answers from a fixed table of monitored locations.
type Geocoder interface {
	// Geocode converts a free-text address to coordinates.
	Geocode(ctx context.Context, address string) (*Result, error)

	// ReverseGeocode converts coordinates to a formatted address.
	ReverseGeocode(ctx context.Context, latitude, longitude float64) (string, error)
}
