package dto

// ---------------- Requests ----------------

type GeocodeRequest struct {
	Address string `json:"address" validate:"required,max=200"`
}

type ReverseGeocodeRequest struct {
	Latitude  float64 `json:"latitude" validate:"required,latitude"`
	Longitude float64 `json:"longitude" validate:"required,longitude"`
}

// ---------------- Responses ----------------

type GeocodeResponse struct {
	Latitude         float64 `json:"latitude"`
	Longitude        float64 `json:"longitude"`
	FormattedAddress string  `json:"formatted_address"`
}

type ReverseGeocodeResponse struct {
	Address string `json:"address"`
}
