package handlers

import (
	"net/http"

	"floodguard_backend/internal/geo"
	"floodguard_backend/internal/middleware"
	"floodguard_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type GeocodeHandler struct {
	*BaseHandler
	geocoder geo.Geocoder
}

func NewGeocodeHandler(base *BaseHandler, geocoder geo.Geocoder) *GeocodeHandler {
	return &GeocodeHandler{
		BaseHandler: base,
		geocoder:    geocoder,
	}
}

func (h *GeocodeHandler) RegisterRoutes(r *gin.RouterGroup) {
	geocode := r.Group("/geocode")
	geocode.Use(middleware.AuthMiddleware())
	{
		geocode.POST("", h.Geocode)
		geocode.POST("/reverse", h.ReverseGeocode)
	}
}

func (h *GeocodeHandler) Geocode(c *gin.Context) {
	var req dto.GeocodeRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	result, err := h.geocoder.Geocode(c.Request.Context(), req.Address)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.GeocodeResponse{
		Latitude:         result.Latitude,
		Longitude:        result.Longitude,
		FormattedAddress: result.FormattedAddress,
	})
}

func (h *GeocodeHandler) ReverseGeocode(c *gin.Context) {
	var req dto.ReverseGeocodeRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	address, err := h.geocoder.ReverseGeocode(c.Request.Context(), req.Latitude, req.Longitude)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ReverseGeocodeResponse{Address: address})
}
