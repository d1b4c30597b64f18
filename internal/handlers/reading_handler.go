package handlers

import (
	"net/http"

	"floodguard_backend/internal/services"
	"floodguard_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ReadingHandler struct {
	*BaseHandler
	readingService services.ReadingService
}

func NewReadingHandler(base *BaseHandler, readingService services.ReadingService) *ReadingHandler {
	return &ReadingHandler{
		BaseHandler:    base,
		readingService: readingService,
	}
}

func (h *ReadingHandler) RegisterRoutes(r *gin.RouterGroup) {
	// Device ingest endpoint. Devices authenticate by device_id; they
	// do not carry user tokens.
	r.POST("/readings", h.IngestReading)
}

func (h *ReadingHandler) IngestReading(c *gin.Context) {
	var req dto.CreateReadingRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	reading, err := h.readingService.IngestReading(c.Request.Context(), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, reading)
}
