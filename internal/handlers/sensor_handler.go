package handlers

import (
	"net/http"

	"floodguard_backend/internal/middleware"
	"floodguard_backend/internal/services"
	"floodguard_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type SensorHandler struct {
	*BaseHandler
	sensorService  services.SensorService
	readingService services.ReadingService
}

func NewSensorHandler(base *BaseHandler, sensorService services.SensorService, readingService services.ReadingService) *SensorHandler {
	return &SensorHandler{
		BaseHandler:    base,
		sensorService:  sensorService,
		readingService: readingService,
	}
}

func (h *SensorHandler) RegisterRoutes(r *gin.RouterGroup) {
	sensors := r.Group("/sensors")
	sensors.Use(middleware.AuthMiddleware())
	{
		sensors.POST("", h.CreateSensor)
		sensors.GET("", h.GetUserSensors)
		sensors.GET("/:sensorId", h.GetSensor)
		sensors.PUT("/:sensorId", h.UpdateSensor)
		sensors.DELETE("/:sensorId", h.DeleteSensor)
		sensors.GET("/:sensorId/readings", h.GetSensorReadings)
		sensors.GET("/:sensorId/stats", h.GetSensorStats)
	}
}

func (h *SensorHandler) CreateSensor(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateSensorRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	sensor, err := h.sensorService.CreateSensor(c.Request.Context(), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, sensor)
}

func (h *SensorHandler) GetUserSensors(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	sensors, err := h.sensorService.GetUserSensors(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"sensors": sensors})
}

func (h *SensorHandler) GetSensor(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	sensor, err := h.sensorService.GetSensor(userID, c.Param("sensorId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, sensor)
}

func (h *SensorHandler) UpdateSensor(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateSensorRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	sensor, err := h.sensorService.UpdateSensor(userID, c.Param("sensorId"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, sensor)
}

func (h *SensorHandler) DeleteSensor(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.sensorService.DeleteSensor(userID, c.Param("sensorId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *SensorHandler) GetSensorReadings(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	limit := ParseQueryInt(c, "limit", 100)
	readings, err := h.readingService.GetSensorReadings(userID, c.Param("sensorId"), limit)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"readings": readings})
}

func (h *SensorHandler) GetSensorStats(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	since := ParseQuerySince(c, 7)
	stats, err := h.readingService.GetSensorStats(userID, c.Param("sensorId"), since)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
