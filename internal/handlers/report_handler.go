package handlers

import (
	"net/http"

	"floodguard_backend/internal/middleware"
	"floodguard_backend/internal/models"
	"floodguard_backend/internal/repositories"
	"floodguard_backend/internal/services"
	"floodguard_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	*BaseHandler
	reportService services.ReportService
}

func NewReportHandler(base *BaseHandler, reportService services.ReportService) *ReportHandler {
	return &ReportHandler{
		BaseHandler:   base,
		reportService: reportService,
	}
}

func (h *ReportHandler) RegisterRoutes(r *gin.RouterGroup) {
	reports := r.Group("/reports")
	reports.Use(middleware.AuthMiddleware())
	{
		reports.POST("", h.CreateReport)
		reports.GET("", h.GetUserReports)
		reports.GET("/:reportId", h.GetReport)
		reports.PUT("/:reportId", h.UpdateReport)
		reports.DELETE("/:reportId", h.DeleteReport)
	}
}

func (h *ReportHandler) CreateReport(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateReportRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	report, err := h.reportService.CreateReport(c.Request.Context(), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, report)
}

func (h *ReportHandler) GetUserReports(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	page, pageSize := ParsePagination(c)
	criteria := repositories.ReportCriteria{
		Status:   models.ReportStatus(c.Query("status")),
		Page:     page,
		PageSize: pageSize,
	}

	reports, total, err := h.reportService.GetUserReports(userID, criteria)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reports":   reports,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

func (h *ReportHandler) GetReport(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	report, err := h.reportService.GetReport(userID, c.Param("reportId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

func (h *ReportHandler) UpdateReport(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateReportRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	report, err := h.reportService.UpdateReport(userID, c.Param("reportId"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

func (h *ReportHandler) DeleteReport(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.reportService.DeleteReport(userID, c.Param("reportId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
