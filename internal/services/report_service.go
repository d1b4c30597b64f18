package services

import (
	"context"

	"floodguard_backend/internal/geo"
	"floodguard_backend/internal/logger"
	"floodguard_backend/internal/models"
	"floodguard_backend/internal/repositories"
	"floodguard_backend/internal/services/dto"
	"floodguard_backend/pkg/apperrors"
)

type ReportService interface {
	CreateReport(ctx context.Context, userID string, req *dto.CreateReportRequest) (*dto.ReportResponse, error)
	GetReport(userID, reportID string) (*dto.ReportResponse, error)
	GetUserReports(userID string, criteria repositories.ReportCriteria) ([]*dto.ReportResponse, int64, error)
	UpdateReport(userID, reportID string, req *dto.UpdateReportRequest) (*dto.ReportResponse, error)
	DeleteReport(userID, reportID string) error
}

type reportService struct {
	reportRepo repositories.ReportRepository
	geocoder   geo.Geocoder
}

func NewReportService(reportRepo repositories.ReportRepository, geocoder geo.Geocoder) ReportService {
	return &reportService{
		reportRepo: reportRepo,
		geocoder:   geocoder,
	}
}

func (s *reportService) CreateReport(ctx context.Context, userID string, req *dto.CreateReportRequest) (*dto.ReportResponse, error) {
	report := &models.Report{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		Status:      models.ReportStatusPending,
	}

	if report.Latitude == nil && report.Longitude == nil && report.Location != "" {
		if result, err := s.geocoder.Geocode(ctx, report.Location); err == nil {
			report.Latitude = &result.Latitude
			report.Longitude = &result.Longitude
		} else {
			logger.CtxWarn(ctx, "geocoding failed on report create",
				"error", err.Error(), "location", report.Location)
		}
	}

	if err := s.reportRepo.Create(report); err != nil {
		return nil, err
	}
	return dto.NewReportResponse(report), nil
}

func (s *reportService) GetReport(userID, reportID string) (*dto.ReportResponse, error) {
	report, err := s.ownedReport(userID, reportID)
	if err != nil {
		return nil, err
	}
	return dto.NewReportResponse(report), nil
}

func (s *reportService) GetUserReports(userID string, criteria repositories.ReportCriteria) ([]*dto.ReportResponse, int64, error) {
	if criteria.Page < 1 {
		criteria.Page = 1
	}
	if criteria.PageSize < 1 || criteria.PageSize > 100 {
		criteria.PageSize = 20
	}

	reports, total, err := s.reportRepo.FindByUser(userID, criteria)
	if err != nil {
		return nil, 0, err
	}
	out := make([]*dto.ReportResponse, 0, len(reports))
	for i := range reports {
		out = append(out, dto.NewReportResponse(&reports[i]))
	}
	return out, total, nil
}

func (s *reportService) UpdateReport(userID, reportID string, req *dto.UpdateReportRequest) (*dto.ReportResponse, error) {
	report, err := s.ownedReport(userID, reportID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		report.Title = *req.Title
	}
	if req.Description != nil {
		report.Description = *req.Description
	}
	if req.Status != nil {
		status := models.ReportStatus(*req.Status)
		if !models.ValidReportStatus(status) {
			return nil, apperrors.ErrInvalidStatus("report", "invalid report status: "+*req.Status)
		}
		report.Status = status
	}

	if err := s.reportRepo.Update(report); err != nil {
		return nil, err
	}
	return dto.NewReportResponse(report), nil
}

func (s *reportService) DeleteReport(userID, reportID string) error {
	if _, err := s.ownedReport(userID, reportID); err != nil {
		return err
	}
	return s.reportRepo.Delete(reportID)
}

func (s *reportService) ownedReport(userID, reportID string) (*models.Report, error) {
	report, err := s.reportRepo.FindByID(reportID)
	if err != nil {
		return nil, err
	}
	if report.UserID != userID {
		return nil, repositories.ErrReportNotFound
	}
	return report, nil
}
