package repositories

import (
	"errors"

	"floodguard_backend/internal/models"

	"gorm.io/gorm"
)

var ErrReportNotFound = errors.New("report not found")

// ReportCriteria filters the user's flood reports list.
type ReportCriteria struct {
	Status   models.ReportStatus `form:"status"`
	Page     int                 `form:"page" binding:"min=1"`
	PageSize int                 `form:"page_size" binding:"min=1,max=100"`
}

type ReportRepository interface {
	Create(report *models.Report) error
	FindByID(id string) (*models.Report, error)
	FindByUser(userID string, criteria ReportCriteria) ([]models.Report, int64, error)
	Update(report *models.Report) error
	Delete(id string) error
}

type ReportRepositoryImpl struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) ReportRepository {
	return &ReportRepositoryImpl{db: db}
}

func (r *ReportRepositoryImpl) Create(report *models.Report) error {
	return r.db.Create(report).Error
}

func (r *ReportRepositoryImpl) FindByID(id string) (*models.Report, error) {
	var report models.Report
	err := r.db.First(&report, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, err
	}
	return &report, nil
}

func (r *ReportRepositoryImpl) FindByUser(userID string, criteria ReportCriteria) ([]models.Report, int64, error) {
	var reports []models.Report
	query := r.db.Where("user_id = ?", userID)

	if criteria.Status != "" {
		query = query.Where("status = ?", criteria.Status)
	}

	var total int64
	if err := query.Model(&models.Report{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := criteria.PageSize
	offset := (criteria.Page - 1) * criteria.PageSize

	err := query.Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&reports).Error

	return reports, total, err
}

func (r *ReportRepositoryImpl) Update(report *models.Report) error {
	return r.db.Save(report).Error
}

func (r *ReportRepositoryImpl) Delete(id string) error {
	return r.db.Delete(&models.Report{}, "id = ?", id).Error
}
