package repositories

import (
	"errors"
	"time"

	"floodguard_backend/internal/models"

	"gorm.io/gorm"
)

var ErrNotificationNotFound = errors.New("notification not found")

// NotificationCriteria filters a user's notification list. The dashboard
// filter tabs map onto Category.
type NotificationCriteria struct {
	UnreadOnly bool                        `form:"unread_only"`
	Category   models.NotificationCategory `form:"category"`
	Page       int                         `form:"page" binding:"min=1"`
	PageSize   int                         `form:"page_size" binding:"min=1,max=100"`
}

// NotificationStats summarizes a user's notifications.
type NotificationStats struct {
	Total       int64            `json:"total"`
	UnreadCount int64            `json:"unread_count"`
	ByCategory  map[string]int64 `json:"by_category"`
}

type NotificationRepository interface {
	Create(notification *models.Notification) error
	FindByID(id string) (*models.Notification, error)
	FindByUser(userID string, criteria NotificationCriteria) ([]models.Notification, int64, error)
	MarkAsRead(notificationID string) error
	MarkAllAsRead(userID string) error
	Delete(id string) error
	DeleteByUser(userID string) error
	GetUnreadCount(userID string) (int64, error)
	GetUserStats(userID string) (*NotificationStats, error)
	CleanOld(days int) error
}

type NotificationRepositoryImpl struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &NotificationRepositoryImpl{db: db}
}

func (r *NotificationRepositoryImpl) Create(notification *models.Notification) error {
	if notification.Title == "" {
		return errors.New("notification title is required")
	}
	if !models.ValidNotificationType(notification.Type) {
		return errors.New("invalid notification type")
	}
	if !models.ValidNotificationCategory(notification.Category) {
		return errors.New("invalid notification category")
	}
	return r.db.Create(notification).Error
}

func (r *NotificationRepositoryImpl) FindByID(id string) (*models.Notification, error) {
	var notification models.Notification
	err := r.db.First(&notification, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotificationNotFound
		}
		return nil, err
	}
	return &notification, nil
}

func (r *NotificationRepositoryImpl) FindByUser(userID string, criteria NotificationCriteria) ([]models.Notification, int64, error) {
	var notifications []models.Notification
	query := r.db.Where("user_id = ?", userID)

	if criteria.UnreadOnly {
		query = query.Where("is_read = ?", false)
	}

	if criteria.Category != "" {
		query = query.Where("category = ?", criteria.Category)
	}

	var total int64
	if err := query.Model(&models.Notification{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := criteria.PageSize
	offset := (criteria.Page - 1) * criteria.PageSize

	err := query.Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&notifications).Error

	return notifications, total, err
}

// MarkAsRead is idempotent: re-marking an already read row updates
// nothing meaningful and returns no error.
func (r *NotificationRepositoryImpl) MarkAsRead(notificationID string) error {
	result := r.db.Model(&models.Notification{}).
		Where("id = ?", notificationID).
		Updates(map[string]interface{}{
			"is_read": true,
			"read_at": time.Now(),
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

// MarkAllAsRead sets read on every unread row of the user; a no-op when
// there are none.
func (r *NotificationRepositoryImpl) MarkAllAsRead(userID string) error {
	return r.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Updates(map[string]interface{}{
			"is_read": true,
			"read_at": time.Now(),
		}).Error
}

func (r *NotificationRepositoryImpl) Delete(id string) error {
	return r.db.Delete(&models.Notification{}, "id = ?", id).Error
}

func (r *NotificationRepositoryImpl) DeleteByUser(userID string) error {
	return r.db.Delete(&models.Notification{}, "user_id = ?", userID).Error
}

func (r *NotificationRepositoryImpl) GetUnreadCount(userID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}

func (r *NotificationRepositoryImpl) GetUserStats(userID string) (*NotificationStats, error) {
	stats := &NotificationStats{
		ByCategory: make(map[string]int64),
	}

	if err := r.db.Model(&models.Notification{}).
		Where("user_id = ?", userID).
		Count(&stats.Total).Error; err != nil {
		return nil, err
	}

	if err := r.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&stats.UnreadCount).Error; err != nil {
		return nil, err
	}

	var rows []struct {
		Category string
		Count    int64
	}
	if err := r.db.Model(&models.Notification{}).
		Select("category, COUNT(*) AS count").
		Where("user_id = ?", userID).
		Group("category").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		stats.ByCategory[row.Category] = row.Count
	}

	return stats, nil
}

func (r *NotificationRepositoryImpl) CleanOld(days int) error {
	cutoff := time.Now().AddDate(0, 0, -days)
	return r.db.Delete(&models.Notification{}, "is_read = ? AND created_at < ?", true, cutoff).Error
}
