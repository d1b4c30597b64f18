package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"floodguard_backend/internal/config"
	"floodguard_backend/internal/email"
	"floodguard_backend/internal/logger"
	"floodguard_backend/internal/models"
	"floodguard_backend/internal/observability"
	"floodguard_backend/internal/repositories"
	"floodguard_backend/internal/services/dto"

	"github.com/jonboulle/clockwork"
	"gorm.io/datatypes"
)

const maintenanceStaleWindow = 24 * time.Hour

// staleReason is the user-visible explanation attached to sweep alerts.
const staleReason = "Sensor sem leituras nas últimas 24 horas"

// NotificationPublisher pushes a freshly created notification to the
// user's open realtime connections. Implemented by the websocket hub.
type NotificationPublisher interface {
	Publish(userID string, notification *dto.NotificationResponse)
}

type NotificationService interface {
	// Store operations
	CreateNotification(userID string, req *dto.CreateNotificationRequest) (*dto.NotificationResponse, error)
	GetUserNotifications(userID string, criteria repositories.NotificationCriteria) (*dto.NotificationListResponse, error)
	MarkAsRead(userID, notificationID string) error
	MarkAllAsRead(userID string) error
	DeleteNotification(userID, notificationID string) error
	GetUnreadCount(userID string) (int64, error)
	GetUserStats(userID string) (*dto.NotificationStatsResponse, error)
	CleanOldNotifications(days int) error

	// Alert entry points. Each one persists the in-app notification
	// first; email delivery is best effort and never rolls it back.
	SendCriticalLevelAlert(ctx context.Context, userID, sensorID, sensorName string, level float64) error
	SendMaintenanceAlert(ctx context.Context, userID, sensorID, sensorName, reason string) error

	// SendWeeklyReportNotification assembles, renders and dispatches the
	// weekly report, then records the outcome as a notification. The
	// returned bool reports whether the email was delivered.
	SendWeeklyReportNotification(ctx context.Context, userID string) (bool, error)

	// CheckSensorMaintenance sweeps active sensors and raises a
	// maintenance alert for every one with no readings in the last 24h.
	CheckSensorMaintenance(ctx context.Context) error
}

type notificationService struct {
	notificationRepo repositories.NotificationRepository
	userRepo         repositories.UserRepository
	profileRepo      repositories.ProfileRepository
	sensorRepo       repositories.SensorRepository
	readingRepo      repositories.ReadingRepository
	settingsRepo     repositories.EmailSettingsRepository

	sender   email.Sender
	renderer *email.Renderer
	cfg      *config.Config
	metrics  *observability.Metrics
	clock    clockwork.Clock

	// publisher may be nil when realtime push is disabled.
	publisher NotificationPublisher
}

func NewNotificationService(
	notificationRepo repositories.NotificationRepository,
	userRepo repositories.UserRepository,
	profileRepo repositories.ProfileRepository,
	sensorRepo repositories.SensorRepository,
	readingRepo repositories.ReadingRepository,
	settingsRepo repositories.EmailSettingsRepository,
	sender email.Sender,
	renderer *email.Renderer,
	cfg *config.Config,
	metrics *observability.Metrics,
	clock clockwork.Clock,
	publisher NotificationPublisher,
) NotificationService {
	return &notificationService{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		profileRepo:      profileRepo,
		sensorRepo:       sensorRepo,
		readingRepo:      readingRepo,
		settingsRepo:     settingsRepo,
		sender:           sender,
		renderer:         renderer,
		cfg:              cfg,
		metrics:          metrics,
		clock:            clock,
		publisher:        publisher,
	}
}

// ---------------- Store operations ----------------

func (s *notificationService) CreateNotification(userID string, req *dto.CreateNotificationRequest) (*dto.NotificationResponse, error) {
	if _, err := s.userRepo.FindByID(userID); err != nil {
		return nil, err
	}

	notification := &models.Notification{
		UserID:    userID,
		Type:      models.NotificationType(req.Type),
		Category:  models.NotificationCategory(req.Category),
		Title:     req.Title,
		Message:   req.Message,
		ActionURL: req.ActionURL,
		Data:      marshalData(req.Data),
		IsRead:    false,
	}

	if err := s.notificationRepo.Create(notification); err != nil {
		return nil, err
	}

	s.metrics.NotificationsCreated.WithLabelValues(req.Category).Inc()

	resp := dto.NewNotificationResponse(notification)
	if s.publisher != nil {
		s.publisher.Publish(userID, resp)
	}
	return resp, nil
}

func (s *notificationService) GetUserNotifications(userID string, criteria repositories.NotificationCriteria) (*dto.NotificationListResponse, error) {
	if criteria.Page < 1 {
		criteria.Page = 1
	}
	if criteria.PageSize < 1 || criteria.PageSize > 100 {
		criteria.PageSize = 20
	}

	notifications, total, err := s.notificationRepo.FindByUser(userID, criteria)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.NotificationResponse, 0, len(notifications))
	for i := range notifications {
		items = append(items, dto.NewNotificationResponse(&notifications[i]))
	}

	totalPages := int((total + int64(criteria.PageSize) - 1) / int64(criteria.PageSize))

	return &dto.NotificationListResponse{
		Notifications: items,
		Total:         total,
		Page:          criteria.Page,
		PageSize:      criteria.PageSize,
		TotalPages:    totalPages,
	}, nil
}

func (s *notificationService) MarkAsRead(userID, notificationID string) error {
	notification, err := s.notificationRepo.FindByID(notificationID)
	if err != nil {
		return err
	}
	if notification.UserID != userID {
		return repositories.ErrNotificationNotFound
	}
	return s.notificationRepo.MarkAsRead(notificationID)
}

func (s *notificationService) MarkAllAsRead(userID string) error {
	return s.notificationRepo.MarkAllAsRead(userID)
}

func (s *notificationService) DeleteNotification(userID, notificationID string) error {
	notification, err := s.notificationRepo.FindByID(notificationID)
	if err != nil {
		return err
	}
	if notification.UserID != userID {
		return repositories.ErrNotificationNotFound
	}
	return s.notificationRepo.Delete(notificationID)
}

func (s *notificationService) GetUnreadCount(userID string) (int64, error) {
	return s.notificationRepo.GetUnreadCount(userID)
}

func (s *notificationService) GetUserStats(userID string) (*dto.NotificationStatsResponse, error) {
	stats, err := s.notificationRepo.GetUserStats(userID)
	if err != nil {
		return nil, err
	}
	return &dto.NotificationStatsResponse{
		Total:       stats.Total,
		UnreadCount: stats.UnreadCount,
		ByCategory:  stats.ByCategory,
	}, nil
}

func (s *notificationService) CleanOldNotifications(days int) error {
	return s.notificationRepo.CleanOld(days)
}

// ---------------- Alert entry points ----------------

func (s *notificationService) SendCriticalLevelAlert(ctx context.Context, userID, sensorID, sensorName string, level float64) error {
	notification := &models.Notification{
		UserID:    userID,
		Type:      models.NotificationTypeWarning,
		Category:  models.NotificationCategoryAlert,
		Title:     "Nível Crítico Detectado",
		Message:   fmt.Sprintf("Sensor %s detectou nível de água crítico: %sm", sensorName, formatLevel(level)),
		ActionURL: "/dashboard/sensors",
		Data: marshalData(map[string]interface{}{
			"sensor_id": sensorID,
			"level":     level,
		}),
	}
	if err := s.persist(userID, notification); err != nil {
		return err
	}

	if !s.emailEnabled(userID, func(es *models.EmailSettings) bool { return es.CriticalAlerts }) {
		s.metrics.EmailsDispatched.WithLabelValues("critical", "skipped").Inc()
		return nil
	}

	html, err := s.renderer.CriticalAlert(sensorName, level)
	if err != nil {
		return err
	}
	s.dispatch(ctx, "critical", userID, s.renderer.CriticalAlertSubject(sensorName), html)
	return nil
}

func (s *notificationService) SendMaintenanceAlert(ctx context.Context, userID, sensorID, sensorName, reason string) error {
	notification := &models.Notification{
		UserID:    userID,
		Type:      models.NotificationTypeWarning,
		Category:  models.NotificationCategoryMaintenance,
		Title:     "Manutenção Necessária",
		Message:   fmt.Sprintf("Sensor %s precisa de manutenção: %s", sensorName, reason),
		ActionURL: "/dashboard/sensors",
		Data: marshalData(map[string]interface{}{
			"sensor_id": sensorID,
			"reason":    reason,
		}),
	}
	if err := s.persist(userID, notification); err != nil {
		return err
	}

	if !s.emailEnabled(userID, func(es *models.EmailSettings) bool { return es.MaintenanceAlerts }) {
		s.metrics.EmailsDispatched.WithLabelValues("maintenance", "skipped").Inc()
		return nil
	}

	html, err := s.renderer.MaintenanceAlert(sensorName, reason)
	if err != nil {
		return err
	}
	s.dispatch(ctx, "maintenance", userID, s.renderer.MaintenanceAlertSubject(sensorName), html)
	return nil
}

func (s *notificationService) SendWeeklyReportNotification(ctx context.Context, userID string) (bool, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return false, err
	}

	if !s.emailEnabled(userID, func(es *models.EmailSettings) bool { return es.WeeklyReports }) {
		logger.CtxInfo(ctx, "weekly report disabled for user", "user_id", userID)
		return false, nil
	}

	data, err := s.buildWeeklyReport(user)
	if err != nil {
		s.metrics.WeeklyReportErrors.Inc()
		return false, err
	}

	html, err := s.renderer.WeeklyReport(data)
	if err != nil {
		s.metrics.WeeklyReportErrors.Inc()
		return false, err
	}

	recipient := s.recipientFor(userID, user.Email)
	sent := true
	start := s.clock.Now()
	if err := s.sender.Send(ctx, &email.Message{
		To:      recipient,
		Subject: s.renderer.WeeklyReportSubject(data.Period),
		HTML:    html,
	}); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return false, err
		}
		logger.CtxWarn(ctx, "weekly report delivery failed", "error", err.Error(), "user_id", userID)
		sent = false
	}
	s.metrics.EmailSendDuration.Observe(s.clock.Since(start).Seconds())

	notification := &models.Notification{
		UserID:   userID,
		Category: models.NotificationCategoryReport,
	}
	if sent {
		notification.Type = models.NotificationTypeSuccess
		notification.Title = "Relatório Semanal Enviado"
		notification.Message = fmt.Sprintf("Seu relatório semanal foi enviado para %s com sucesso.", recipient)
		s.metrics.EmailsDispatched.WithLabelValues("weekly_report", "delivered").Inc()
		s.metrics.WeeklyReportsSent.Inc()
	} else {
		notification.Type = models.NotificationTypeError
		notification.Title = "Falha no Envio do Relatório"
		notification.Message = fmt.Sprintf("Houve um problema ao enviar o relatório semanal para %s.", recipient)
		s.metrics.EmailsDispatched.WithLabelValues("weekly_report", "failed").Inc()
		s.metrics.WeeklyReportErrors.Inc()
	}

	if err := s.persist(userID, notification); err != nil {
		return sent, err
	}
	return sent, nil
}

func (s *notificationService) CheckSensorMaintenance(ctx context.Context) error {
	start := s.clock.Now()
	defer func() {
		s.metrics.SweepRuns.Inc()
		s.metrics.SweepDuration.Observe(s.clock.Since(start).Seconds())
	}()

	sensors, err := s.sensorRepo.FindByStatus(models.SensorStatusActive)
	if err != nil {
		return err
	}

	cutoff := s.clock.Now().Add(-maintenanceStaleWindow)
	for i := range sensors {
		if err := ctx.Err(); err != nil {
			return err
		}
		sensor := &sensors[i]

		count, err := s.readingRepo.CountBySensorSince(sensor.ID, cutoff)
		if err != nil {
			logger.CtxWarn(ctx, "sweep: readings lookup failed", "error", err.Error(), "sensor_id", sensor.ID)
			continue
		}
		if count > 0 {
			continue
		}

		s.metrics.SweepAlertsRaised.Inc()
		if err := s.SendMaintenanceAlert(ctx, sensor.UserID, sensor.ID, sensor.Name, staleReason); err != nil {
			logger.CtxWarn(ctx, "sweep: maintenance alert failed", "error", err.Error(), "sensor_id", sensor.ID)
		}
	}
	return nil
}

// ---------------- Internals ----------------

func (s *notificationService) persist(userID string, notification *models.Notification) error {
	if err := s.notificationRepo.Create(notification); err != nil {
		return err
	}
	s.metrics.NotificationsCreated.WithLabelValues(string(notification.Category)).Inc()
	if s.publisher != nil {
		s.publisher.Publish(userID, dto.NewNotificationResponse(notification))
	}
	return nil
}

// dispatch sends one alert email to the resolved recipient. Delivery
// failures are logged and counted, never propagated: the in-app
// notification is already persisted.
func (s *notificationService) dispatch(ctx context.Context, kind, userID, subject, html string) {
	recipient := s.recipientFor(userID, "")
	if recipient == "" {
		logger.CtxWarn(ctx, "no recipient address, skipping email", "kind", kind, "user_id", userID)
		s.metrics.EmailsDispatched.WithLabelValues(kind, "skipped").Inc()
		return
	}

	start := s.clock.Now()
	err := s.sender.Send(ctx, &email.Message{To: recipient, Subject: subject, HTML: html})
	s.metrics.EmailSendDuration.Observe(s.clock.Since(start).Seconds())

	if err != nil {
		logger.CtxWarn(ctx, "email dispatch failed", "error", err.Error(), "kind", kind, "user_id", userID)
		s.metrics.EmailsDispatched.WithLabelValues(kind, "failed").Inc()
		return
	}
	s.metrics.EmailsDispatched.WithLabelValues(kind, "delivered").Inc()
}

// emailEnabled checks the user's per-kind email preference. Missing
// settings rows default to enabled.
func (s *notificationService) emailEnabled(userID string, pick func(*models.EmailSettings) bool) bool {
	settings, err := s.settingsRepo.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrEmailSettingsNotFound) {
			return true
		}
		logger.WithError(err).Warn("email settings lookup failed", "user_id", userID)
		return true
	}
	return pick(settings)
}

// recipientFor resolves the delivery address: settings override first,
// then the profile email, then the fallback account email.
func (s *notificationService) recipientFor(userID, fallback string) string {
	if settings, err := s.settingsRepo.FindByUserID(userID); err == nil && settings.OverrideEmail != "" {
		return settings.OverrideEmail
	}
	if profile, err := s.profileRepo.FindByUserID(userID); err == nil && profile.Email != "" {
		return profile.Email
	}
	if fallback != "" {
		return fallback
	}
	if user, err := s.userRepo.FindByID(userID); err == nil {
		return user.Email
	}
	return ""
}

// buildWeeklyReport assembles the payload for the last 7 days, scoped
// to the user's own sensors. Water quality figures come from the
// simulated station averages until real probes are wired in.
func (s *notificationService) buildWeeklyReport(user *models.User) (*email.WeeklyReportData, error) {
	now := s.clock.Now()
	since := now.AddDate(0, 0, -7)

	sensors, err := s.sensorRepo.FindByUserID(user.ID)
	if err != nil {
		return nil, err
	}

	name := user.Email
	if profile, err := s.profileRepo.FindByUserID(user.ID); err == nil && profile.Name != "" {
		name = profile.Name
	}

	data := &email.WeeklyReportData{
		User: email.ReportUser{Name: name, Email: user.Email},
		Period: email.ReportPeriod{
			Start: since.Format("02/01/2006"),
			End:   now.Format("02/01/2006"),
		},
		Summary: email.ReportSummary{
			TotalSensors:    len(sensors),
			AvgTemperature:  19.5,
			AvgTurbidity:    6.2,
			AvgConductivity: 245,
		},
	}

	sensorIDs := make([]string, 0, len(sensors))
	for i := range sensors {
		sensor := &sensors[i]
		sensorIDs = append(sensorIDs, sensor.ID)
		if sensor.Status == models.SensorStatusActive {
			data.Summary.ActiveSensors++
		}

		stats, err := s.readingRepo.StatsBySensorSince(sensor.ID, since)
		if err != nil {
			return nil, err
		}
		data.Summary.TotalReadings += stats.Count
		data.Sensors = append(data.Sensors, email.SensorSummary{
			Name:          sensor.Name,
			Location:      sensor.Location,
			Status:        string(sensor.Status),
			ReadingsCount: stats.Count,
			AvgLevel:      stats.AvgLevel,
			MinLevel:      stats.MinLevel,
			MaxLevel:      stats.MaxLevel,
		})
	}

	critical, err := s.readingRepo.FindAboveLevelForSensorsSince(sensorIDs, s.cfg.Alerts.CriticalLevel, since)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(sensors))
	for i := range sensors {
		names[sensors[i].ID] = sensors[i].Name
	}
	for i := range critical {
		reading := &critical[i]
		data.Alerts = append(data.Alerts, email.AlertEvent{
			SensorName: names[reading.SensorID],
			Level:      reading.Level,
			Timestamp:  reading.CreatedAt.Format("02/01/2006 15:04"),
		})
	}

	return data, nil
}

func marshalData(m map[string]interface{}) datatypes.JSON {
	if m == nil {
		return nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil
	}
	return datatypes.JSON(b)
}

// formatLevel prints a level without trailing zeros for in-app text.
func formatLevel(level float64) string {
	return strconv.FormatFloat(level, 'f', -1, 64)
}
