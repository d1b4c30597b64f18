package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"floodguard_backend/internal/config"
	"floodguard_backend/internal/email"
	"floodguard_backend/internal/models"
	"floodguard_backend/internal/observability"
	"floodguard_backend/internal/repositories"
	"floodguard_backend/internal/services/dto"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------------- Fakes ----------------

type fakeNotificationRepo struct {
	notifications []*models.Notification
	createErr     error
}

func (f *fakeNotificationRepo) Create(n *models.Notification) error {
	if f.createErr != nil {
		return f.createErr
	}
	if n.ID == "" {
		n.ID = "notif-" + string(rune('a'+len(f.notifications)))
	}
	f.notifications = append(f.notifications, n)
	return nil
}

func (f *fakeNotificationRepo) FindByID(id string) (*models.Notification, error) {
	for _, n := range f.notifications {
		if n.ID == id {
			return n, nil
		}
	}
	return nil, repositories.ErrNotificationNotFound
}

func (f *fakeNotificationRepo) FindByUser(userID string, criteria repositories.NotificationCriteria) ([]models.Notification, int64, error) {
	var out []models.Notification
	for _, n := range f.notifications {
		if n.UserID == userID {
			out = append(out, *n)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeNotificationRepo) MarkAsRead(notificationID string) error {
	n, err := f.FindByID(notificationID)
	if err != nil {
		return err
	}
	n.IsRead = true
	return nil
}

func (f *fakeNotificationRepo) MarkAllAsRead(userID string) error {
	for _, n := range f.notifications {
		if n.UserID == userID {
			n.IsRead = true
		}
	}
	return nil
}

func (f *fakeNotificationRepo) Delete(id string) error {
	for i, n := range f.notifications {
		if n.ID == id {
			f.notifications = append(f.notifications[:i], f.notifications[i+1:]...)
			return nil
		}
	}
	return repositories.ErrNotificationNotFound
}

func (f *fakeNotificationRepo) DeleteByUser(userID string) error { return nil }

func (f *fakeNotificationRepo) GetUnreadCount(userID string) (int64, error) {
	var count int64
	for _, n := range f.notifications {
		if n.UserID == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (f *fakeNotificationRepo) GetUserStats(userID string) (*repositories.NotificationStats, error) {
	return &repositories.NotificationStats{}, nil
}

func (f *fakeNotificationRepo) CleanOld(days int) error { return nil }

type fakeUserRepo struct {
	users map[string]*models.User
}

func (f *fakeUserRepo) Create(u *models.User) error { return nil }
func (f *fakeUserRepo) FindByID(id string) (*models.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, repositories.ErrUserNotFound
}
func (f *fakeUserRepo) FindByEmail(email string) (*models.User, error) {
	return nil, repositories.ErrUserNotFound
}
func (f *fakeUserRepo) FindAllActive() ([]models.User, error) {
	var out []models.User
	for _, u := range f.users {
		if u.Status == models.UserStatusActive {
			out = append(out, *u)
		}
	}
	return out, nil
}
func (f *fakeUserRepo) Update(u *models.User) error { return nil }
func (f *fakeUserRepo) Delete(id string) error      { return nil }

type fakeProfileRepo struct {
	profiles  map[string]*models.Profile
	createErr []error // consumed one per Create call
	creates   int
}

func (f *fakeProfileRepo) Create(p *models.Profile) error {
	f.creates++
	if len(f.createErr) > 0 {
		err := f.createErr[0]
		f.createErr = f.createErr[1:]
		if err != nil {
			return err
		}
	}
	if f.profiles == nil {
		f.profiles = map[string]*models.Profile{}
	}
	f.profiles[p.UserID] = p
	return nil
}

func (f *fakeProfileRepo) FindByUserID(userID string) (*models.Profile, error) {
	if p, ok := f.profiles[userID]; ok {
		return p, nil
	}
	return nil, repositories.ErrProfileNotFound
}

func (f *fakeProfileRepo) Update(p *models.Profile) error { return nil }
func (f *fakeProfileRepo) Delete(userID string) error     { return nil }

type fakeSensorRepo struct {
	sensors []models.Sensor
}

func (f *fakeSensorRepo) Create(s *models.Sensor) error { return nil }
func (f *fakeSensorRepo) FindByID(id string) (*models.Sensor, error) {
	for i := range f.sensors {
		if f.sensors[i].ID == id {
			return &f.sensors[i], nil
		}
	}
	return nil, repositories.ErrSensorNotFound
}
func (f *fakeSensorRepo) FindByDeviceID(deviceID string) (*models.Sensor, error) {
	for i := range f.sensors {
		if f.sensors[i].DeviceID == deviceID {
			return &f.sensors[i], nil
		}
	}
	return nil, repositories.ErrSensorNotFound
}
func (f *fakeSensorRepo) FindByUserID(userID string) ([]models.Sensor, error) {
	var out []models.Sensor
	for _, s := range f.sensors {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	return out, nil
}
func (f *fakeSensorRepo) FindByStatus(status models.SensorStatus) ([]models.Sensor, error) {
	var out []models.Sensor
	for _, s := range f.sensors {
		if s.Status == status {
			out = append(out, s)
		}
	}
	return out, nil
}
func (f *fakeSensorRepo) Update(s *models.Sensor) error { return nil }
func (f *fakeSensorRepo) UpdateLastReading(sensorID string, level float64, at time.Time) error {
	return nil
}
func (f *fakeSensorRepo) Delete(id string) error { return nil }

type fakeReadingRepo struct {
	countsBySensor map[string]int64
	statsBySensor  map[string]*repositories.SensorReadingStats
	aboveLevel     []models.Reading
	created        []*models.Reading
}

func (f *fakeReadingRepo) Create(r *models.Reading) error {
	f.created = append(f.created, r)
	return nil
}
func (f *fakeReadingRepo) FindBySensorSince(sensorID string, since time.Time) ([]models.Reading, error) {
	return nil, nil
}
func (f *fakeReadingRepo) FindBySensor(sensorID string, limit int) ([]models.Reading, error) {
	return nil, nil
}
func (f *fakeReadingRepo) CountBySensorSince(sensorID string, since time.Time) (int64, error) {
	return f.countsBySensor[sensorID], nil
}
func (f *fakeReadingRepo) StatsBySensorSince(sensorID string, since time.Time) (*repositories.SensorReadingStats, error) {
	if stats, ok := f.statsBySensor[sensorID]; ok {
		return stats, nil
	}
	return &repositories.SensorReadingStats{}, nil
}
func (f *fakeReadingRepo) FindAboveLevelForSensorsSince(sensorIDs []string, level float64, since time.Time) ([]models.Reading, error) {
	return f.aboveLevel, nil
}

type fakeSettingsRepo struct {
	settings map[string]*models.EmailSettings
}

func (f *fakeSettingsRepo) Create(s *models.EmailSettings) error { return nil }
func (f *fakeSettingsRepo) FindByUserID(userID string) (*models.EmailSettings, error) {
	if s, ok := f.settings[userID]; ok {
		return s, nil
	}
	return nil, repositories.ErrEmailSettingsNotFound
}
func (f *fakeSettingsRepo) Update(s *models.EmailSettings) error { return nil }

type fakeSender struct {
	sent []email.Message
	err  error
}

func (f *fakeSender) Send(ctx context.Context, msg *email.Message) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, *msg)
	return nil
}

type fakePublisher struct {
	published []string // user IDs
}

func (f *fakePublisher) Publish(userID string, n *dto.NotificationResponse) {
	f.published = append(f.published, userID)
}

// ---------------- Fixture ----------------

type notificationFixture struct {
	service       NotificationService
	notifications *fakeNotificationRepo
	users         *fakeUserRepo
	profiles      *fakeProfileRepo
	sensors       *fakeSensorRepo
	readings      *fakeReadingRepo
	settings      *fakeSettingsRepo
	sender        *fakeSender
	publisher     *fakePublisher
	clock         *clockwork.FakeClock
}

func newNotificationFixture() *notificationFixture {
	f := &notificationFixture{
		notifications: &fakeNotificationRepo{},
		users: &fakeUserRepo{users: map[string]*models.User{
			"user-1": {BaseModel: models.BaseModel{ID: "user-1"}, Email: "user1@example.com", Status: models.UserStatusActive},
		}},
		profiles:  &fakeProfileRepo{profiles: map[string]*models.Profile{}},
		sensors:   &fakeSensorRepo{},
		readings:  &fakeReadingRepo{countsBySensor: map[string]int64{}},
		settings:  &fakeSettingsRepo{settings: map[string]*models.EmailSettings{}},
		sender:    &fakeSender{},
		publisher: &fakePublisher{},
		clock:     clockwork.NewFakeClock(),
	}

	cfg := &config.Config{}
	cfg.Alerts.CriticalLevel = 2.5

	f.service = NewNotificationService(
		f.notifications, f.users, f.profiles, f.sensors, f.readings, f.settings,
		f.sender, email.NewRenderer("https://example.com"), cfg,
		observability.NewMetricsForTesting(), f.clock, f.publisher,
	)
	return f
}

// ---------------- Alert entry points ----------------

func TestSendCriticalLevelAlertPersistsAndEmails(t *testing.T) {
	f := newNotificationFixture()

	err := f.service.SendCriticalLevelAlert(context.Background(), "user-1", "sensor-1", "Sensor Tietê", 2.8)
	require.NoError(t, err)

	require.Len(t, f.notifications.notifications, 1)
	n := f.notifications.notifications[0]
	assert.Equal(t, models.NotificationTypeWarning, n.Type)
	assert.Equal(t, models.NotificationCategoryAlert, n.Category)
	assert.Equal(t, "Nível Crítico Detectado", n.Title)
	assert.Equal(t, "Sensor Sensor Tietê detectou nível de água crítico: 2.8m", n.Message)
	assert.Equal(t, "/dashboard/sensors", n.ActionURL)
	assert.Equal(t, "sensor-1", n.DataMap()["sensor_id"])

	require.Len(t, f.sender.sent, 1)
	assert.Equal(t, "user1@example.com", f.sender.sent[0].To)
	assert.Equal(t, "🚨 FloodGuard - Alerta Crítico: Sensor Tietê", f.sender.sent[0].Subject)

	assert.Equal(t, []string{"user-1"}, f.publisher.published)
}

func TestSendCriticalLevelAlertPersistsEvenWhenDeliveryFails(t *testing.T) {
	f := newNotificationFixture()
	f.sender.err = email.ErrDeliveryFailed

	err := f.service.SendCriticalLevelAlert(context.Background(), "user-1", "sensor-1", "Sensor Tietê", 2.8)
	require.NoError(t, err)

	assert.Len(t, f.notifications.notifications, 1)
	assert.Empty(t, f.sender.sent)
}

func TestSendCriticalLevelAlertSkipsEmailWhenDisabled(t *testing.T) {
	f := newNotificationFixture()
	f.settings.settings["user-1"] = &models.EmailSettings{
		UserID:            "user-1",
		CriticalAlerts:    false,
		MaintenanceAlerts: true,
		WeeklyReports:     true,
	}

	err := f.service.SendCriticalLevelAlert(context.Background(), "user-1", "sensor-1", "Sensor Tietê", 2.8)
	require.NoError(t, err)

	// The in-app notification is persisted regardless.
	assert.Len(t, f.notifications.notifications, 1)
	assert.Empty(t, f.sender.sent)
}

func TestSendMaintenanceAlert(t *testing.T) {
	f := newNotificationFixture()

	err := f.service.SendMaintenanceAlert(context.Background(), "user-1", "sensor-1", "Sensor Centro", "Sensor sem leituras nas últimas 24 horas")
	require.NoError(t, err)

	require.Len(t, f.notifications.notifications, 1)
	n := f.notifications.notifications[0]
	assert.Equal(t, models.NotificationCategoryMaintenance, n.Category)
	assert.Equal(t, "Manutenção Necessária", n.Title)
	assert.Equal(t, "Sensor Sensor Centro precisa de manutenção: Sensor sem leituras nas últimas 24 horas", n.Message)

	require.Len(t, f.sender.sent, 1)
	assert.Equal(t, "🔧 FloodGuard - Manutenção Necessária: Sensor Centro", f.sender.sent[0].Subject)
}

func TestRecipientResolutionPrefersOverrideThenProfile(t *testing.T) {
	f := newNotificationFixture()
	f.profiles.profiles["user-1"] = &models.Profile{UserID: "user-1", Email: "profile@example.com"}

	err := f.service.SendCriticalLevelAlert(context.Background(), "user-1", "sensor-1", "S", 3)
	require.NoError(t, err)
	require.Len(t, f.sender.sent, 1)
	assert.Equal(t, "profile@example.com", f.sender.sent[0].To)

	f.settings.settings["user-1"] = &models.EmailSettings{
		UserID:            "user-1",
		CriticalAlerts:    true,
		MaintenanceAlerts: true,
		WeeklyReports:     true,
		OverrideEmail:     "override@example.com",
	}

	err = f.service.SendCriticalLevelAlert(context.Background(), "user-1", "sensor-1", "S", 3)
	require.NoError(t, err)
	require.Len(t, f.sender.sent, 2)
	assert.Equal(t, "override@example.com", f.sender.sent[1].To)
}

// ---------------- Weekly report ----------------

func TestSendWeeklyReportNotificationSuccess(t *testing.T) {
	f := newNotificationFixture()
	f.sensors.sensors = []models.Sensor{
		{BaseModel: models.BaseModel{ID: "sensor-1"}, UserID: "user-1", Name: "Sensor Tietê", Status: models.SensorStatusActive},
	}
	f.readings.statsBySensor = map[string]*repositories.SensorReadingStats{
		"sensor-1": {Count: 42, AvgLevel: 1.2, MinLevel: 0.8, MaxLevel: 2.9},
	}

	sent, err := f.service.SendWeeklyReportNotification(context.Background(), "user-1")
	require.NoError(t, err)
	assert.True(t, sent)

	require.Len(t, f.sender.sent, 1)
	assert.Contains(t, f.sender.sent[0].Subject, "FloodGuard - Relatório Semanal")

	require.Len(t, f.notifications.notifications, 1)
	n := f.notifications.notifications[0]
	assert.Equal(t, models.NotificationTypeSuccess, n.Type)
	assert.Equal(t, models.NotificationCategoryReport, n.Category)
	assert.Equal(t, "Relatório Semanal Enviado", n.Title)
	assert.Equal(t, "Seu relatório semanal foi enviado para user1@example.com com sucesso.", n.Message)
}

func TestSendWeeklyReportNotificationDeliveryFailure(t *testing.T) {
	f := newNotificationFixture()
	f.sender.err = email.ErrDeliveryFailed

	sent, err := f.service.SendWeeklyReportNotification(context.Background(), "user-1")
	require.NoError(t, err)
	assert.False(t, sent)

	require.Len(t, f.notifications.notifications, 1)
	n := f.notifications.notifications[0]
	assert.Equal(t, models.NotificationTypeError, n.Type)
	assert.Equal(t, "Falha no Envio do Relatório", n.Title)
	assert.Equal(t, "Houve um problema ao enviar o relatório semanal para user1@example.com.", n.Message)
}

func TestSendWeeklyReportNotificationSkippedWhenDisabled(t *testing.T) {
	f := newNotificationFixture()
	f.settings.settings["user-1"] = &models.EmailSettings{
		UserID:            "user-1",
		CriticalAlerts:    true,
		MaintenanceAlerts: true,
		WeeklyReports:     false,
	}

	sent, err := f.service.SendWeeklyReportNotification(context.Background(), "user-1")
	require.NoError(t, err)
	assert.False(t, sent)

	// No email, no notification of either severity.
	assert.Empty(t, f.sender.sent)
	assert.Empty(t, f.notifications.notifications)
}

func TestSendWeeklyReportNotificationPropagatesCancellation(t *testing.T) {
	f := newNotificationFixture()
	f.sender.err = context.Canceled

	_, err := f.service.SendWeeklyReportNotification(context.Background(), "user-1")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, f.notifications.notifications)
}

func TestSendWeeklyReportNotificationUnknownUser(t *testing.T) {
	f := newNotificationFixture()

	_, err := f.service.SendWeeklyReportNotification(context.Background(), "ghost")
	assert.ErrorIs(t, err, repositories.ErrUserNotFound)
}

// ---------------- Maintenance sweep ----------------

func TestCheckSensorMaintenanceAlertsOnlyStaleSensors(t *testing.T) {
	f := newNotificationFixture()
	f.sensors.sensors = []models.Sensor{
		{BaseModel: models.BaseModel{ID: "fresh"}, UserID: "user-1", Name: "Sensor Fresco", Status: models.SensorStatusActive},
		{BaseModel: models.BaseModel{ID: "stale"}, UserID: "user-1", Name: "Sensor Parado", Status: models.SensorStatusActive},
		{BaseModel: models.BaseModel{ID: "off"}, UserID: "user-1", Name: "Sensor Inativo", Status: models.SensorStatusInactive},
	}
	f.readings.countsBySensor = map[string]int64{"fresh": 12, "stale": 0}

	err := f.service.CheckSensorMaintenance(context.Background())
	require.NoError(t, err)

	require.Len(t, f.notifications.notifications, 1)
	n := f.notifications.notifications[0]
	assert.Equal(t, models.NotificationCategoryMaintenance, n.Category)
	assert.Contains(t, n.Message, "Sensor Parado")
	assert.Contains(t, n.Message, "Sensor sem leituras nas últimas 24 horas")
}

func TestCheckSensorMaintenanceStopsOnCancelledContext(t *testing.T) {
	f := newNotificationFixture()
	f.sensors.sensors = []models.Sensor{
		{BaseModel: models.BaseModel{ID: "stale"}, UserID: "user-1", Name: "S", Status: models.SensorStatusActive},
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := f.service.CheckSensorMaintenance(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, f.notifications.notifications)
}

// ---------------- Store operations ----------------

func TestMarkAsReadRejectsOtherUsersNotification(t *testing.T) {
	f := newNotificationFixture()
	f.notifications.notifications = []*models.Notification{
		{BaseModel: models.BaseModel{ID: "n1"}, UserID: "someone-else", Title: "x"},
	}

	err := f.service.MarkAsRead("user-1", "n1")
	assert.ErrorIs(t, err, repositories.ErrNotificationNotFound)

	require.NoError(t, f.service.MarkAsRead("someone-else", "n1"))
	assert.True(t, f.notifications.notifications[0].IsRead)
}

func TestCreateNotificationRequiresExistingUser(t *testing.T) {
	f := newNotificationFixture()

	_, err := f.service.CreateNotification("ghost", &dto.CreateNotificationRequest{
		Type:     "info",
		Category: "system",
		Title:    "x",
	})
	assert.ErrorIs(t, err, repositories.ErrUserNotFound)
}

func TestCreateNotificationPublishes(t *testing.T) {
	f := newNotificationFixture()

	resp, err := f.service.CreateNotification("user-1", &dto.CreateNotificationRequest{
		Type:     "info",
		Category: "system",
		Title:    "Bem-vindo",
		Message:  "Conta criada",
	})
	require.NoError(t, err)
	assert.Equal(t, "Bem-vindo", resp.Title)
	assert.Equal(t, []string{"user-1"}, f.publisher.published)
}

func TestGetUserNotificationsNormalizesPaging(t *testing.T) {
	f := newNotificationFixture()
	f.notifications.notifications = []*models.Notification{
		{BaseModel: models.BaseModel{ID: "n1"}, UserID: "user-1", Title: "a"},
		{BaseModel: models.BaseModel{ID: "n2"}, UserID: "user-1", Title: "b"},
	}

	list, err := f.service.GetUserNotifications("user-1", repositories.NotificationCriteria{Page: 0, PageSize: 0})
	require.NoError(t, err)
	assert.Equal(t, 1, list.Page)
	assert.Equal(t, 20, list.PageSize)
	assert.Equal(t, int64(2), list.Total)
	assert.Equal(t, 1, list.TotalPages)
	assert.Len(t, list.Notifications, 2)
}

func TestPersistFailureIsReturned(t *testing.T) {
	f := newNotificationFixture()
	f.notifications.createErr = errors.New("db down")

	err := f.service.SendCriticalLevelAlert(context.Background(), "user-1", "sensor-1", "S", 3)
	assert.EqualError(t, err, "db down")
	assert.Empty(t, f.sender.sent)
}
