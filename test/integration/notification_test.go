package integration_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"floodguard_backend/internal/services/dto"
	"floodguard_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createNotification(t *testing.T, ts *helpers.TestServer, token, title string) string {
	res, body := ts.SendRequest(t, "POST", "/api/v1/notifications", token, map[string]interface{}{
		"type":     "info",
		"category": "system",
		"title":    title,
		"message":  "mensagem de teste",
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, body)

	var created dto.NotificationResponse
	require.NoError(t, json.Unmarshal([]byte(body), &created))
	require.NotEmpty(t, created.ID)
	return created.ID
}

func TestNotificationListAndUnreadCount(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	token, _, _ := helpers.RegisterAndLoginUser(t, ts, "Maria")

	createNotification(t, ts, token, "Primeira")
	createNotification(t, ts, token, "Segunda")

	listRes, listBody := ts.SendRequest(t, "GET", "/api/v1/notifications", token, nil)
	assert.Equal(t, http.StatusOK, listRes.StatusCode, listBody)
	assert.Contains(t, listBody, "Primeira")
	assert.Contains(t, listBody, "Segunda")

	countRes, countBody := ts.SendRequest(t, "GET", "/api/v1/notifications/unread-count", token, nil)
	assert.Equal(t, http.StatusOK, countRes.StatusCode, countBody)
	assert.Contains(t, countBody, `"count":2`)
}

func TestNotificationMarkAsRead(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	token, _, _ := helpers.RegisterAndLoginUser(t, ts, "Maria")
	notificationID := createNotification(t, ts, token, "Para ler")

	res, body := ts.SendRequest(t, "PUT", "/api/v1/notifications/"+notificationID+"/read", token, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode, body)

	countRes, countBody := ts.SendRequest(t, "GET", "/api/v1/notifications/unread-count", token, nil)
	assert.Equal(t, http.StatusOK, countRes.StatusCode)
	assert.Contains(t, countBody, `"count":0`)
}

func TestNotificationMarkAllAsRead(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	token, _, _ := helpers.RegisterAndLoginUser(t, ts, "Maria")
	createNotification(t, ts, token, "Uma")
	createNotification(t, ts, token, "Outra")

	res, body := ts.SendRequest(t, "PUT", "/api/v1/notifications/read-all", token, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode, body)

	countRes, countBody := ts.SendRequest(t, "GET", "/api/v1/notifications/unread-count", token, nil)
	assert.Equal(t, http.StatusOK, countRes.StatusCode)
	assert.Contains(t, countBody, `"count":0`)
}

func TestNotificationOwnershipIsolation(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	ownerToken, _, _ := helpers.RegisterAndLoginUser(t, ts, "Owner")
	intruderToken, _, _ := helpers.RegisterAndLoginUser(t, ts, "Intruder")

	notificationID := createNotification(t, ts, ownerToken, "Privada")

	res, _ := ts.SendRequest(t, "PUT", "/api/v1/notifications/"+notificationID+"/read", intruderToken, nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)

	res, _ = ts.SendRequest(t, "DELETE", "/api/v1/notifications/"+notificationID, intruderToken, nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestNotificationCleanupRequiresAdmin(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	token, _, _ := helpers.RegisterAndLoginUser(t, ts, "Regular")

	res, _ := ts.SendRequest(t, "DELETE", "/api/v1/admin/notifications/cleanup?days=30", token, nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
}

func TestEmailSettingsDefaultsAndUpdate(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	token, _, _ := helpers.RegisterAndLoginUser(t, ts, "Maria")

	getRes, getBody := ts.SendRequest(t, "GET", "/api/v1/settings/email", token, nil)
	assert.Equal(t, http.StatusOK, getRes.StatusCode, getBody)

	var settings dto.EmailSettingsResponse
	require.NoError(t, json.Unmarshal([]byte(getBody), &settings))
	// Everything opt-out by default.
	assert.True(t, settings.CriticalAlerts)
	assert.True(t, settings.MaintenanceAlerts)
	assert.True(t, settings.WeeklyReports)

	disabled := false
	override := "override@test.com"
	updRes, updBody := ts.SendRequest(t, "PUT", "/api/v1/settings/email", token, map[string]interface{}{
		"weekly_reports": disabled,
		"override_email": override,
	})
	assert.Equal(t, http.StatusOK, updRes.StatusCode, updBody)

	require.NoError(t, json.Unmarshal([]byte(updBody), &settings))
	assert.False(t, settings.WeeklyReports)
	assert.True(t, settings.CriticalAlerts)
	assert.Equal(t, override, settings.OverrideEmail)
}
