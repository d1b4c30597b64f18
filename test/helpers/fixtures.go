package helpers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"floodguard_backend/internal/services/dto"

	"github.com/stretchr/testify/require"
)

// UniqueEmail returns an address that cannot collide across parallel
// tests sharing the same database.
func UniqueEmail(prefix string) string {
	return fmt.Sprintf("%s_%d@test.com", prefix, time.Now().UnixNano())
}

// UniqueDeviceID returns a device identifier unique across tests.
func UniqueDeviceID() string {
	return fmt.Sprintf("dev_%d", time.Now().UnixNano())
}

// RegisterAndLoginUser creates a user through the public API and returns
// the access token, user ID and email.
func RegisterAndLoginUser(t *testing.T, ts *TestServer, name string) (string, string, string) {
	email := UniqueEmail("user")
	password := "super_password123"

	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/register", "", map[string]interface{}{
		"name":     name,
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, "registration should succeed, got: "+bodyStr)

	var auth dto.AuthResponse
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &auth))
	require.NotEmpty(t, auth.AccessToken)
	require.NotEmpty(t, auth.User.ID)

	return auth.AccessToken, auth.User.ID, email
}

// CreateSensor creates a sensor for the authenticated user and returns
// its ID and device ID.
func CreateSensor(t *testing.T, ts *TestServer, token, name string) (string, string) {
	deviceID := UniqueDeviceID()

	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/sensors", token, map[string]interface{}{
		"name":      name,
		"device_id": deviceID,
		"latitude":  -23.5505,
		"longitude": -46.6333,
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, "sensor creation should succeed, got: "+bodyStr)

	var sensor dto.SensorResponse
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &sensor))
	require.NotEmpty(t, sensor.ID)

	return sensor.ID, deviceID
}

// IngestReading reports one water level through the device endpoint.
func IngestReading(t *testing.T, ts *TestServer, deviceID string, level float64) {
	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/readings", "", map[string]interface{}{
		"device_id": deviceID,
		"level":     level,
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, "reading ingest should succeed, got: "+bodyStr)
}
