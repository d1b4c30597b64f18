package integration_test

import (
	"net/http"
	"testing"

	"floodguard_backend/test/helpers"

	"github.com/stretchr/testify/assert"
)

func TestSensorLifecycle(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	token, _, _ := helpers.RegisterAndLoginUser(t, ts, "Maria")

	sensorID, _ := helpers.CreateSensor(t, ts, token, "Sensor Tietê")

	getRes, getBody := ts.SendRequest(t, "GET", "/api/v1/sensors/"+sensorID, token, nil)
	assert.Equal(t, http.StatusOK, getRes.StatusCode, getBody)
	assert.Contains(t, getBody, "Sensor Tietê")

	updRes, updBody := ts.SendRequest(t, "PUT", "/api/v1/sensors/"+sensorID, token, map[string]interface{}{
		"status": "maintenance",
	})
	assert.Equal(t, http.StatusOK, updRes.StatusCode, updBody)
	assert.Contains(t, updBody, "maintenance")

	delRes, _ := ts.SendRequest(t, "DELETE", "/api/v1/sensors/"+sensorID, token, nil)
	assert.Equal(t, http.StatusNoContent, delRes.StatusCode)

	goneRes, _ := ts.SendRequest(t, "GET", "/api/v1/sensors/"+sensorID, token, nil)
	assert.Equal(t, http.StatusNotFound, goneRes.StatusCode)
}

func TestSensorDuplicateDeviceID(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	token, _, _ := helpers.RegisterAndLoginUser(t, ts, "Maria")
	_, deviceID := helpers.CreateSensor(t, ts, token, "Original")

	res, body := ts.SendRequest(t, "POST", "/api/v1/sensors", token, map[string]interface{}{
		"name":      "Clone",
		"device_id": deviceID,
	})
	assert.Equal(t, http.StatusConflict, res.StatusCode, body)
}

func TestSensorOwnershipIsolation(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	ownerToken, _, _ := helpers.RegisterAndLoginUser(t, ts, "Owner")
	intruderToken, _, _ := helpers.RegisterAndLoginUser(t, ts, "Intruder")

	sensorID, _ := helpers.CreateSensor(t, ts, ownerToken, "Private Sensor")

	res, _ := ts.SendRequest(t, "GET", "/api/v1/sensors/"+sensorID, intruderToken, nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)

	res, _ = ts.SendRequest(t, "DELETE", "/api/v1/sensors/"+sensorID, intruderToken, nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestDeviceIngestAndReadingHistory(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	token, _, _ := helpers.RegisterAndLoginUser(t, ts, "Maria")
	sensorID, deviceID := helpers.CreateSensor(t, ts, token, "Sensor Pinheiros")

	helpers.IngestReading(t, ts, deviceID, 0.8)
	helpers.IngestReading(t, ts, deviceID, 1.2)

	res, body := ts.SendRequest(t, "GET", "/api/v1/sensors/"+sensorID+"/readings?limit=10", token, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.Contains(t, body, "1.2")
	assert.Contains(t, body, "0.8")

	statsRes, statsBody := ts.SendRequest(t, "GET", "/api/v1/sensors/"+sensorID+"/stats?days=7", token, nil)
	assert.Equal(t, http.StatusOK, statsRes.StatusCode, statsBody)
	assert.Contains(t, statsBody, `"count":2`)
}

func TestDeviceIngestUnknownDevice(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)

	res, _ := ts.SendRequest(t, "POST", "/api/v1/readings", "", map[string]interface{}{
		"device_id": "does-not-exist",
		"level":     1.0,
	})
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}
