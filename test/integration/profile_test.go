package integration_test

import (
	"net/http"
	"testing"

	"floodguard_backend/test/helpers"

	"github.com/stretchr/testify/assert"
)

func TestProfileCreatedOnRegistration(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	token, _, email := helpers.RegisterAndLoginUser(t, ts, "Maria Silva")

	res, body := ts.SendRequest(t, "GET", "/api/v1/profile", token, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.Contains(t, body, "Maria Silva")
	assert.Contains(t, body, email)
}

func TestEnsureProfileIsIdempotent(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	token, _, _ := helpers.RegisterAndLoginUser(t, ts, "Maria")

	// Registration already created the profile, so ensure reports it.
	res, body := ts.SendRequest(t, "POST", "/api/v1/profile/ensure", token, map[string]interface{}{
		"name": "Maria",
	})
	assert.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.Contains(t, body, "Profile already exists")
}

func TestUpdateProfile(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	token, _, _ := helpers.RegisterAndLoginUser(t, ts, "Maria")

	res, body := ts.SendRequest(t, "PUT", "/api/v1/profile", token, map[string]interface{}{
		"name":  "Maria Atualizada",
		"phone": "+55 11 99999-0000",
	})
	assert.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.Contains(t, body, "Maria Atualizada")
	assert.Contains(t, body, "+55 11 99999-0000")
}
