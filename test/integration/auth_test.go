package integration_test

import (
	"net/http"
	"testing"

	"floodguard_backend/test/helpers"

	"github.com/stretchr/testify/assert"
)

func TestRegisterAndLogin(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	email := helpers.UniqueEmail("auth")

	regRes, regBody := ts.SendRequest(t, "POST", "/api/v1/auth/register", "", map[string]interface{}{
		"name":     "Maria Silva",
		"email":    email,
		"password": "super_password123",
	})
	assert.Equal(t, http.StatusCreated, regRes.StatusCode, regBody)
	assert.Contains(t, regBody, "access_token")
	assert.Contains(t, regBody, email)

	logRes, logBody := ts.SendRequest(t, "POST", "/api/v1/auth/login", "", map[string]interface{}{
		"email":    email,
		"password": "super_password123",
	})
	assert.Equal(t, http.StatusOK, logRes.StatusCode, logBody)
	assert.Contains(t, logBody, "access_token")
}

func TestLoginWrongPassword(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	_, _, email := helpers.RegisterAndLoginUser(t, ts, "Maria")

	res, body := ts.SendRequest(t, "POST", "/api/v1/auth/login", "", map[string]interface{}{
		"email":    email,
		"password": "not-the-password",
	})
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode, body)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	_, _, email := helpers.RegisterAndLoginUser(t, ts, "First")

	res, body := ts.SendRequest(t, "POST", "/api/v1/auth/register", "", map[string]interface{}{
		"name":     "Second",
		"email":    email,
		"password": "super_password123",
	})
	assert.Equal(t, http.StatusConflict, res.StatusCode, body)
}

func TestRegisterWeakPassword(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)

	res, body := ts.SendRequest(t, "POST", "/api/v1/auth/register", "", map[string]interface{}{
		"name":     "Maria",
		"email":    helpers.UniqueEmail("weak"),
		"password": "short",
	})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode, body)
}

func TestMeRequiresToken(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)

	res, _ := ts.SendRequest(t, "GET", "/api/v1/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)

	token, _, email := helpers.RegisterAndLoginUser(t, ts, "Maria")
	res, body := ts.SendRequest(t, "GET", "/api/v1/auth/me", token, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.Contains(t, body, email)
}

func TestDeleteAccount(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	token, _, email := helpers.RegisterAndLoginUser(t, ts, "Maria")

	res, _ := ts.SendRequest(t, "DELETE", "/api/v1/auth/me", token, nil)
	assert.Equal(t, http.StatusNoContent, res.StatusCode)

	logRes, _ := ts.SendRequest(t, "POST", "/api/v1/auth/login", "", map[string]interface{}{
		"email":    email,
		"password": "super_password123",
	})
	assert.Equal(t, http.StatusUnauthorized, logRes.StatusCode)
}
