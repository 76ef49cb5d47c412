package integration_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"buspass_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables(t)

	email := fmt.Sprintf("newuser_%d@test.com", time.Now().UnixNano())
	registerBody := map[string]interface{}{
		"fullName": "New Passenger",
		"email":    email,
		"password": "password123",
	}

	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/register", "", registerBody)
	require.Equal(t, http.StatusCreated, res.StatusCode, "Ответ: "+bodyStr)

	var authResponse struct {
		Token string `json:"token"`
		User  struct {
			Email string `json:"email"`
			Role  string `json:"role"`
		} `json:"user"`
	}
	helpers.ParseData(t, bodyStr, &authResponse)
	assert.NotEmpty(t, authResponse.Token)
	assert.Equal(t, email, authResponse.User.Email)
	assert.Equal(t, "passenger", authResponse.User.Role)

	// Профиль по свежему токену
	res, bodyStr = ts.SendRequest(t, http.MethodGet, "/api/v1/auth/me", authResponse.Token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)

	var profile struct {
		Email string `json:"email"`
	}
	helpers.ParseData(t, bodyStr, &profile)
	assert.Equal(t, email, profile.Email)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables(t)

	email := fmt.Sprintf("dup_%d@test.com", time.Now().UnixNano())
	body := map[string]interface{}{
		"fullName": "First",
		"email":    email,
		"password": "password123",
	}

	res, _ := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/register", "", body)
	require.Equal(t, http.StatusCreated, res.StatusCode)

	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/register", "", body)
	assert.Equal(t, http.StatusConflict, res.StatusCode)

	envelope := helpers.ParseEnvelope(t, bodyStr)
	assert.False(t, envelope.Success)
	assert.Equal(t, "Email already exists", envelope.Message)
}

func TestRegister_RejectsPrivilegedRole(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables(t)

	body := map[string]interface{}{
		"fullName": "Wannabe Admin",
		"email":    fmt.Sprintf("wannabe_%d@test.com", time.Now().UnixNano()),
		"password": "password123",
		"role":     "admin",
	}

	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/register", "", body)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode, "Ответ: "+bodyStr)
}

func TestLogin_WrongPassword(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables(t)

	_, user := helpers.CreateAndLoginPassenger(t, ts)

	body := map[string]interface{}{
		"email":    user.Email,
		"password": "wrong-password",
	}

	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/login", "", body)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)

	envelope := helpers.ParseEnvelope(t, bodyStr)
	assert.Equal(t, "Invalid email or password", envelope.Message)
}

func TestLogin_DeactivatedUser(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables(t)

	_, user := helpers.CreateAndLoginPassenger(t, ts)

	err := ts.DB.Exec("UPDATE users SET is_active = false WHERE email = ?", user.Email).Error
	require.NoError(t, err)

	body := map[string]interface{}{
		"email":    user.Email,
		"password": "password123",
	}

	res, _ := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/login", "", body)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}

func TestAdminCreatesConductor(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables(t)

	adminToken, _ := helpers.CreateAndLoginAdmin(t, ts)

	email := fmt.Sprintf("hired_%d@test.com", time.Now().UnixNano())
	body := map[string]interface{}{
		"fullName": "Hired Conductor",
		"email":    email,
		"password": "password123",
	}

	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/admin/conductors", adminToken, body)
	require.Equal(t, http.StatusCreated, res.StatusCode, "Ответ: "+bodyStr)

	var created struct {
		Role string `json:"role"`
	}
	helpers.ParseData(t, bodyStr, &created)
	assert.Equal(t, "conductor", created.Role)

	// Новый кондуктор может залогиниться и попасть на свой дашборд
	loginBody := map[string]interface{}{"email": email, "password": "password123"}
	res, bodyStr = ts.SendRequest(t, http.MethodPost, "/api/v1/auth/login", "", loginBody)
	require.Equal(t, http.StatusOK, res.StatusCode)

	var login struct {
		Token string `json:"token"`
	}
	helpers.ParseData(t, bodyStr, &login)

	res, _ = ts.SendRequest(t, http.MethodGet, "/api/v1/conductor/dashboard", login.Token, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
}

func TestCreateConductor_RequiresAdmin(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables(t)

	passengerToken, _ := helpers.CreateAndLoginPassenger(t, ts)

	body := map[string]interface{}{
		"fullName": "Should Fail",
		"email":    "nope@test.com",
		"password": "password123",
	}

	res, _ := ts.SendRequest(t, http.MethodPost, "/api/v1/admin/conductors", passengerToken, body)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
}
