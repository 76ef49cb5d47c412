package helpers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"testing"
	"time"

	"buspass_backend/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// CreateUser создает пользователя с автоматическим хешированием пароля
func CreateUser(t *testing.T, db *gorm.DB, user *models.User) error {
	if user.PasswordHash != "" && !strings.HasPrefix(user.PasswordHash, "$2a$") {
		rawPassword := user.PasswordHash
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(rawPassword), bcrypt.DefaultCost)
		if err != nil {
			t.Fatalf("Не удалось хешировать пароль: %v", err)
		}
		user.PasswordHash = string(hashedPassword)
	}

	user.IsActive = true

	result := db.Create(user)
	if result.Error != nil {
		t.Logf("ОШИБКА: не удалось создать пользователя %s: %v", user.Email, result.Error)
		return result.Error
	}

	return nil
}

// CreateAndLoginUser создает пользователя и логинит его через API
func CreateAndLoginUser(t *testing.T, ts *TestServer, fullName, email, password string, role models.UserRole) (string, *models.User) {
	user := &models.User{
		FullName:     fullName,
		Email:        email,
		PasswordHash: password, // Сырой пароль, захешируется в CreateUser
		Role:         role,
	}
	err := CreateUser(t, ts.DB, user)
	assert.NoError(t, err, "Создание тестового пользователя не должно вызывать ошибку")

	loginBody := map[string]interface{}{
		"email":    email,
		"password": password,
	}

	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/login", "", loginBody)
	assert.Equal(t, http.StatusOK, res.StatusCode, "Логин должен быть успешным. Ответ: "+bodyStr)

	var loginResponse struct {
		Token string `json:"token"`
	}
	ParseData(t, bodyStr, &loginResponse)
	assert.NotEmpty(t, loginResponse.Token, "Токен не должен быть пустым")

	log.Printf("✅ [Helper] Создан и залогинен пользователь %s (Role: %s)", email, role)

	user.PasswordHash = password

	return loginResponse.Token, user
}

// CreateAndLoginPassenger создает пассажира с уникальным email
func CreateAndLoginPassenger(t *testing.T, ts *TestServer) (string, *models.User) {
	email := fmt.Sprintf("passenger_%d@test.com", time.Now().UnixNano())
	return CreateAndLoginUser(t, ts, "Test Passenger", email, "password123", models.UserRolePassenger)
}

// CreateAndLoginConductor создает кондуктора с уникальным email
func CreateAndLoginConductor(t *testing.T, ts *TestServer) (string, *models.User) {
	email := fmt.Sprintf("conductor_%d@test.com", time.Now().UnixNano())
	return CreateAndLoginUser(t, ts, "Test Conductor", email, "password123", models.UserRoleConductor)
}

// CreateAndLoginAdmin создает админа с уникальным email
func CreateAndLoginAdmin(t *testing.T, ts *TestServer) (string, *models.User) {
	email := fmt.Sprintf("admin_%d@test.com", time.Now().UnixNano())
	return CreateAndLoginUser(t, ts, "Test Admin", email, "password123", models.UserRoleAdmin)
}

// CreatePassType создает тариф напрямую в БД
func CreatePassType(t *testing.T, db *gorm.DB, name string, price int64, durationDays, perDayLimit int) *models.PassType {
	passType := &models.PassType{
		Name:         name,
		Description:  "Test pass type",
		Price:        decimal.NewFromInt(price),
		DurationDays: durationDays,
		PerDayLimit:  perDayLimit,
		IsActive:     true,
	}
	if err := db.Create(passType).Error; err != nil {
		t.Fatalf("Не удалось создать тариф %s: %v", name, err)
	}
	return passType
}

// SubmitApplication подает заявку через API и возвращает ее ID
func SubmitApplication(t *testing.T, ts *TestServer, token, passTypeID string) string {
	body := map[string]interface{}{
		"passTypeId":   passTypeID,
		"documentType": "ID_CARD",
		"documentLink": "https://files.test/doc.pdf",
	}

	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/passenger/applications", token, body)
	assert.Equal(t, http.StatusCreated, res.StatusCode, "Подача заявки должна быть успешной. Ответ: "+bodyStr)

	var application struct {
		ID string `json:"id"`
	}
	ParseData(t, bodyStr, &application)
	assert.NotEmpty(t, application.ID)

	return application.ID
}

// PayApplication оплачивает заявку через API
func PayApplication(t *testing.T, ts *TestServer, token, applicationID string) {
	body := map[string]interface{}{
		"applicationId": applicationID,
		"paymentMethod": "CARD",
	}

	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/passenger/payments", token, body)
	assert.Equal(t, http.StatusCreated, res.StatusCode, "Оплата должна быть успешной. Ответ: "+bodyStr)
}

// ApproveApplication одобряет заявку от имени админа и возвращает номер проездного
func ApproveApplication(t *testing.T, ts *TestServer, adminToken, applicationID string) string {
	body := map[string]interface{}{
		"status":  "APPROVED",
		"remarks": "Looks good",
	}

	res, bodyStr := ts.SendRequest(t, http.MethodPut,
		"/api/v1/admin/applications/"+applicationID+"/decision", adminToken, body)
	assert.Equal(t, http.StatusOK, res.StatusCode, "Одобрение должно быть успешным. Ответ: "+bodyStr)

	var application struct {
		BusPass *struct {
			PassNumber string `json:"passNumber"`
		} `json:"busPass"`
	}
	ParseData(t, bodyStr, &application)
	if application.BusPass == nil {
		t.Fatalf("После одобрения должен быть выпущен проездной. Ответ: %s", bodyStr)
	}

	return application.BusPass.PassNumber
}

// IssuePassForPassenger прогоняет полный цикл заявка-оплата-одобрение
func IssuePassForPassenger(t *testing.T, ts *TestServer, passengerToken, adminToken, passTypeID string) string {
	applicationID := SubmitApplication(t, ts, passengerToken, passTypeID)
	PayApplication(t, ts, passengerToken, applicationID)
	return ApproveApplication(t, ts, adminToken, applicationID)
}

// DumpJSON печатает объект для отладки теста
func DumpJSON(t *testing.T, label string, v interface{}) {
	raw, _ := json.MarshalIndent(v, "", "  ")
	t.Logf("%s: %s", label, raw)
}
