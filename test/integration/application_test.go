package integration_test

import (
	"net/http"
	"testing"
	"time"

	"buspass_backend/internal/models"
	"buspass_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitApplication(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables(t)

	passengerToken, passenger := helpers.CreateAndLoginPassenger(t, ts)
	passType := helpers.CreatePassType(t, ts.DB, "Weekly Pass", 175, 7, 3)

	body := map[string]interface{}{
		"passTypeId":   passType.ID,
		"documentType": "ID_CARD",
		"documentLink": "https://files.test/doc.pdf",
	}

	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/passenger/applications", passengerToken, body)
	require.Equal(t, http.StatusCreated, res.StatusCode, "Ответ: "+bodyStr)

	var application struct {
		ID            string `json:"id"`
		Status        string `json:"status"`
		PaymentStatus string `json:"paymentStatus"`
		Documents     []struct {
			DocumentType string `json:"documentType"`
			DocumentPath string `json:"documentPath"`
		} `json:"documents"`
		UserSummary *struct {
			ID    string `json:"id"`
			Email string `json:"email"`
		} `json:"userSummary"`
	}
	helpers.ParseData(t, bodyStr, &application)

	assert.Equal(t, "PENDING", application.Status)
	assert.Equal(t, "PENDING", application.PaymentStatus)
	require.Len(t, application.Documents, 1, "Документ создается вместе с заявкой")
	assert.Equal(t, "ID_CARD", application.Documents[0].DocumentType)
	require.NotNil(t, application.UserSummary)
	assert.Equal(t, passenger.Email, application.UserSummary.Email)
}

func TestSubmitApplication_DuplicatePending(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables(t)

	passengerToken, _ := helpers.CreateAndLoginPassenger(t, ts)
	passType := helpers.CreatePassType(t, ts.DB, "Weekly Pass", 175, 7, 3)

	helpers.SubmitApplication(t, ts, passengerToken, passType.ID)

	// Вторая заявка при открытой первой должна дать конфликт
	body := map[string]interface{}{
		"passTypeId":   passType.ID,
		"documentType": "ID_CARD",
		"documentLink": "https://files.test/doc2.pdf",
	}
	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/passenger/applications", passengerToken, body)
	assert.Equal(t, http.StatusConflict, res.StatusCode)

	envelope := helpers.ParseEnvelope(t, bodyStr)
	assert.False(t, envelope.Success)
	assert.Equal(t, "You already have a pending application", envelope.Message)

	var count int64
	ts.DB.Model(&models.PassApplication{}).Count(&count)
	assert.Equal(t, int64(1), count, "Должна остаться ровно одна заявка")
}

func TestSubmitApplication_UnknownPassType(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables(t)

	passengerToken, _ := helpers.CreateAndLoginPassenger(t, ts)

	body := map[string]interface{}{
		"passTypeId":   "00000000-0000-0000-0000-000000000000",
		"documentType": "ID_CARD",
		"documentLink": "https://files.test/doc.pdf",
	}
	res, _ := ts.SendRequest(t, http.MethodPost, "/api/v1/passenger/applications", passengerToken, body)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestDecideApplication_RequiresCompletedPayment(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables(t)

	passengerToken, _ := helpers.CreateAndLoginPassenger(t, ts)
	adminToken, _ := helpers.CreateAndLoginAdmin(t, ts)
	passType := helpers.CreatePassType(t, ts.DB, "Weekly Pass", 175, 7, 3)

	applicationID := helpers.SubmitApplication(t, ts, passengerToken, passType.ID)

	// Одобрение без оплаты должно падать конфликтом
	body := map[string]interface{}{"status": "APPROVED"}
	res, bodyStr := ts.SendRequest(t, http.MethodPut,
		"/api/v1/admin/applications/"+applicationID+"/decision", adminToken, body)
	assert.Equal(t, http.StatusConflict, res.StatusCode)

	envelope := helpers.ParseEnvelope(t, bodyStr)
	assert.Contains(t, envelope.Message, "Payment is not completed")
}

func TestDecideApplication_ApproveIssuesPass(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables(t)

	passengerToken, _ := helpers.CreateAndLoginPassenger(t, ts)
	adminToken, _ := helpers.CreateAndLoginAdmin(t, ts)
	passType := helpers.CreatePassType(t, ts.DB, "Weekly Pass", 175, 7, 3)

	applicationID := helpers.SubmitApplication(t, ts, passengerToken, passType.ID)
	helpers.PayApplication(t, ts, passengerToken, applicationID)

	body := map[string]interface{}{"status": "APPROVED", "remarks": "ok"}
	res, bodyStr := ts.SendRequest(t, http.MethodPut,
		"/api/v1/admin/applications/"+applicationID+"/decision", adminToken, body)
	require.Equal(t, http.StatusOK, res.StatusCode, "Ответ: "+bodyStr)

	var application struct {
		Status  string `json:"status"`
		BusPass *struct {
			PassNumber string    `json:"passNumber"`
			ValidFrom  time.Time `json:"validFrom"`
			ValidUntil time.Time `json:"validUntil"`
			IsActive   bool      `json:"isActive"`
			QRCode     string    `json:"qrCode"`
		} `json:"busPass"`
		Approval *struct {
			Status string `json:"status"`
			Notes  string `json:"notes"`
		} `json:"approval"`
	}
	helpers.ParseData(t, bodyStr, &application)

	assert.Equal(t, "APPROVED", application.Status)
	require.NotNil(t, application.BusPass, "Одобрение должно выпустить проездной")
	assert.True(t, application.BusPass.IsActive)
	assert.NotEmpty(t, application.BusPass.PassNumber)
	assert.NotEmpty(t, application.BusPass.QRCode)
	require.NotNil(t, application.Approval)
	assert.Equal(t, "APPROVED", application.Approval.Status)
	assert.Equal(t, "ok", application.Approval.Notes)

	// validUntil = validFrom + durationDays
	expected := application.BusPass.ValidFrom.AddDate(0, 0, passType.DurationDays)
	assert.WithinDuration(t, expected, application.BusPass.ValidUntil, time.Second)
}

func TestDecideApplication_DoubleDecideConflicts(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables(t)

	passengerToken, _ := helpers.CreateAndLoginPassenger(t, ts)
	adminToken, _ := helpers.CreateAndLoginAdmin(t, ts)
	passType := helpers.CreatePassType(t, ts.DB, "Weekly Pass", 175, 7, 3)

	applicationID := helpers.SubmitApplication(t, ts, passengerToken, passType.ID)
	helpers.PayApplication(t, ts, passengerToken, applicationID)
	helpers.ApproveApplication(t, ts, adminToken, applicationID)

	// Повторное решение с любым статусом: проездной уже выпущен
	for _, status := range []string{"APPROVED", "REJECTED"} {
		body := map[string]interface{}{"status": status}
		res, _ := ts.SendRequest(t, http.MethodPut,
			"/api/v1/admin/applications/"+applicationID+"/decision", adminToken, body)
		assert.Equal(t, http.StatusConflict, res.StatusCode, "Статус: "+status)
	}

	var passCount int64
	ts.DB.Model(&models.BusPass{}).Count(&passCount)
	assert.Equal(t, int64(1), passCount, "Проездной должен остаться единственным")
}

func TestDecideApplication_RejectThenApprove(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables(t)

	passengerToken, _ := helpers.CreateAndLoginPassenger(t, ts)
	adminToken, _ := helpers.CreateAndLoginAdmin(t, ts)
	passType := helpers.CreatePassType(t, ts.DB, "Weekly Pass", 175, 7, 3)

	applicationID := helpers.SubmitApplication(t, ts, passengerToken, passType.ID)
	helpers.PayApplication(t, ts, passengerToken, applicationID)

	// Отклоняем
	body := map[string]interface{}{"status": "REJECTED", "remarks": "blurry document"}
	res, _ := ts.SendRequest(t, http.MethodPut,
		"/api/v1/admin/applications/"+applicationID+"/decision", adminToken, body)
	require.Equal(t, http.StatusOK, res.StatusCode)

	// Повторное отклонение с тем же статусом - конфликт, не no-op
	res, _ = ts.SendRequest(t, http.MethodPut,
		"/api/v1/admin/applications/"+applicationID+"/decision", adminToken, body)
	assert.Equal(t, http.StatusConflict, res.StatusCode)

	// Пересмотр в одобрение допустим и перезаписывает решение
	body = map[string]interface{}{"status": "APPROVED", "remarks": "resubmitted offline"}
	res, bodyStr := ts.SendRequest(t, http.MethodPut,
		"/api/v1/admin/applications/"+applicationID+"/decision", adminToken, body)
	require.Equal(t, http.StatusOK, res.StatusCode, "Ответ: "+bodyStr)

	var approvalCount int64
	ts.DB.Model(&models.PassApproval{}).Where("application_id = ?", applicationID).Count(&approvalCount)
	assert.Equal(t, int64(1), approvalCount, "Решение должно перезаписываться, а не дублироваться")
}

func TestListApplications_FilterAndPagination(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables(t)

	adminToken, _ := helpers.CreateAndLoginAdmin(t, ts)
	passType := helpers.CreatePassType(t, ts.DB, "Weekly Pass", 175, 7, 3)

	// Три пассажира с открытыми заявками
	for i := 0; i < 3; i++ {
		passengerToken, _ := helpers.CreateAndLoginPassenger(t, ts)
		helpers.SubmitApplication(t, ts, passengerToken, passType.ID)
	}

	res, bodyStr := ts.SendRequest(t, http.MethodGet,
		"/api/v1/admin/applications?status=PENDING&page=1&limit=2", adminToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, "Ответ: "+bodyStr)

	var list struct {
		Applications []struct {
			Status string `json:"status"`
		} `json:"applications"`
		Pagination struct {
			Page       int   `json:"page"`
			Limit      int   `json:"limit"`
			Total      int64 `json:"total"`
			TotalPages int   `json:"totalPages"`
		} `json:"pagination"`
	}
	helpers.ParseData(t, bodyStr, &list)

	assert.Len(t, list.Applications, 2)
	assert.Equal(t, int64(3), list.Pagination.Total)
	assert.Equal(t, 2, list.Pagination.TotalPages, "totalPages = ceil(3/2)")
	for _, a := range list.Applications {
		assert.Equal(t, "PENDING", a.Status)
	}
}

func TestGetMyApplications(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables(t)

	passengerToken, _ := helpers.CreateAndLoginPassenger(t, ts)
	otherToken, _ := helpers.CreateAndLoginPassenger(t, ts)
	passType := helpers.CreatePassType(t, ts.DB, "Weekly Pass", 175, 7, 3)

	ownID := helpers.SubmitApplication(t, ts, passengerToken, passType.ID)
	helpers.SubmitApplication(t, ts, otherToken, passType.ID)

	res, bodyStr := ts.SendRequest(t, http.MethodGet, "/api/v1/passenger/applications", passengerToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)

	var list struct {
		Applications []struct {
			ID string `json:"id"`
		} `json:"applications"`
	}
	helpers.ParseData(t, bodyStr, &list)

	require.Len(t, list.Applications, 1, "Пассажир видит только свои заявки")
	assert.Equal(t, ownID, list.Applications[0].ID)
}
