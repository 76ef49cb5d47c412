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

func verifyByNumber(t *testing.T, ts *helpers.TestServer, conductorToken, passNumber, method string) (*http.Response, string) {
	body := map[string]interface{}{
		"passNumber": passNumber,
		"scanMethod": method,
	}
	return ts.SendRequest(t, http.MethodPost, "/api/v1/conductor/verify", conductorToken, body)
}

func TestVerifyPass_Valid(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables(t)

	passengerToken, _ := helpers.CreateAndLoginPassenger(t, ts)
	adminToken, _ := helpers.CreateAndLoginAdmin(t, ts)
	conductorToken, _ := helpers.CreateAndLoginConductor(t, ts)
	passType := helpers.CreatePassType(t, ts.DB, "Weekly Pass", 175, 7, 3)

	passNumber := helpers.IssuePassForPassenger(t, ts, passengerToken, adminToken, passType.ID)

	res, bodyStr := verifyByNumber(t, ts, conductorToken, passNumber, "MANUAL")
	require.Equal(t, http.StatusOK, res.StatusCode, "Ответ: "+bodyStr)

	var resp struct {
		IsValid    bool   `json:"isValid"`
		Remarks    string `json:"remarks"`
		ScansToday int64  `json:"scansToday"`
		ScanLimit  int    `json:"scanLimit"`
		Passenger  *struct {
			FullName string `json:"fullName"`
		} `json:"passenger"`
	}
	helpers.ParseData(t, bodyStr, &resp)

	assert.True(t, resp.IsValid)
	assert.Equal(t, "Pass is valid", resp.Remarks)
	assert.Equal(t, int64(1), resp.ScansToday)
	assert.Equal(t, 3, resp.ScanLimit)
	require.NotNil(t, resp.Passenger)
	assert.Equal(t, "Test Passenger", resp.Passenger.FullName)
}

func TestVerifyPass_ByQRPayload(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables(t)

	passengerToken, _ := helpers.CreateAndLoginPassenger(t, ts)
	adminToken, _ := helpers.CreateAndLoginAdmin(t, ts)
	conductorToken, _ := helpers.CreateAndLoginConductor(t, ts)
	passType := helpers.CreatePassType(t, ts.DB, "Weekly Pass", 175, 7, 3)

	passNumber := helpers.IssuePassForPassenger(t, ts, passengerToken, adminToken, passType.ID)

	var pass models.BusPass
	require.NoError(t, ts.DB.Where("pass_number = ?", passNumber).First(&pass).Error)
	require.NotEmpty(t, pass.QRCode, "Выпущенный проездной несет QR-полезную нагрузку")

	body := map[string]interface{}{
		"qrData":     pass.QRCode,
		"scanMethod": "QR",
	}
	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/conductor/verify", conductorToken, body)
	require.Equal(t, http.StatusOK, res.StatusCode, "Ответ: "+bodyStr)

	var resp struct {
		IsValid bool `json:"isValid"`
		Pass    struct {
			PassNumber string `json:"passNumber"`
		} `json:"pass"`
	}
	helpers.ParseData(t, bodyStr, &resp)
	assert.True(t, resp.IsValid)
	assert.Equal(t, passNumber, resp.Pass.PassNumber)
}

func TestVerifyPass_DailyLimit(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables(t)

	passengerToken, _ := helpers.CreateAndLoginPassenger(t, ts)
	adminToken, _ := helpers.CreateAndLoginAdmin(t, ts)
	conductorToken, _ := helpers.CreateAndLoginConductor(t, ts)
	passType := helpers.CreatePassType(t, ts.DB, "Weekly Pass", 175, 7, 3)

	passNumber := helpers.IssuePassForPassenger(t, ts, passengerToken, adminToken, passType.ID)

	// Лимит 3 прохода в день
	for i := 0; i < 3; i++ {
		res, bodyStr := verifyByNumber(t, ts, conductorToken, passNumber, "MANUAL")
		require.Equal(t, http.StatusOK, res.StatusCode, "Проход %d. Ответ: %s", i+1, bodyStr)
	}

	// Четвертый проход отклоняется
	res, bodyStr := verifyByNumber(t, ts, conductorToken, passNumber, "MANUAL")
	assert.Equal(t, http.StatusConflict, res.StatusCode)

	envelope := helpers.ParseEnvelope(t, bodyStr)
	assert.Equal(t, "Daily scan limit exceeded", envelope.Message)

	// Отклоненный проход не оставляет записи в журнале
	var count int64
	ts.DB.Model(&models.ConductorScan{}).Count(&count)
	assert.Equal(t, int64(3), count, "Журнал никогда не превышает дневной лимит")
}

func TestVerifyPass_ExpiredAndNotStarted(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables(t)

	passengerToken, _ := helpers.CreateAndLoginPassenger(t, ts)
	adminToken, _ := helpers.CreateAndLoginAdmin(t, ts)
	conductorToken, _ := helpers.CreateAndLoginConductor(t, ts)
	passType := helpers.CreatePassType(t, ts.DB, "Weekly Pass", 175, 7, 3)

	passNumber := helpers.IssuePassForPassenger(t, ts, passengerToken, adminToken, passType.ID)

	// Сдвигаем окно действия в прошлое
	err := ts.DB.Model(&models.BusPass{}).Where("pass_number = ?", passNumber).
		Updates(map[string]interface{}{
			"valid_from":  time.Now().AddDate(0, 0, -14),
			"valid_until": time.Now().AddDate(0, 0, -7),
		}).Error
	require.NoError(t, err)

	res, bodyStr := verifyByNumber(t, ts, conductorToken, passNumber, "MANUAL")
	require.Equal(t, http.StatusOK, res.StatusCode)

	var resp struct {
		IsValid bool   `json:"isValid"`
		Remarks string `json:"remarks"`
	}
	helpers.ParseData(t, bodyStr, &resp)
	assert.False(t, resp.IsValid)
	assert.Equal(t, "Pass has expired", resp.Remarks)

	// Сдвигаем окно в будущее
	err = ts.DB.Model(&models.BusPass{}).Where("pass_number = ?", passNumber).
		Updates(map[string]interface{}{
			"valid_from":  time.Now().AddDate(0, 0, 7),
			"valid_until": time.Now().AddDate(0, 0, 14),
		}).Error
	require.NoError(t, err)

	res, bodyStr = verifyByNumber(t, ts, conductorToken, passNumber, "MANUAL")
	require.Equal(t, http.StatusOK, res.StatusCode)
	helpers.ParseData(t, bodyStr, &resp)
	assert.False(t, resp.IsValid)
	assert.Equal(t, "Pass is not yet valid", resp.Remarks)
}

func TestVerifyPass_DeactivatedPass(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables(t)

	passengerToken, _ := helpers.CreateAndLoginPassenger(t, ts)
	adminToken, _ := helpers.CreateAndLoginAdmin(t, ts)
	conductorToken, _ := helpers.CreateAndLoginConductor(t, ts)
	passType := helpers.CreatePassType(t, ts.DB, "Weekly Pass", 175, 7, 3)

	passNumber := helpers.IssuePassForPassenger(t, ts, passengerToken, adminToken, passType.ID)

	err := ts.DB.Model(&models.BusPass{}).Where("pass_number = ?", passNumber).
		Update("is_active", false).Error
	require.NoError(t, err)

	res, bodyStr := verifyByNumber(t, ts, conductorToken, passNumber, "MANUAL")
	require.Equal(t, http.StatusOK, res.StatusCode)

	var resp struct {
		IsValid bool   `json:"isValid"`
		Remarks string `json:"remarks"`
	}
	helpers.ParseData(t, bodyStr, &resp)
	assert.False(t, resp.IsValid)
	assert.Equal(t, "Pass is deactivated", resp.Remarks)
}

func TestVerifyPass_UnknownPass(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables(t)

	conductorToken, _ := helpers.CreateAndLoginConductor(t, ts)

	res, bodyStr := verifyByNumber(t, ts, conductorToken, "BP-DOESNOTEXIST", "MANUAL")
	assert.Equal(t, http.StatusNotFound, res.StatusCode)

	envelope := helpers.ParseEnvelope(t, bodyStr)
	assert.Equal(t, "Pass not found", envelope.Message)
}

func TestConductorDashboard(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables(t)

	passengerToken, _ := helpers.CreateAndLoginPassenger(t, ts)
	adminToken, _ := helpers.CreateAndLoginAdmin(t, ts)
	conductorToken, _ := helpers.CreateAndLoginConductor(t, ts)
	passType := helpers.CreatePassType(t, ts.DB, "Weekly Pass", 175, 7, 5)

	passNumber := helpers.IssuePassForPassenger(t, ts, passengerToken, adminToken, passType.ID)

	// Два ручных прохода и один QR
	verifyByNumber(t, ts, conductorToken, passNumber, "MANUAL")
	verifyByNumber(t, ts, conductorToken, passNumber, "MANUAL")

	var pass models.BusPass
	require.NoError(t, ts.DB.Where("pass_number = ?", passNumber).First(&pass).Error)
	ts.SendRequest(t, http.MethodPost, "/api/v1/conductor/verify", conductorToken, map[string]interface{}{
		"qrData":     pass.QRCode,
		"scanMethod": "QR",
	})

	res, bodyStr := ts.SendRequest(t, http.MethodGet, "/api/v1/conductor/dashboard", conductorToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, "Ответ: "+bodyStr)

	var dashboard struct {
		Stats struct {
			TotalScans   int64 `json:"totalScans"`
			ValidScans   int64 `json:"validScans"`
			InvalidScans int64 `json:"invalidScans"`
			QRScans      int64 `json:"qrScans"`
			ManualScans  int64 `json:"manualScans"`
		} `json:"stats"`
		RecentScans []struct {
			PassNumber string `json:"passNumber"`
		} `json:"recentScans"`
	}
	helpers.ParseData(t, bodyStr, &dashboard)

	assert.Equal(t, int64(3), dashboard.Stats.TotalScans)
	assert.Equal(t, int64(3), dashboard.Stats.ValidScans)
	assert.Equal(t, int64(0), dashboard.Stats.InvalidScans)
	assert.Equal(t, int64(1), dashboard.Stats.QRScans)
	assert.Equal(t, int64(2), dashboard.Stats.ManualScans)
	require.Len(t, dashboard.RecentScans, 3)
	assert.Equal(t, passNumber, dashboard.RecentScans[0].PassNumber)
}

func TestVerificationHistory_Pagination(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables(t)

	passengerToken, _ := helpers.CreateAndLoginPassenger(t, ts)
	adminToken, _ := helpers.CreateAndLoginAdmin(t, ts)
	conductorToken, _ := helpers.CreateAndLoginConductor(t, ts)
	passType := helpers.CreatePassType(t, ts.DB, "Weekly Pass", 175, 7, 10)

	passNumber := helpers.IssuePassForPassenger(t, ts, passengerToken, adminToken, passType.ID)

	for i := 0; i < 5; i++ {
		res, _ := verifyByNumber(t, ts, conductorToken, passNumber, "MANUAL")
		require.Equal(t, http.StatusOK, res.StatusCode)
	}

	res, bodyStr := ts.SendRequest(t, http.MethodGet,
		"/api/v1/conductor/history?page=2&limit=2", conductorToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)

	var history struct {
		Scans      []struct{} `json:"scans"`
		Pagination struct {
			Total      int64 `json:"total"`
			TotalPages int   `json:"totalPages"`
		} `json:"pagination"`
	}
	helpers.ParseData(t, bodyStr, &history)

	assert.Len(t, history.Scans, 2)
	assert.Equal(t, int64(5), history.Pagination.Total)
	assert.Equal(t, 3, history.Pagination.TotalPages)
}

func TestVerify_RequiresConductorRole(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables(t)

	passengerToken, _ := helpers.CreateAndLoginPassenger(t, ts)

	res, _ := verifyByNumber(t, ts, passengerToken, "BP-ANY", "MANUAL")
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
}
