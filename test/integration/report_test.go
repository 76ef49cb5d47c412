package integration_test

import (
	"net/http"
	"testing"

	"buspass_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminStatistics(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables(t)

	adminToken, _ := helpers.CreateAndLoginAdmin(t, ts)
	weekly := helpers.CreatePassType(t, ts.DB, "Weekly Pass", 175, 7, 3)

	// Одна одобренная заявка с проездным, одна открытая
	approvedToken, _ := helpers.CreateAndLoginPassenger(t, ts)
	applicationID := helpers.SubmitApplication(t, ts, approvedToken, weekly.ID)
	helpers.PayApplication(t, ts, approvedToken, applicationID)
	helpers.ApproveApplication(t, ts, adminToken, applicationID)

	pendingToken, _ := helpers.CreateAndLoginPassenger(t, ts)
	helpers.SubmitApplication(t, ts, pendingToken, weekly.ID)

	res, bodyStr := ts.SendRequest(t, http.MethodGet, "/api/v1/admin/statistics", adminToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, "Ответ: "+bodyStr)

	var stats struct {
		Applications struct {
			Total    int64 `json:"total"`
			Pending  int64 `json:"pending"`
			Approved int64 `json:"approved"`
			Rejected int64 `json:"rejected"`
		} `json:"applications"`
		Passes struct {
			Total   int64 `json:"total"`
			Active  int64 `json:"active"`
			Expired int64 `json:"expired"`
		} `json:"passes"`
		Revenue    string `json:"revenue"`
		TotalScans int64  `json:"totalScans"`
	}
	helpers.ParseData(t, bodyStr, &stats)

	assert.Equal(t, int64(2), stats.Applications.Total)
	assert.Equal(t, int64(1), stats.Applications.Pending)
	assert.Equal(t, int64(1), stats.Applications.Approved)
	assert.Equal(t, int64(0), stats.Applications.Rejected)
	assert.Equal(t, int64(1), stats.Passes.Total)
	assert.Equal(t, int64(1), stats.Passes.Active)
	assert.Equal(t, "175", stats.Revenue)
}

func TestAdminStatistics_DateRangeBoundsPayments(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables(t)

	adminToken, _ := helpers.CreateAndLoginAdmin(t, ts)
	weekly := helpers.CreatePassType(t, ts.DB, "Weekly Pass", 175, 7, 3)

	passengerToken, _ := helpers.CreateAndLoginPassenger(t, ts)
	applicationID := helpers.SubmitApplication(t, ts, passengerToken, weekly.ID)
	helpers.PayApplication(t, ts, passengerToken, applicationID)

	// Диапазон в прошлом не захватывает сегодняшний платеж
	res, bodyStr := ts.SendRequest(t, http.MethodGet,
		"/api/v1/admin/statistics?startDate=2000-01-01&endDate=2000-12-31", adminToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)

	var stats struct {
		Revenue string `json:"revenue"`
	}
	helpers.ParseData(t, bodyStr, &stats)
	assert.Equal(t, "0", stats.Revenue)
}

func TestAdminListUsers(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables(t)

	adminToken, _ := helpers.CreateAndLoginAdmin(t, ts)
	helpers.CreateAndLoginPassenger(t, ts)
	helpers.CreateAndLoginConductor(t, ts)

	res, bodyStr := ts.SendRequest(t, http.MethodGet, "/api/v1/admin/users?role=conductor", adminToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, "Ответ: "+bodyStr)

	var list struct {
		Users []struct {
			Role string `json:"role"`
		} `json:"users"`
	}
	helpers.ParseData(t, bodyStr, &list)

	require.Len(t, list.Users, 1)
	assert.Equal(t, "conductor", list.Users[0].Role)
}
