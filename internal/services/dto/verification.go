package dto

import (
	"time"

	"buspass_backend/internal/models"
)

// VerifyPassRequest - проверка проездного кондуктором.
// Либо passNumber (ручной ввод), либо qrData (отсканированный QR).
type VerifyPassRequest struct {
	PassNumber string            `json:"passNumber" binding:"required_without=QRData"`
	QRData     string            `json:"qrData" binding:"required_without=PassNumber"`
	ScanMethod models.ScanMethod `json:"scanMethod" binding:"required,scanmethod"`
}

// VerifyPassResponse - результат проверки
type VerifyPassResponse struct {
	IsValid    bool                `json:"isValid"`
	Remarks    string              `json:"remarks"`
	Pass       *models.BusPass     `json:"pass"`
	Passenger  *models.UserSummary `json:"passenger,omitempty"`
	PassType   *models.PassType    `json:"passType,omitempty"`
	ScansToday int64               `json:"scansToday"`
	ScanLimit  int                 `json:"scanLimit"`
}

// ScanDTO - запись о проверке для дашборда и истории
type ScanDTO struct {
	ID         string              `json:"id"`
	ScanMethod models.ScanMethod   `json:"scanMethod"`
	IsValid    bool                `json:"isValid"`
	Remarks    string              `json:"remarks"`
	ScanTime   time.Time           `json:"scanTime"`
	PassNumber string              `json:"passNumber,omitempty"`
	Passenger  *models.UserSummary `json:"passenger,omitempty"`
	PassType   string              `json:"passType,omitempty"`
}

// NewScanDTO строит запись истории из модели с подгруженными связями
func NewScanDTO(scan *models.ConductorScan) ScanDTO {
	item := ScanDTO{
		ID:         scan.ID,
		ScanMethod: scan.ScanMethod,
		IsValid:    scan.IsValid,
		Remarks:    scan.Remarks,
		ScanTime:   scan.CreatedAt,
	}
	if scan.Pass != nil {
		item.PassNumber = scan.Pass.PassNumber
		if scan.Pass.Application != nil {
			if scan.Pass.Application.User != nil {
				summary := scan.Pass.Application.User.Summary()
				item.Passenger = &summary
			}
			if scan.Pass.Application.PassType != nil {
				item.PassType = scan.Pass.Application.PassType.Name
			}
		}
	}
	return item
}

// DashboardStats - агрегаты проверок за сегодня
type DashboardStats struct {
	TotalScans   int64 `json:"totalScans"`
	ValidScans   int64 `json:"validScans"`
	InvalidScans int64 `json:"invalidScans"`
	QRScans      int64 `json:"qrScans"`
	ManualScans  int64 `json:"manualScans"`
}

// DashboardResponse - дашборд кондуктора
type DashboardResponse struct {
	Stats       DashboardStats `json:"stats"`
	RecentScans []ScanDTO      `json:"recentScans"`
}

// VerificationHistoryRequest - фильтр истории проверок
type VerificationHistoryRequest struct {
	StartDate string `form:"startDate" binding:"omitempty,datetime=2006-01-02"`
	EndDate   string `form:"endDate" binding:"omitempty,datetime=2006-01-02"`
	PageRequest
}

// VerificationHistoryResponse - постраничная история проверок
type VerificationHistoryResponse struct {
	Scans      []ScanDTO  `json:"scans"`
	Pagination Pagination `json:"pagination"`
}
