package dto

import "buspass_backend/internal/models"

// PassDetailsResponse - проездной пассажира; для действующих включает QR-изображение
type PassDetailsResponse struct {
	*models.BusPass
	PassType *models.PassType `json:"passType,omitempty"`
	QRImage  string           `json:"qrImage,omitempty"`
}
