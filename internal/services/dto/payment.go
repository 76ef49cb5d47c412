package dto

import "buspass_backend/internal/models"

// ProcessPaymentRequest - оплата заявки; сумма берется из тарифа, не от клиента
type ProcessPaymentRequest struct {
	ApplicationID string `json:"applicationId" binding:"required,uuid"`
	PaymentMethod string `json:"paymentMethod" binding:"required,min=2,max=50"`
}

// PaymentResponse - платеж вместе с обновленной заявкой
type PaymentResponse struct {
	Payment     *models.Payment         `json:"payment"`
	Application *models.PassApplication `json:"application"`
}
