package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Payment struct {
	BaseModel
	ApplicationID string          `gorm:"type:uuid;not null;index" json:"applicationId"`
	Amount        decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	PaymentMethod string          `gorm:"not null" json:"paymentMethod"`
	Status        PaymentStatus   `gorm:"type:varchar(20);not null" json:"status"`
	TransactionID string          `gorm:"uniqueIndex;not null" json:"transactionId"`
	PaidAt        *time.Time      `json:"paidAt,omitempty"`
}
