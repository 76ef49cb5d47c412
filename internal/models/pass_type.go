package models

import "github.com/shopspring/decimal"

type PassType struct {
	BaseModel
	Name         string          `gorm:"uniqueIndex;not null" json:"name"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	DurationDays int             `gorm:"not null" json:"durationDays"`
	PerDayLimit  int             `gorm:"not null;default:3" json:"perDayLimit"`
	IsActive     bool            `gorm:"default:true" json:"isActive"`
	CreatedBy    string          `gorm:"type:uuid" json:"createdBy,omitempty"`
	UpdatedBy    string          `gorm:"type:uuid" json:"updatedBy,omitempty"`
}
