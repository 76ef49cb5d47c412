package dto

import "github.com/shopspring/decimal"

// CreatePassTypeRequest - создание тарифа проездного
type CreatePassTypeRequest struct {
	Name         string          `json:"name" binding:"required,min=2,max=100"`
	Description  string          `json:"description" binding:"max=500"`
	Price        decimal.Decimal `json:"price" binding:"required"`
	DurationDays int             `json:"durationDays" binding:"required,gt=0"`
	PerDayLimit  int             `json:"perDayLimit" binding:"omitempty,gt=0"`
}

// UpdatePassTypeRequest - изменение тарифа; nil-поля не трогаем
type UpdatePassTypeRequest struct {
	Name         *string          `json:"name" binding:"omitempty,min=2,max=100"`
	Description  *string          `json:"description" binding:"omitempty,max=500"`
	Price        *decimal.Decimal `json:"price"`
	DurationDays *int             `json:"durationDays" binding:"omitempty,gt=0"`
	PerDayLimit  *int             `json:"perDayLimit" binding:"omitempty,gt=0"`
	IsActive     *bool            `json:"isActive"`
}
