package validator

import (
	"github.com/go-playground/validator/v10"

	"buspass_backend/internal/models"
)

// registerCustomRules регистрирует доменные правила валидации.
func registerCustomRules(v *validator.Validate) {
	// decisionstatus: статус решения по заявке
	_ = v.RegisterValidation("decisionstatus", func(fl validator.FieldLevel) bool {
		return models.ValidDecisionStatus(models.ApplicationStatus(fl.Field().String()))
	})

	// scanmethod: способ сканирования проездного
	_ = v.RegisterValidation("scanmethod", func(fl validator.FieldLevel) bool {
		return models.ValidScanMethod(models.ScanMethod(fl.Field().String()))
	})

	// userrole: роль пользователя системы
	_ = v.RegisterValidation("userrole", func(fl validator.FieldLevel) bool {
		return models.ValidUserRole(models.UserRole(fl.Field().String()))
	})
}
