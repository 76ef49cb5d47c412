package apperrors

import (
	"fmt"
	"net/http"
)

/*
Этот файл содержит фабрики и предопределенные переменные
для ошибок бизнес-логики доменов bus-pass системы.
*/

// =========================================================================
// Фабричные ФУНКЦИИ (оборачивание ошибок репозитория)
// =========================================================================

// ErrNotFound - фабрика для ошибки "не найдено" (404)
// Используется, когда ошибка репозитория (типа gorm.ErrRecordNotFound)
// должна быть преобразована в AppError.
func ErrNotFound(err error, domain, message string) *AppError {
	return Wrap(err, CodeNotFound, domain, message, http.StatusNotFound)
}

// ErrConflict - общая фабрика для конфликтов (409)
func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}

// =========================================================================
// Аутентификация
// =========================================================================

var (
	ErrInvalidCredentials = New(CodeInvalidCredentials, "auth", "Invalid email or password", http.StatusUnauthorized)
	ErrUnauthorized       = New(CodeUnauthorized, "auth", "Authentication required", http.StatusUnauthorized)
	ErrForbidden          = New(CodeForbidden, "auth", "Access denied", http.StatusForbidden)
	ErrInvalidToken       = New(CodeInvalidToken, "auth", "Invalid or expired token", http.StatusUnauthorized)
	ErrEmailAlreadyExists = New(CodeAlreadyExists, "user", "Email already exists", http.StatusConflict)
	ErrUserNotFound       = New(CodeNotFound, "user", "User not found", http.StatusNotFound)
	ErrWeakPassword       = New(CodeValidationFailed, "user", "Password must be at least 6 characters", http.StatusBadRequest)
	ErrInvalidUserRole    = New(CodeInvalidOperation, "user", "Invalid user role", http.StatusBadRequest)
)

// =========================================================================
// Каталог типов проездных
// =========================================================================

var (
	ErrPassTypeNotFound      = New(CodeNotFound, "pass_type", "Pass type not found", http.StatusNotFound)
	ErrPassTypeAlreadyExists = New(CodeAlreadyExists, "pass_type", "Pass type already exists", http.StatusConflict)
	ErrPassTypeNameTaken     = New(CodeAlreadyExists, "pass_type", "Pass type name already exists", http.StatusConflict)
)

// =========================================================================
// Заявки на проездной
// =========================================================================

var (
	ErrApplicationNotFound   = New(CodeNotFound, "application", "Application not found", http.StatusNotFound)
	ErrPendingApplication    = New(CodeConflict, "application", "You already have a pending application", http.StatusConflict)
	ErrPassAlreadyCreated    = New(CodeConflict, "application", "Pass already created for this application", http.StatusConflict)
	ErrPaymentNotCompleted   = New(CodeConflict, "application", "Payment is not completed for this application", http.StatusConflict)
	ErrApplicationNotOwned   = New(CodeForbidden, "application", "Unauthorized access", http.StatusForbidden)
	ErrInvalidDecisionStatus = New(CodeInvalidStatus, "application", "Invalid application status", http.StatusBadRequest)
)

// ErrApplicationAlreadyDecided - повторное решение с тем же статусом (409)
func ErrApplicationAlreadyDecided(status string) *AppError {
	return New(CodeConflict, "application", fmt.Sprintf("Application is already %s", status), http.StatusConflict)
}

// =========================================================================
// Платежи
// =========================================================================

var (
	ErrPaymentAlreadyProcessed = New(CodeConflict, "payment", "Payment already processed", http.StatusConflict)
	ErrInvalidPaymentAmount    = New(CodeValidationFailed, "payment", "Invalid payment amount", http.StatusBadRequest)
)

// =========================================================================
// Проездные и верификация
// =========================================================================

var (
	ErrPassNotFound      = New(CodeNotFound, "pass", "Pass not found", http.StatusNotFound)
	ErrPassNotOwned      = New(CodeForbidden, "pass", "Unauthorized access", http.StatusForbidden)
	ErrInvalidPass       = New(CodeValidationFailed, "verification", "Invalid pass", http.StatusBadRequest)
	ErrInvalidQRPayload  = New(CodeValidationFailed, "verification", "Invalid QR payload", http.StatusBadRequest)
	ErrDailyLimitReached = New(CodeLimitExceeded, "verification", "Daily scan limit exceeded", http.StatusConflict)
	ErrInvalidScanMethod = New(CodeInvalidOperation, "verification", "Invalid scan method", http.StatusBadRequest)
)
