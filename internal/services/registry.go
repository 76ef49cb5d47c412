package services

import (
	"buspass_backend/internal/email"
	"buspass_backend/internal/repositories"

	"gorm.io/gorm"
)

// ServiceContainer собирает все сервисы приложения
type ServiceContainer struct {
	Auth         AuthService
	PassType     PassTypeService
	Application  ApplicationService
	Payment      PaymentService
	Pass         PassService
	Verification VerificationService
	Report       ReportService
}

// NewServiceContainer связывает репозитории и сервисы
func NewServiceContainer(db *gorm.DB, emailProvider email.Provider) *ServiceContainer {
	userRepo := repositories.NewUserRepository(db)
	passTypeRepo := repositories.NewPassTypeRepository(db)
	applicationRepo := repositories.NewApplicationRepository(db)
	paymentRepo := repositories.NewPaymentRepository(db)
	passRepo := repositories.NewPassRepository(db)
	verificationRepo := repositories.NewVerificationRepository(db)

	return &ServiceContainer{
		Auth:         NewAuthService(userRepo),
		PassType:     NewPassTypeService(passTypeRepo),
		Application:  NewApplicationService(db, applicationRepo, userRepo, passTypeRepo, passRepo, emailProvider),
		Payment:      NewPaymentService(db, applicationRepo, paymentRepo, passTypeRepo),
		Pass:         NewPassService(passRepo),
		Verification: NewVerificationService(passRepo, verificationRepo),
		Report:       NewReportService(applicationRepo, passRepo, paymentRepo, verificationRepo),
	}
}
