package services

import (
	"fmt"
	"strings"
	"time"

	"buspass_backend/internal/logger"
	"buspass_backend/internal/models"
	"buspass_backend/internal/repositories"
	"buspass_backend/internal/services/dto"
	"buspass_backend/pkg/apperrors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PaymentService interface {
	ProcessPayment(userID string, req *dto.ProcessPaymentRequest) (*dto.PaymentResponse, error)
	GetByApplication(userID, applicationID string) (*models.Payment, error)
}

type PaymentServiceImpl struct {
	db              *gorm.DB
	applicationRepo repositories.ApplicationRepository
	paymentRepo     repositories.PaymentRepository
	passTypeRepo    repositories.PassTypeRepository
}

func NewPaymentService(
	db *gorm.DB,
	applicationRepo repositories.ApplicationRepository,
	paymentRepo repositories.PaymentRepository,
	passTypeRepo repositories.PassTypeRepository,
) PaymentService {
	return &PaymentServiceImpl{
		db:              db,
		applicationRepo: applicationRepo,
		paymentRepo:     paymentRepo,
		passTypeRepo:    passTypeRepo,
	}
}

// ProcessPayment - оплата заявки пассажиром.
// Сумма берется из текущей цены тарифа; платеж и статус заявки
// меняются в одной транзакции, повторная оплата дает конфликт.
func (s *PaymentServiceImpl) ProcessPayment(userID string, req *dto.ProcessPaymentRequest) (*dto.PaymentResponse, error) {
	var payment *models.Payment

	err := s.db.Transaction(func(tx *gorm.DB) error {
		txAppRepo := s.applicationRepo.WithTx(tx)
		txPaymentRepo := s.paymentRepo.WithTx(tx)

		application, findErr := txAppRepo.FindByID(req.ApplicationID)
		if findErr != nil {
			if apperrors.Is(findErr, repositories.ErrApplicationNotFound) {
				return apperrors.ErrApplicationNotFound
			}
			return findErr
		}

		if application.UserID != userID {
			return apperrors.ErrApplicationNotOwned
		}

		if application.PaymentStatus != models.PaymentStatusPending {
			return apperrors.ErrPaymentAlreadyProcessed
		}

		passType := application.PassType
		if passType == nil {
			found, ptErr := s.passTypeRepo.FindByID(application.PassTypeID)
			if ptErr != nil {
				return ptErr
			}
			passType = found
		}

		if passType.Price.LessThanOrEqual(decimal.Zero) {
			return apperrors.ErrInvalidPaymentAmount
		}

		now := time.Now()
		payment = &models.Payment{
			ApplicationID: application.ID,
			Amount:        passType.Price,
			PaymentMethod: req.PaymentMethod,
			Status:        models.PaymentStatusCompleted,
			TransactionID: generateTransactionID(),
			PaidAt:        &now,
		}

		if createErr := txPaymentRepo.Create(payment); createErr != nil {
			return createErr
		}

		return txAppRepo.UpdatePaymentStatus(application.ID, models.PaymentStatusCompleted)
	})
	if err != nil {
		var appErr *apperrors.AppError
		if apperrors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, apperrors.InternalError(err)
	}

	logger.Info("Платеж проведен",
		"application_id", req.ApplicationID, "transaction_id", payment.TransactionID)

	application, err := s.applicationRepo.FindByID(req.ApplicationID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.PaymentResponse{
		Payment:     payment,
		Application: application,
	}, nil
}

// GetByApplication - платеж по заявке; доступен только владельцу
func (s *PaymentServiceImpl) GetByApplication(userID, applicationID string) (*models.Payment, error) {
	application, err := s.applicationRepo.FindByID(applicationID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrApplicationNotFound) {
			return nil, apperrors.ErrApplicationNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	if application.UserID != userID {
		return nil, apperrors.ErrApplicationNotOwned
	}

	payment, err := s.paymentRepo.FindByApplicationID(applicationID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrPaymentNotFound) {
			return nil, apperrors.NewNotFoundError("payment", "Payment not found")
		}
		return nil, apperrors.InternalError(err)
	}

	return payment, nil
}

// generateTransactionID генерирует уникальную ссылку на транзакцию
func generateTransactionID() string {
	return fmt.Sprintf("TXN-%s", strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:16]))
}
