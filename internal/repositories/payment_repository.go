package repositories

import (
	"errors"
	"time"

	"buspass_backend/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrPaymentNotFound = errors.New("payment not found")
)

type PaymentRepository interface {
	Create(payment *models.Payment) error
	FindByID(id string) (*models.Payment, error)
	FindByApplicationID(applicationID string) (*models.Payment, error)
	SumCompleted(dateFrom, dateTo *time.Time) (decimal.Decimal, error)

	WithTx(tx *gorm.DB) PaymentRepository
}

type PaymentRepositoryImpl struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &PaymentRepositoryImpl{db: db}
}

func (r *PaymentRepositoryImpl) WithTx(tx *gorm.DB) PaymentRepository {
	return &PaymentRepositoryImpl{db: tx}
}

func (r *PaymentRepositoryImpl) Create(payment *models.Payment) error {
	return r.db.Create(payment).Error
}

func (r *PaymentRepositoryImpl) FindByID(id string) (*models.Payment, error) {
	var payment models.Payment
	err := r.db.First(&payment, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	return &payment, nil
}

func (r *PaymentRepositoryImpl) FindByApplicationID(applicationID string) (*models.Payment, error) {
	var payment models.Payment
	err := r.db.First(&payment, "application_id = ?", applicationID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	return &payment, nil
}

// SumCompleted возвращает сумму завершенных платежей, опционально в диапазоне дат
func (r *PaymentRepositoryImpl) SumCompleted(dateFrom, dateTo *time.Time) (decimal.Decimal, error) {
	query := r.db.Model(&models.Payment{}).Where("status = ?", models.PaymentStatusCompleted)
	if dateFrom != nil {
		query = query.Where("created_at >= ?", dateFrom)
	}
	if dateTo != nil {
		query = query.Where("created_at <= ?", dateTo)
	}

	var raw decimal.NullDecimal
	err := query.Select("COALESCE(SUM(amount), 0)").Scan(&raw).Error
	if err != nil {
		return decimal.Zero, err
	}
	if !raw.Valid {
		return decimal.Zero, nil
	}
	return raw.Decimal, nil
}
