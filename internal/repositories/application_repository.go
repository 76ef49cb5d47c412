package repositories

import (
	"errors"

	"buspass_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrApplicationNotFound = errors.New("application not found")
)

type ApplicationFilter struct {
	Status    models.ApplicationStatus
	UserID    string
	SortBy    string
	SortOrder string
	Page      int
	Limit     int
}

// sortColumn разрешает только известные колонки для сортировки
func (f ApplicationFilter) sortColumn() string {
	switch f.SortBy {
	case "updated_at", "updatedAt":
		return "updated_at"
	case "status":
		return "status"
	default:
		return "created_at"
	}
}

func (f ApplicationFilter) sortDirection() string {
	if f.SortOrder == "asc" || f.SortOrder == "ASC" {
		return "ASC"
	}
	return "DESC"
}

type ApplicationRepository interface {
	Create(application *models.PassApplication) error
	FindByID(id string) (*models.PassApplication, error)
	FindPendingByUser(userID string) (*models.PassApplication, error)
	FindWithFilter(criteria ApplicationFilter) ([]models.PassApplication, int64, error)
	UpdateStatus(id string, status models.ApplicationStatus) error
	UpdatePaymentStatus(id string, status models.PaymentStatus) error
	CreateDocument(document *models.Document) error
	UpsertApproval(approval *models.PassApproval) error
	FindApprovalByApplication(applicationID string) (*models.PassApproval, error)
	CountByStatus(status models.ApplicationStatus) (int64, error)

	// WithTx возвращает репозиторий, работающий внутри переданной транзакции
	WithTx(tx *gorm.DB) ApplicationRepository
}

type ApplicationRepositoryImpl struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &ApplicationRepositoryImpl{db: db}
}

func (r *ApplicationRepositoryImpl) WithTx(tx *gorm.DB) ApplicationRepository {
	return &ApplicationRepositoryImpl{db: tx}
}

func (r *ApplicationRepositoryImpl) Create(application *models.PassApplication) error {
	return r.db.Create(application).Error
}

func (r *ApplicationRepositoryImpl) FindByID(id string) (*models.PassApplication, error) {
	var application models.PassApplication
	err := r.db.
		Preload("User").
		Preload("PassType").
		Preload("Documents").
		Preload("Approval").
		Preload("Payment").
		Preload("BusPass").
		First(&application, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	return &application, nil
}

// FindPendingByUser ищет незакрытую заявку пассажира
func (r *ApplicationRepositoryImpl) FindPendingByUser(userID string) (*models.PassApplication, error) {
	var application models.PassApplication
	err := r.db.
		Where("user_id = ? AND status = ?", userID, models.ApplicationStatusPending).
		First(&application).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	return &application, nil
}

func (r *ApplicationRepositoryImpl) FindWithFilter(criteria ApplicationFilter) ([]models.PassApplication, int64, error) {
	var applications []models.PassApplication
	query := r.db.Model(&models.PassApplication{})

	if criteria.Status != "" {
		query = query.Where("status = ?", criteria.Status)
	}
	if criteria.UserID != "" {
		query = query.Where("user_id = ?", criteria.UserID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := criteria.Limit
	offset := (criteria.Page - 1) * criteria.Limit

	err := query.
		Preload("User").
		Preload("PassType").
		Preload("Documents").
		Preload("Approval").
		Preload("Payment").
		Preload("BusPass").
		Order(criteria.sortColumn() + " " + criteria.sortDirection()).Limit(limit).Offset(offset).
		Find(&applications).Error

	return applications, total, err
}

func (r *ApplicationRepositoryImpl) UpdateStatus(id string, status models.ApplicationStatus) error {
	result := r.db.Model(&models.PassApplication{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrApplicationNotFound
	}
	return nil
}

func (r *ApplicationRepositoryImpl) UpdatePaymentStatus(id string, status models.PaymentStatus) error {
	result := r.db.Model(&models.PassApplication{}).Where("id = ?", id).Update("payment_status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrApplicationNotFound
	}
	return nil
}

func (r *ApplicationRepositoryImpl) CreateDocument(document *models.Document) error {
	return r.db.Create(document).Error
}

// UpsertApproval создает или перезаписывает решение по заявке
func (r *ApplicationRepositoryImpl) UpsertApproval(approval *models.PassApproval) error {
	var existing models.PassApproval
	err := r.db.Where("application_id = ?", approval.ApplicationID).First(&existing).Error
	if err == nil {
		existing.AdminID = approval.AdminID
		existing.Status = approval.Status
		existing.Notes = approval.Notes
		if saveErr := r.db.Save(&existing).Error; saveErr != nil {
			return saveErr
		}
		approval.ID = existing.ID
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	return r.db.Create(approval).Error
}

func (r *ApplicationRepositoryImpl) FindApprovalByApplication(applicationID string) (*models.PassApproval, error) {
	var approval models.PassApproval
	err := r.db.First(&approval, "application_id = ?", applicationID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	return &approval, nil
}

func (r *ApplicationRepositoryImpl) CountByStatus(status models.ApplicationStatus) (int64, error) {
	var count int64
	query := r.db.Model(&models.PassApplication{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	err := query.Count(&count).Error
	return count, err
}
