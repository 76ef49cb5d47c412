package repositories

import (
	"errors"
	"time"

	"buspass_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrPassNotFound = errors.New("bus pass not found")
)

type PassRepository interface {
	Create(pass *models.BusPass) error
	FindByID(id string) (*models.BusPass, error)
	FindByPassNumber(passNumber string) (*models.BusPass, error)
	FindByApplicationID(applicationID string) (*models.BusPass, error)
	FindByUser(userID string) ([]models.BusPass, error)
	SetActive(id string, isActive bool) error
	CountActive(now time.Time) (int64, error)
	Count() (int64, error)

	WithTx(tx *gorm.DB) PassRepository
}

type PassRepositoryImpl struct {
	db *gorm.DB
}

func NewPassRepository(db *gorm.DB) PassRepository {
	return &PassRepositoryImpl{db: db}
}

func (r *PassRepositoryImpl) WithTx(tx *gorm.DB) PassRepository {
	return &PassRepositoryImpl{db: tx}
}

func (r *PassRepositoryImpl) Create(pass *models.BusPass) error {
	return r.db.Create(pass).Error
}

func (r *PassRepositoryImpl) FindByID(id string) (*models.BusPass, error) {
	var pass models.BusPass
	err := r.db.
		Preload("Application.User").
		Preload("Application.PassType").
		First(&pass, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPassNotFound
		}
		return nil, err
	}
	return &pass, nil
}

func (r *PassRepositoryImpl) FindByPassNumber(passNumber string) (*models.BusPass, error) {
	var pass models.BusPass
	err := r.db.
		Preload("Application.User").
		Preload("Application.PassType").
		First(&pass, "pass_number = ?", passNumber).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPassNotFound
		}
		return nil, err
	}
	return &pass, nil
}

func (r *PassRepositoryImpl) FindByApplicationID(applicationID string) (*models.BusPass, error) {
	var pass models.BusPass
	err := r.db.First(&pass, "application_id = ?", applicationID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPassNotFound
		}
		return nil, err
	}
	return &pass, nil
}

// FindByUser возвращает проездные пассажира, новые первыми
func (r *PassRepositoryImpl) FindByUser(userID string) ([]models.BusPass, error) {
	var passes []models.BusPass
	err := r.db.
		Joins("JOIN pass_applications ON pass_applications.id = bus_passes.application_id").
		Where("pass_applications.user_id = ?", userID).
		Preload("Application.PassType").
		Order("bus_passes.created_at DESC").
		Find(&passes).Error
	return passes, err
}

func (r *PassRepositoryImpl) SetActive(id string, isActive bool) error {
	result := r.db.Model(&models.BusPass{}).Where("id = ?", id).Update("is_active", isActive)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPassNotFound
	}
	return nil
}

// CountActive считает проездные, действующие на указанный момент
func (r *PassRepositoryImpl) CountActive(now time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.BusPass{}).
		Where("is_active = ? AND valid_from <= ? AND valid_until >= ?", true, now, now).
		Count(&count).Error
	return count, err
}

func (r *PassRepositoryImpl) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.BusPass{}).Count(&count).Error
	return count, err
}
