package repositories

import (
	"errors"

	"buspass_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrPassTypeNotFound  = errors.New("pass type not found")
	ErrPassTypeNameTaken = errors.New("pass type name already taken")
)

type PassTypeRepository interface {
	Create(passType *models.PassType) error
	Update(passType *models.PassType) error
	FindByID(id string) (*models.PassType, error)
	FindByName(name string) (*models.PassType, error)
	FindAll(includeInactive bool) ([]models.PassType, error)
	SetActive(id string, isActive bool, updatedBy string) error
	Count() (int64, error)
}

type PassTypeRepositoryImpl struct {
	db *gorm.DB
}

func NewPassTypeRepository(db *gorm.DB) PassTypeRepository {
	return &PassTypeRepositoryImpl{db: db}
}

func (r *PassTypeRepositoryImpl) Create(passType *models.PassType) error {
	// Имя уникально без учета регистра
	var existing models.PassType
	if err := r.db.Where("LOWER(name) = LOWER(?)", passType.Name).First(&existing).Error; err == nil {
		return ErrPassTypeNameTaken
	}

	return r.db.Create(passType).Error
}

func (r *PassTypeRepositoryImpl) Update(passType *models.PassType) error {
	// Имя должно оставаться уникальным среди остальных тарифов
	var existing models.PassType
	err := r.db.Where("LOWER(name) = LOWER(?) AND id <> ?", passType.Name, passType.ID).First(&existing).Error
	if err == nil {
		return ErrPassTypeNameTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	result := r.db.Model(passType).Updates(map[string]interface{}{
		"name":          passType.Name,
		"description":   passType.Description,
		"price":         passType.Price,
		"duration_days": passType.DurationDays,
		"per_day_limit": passType.PerDayLimit,
		"is_active":     passType.IsActive,
		"updated_by":    passType.UpdatedBy,
	})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPassTypeNotFound
	}
	return nil
}

func (r *PassTypeRepositoryImpl) FindByID(id string) (*models.PassType, error) {
	var passType models.PassType
	err := r.db.First(&passType, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPassTypeNotFound
		}
		return nil, err
	}
	return &passType, nil
}

func (r *PassTypeRepositoryImpl) FindByName(name string) (*models.PassType, error) {
	var passType models.PassType
	err := r.db.Where("LOWER(name) = LOWER(?)", name).First(&passType).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPassTypeNotFound
		}
		return nil, err
	}
	return &passType, nil
}

func (r *PassTypeRepositoryImpl) FindAll(includeInactive bool) ([]models.PassType, error) {
	var passTypes []models.PassType
	query := r.db.Model(&models.PassType{})
	if !includeInactive {
		query = query.Where("is_active = ?", true)
	}
	err := query.Order("price ASC").Find(&passTypes).Error
	return passTypes, err
}

func (r *PassTypeRepositoryImpl) SetActive(id string, isActive bool, updatedBy string) error {
	result := r.db.Model(&models.PassType{}).Where("id = ?", id).Updates(map[string]interface{}{
		"is_active":  isActive,
		"updated_by": updatedBy,
	})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPassTypeNotFound
	}
	return nil
}

func (r *PassTypeRepositoryImpl) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.PassType{}).Count(&count).Error
	return count, err
}
