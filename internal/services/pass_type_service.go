package services

import (
	"buspass_backend/internal/models"
	"buspass_backend/internal/repositories"
	"buspass_backend/internal/services/dto"
	"buspass_backend/pkg/apperrors"

	"github.com/shopspring/decimal"
)

type PassTypeService interface {
	Create(req *dto.CreatePassTypeRequest, adminID string) (*models.PassType, error)
	Update(id string, req *dto.UpdatePassTypeRequest, adminID string) (*models.PassType, error)
	GetByID(id string) (*models.PassType, error)
	List(includeInactive bool) ([]models.PassType, error)
}

type PassTypeServiceImpl struct {
	passTypeRepo repositories.PassTypeRepository
}

func NewPassTypeService(passTypeRepo repositories.PassTypeRepository) PassTypeService {
	return &PassTypeServiceImpl{passTypeRepo: passTypeRepo}
}

// Create - создание тарифа проездного
func (s *PassTypeServiceImpl) Create(req *dto.CreatePassTypeRequest, adminID string) (*models.PassType, error) {
	if req.Price.LessThanOrEqual(decimal.Zero) {
		return nil, apperrors.ErrInvalidPaymentAmount
	}

	passType := &models.PassType{
		Name:         req.Name,
		Description:  req.Description,
		Price:        req.Price,
		DurationDays: req.DurationDays,
		PerDayLimit:  req.PerDayLimit,
		IsActive:     true,
		CreatedBy:    adminID,
	}
	if passType.PerDayLimit == 0 {
		passType.PerDayLimit = 3
	}

	if err := s.passTypeRepo.Create(passType); err != nil {
		if apperrors.Is(err, repositories.ErrPassTypeNameTaken) {
			return nil, apperrors.ErrPassTypeNameTaken
		}
		return nil, apperrors.InternalError(err)
	}

	return passType, nil
}

// Update - частичное изменение тарифа
func (s *PassTypeServiceImpl) Update(id string, req *dto.UpdatePassTypeRequest, adminID string) (*models.PassType, error) {
	passType, err := s.passTypeRepo.FindByID(id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrPassTypeNotFound) {
			return nil, apperrors.ErrPassTypeNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	if req.Name != nil {
		passType.Name = *req.Name
	}
	if req.Description != nil {
		passType.Description = *req.Description
	}
	if req.Price != nil {
		if req.Price.LessThanOrEqual(decimal.Zero) {
			return nil, apperrors.ErrInvalidPaymentAmount
		}
		passType.Price = *req.Price
	}
	if req.DurationDays != nil {
		passType.DurationDays = *req.DurationDays
	}
	if req.PerDayLimit != nil {
		passType.PerDayLimit = *req.PerDayLimit
	}
	if req.IsActive != nil {
		passType.IsActive = *req.IsActive
	}
	passType.UpdatedBy = adminID

	if err := s.passTypeRepo.Update(passType); err != nil {
		if apperrors.Is(err, repositories.ErrPassTypeNameTaken) {
			return nil, apperrors.ErrPassTypeNameTaken
		}
		if apperrors.Is(err, repositories.ErrPassTypeNotFound) {
			return nil, apperrors.ErrPassTypeNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	return passType, nil
}

func (s *PassTypeServiceImpl) GetByID(id string) (*models.PassType, error) {
	passType, err := s.passTypeRepo.FindByID(id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrPassTypeNotFound) {
			return nil, apperrors.ErrPassTypeNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return passType, nil
}

// List - для пассажиров отдаем только активные тарифы, для админа все
func (s *PassTypeServiceImpl) List(includeInactive bool) ([]models.PassType, error) {
	passTypes, err := s.passTypeRepo.FindAll(includeInactive)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return passTypes, nil
}
