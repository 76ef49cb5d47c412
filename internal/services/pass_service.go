package services

import (
	"buspass_backend/internal/logger"
	"buspass_backend/internal/qr"
	"buspass_backend/internal/repositories"
	"buspass_backend/internal/services/dto"
	"buspass_backend/pkg/apperrors"
)

type PassService interface {
	GetMyPasses(userID string) ([]*dto.PassDetailsResponse, error)
	GetPassDetails(passID, userID string) (*dto.PassDetailsResponse, error)
}

type PassServiceImpl struct {
	passRepo repositories.PassRepository
}

func NewPassService(passRepo repositories.PassRepository) PassService {
	return &PassServiceImpl{passRepo: passRepo}
}

// GetMyPasses - проездные пассажира, новые первыми
func (s *PassServiceImpl) GetMyPasses(userID string) ([]*dto.PassDetailsResponse, error) {
	passes, err := s.passRepo.FindByUser(userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	items := make([]*dto.PassDetailsResponse, 0, len(passes))
	for i := range passes {
		pass := &passes[i]
		item := &dto.PassDetailsResponse{BusPass: pass}
		if pass.Application != nil {
			item.PassType = pass.Application.PassType
		}
		items = append(items, item)
	}

	return items, nil
}

// GetPassDetails - проездной с QR-изображением; доступен только владельцу
func (s *PassServiceImpl) GetPassDetails(passID, userID string) (*dto.PassDetailsResponse, error) {
	pass, err := s.passRepo.FindByID(passID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrPassNotFound) {
			return nil, apperrors.ErrPassNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	if pass.Application == nil || pass.Application.UserID != userID {
		return nil, apperrors.ErrPassNotOwned
	}

	resp := &dto.PassDetailsResponse{
		BusPass:  pass,
		PassType: pass.Application.PassType,
	}

	image, err := qr.GenerateImage(qr.Payload{
		PassID:    pass.ID,
		UserID:    pass.Application.UserID,
		ValidFrom: pass.ValidFrom,
		ValidTo:   pass.ValidUntil,
	})
	if err != nil {
		// Проездной отдаем и без картинки
		logger.WithError(err).Warn("Не удалось сгенерировать QR-изображение", "pass_id", pass.ID)
	} else {
		resp.QRImage = image
	}

	return resp, nil
}
