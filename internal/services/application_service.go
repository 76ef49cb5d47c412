package services

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"buspass_backend/internal/email"
	"buspass_backend/internal/logger"
	"buspass_backend/internal/models"
	"buspass_backend/internal/qr"
	"buspass_backend/internal/repositories"
	"buspass_backend/internal/services/dto"
	"buspass_backend/pkg/apperrors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ApplicationService interface {
	Submit(userID string, req *dto.SubmitApplicationRequest) (*dto.ApplicationResponse, error)
	Decide(applicationID, adminID string, req *dto.DecideApplicationRequest) (*dto.ApplicationResponse, error)
	List(req *dto.ListApplicationsRequest) (*dto.ApplicationListResponse, error)
	GetDetails(applicationID string) (*dto.ApplicationResponse, error)
	GetMine(userID string, req *dto.PageRequest) (*dto.ApplicationListResponse, error)
}

type ApplicationServiceImpl struct {
	db              *gorm.DB
	applicationRepo repositories.ApplicationRepository
	userRepo        repositories.UserRepository
	passTypeRepo    repositories.PassTypeRepository
	passRepo        repositories.PassRepository
	emailProvider   email.Provider
}

func NewApplicationService(
	db *gorm.DB,
	applicationRepo repositories.ApplicationRepository,
	userRepo repositories.UserRepository,
	passTypeRepo repositories.PassTypeRepository,
	passRepo repositories.PassRepository,
	emailProvider email.Provider,
) ApplicationService {
	return &ApplicationServiceImpl{
		db:              db,
		applicationRepo: applicationRepo,
		userRepo:        userRepo,
		passTypeRepo:    passTypeRepo,
		passRepo:        passRepo,
		emailProvider:   emailProvider,
	}
}

// Submit - подача заявки пассажиром.
// Заявка и документ создаются в одной транзакции.
func (s *ApplicationServiceImpl) Submit(userID string, req *dto.SubmitApplicationRequest) (*dto.ApplicationResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	passType, err := s.passTypeRepo.FindByID(req.PassTypeID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrPassTypeNotFound) {
			return nil, apperrors.ErrPassTypeNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	if !passType.IsActive {
		return nil, apperrors.ErrPassTypeNotFound
	}

	application := &models.PassApplication{
		UserID:        user.ID,
		PassTypeID:    passType.ID,
		Status:        models.ApplicationStatusPending,
		PaymentStatus: models.PaymentStatusPending,
	}
	application.ID = uuid.NewString()

	err = s.db.Transaction(func(tx *gorm.DB) error {
		txRepo := s.applicationRepo.WithTx(tx)

		// Повторная проверка незакрытой заявки уже внутри транзакции
		if _, findErr := txRepo.FindPendingByUser(user.ID); findErr == nil {
			return apperrors.ErrPendingApplication
		} else if !apperrors.Is(findErr, repositories.ErrApplicationNotFound) {
			return findErr
		}

		if createErr := txRepo.Create(application); createErr != nil {
			return createErr
		}

		document := &models.Document{
			ApplicationID: application.ID,
			DocumentType:  req.DocumentType,
			DocumentPath:  req.DocumentLink,
		}
		return txRepo.CreateDocument(document)
	})
	if err != nil {
		var appErr *apperrors.AppError
		if apperrors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, apperrors.InternalError(err)
	}

	logger.Info("Заявка подана", "application_id", application.ID, "user_id", user.ID)

	created, err := s.applicationRepo.FindByID(application.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return dto.NewApplicationResponse(created), nil
}

// Decide - решение админа по заявке.
// Проверки условий и выпуск проездного выполняются в одной транзакции.
func (s *ApplicationServiceImpl) Decide(applicationID, adminID string, req *dto.DecideApplicationRequest) (*dto.ApplicationResponse, error) {
	if !models.ValidDecisionStatus(req.Status) {
		return nil, apperrors.ErrInvalidDecisionStatus
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		txRepo := s.applicationRepo.WithTx(tx)
		txPassRepo := s.passRepo.WithTx(tx)

		application, findErr := txRepo.FindByID(applicationID)
		if findErr != nil {
			if apperrors.Is(findErr, repositories.ErrApplicationNotFound) {
				return apperrors.ErrApplicationNotFound
			}
			return findErr
		}

		// Проездной уже выпущен - решение менять нельзя
		if _, passErr := txPassRepo.FindByApplicationID(applicationID); passErr == nil {
			return apperrors.ErrPassAlreadyCreated
		} else if !apperrors.Is(passErr, repositories.ErrPassNotFound) {
			return passErr
		}

		if application.PaymentStatus != models.PaymentStatusCompleted {
			return apperrors.ErrPaymentNotCompleted
		}

		// Повторное решение с тем же статусом - явная ошибка, не no-op
		if application.Status == req.Status {
			return apperrors.ErrApplicationAlreadyDecided(string(req.Status))
		}

		approval := &models.PassApproval{
			ApplicationID: applicationID,
			AdminID:       adminID,
			Status:        req.Status,
			Notes:         req.Remarks,
		}
		if upsertErr := txRepo.UpsertApproval(approval); upsertErr != nil {
			return upsertErr
		}

		if req.Status == models.ApplicationStatusApproved {
			if issueErr := s.issuePass(txPassRepo, application); issueErr != nil {
				return issueErr
			}
		}

		return txRepo.UpdateStatus(applicationID, req.Status)
	})
	if err != nil {
		var appErr *apperrors.AppError
		if apperrors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, apperrors.InternalError(err)
	}

	logger.Info("Решение по заявке принято",
		"application_id", applicationID, "admin_id", adminID, "status", req.Status)

	decided, err := s.applicationRepo.FindByID(applicationID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	s.notifyDecision(decided, req.Remarks)

	return dto.NewApplicationResponse(decided), nil
}

func (s *ApplicationServiceImpl) List(req *dto.ListApplicationsRequest) (*dto.ApplicationListResponse, error) {
	req.Normalize()

	applications, total, err := s.applicationRepo.FindWithFilter(repositories.ApplicationFilter{
		Status:    req.Status,
		SortBy:    req.SortBy,
		SortOrder: req.SortOrder,
		Page:      req.Page,
		Limit:     req.Limit,
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return s.buildListResponse(applications, req.Page, req.Limit, total), nil
}

func (s *ApplicationServiceImpl) GetDetails(applicationID string) (*dto.ApplicationResponse, error) {
	application, err := s.applicationRepo.FindByID(applicationID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrApplicationNotFound) {
			return nil, apperrors.ErrApplicationNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	return dto.NewApplicationResponse(application), nil
}

// GetMine - заявки самого пассажира, новые первыми
func (s *ApplicationServiceImpl) GetMine(userID string, req *dto.PageRequest) (*dto.ApplicationListResponse, error) {
	req.Normalize()

	applications, total, err := s.applicationRepo.FindWithFilter(repositories.ApplicationFilter{
		UserID: userID,
		Page:   req.Page,
		Limit:  req.Limit,
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return s.buildListResponse(applications, req.Page, req.Limit, total), nil
}

// --- Helpers ---

// issuePass выпускает проездной по одобренной заявке
func (s *ApplicationServiceImpl) issuePass(passRepo repositories.PassRepository, application *models.PassApplication) error {
	passType := application.PassType
	if passType == nil {
		found, err := s.passTypeRepo.FindByID(application.PassTypeID)
		if err != nil {
			return err
		}
		passType = found
	}

	validFrom := time.Now()
	validUntil := validFrom.AddDate(0, 0, passType.DurationDays)

	pass := &models.BusPass{
		ApplicationID: application.ID,
		PassNumber:    generatePassNumber(),
		ValidFrom:     validFrom,
		ValidUntil:    validUntil,
		IsActive:      true,
	}
	pass.ID = uuid.NewString()

	qrData, err := qr.EncodePayload(qr.Payload{
		PassID:    pass.ID,
		UserID:    application.UserID,
		ValidFrom: validFrom,
		ValidTo:   validUntil,
	})
	if err != nil {
		return err
	}
	pass.QRCode = qrData

	return passRepo.Create(pass)
}

// notifyDecision отправляет письмо пассажиру; сбой не влияет на результат
func (s *ApplicationServiceImpl) notifyDecision(application *models.PassApplication, remarks string) {
	if s.emailProvider == nil || application.User == nil {
		return
	}

	passTypeName := ""
	if application.PassType != nil {
		passTypeName = application.PassType.Name
	}

	to := application.User.Email
	fullName := application.User.FullName
	status := string(application.Status)

	go func() {
		if err := s.emailProvider.SendApplicationDecision(to, fullName, passTypeName, status, remarks); err != nil {
			logger.WithError(err).Warn("Не удалось отправить письмо о решении", "application_id", application.ID)
		}
	}()
}

func (s *ApplicationServiceImpl) buildListResponse(applications []models.PassApplication, page, limit int, total int64) *dto.ApplicationListResponse {
	items := make([]*dto.ApplicationResponse, 0, len(applications))
	for i := range applications {
		items = append(items, dto.NewApplicationResponse(&applications[i]))
	}

	return &dto.ApplicationListResponse{
		Applications: items,
		Pagination:   dto.NewPagination(page, limit, total),
	}
}

// generatePassNumber генерирует публичный номер проездного вида BP-XXXXXXXX
func generatePassNumber() string {
	buf := make([]byte, 4)
	if _, err := rand.Read(buf); err != nil {
		return fmt.Sprintf("BP-%s", strings.ToUpper(uuid.NewString()[:8]))
	}
	return fmt.Sprintf("BP-%s", strings.ToUpper(hex.EncodeToString(buf)))
}
