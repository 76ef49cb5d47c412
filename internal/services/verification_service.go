package services

import (
	"time"

	"buspass_backend/internal/logger"
	"buspass_backend/internal/models"
	"buspass_backend/internal/qr"
	"buspass_backend/internal/repositories"
	"buspass_backend/internal/services/dto"
	"buspass_backend/pkg/apperrors"
)

const dashboardRecentScans = 10

type VerificationService interface {
	VerifyPass(conductorID string, req *dto.VerifyPassRequest) (*dto.VerifyPassResponse, error)
	GetDashboard(conductorID string) (*dto.DashboardResponse, error)
	GetHistory(conductorID string, req *dto.VerificationHistoryRequest) (*dto.VerificationHistoryResponse, error)
}

type VerificationServiceImpl struct {
	passRepo         repositories.PassRepository
	verificationRepo repositories.VerificationRepository
}

func NewVerificationService(
	passRepo repositories.PassRepository,
	verificationRepo repositories.VerificationRepository,
) VerificationService {
	return &VerificationServiceImpl{
		passRepo:         passRepo,
		verificationRepo: verificationRepo,
	}
}

// VerifyPass - проверка проездного кондуктором.
// При превышении дневного лимита проверка отклоняется и запись не создается.
func (s *VerificationServiceImpl) VerifyPass(conductorID string, req *dto.VerifyPassRequest) (*dto.VerifyPassResponse, error) {
	if !models.ValidScanMethod(req.ScanMethod) {
		return nil, apperrors.ErrInvalidScanMethod
	}

	pass, err := s.resolvePass(req)
	if err != nil {
		return nil, err
	}

	passType := s.passType(pass)
	if passType == nil {
		return nil, apperrors.InternalError(repositories.ErrPassTypeNotFound)
	}

	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	scansToday, err := s.verificationRepo.CountForPassSince(pass.ID, startOfDay)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if scansToday >= int64(passType.PerDayLimit) {
		return nil, apperrors.ErrDailyLimitReached
	}

	isValid, remarks := evaluateValidity(pass, now)

	scan := &models.ConductorScan{
		PassID:      pass.ID,
		ConductorID: conductorID,
		ScanMethod:  req.ScanMethod,
		IsValid:     isValid,
		Remarks:     remarks,
	}
	if err := s.verificationRepo.Create(scan); err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.Info("Проездной проверен",
		"pass_number", pass.PassNumber, "conductor_id", conductorID,
		"is_valid", isValid, "method", req.ScanMethod)

	resp := &dto.VerifyPassResponse{
		IsValid:    isValid,
		Remarks:    remarks,
		Pass:       pass,
		PassType:   passType,
		ScansToday: scansToday + 1,
		ScanLimit:  passType.PerDayLimit,
	}
	if pass.Application != nil && pass.Application.User != nil {
		summary := pass.Application.User.Summary()
		resp.Passenger = &summary
	}

	return resp, nil
}

// GetDashboard - дашборд кондуктора за текущий день
func (s *VerificationServiceImpl) GetDashboard(conductorID string) (*dto.DashboardResponse, error) {
	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	aggregates, err := s.verificationRepo.AggregatesSince(conductorID, startOfDay)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	scans, err := s.verificationRepo.FindSince(conductorID, startOfDay, dashboardRecentScans)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	recent := make([]dto.ScanDTO, 0, len(scans))
	for i := range scans {
		recent = append(recent, dto.NewScanDTO(&scans[i]))
	}

	return &dto.DashboardResponse{
		Stats: dto.DashboardStats{
			TotalScans:   aggregates.Total,
			ValidScans:   aggregates.Valid,
			InvalidScans: aggregates.Invalid,
			QRScans:      aggregates.QR,
			ManualScans:  aggregates.Manual,
		},
		RecentScans: recent,
	}, nil
}

// GetHistory - постраничная история проверок кондуктора
func (s *VerificationServiceImpl) GetHistory(conductorID string, req *dto.VerificationHistoryRequest) (*dto.VerificationHistoryResponse, error) {
	req.Normalize()

	criteria := repositories.ScanFilter{
		ConductorID: conductorID,
		Page:        req.Page,
		Limit:       req.Limit,
	}

	dateFrom, dateTo, err := parseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}
	criteria.DateFrom = dateFrom
	criteria.DateTo = dateTo

	scans, total, err := s.verificationRepo.FindWithFilter(criteria)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	items := make([]dto.ScanDTO, 0, len(scans))
	for i := range scans {
		items = append(items, dto.NewScanDTO(&scans[i]))
	}

	return &dto.VerificationHistoryResponse{
		Scans:      items,
		Pagination: dto.NewPagination(req.Page, req.Limit, total),
	}, nil
}

// --- Helpers ---

// resolvePass находит проездной по номеру или по содержимому QR
func (s *VerificationServiceImpl) resolvePass(req *dto.VerifyPassRequest) (*models.BusPass, error) {
	if req.QRData != "" {
		payload, err := qr.DecodePayload(req.QRData)
		if err != nil {
			return nil, apperrors.ErrInvalidQRPayload
		}
		pass, err := s.passRepo.FindByID(payload.PassID)
		if err != nil {
			if apperrors.Is(err, repositories.ErrPassNotFound) {
				return nil, apperrors.ErrPassNotFound
			}
			return nil, apperrors.InternalError(err)
		}
		return pass, nil
	}

	pass, err := s.passRepo.FindByPassNumber(req.PassNumber)
	if err != nil {
		if apperrors.Is(err, repositories.ErrPassNotFound) {
			return nil, apperrors.ErrPassNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return pass, nil
}

func (s *VerificationServiceImpl) passType(pass *models.BusPass) *models.PassType {
	if pass.Application != nil && pass.Application.PassType != nil {
		return pass.Application.PassType
	}
	return nil
}

// evaluateValidity считает валидность проездного на момент проверки.
// Приоритет примечаний: истек > еще не начался > деактивирован > действителен.
func evaluateValidity(pass *models.BusPass, now time.Time) (bool, string) {
	isExpired := now.After(pass.ValidUntil)
	isNotStarted := now.Before(pass.ValidFrom)

	switch {
	case isExpired:
		return false, "Pass has expired"
	case isNotStarted:
		return false, "Pass is not yet valid"
	case !pass.IsActive:
		return false, "Pass is deactivated"
	default:
		return true, "Pass is valid"
	}
}
