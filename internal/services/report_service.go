package services

import (
	"time"

	"buspass_backend/internal/models"
	"buspass_backend/internal/repositories"
	"buspass_backend/internal/services/dto"
	"buspass_backend/pkg/apperrors"
)

type ReportService interface {
	GetStatistics(req *dto.StatisticsRequest) (*dto.StatisticsResponse, error)
}

type ReportServiceImpl struct {
	applicationRepo  repositories.ApplicationRepository
	passRepo         repositories.PassRepository
	paymentRepo      repositories.PaymentRepository
	verificationRepo repositories.VerificationRepository
}

func NewReportService(
	applicationRepo repositories.ApplicationRepository,
	passRepo repositories.PassRepository,
	paymentRepo repositories.PaymentRepository,
	verificationRepo repositories.VerificationRepository,
) ReportService {
	return &ReportServiceImpl{
		applicationRepo:  applicationRepo,
		passRepo:         passRepo,
		paymentRepo:      paymentRepo,
		verificationRepo: verificationRepo,
	}
}

// GetStatistics - сводный отчет для админа.
// Диапазон дат применяется к датам создания платежей.
func (s *ReportServiceImpl) GetStatistics(req *dto.StatisticsRequest) (*dto.StatisticsResponse, error) {
	var resp dto.StatisticsResponse

	total, err := s.applicationRepo.CountByStatus("")
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	resp.Applications.Total = total

	pending, err := s.applicationRepo.CountByStatus(models.ApplicationStatusPending)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	resp.Applications.Pending = pending

	approved, err := s.applicationRepo.CountByStatus(models.ApplicationStatusApproved)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	resp.Applications.Approved = approved

	rejected, err := s.applicationRepo.CountByStatus(models.ApplicationStatusRejected)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	resp.Applications.Rejected = rejected

	now := time.Now()

	totalPasses, err := s.passRepo.Count()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	resp.Passes.Total = totalPasses

	activePasses, err := s.passRepo.CountActive(now)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	resp.Passes.Active = activePasses
	resp.Passes.Expired = totalPasses - activePasses

	dateFrom, dateTo, err := parseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	revenue, err := s.paymentRepo.SumCompleted(dateFrom, dateTo)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	resp.Revenue = revenue

	totalScans, err := s.verificationRepo.CountAll()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	resp.TotalScans = totalScans

	return &resp, nil
}

// parseDateRange разбирает границы диапазона; конечный день включается целиком
func parseDateRange(startDate, endDate string) (*time.Time, *time.Time, error) {
	var dateFrom, dateTo *time.Time

	if startDate != "" {
		from, err := time.ParseInLocation("2006-01-02", startDate, time.Local)
		if err != nil {
			return nil, nil, apperrors.NewBadRequestError("Invalid startDate")
		}
		dateFrom = &from
	}
	if endDate != "" {
		to, err := time.ParseInLocation("2006-01-02", endDate, time.Local)
		if err != nil {
			return nil, nil, apperrors.NewBadRequestError("Invalid endDate")
		}
		end := to.AddDate(0, 0, 1).Add(-time.Nanosecond)
		dateTo = &end
	}

	return dateFrom, dateTo, nil
}
