package repositories

import (
	"time"

	"buspass_backend/internal/models"

	"gorm.io/gorm"
)

// ScanAggregates - сводка по проверкам за период
type ScanAggregates struct {
	Total   int64
	Valid   int64
	Invalid int64
	QR      int64
	Manual  int64
}

type ScanFilter struct {
	ConductorID string
	DateFrom    *time.Time
	DateTo      *time.Time
	Page        int
	Limit       int
}

type VerificationRepository interface {
	Create(scan *models.ConductorScan) error
	CountForPassSince(passID string, since time.Time) (int64, error)
	FindSince(conductorID string, since time.Time, limit int) ([]models.ConductorScan, error)
	FindWithFilter(criteria ScanFilter) ([]models.ConductorScan, int64, error)
	AggregatesSince(conductorID string, since time.Time) (*ScanAggregates, error)
	CountAll() (int64, error)
}

type VerificationRepositoryImpl struct {
	db *gorm.DB
}

func NewVerificationRepository(db *gorm.DB) VerificationRepository {
	return &VerificationRepositoryImpl{db: db}
}

func (r *VerificationRepositoryImpl) Create(scan *models.ConductorScan) error {
	return r.db.Create(scan).Error
}

// CountForPassSince считает проверки проездного начиная с указанного момента.
// Используется для дневного лимита сканирований.
func (r *VerificationRepositoryImpl) CountForPassSince(passID string, since time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.ConductorScan{}).
		Where("pass_id = ? AND created_at >= ?", passID, since).
		Count(&count).Error
	return count, err
}

func (r *VerificationRepositoryImpl) FindSince(conductorID string, since time.Time, limit int) ([]models.ConductorScan, error) {
	var scans []models.ConductorScan
	err := r.db.
		Where("conductor_id = ? AND created_at >= ?", conductorID, since).
		Preload("Pass.Application.User").
		Preload("Pass.Application.PassType").
		Order("created_at DESC").
		Limit(limit).
		Find(&scans).Error
	return scans, err
}

func (r *VerificationRepositoryImpl) FindWithFilter(criteria ScanFilter) ([]models.ConductorScan, int64, error) {
	var scans []models.ConductorScan
	query := r.db.Model(&models.ConductorScan{})

	if criteria.ConductorID != "" {
		query = query.Where("conductor_id = ?", criteria.ConductorID)
	}
	if criteria.DateFrom != nil {
		query = query.Where("created_at >= ?", criteria.DateFrom)
	}
	if criteria.DateTo != nil {
		query = query.Where("created_at <= ?", criteria.DateTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := criteria.Limit
	offset := (criteria.Page - 1) * criteria.Limit

	err := query.
		Preload("Pass.Application.User").
		Preload("Pass.Application.PassType").
		Order("created_at DESC").Limit(limit).Offset(offset).
		Find(&scans).Error

	return scans, total, err
}

func (r *VerificationRepositoryImpl) AggregatesSince(conductorID string, since time.Time) (*ScanAggregates, error) {
	var aggregates ScanAggregates
	base := r.db.Model(&models.ConductorScan{}).
		Where("conductor_id = ? AND created_at >= ?", conductorID, since)

	if err := base.Session(&gorm.Session{}).Count(&aggregates.Total).Error; err != nil {
		return nil, err
	}
	if err := base.Session(&gorm.Session{}).Where("is_valid = ?", true).Count(&aggregates.Valid).Error; err != nil {
		return nil, err
	}
	if err := base.Session(&gorm.Session{}).Where("is_valid = ?", false).Count(&aggregates.Invalid).Error; err != nil {
		return nil, err
	}
	if err := base.Session(&gorm.Session{}).Where("scan_method = ?", models.ScanMethodQR).Count(&aggregates.QR).Error; err != nil {
		return nil, err
	}
	if err := base.Session(&gorm.Session{}).Where("scan_method = ?", models.ScanMethodManual).Count(&aggregates.Manual).Error; err != nil {
		return nil, err
	}

	return &aggregates, nil
}

func (r *VerificationRepositoryImpl) CountAll() (int64, error) {
	var count int64
	err := r.db.Model(&models.ConductorScan{}).Count(&count).Error
	return count, err
}
