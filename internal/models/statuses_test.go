package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidUserRole(t *testing.T) {
	assert.True(t, ValidUserRole(UserRolePassenger))
	assert.True(t, ValidUserRole(UserRoleConductor))
	assert.True(t, ValidUserRole(UserRoleAdmin))
	assert.False(t, ValidUserRole(UserRole("superuser")))
	assert.False(t, ValidUserRole(UserRole("")))
}

func TestValidDecisionStatus(t *testing.T) {
	assert.True(t, ValidDecisionStatus(ApplicationStatusApproved))
	assert.True(t, ValidDecisionStatus(ApplicationStatusRejected))
	// PENDING - исходное состояние, не решение
	assert.False(t, ValidDecisionStatus(ApplicationStatusPending))
	assert.False(t, ValidDecisionStatus(ApplicationStatus("approved")))
}

func TestValidScanMethod(t *testing.T) {
	assert.True(t, ValidScanMethod(ScanMethodQR))
	assert.True(t, ValidScanMethod(ScanMethodManual))
	assert.False(t, ValidScanMethod(ScanMethod("NFC")))
}
