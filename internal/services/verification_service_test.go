package services

import (
	"testing"
	"time"

	"buspass_backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestEvaluateValidity(t *testing.T) {
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

	basePass := func() *models.BusPass {
		return &models.BusPass{
			ValidFrom:  now.AddDate(0, 0, -7),
			ValidUntil: now.AddDate(0, 0, 7),
			IsActive:   true,
		}
	}

	testCases := []struct {
		name        string
		mutate      func(pass *models.BusPass)
		wantValid   bool
		wantRemarks string
	}{
		{
			name:        "действующий проездной",
			mutate:      func(pass *models.BusPass) {},
			wantValid:   true,
			wantRemarks: "Pass is valid",
		},
		{
			name: "срок истек",
			mutate: func(pass *models.BusPass) {
				pass.ValidFrom = now.AddDate(0, 0, -30)
				pass.ValidUntil = now.AddDate(0, 0, -1)
			},
			wantValid:   false,
			wantRemarks: "Pass has expired",
		},
		{
			name: "срок еще не начался",
			mutate: func(pass *models.BusPass) {
				pass.ValidFrom = now.AddDate(0, 0, 1)
				pass.ValidUntil = now.AddDate(0, 0, 30)
			},
			wantValid:   false,
			wantRemarks: "Pass is not yet valid",
		},
		{
			name: "деактивирован",
			mutate: func(pass *models.BusPass) {
				pass.IsActive = false
			},
			wantValid:   false,
			wantRemarks: "Pass is deactivated",
		},
		{
			// Истечение важнее флага активности
			name: "деактивирован и истек",
			mutate: func(pass *models.BusPass) {
				pass.IsActive = false
				pass.ValidUntil = now.AddDate(0, 0, -1)
			},
			wantValid:   false,
			wantRemarks: "Pass has expired",
		},
		{
			name: "граница: последний момент действия",
			mutate: func(pass *models.BusPass) {
				pass.ValidUntil = now
			},
			wantValid:   true,
			wantRemarks: "Pass is valid",
		},
		{
			name: "граница: первый момент действия",
			mutate: func(pass *models.BusPass) {
				pass.ValidFrom = now
			},
			wantValid:   true,
			wantRemarks: "Pass is valid",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			pass := basePass()
			tc.mutate(pass)

			isValid, remarks := evaluateValidity(pass, now)

			assert.Equal(t, tc.wantValid, isValid)
			assert.Equal(t, tc.wantRemarks, remarks)
		})
	}
}
