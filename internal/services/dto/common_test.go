package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPagination(t *testing.T) {
	testCases := []struct {
		name      string
		page      int
		limit     int
		total     int64
		wantPages int
	}{
		{"ровное деление", 1, 10, 30, 3},
		{"неполная последняя страница", 2, 10, 31, 4},
		{"меньше одной страницы", 1, 10, 3, 1},
		{"пусто", 1, 10, 0, 0},
		{"нулевой лимит не делит", 1, 0, 50, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			pagination := NewPagination(tc.page, tc.limit, tc.total)

			assert.Equal(t, tc.page, pagination.Page)
			assert.Equal(t, tc.limit, pagination.Limit)
			assert.Equal(t, tc.total, pagination.Total)
			assert.Equal(t, tc.wantPages, pagination.TotalPages)
		})
	}
}

func TestPageRequestNormalize(t *testing.T) {
	testCases := []struct {
		name      string
		in        PageRequest
		wantPage  int
		wantLimit int
	}{
		{"нулевые значения", PageRequest{}, 1, 10},
		{"в пределах нормы", PageRequest{Page: 3, Limit: 25}, 3, 25},
		{"лимит сверх максимума", PageRequest{Page: 1, Limit: 500}, 1, 100},
		{"отрицательная страница", PageRequest{Page: -1, Limit: 10}, 1, 10},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tc.in.Normalize()
			assert.Equal(t, tc.wantPage, tc.in.Page)
			assert.Equal(t, tc.wantLimit, tc.in.Limit)
		})
	}
}
