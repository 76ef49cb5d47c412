package dto

import "github.com/shopspring/decimal"

// StatisticsRequest - диапазон дат для отчета; границы применяются к платежам
type StatisticsRequest struct {
	StartDate string `form:"startDate" binding:"omitempty,datetime=2006-01-02"`
	EndDate   string `form:"endDate" binding:"omitempty,datetime=2006-01-02"`
}

// ApplicationStats - счетчики заявок по статусам
type ApplicationStats struct {
	Total    int64 `json:"total"`
	Pending  int64 `json:"pending"`
	Approved int64 `json:"approved"`
	Rejected int64 `json:"rejected"`
}

// PassStats - счетчики проездных
type PassStats struct {
	Total   int64 `json:"total"`
	Active  int64 `json:"active"`
	Expired int64 `json:"expired"`
}

// StatisticsResponse - сводный отчет для админа
type StatisticsResponse struct {
	Applications ApplicationStats `json:"applications"`
	Passes       PassStats        `json:"passes"`
	Revenue      decimal.Decimal  `json:"revenue"`
	TotalScans   int64            `json:"totalScans"`
}
