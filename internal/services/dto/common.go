package dto

// Pagination - сводка постраничного вывода
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// NewPagination считает totalPages как ceil(total/limit)
func NewPagination(page, limit int, total int64) Pagination {
	totalPages := 0
	if limit > 0 {
		totalPages = int((total + int64(limit) - 1) / int64(limit))
	}
	return Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}
}

// PageRequest - общие query-параметры пагинации
type PageRequest struct {
	Page  int `form:"page,default=1" binding:"omitempty,gte=1"`
	Limit int `form:"limit,default=10" binding:"omitempty,gte=1,max=100"`
}

// Normalize подставляет значения по умолчанию
func (p *PageRequest) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = 10
	}
	if p.Limit > 100 {
		p.Limit = 100
	}
}
