package dto

import "buspass_backend/internal/models"

// SubmitApplicationRequest - заявка пассажира на проездной
type SubmitApplicationRequest struct {
	PassTypeID   string `json:"passTypeId" binding:"required,uuid"`
	DocumentType string `json:"documentType" binding:"required,min=2,max=50"`
	DocumentLink string `json:"documentLink" binding:"required"`
}

// DecideApplicationRequest - решение админа по заявке
type DecideApplicationRequest struct {
	Status  models.ApplicationStatus `json:"status" binding:"required,decisionstatus"`
	Remarks string                   `json:"remarks" binding:"max=500"`
}

// ListApplicationsRequest - фильтр списка заявок
type ListApplicationsRequest struct {
	Status    models.ApplicationStatus `form:"status" binding:"omitempty,oneof=PENDING APPROVED REJECTED"`
	SortBy    string                   `form:"sortBy" binding:"omitempty,oneof=created_at createdAt updated_at updatedAt status"`
	SortOrder string                   `form:"sortOrder" binding:"omitempty,oneof=asc desc ASC DESC"`
	PageRequest
}

// ApplicationResponse - заявка с присоединенными данными
type ApplicationResponse struct {
	*models.PassApplication
	UserSummary *models.UserSummary `json:"userSummary,omitempty"`
}

// NewApplicationResponse прикрепляет краткую карточку пассажира
func NewApplicationResponse(application *models.PassApplication) *ApplicationResponse {
	resp := &ApplicationResponse{PassApplication: application}
	if application.User != nil {
		summary := application.User.Summary()
		resp.UserSummary = &summary
	}
	return resp
}

// ApplicationListResponse - постраничный список заявок
type ApplicationListResponse struct {
	Applications []*ApplicationResponse `json:"applications"`
	Pagination   Pagination             `json:"pagination"`
}
