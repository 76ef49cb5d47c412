package handlers

import (
	"buspass_backend/internal/middleware"
	"buspass_backend/internal/models"
	"buspass_backend/internal/services"
	"buspass_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

// AdminHandler обслуживает админ-панель:
// каталог тарифов, решения по заявкам, пользователи и отчетность.
type AdminHandler struct {
	*BaseHandler
	passTypeService    services.PassTypeService
	applicationService services.ApplicationService
	authService        services.AuthService
	reportService      services.ReportService
}

func NewAdminHandler(
	base *BaseHandler,
	passTypeService services.PassTypeService,
	applicationService services.ApplicationService,
	authService services.AuthService,
	reportService services.ReportService,
) *AdminHandler {
	return &AdminHandler{
		BaseHandler:        base,
		passTypeService:    passTypeService,
		applicationService: applicationService,
		authService:        authService,
		reportService:      reportService,
	}
}

func (h *AdminHandler) RegisterRoutes(r *gin.RouterGroup) {
	admin := r.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.RoleMiddleware(models.UserRoleAdmin))
	{
		admin.POST("/pass-types", h.CreatePassType)
		admin.PUT("/pass-types/:passTypeId", h.UpdatePassType)
		admin.GET("/pass-types", h.GetPassTypes)
		admin.GET("/pass-types/:passTypeId", h.GetPassType)

		admin.GET("/applications", h.ListApplications)
		admin.GET("/applications/:applicationId", h.GetApplicationDetails)
		admin.PUT("/applications/:applicationId/decision", h.DecideApplication)

		admin.POST("/conductors", h.CreateConductor)
		admin.GET("/users", h.ListUsers)

		admin.GET("/statistics", h.GetStatistics)
	}
}

// --- Pass type management ---

// CreatePassType - создание тарифа
// @Summary Create a pass type
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreatePassTypeRequest true "Pass type data"
// @Success 201 {object} SuccessResponse
// @Router /admin/pass-types [post]
func (h *AdminHandler) CreatePassType(c *gin.Context) {
	adminID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreatePassTypeRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	passType, err := h.passTypeService.Create(&req, adminID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.Created(c, passType, "Pass type created successfully")
}

// UpdatePassType - изменение тарифа
func (h *AdminHandler) UpdatePassType(c *gin.Context) {
	adminID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	passTypeID, ok := h.RequireParam(c, "passTypeId")
	if !ok {
		return
	}

	var req dto.UpdatePassTypeRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	passType, err := h.passTypeService.Update(passTypeID, &req, adminID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.OK(c, passType, "Pass type updated successfully")
}

// GetPassTypes - все тарифы, включая отключенные
func (h *AdminHandler) GetPassTypes(c *gin.Context) {
	passTypes, err := h.passTypeService.List(true)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.OK(c, passTypes, "")
}

func (h *AdminHandler) GetPassType(c *gin.Context) {
	passTypeID, ok := h.RequireParam(c, "passTypeId")
	if !ok {
		return
	}

	passType, err := h.passTypeService.GetByID(passTypeID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.OK(c, passType, "")
}

// --- Application review ---

// ListApplications - список заявок с фильтром по статусу
func (h *AdminHandler) ListApplications(c *gin.Context) {
	var req dto.ListApplicationsRequest
	if !h.BindAndValidate_Query(c, &req) {
		return
	}

	resp, err := h.applicationService.List(&req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.OK(c, resp, "")
}

// GetApplicationDetails - заявка с документами и карточкой пассажира
func (h *AdminHandler) GetApplicationDetails(c *gin.Context) {
	applicationID, ok := h.RequireParam(c, "applicationId")
	if !ok {
		return
	}

	resp, err := h.applicationService.GetDetails(applicationID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.OK(c, resp, "")
}

// DecideApplication - одобрение или отклонение заявки
// @Summary Approve or reject an application
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param applicationId path string true "Application ID"
// @Param request body dto.DecideApplicationRequest true "Decision"
// @Success 200 {object} SuccessResponse
// @Router /admin/applications/{applicationId}/decision [put]
func (h *AdminHandler) DecideApplication(c *gin.Context) {
	adminID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	applicationID, ok := h.RequireParam(c, "applicationId")
	if !ok {
		return
	}

	var req dto.DecideApplicationRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.applicationService.Decide(applicationID, adminID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.OK(c, resp, "Application "+string(req.Status))
}

// --- User management ---

// CreateConductor - создание аккаунта кондуктора
func (h *AdminHandler) CreateConductor(c *gin.Context) {
	var req dto.RegisterRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	conductor, err := h.authService.CreateConductor(&req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.Created(c, conductor, "Conductor account created successfully")
}

// ListUsers - список пользователей с фильтром по роли
func (h *AdminHandler) ListUsers(c *gin.Context) {
	var req dto.ListUsersRequest
	if !h.BindAndValidate_Query(c, &req) {
		return
	}

	resp, err := h.authService.ListUsers(&req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.OK(c, resp, "")
}

// --- Reporting ---

// GetStatistics - сводный отчет
func (h *AdminHandler) GetStatistics(c *gin.Context) {
	var req dto.StatisticsRequest
	if !h.BindAndValidate_Query(c, &req) {
		return
	}

	resp, err := h.reportService.GetStatistics(&req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.OK(c, resp, "")
}
