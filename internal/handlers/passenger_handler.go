package handlers

import (
	"buspass_backend/internal/middleware"
	"buspass_backend/internal/models"
	"buspass_backend/internal/services"
	"buspass_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

// PassengerHandler обслуживает кабинет пассажира:
// тарифы, заявки, оплата и собственные проездные.
type PassengerHandler struct {
	*BaseHandler
	passTypeService    services.PassTypeService
	applicationService services.ApplicationService
	paymentService     services.PaymentService
	passService        services.PassService
}

func NewPassengerHandler(
	base *BaseHandler,
	passTypeService services.PassTypeService,
	applicationService services.ApplicationService,
	paymentService services.PaymentService,
	passService services.PassService,
) *PassengerHandler {
	return &PassengerHandler{
		BaseHandler:        base,
		passTypeService:    passTypeService,
		applicationService: applicationService,
		paymentService:     paymentService,
		passService:        passService,
	}
}

func (h *PassengerHandler) RegisterRoutes(r *gin.RouterGroup) {
	passenger := r.Group("/passenger")
	passenger.Use(middleware.AuthMiddleware(), middleware.RoleMiddleware(models.UserRolePassenger))
	{
		passenger.GET("/pass-types", h.GetPassTypes)
		passenger.POST("/applications", h.SubmitApplication)
		passenger.GET("/applications", h.GetMyApplications)
		passenger.POST("/payments", h.ProcessPayment)
		passenger.GET("/payments/:applicationId", h.GetPayment)
		passenger.GET("/passes", h.GetMyPasses)
		passenger.GET("/passes/:passId", h.GetPassDetails)
	}
}

// GetPassTypes - активные тарифы для подачи заявки
func (h *PassengerHandler) GetPassTypes(c *gin.Context) {
	passTypes, err := h.passTypeService.List(false)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.OK(c, passTypes, "")
}

// SubmitApplication - подача заявки на проездной
// @Summary Submit a bus pass application
// @Tags passenger
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.SubmitApplicationRequest true "Application data"
// @Success 201 {object} SuccessResponse
// @Router /passenger/applications [post]
func (h *PassengerHandler) SubmitApplication(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.SubmitApplicationRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.applicationService.Submit(userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.Created(c, resp, "Application submitted successfully")
}

// GetMyApplications - собственные заявки пассажира
func (h *PassengerHandler) GetMyApplications(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.PageRequest
	if !h.BindAndValidate_Query(c, &req) {
		return
	}

	resp, err := h.applicationService.GetMine(userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.OK(c, resp, "")
}

// ProcessPayment - оплата заявки
// @Summary Pay for an approved-pending application
// @Tags passenger
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ProcessPaymentRequest true "Payment data"
// @Success 201 {object} SuccessResponse
// @Router /passenger/payments [post]
func (h *PassengerHandler) ProcessPayment(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.ProcessPaymentRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.paymentService.ProcessPayment(userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.Created(c, resp, "Payment processed successfully")
}

// GetPayment - платеж по собственной заявке
func (h *PassengerHandler) GetPayment(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	applicationID, ok := h.RequireParam(c, "applicationId")
	if !ok {
		return
	}

	payment, err := h.paymentService.GetByApplication(userID, applicationID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.OK(c, payment, "")
}

// GetMyPasses - проездные пассажира
func (h *PassengerHandler) GetMyPasses(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	passes, err := h.passService.GetMyPasses(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.OK(c, passes, "")
}

// GetPassDetails - проездной с QR-изображением
func (h *PassengerHandler) GetPassDetails(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	passID, ok := h.RequireParam(c, "passId")
	if !ok {
		return
	}

	pass, err := h.passService.GetPassDetails(passID, userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.OK(c, pass, "")
}
