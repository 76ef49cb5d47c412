package handlers

import (
	"buspass_backend/internal/middleware"
	"buspass_backend/internal/models"
	"buspass_backend/internal/services"
	"buspass_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

// ConductorHandler обслуживает полевые проверки проездных
type ConductorHandler struct {
	*BaseHandler
	verificationService services.VerificationService
}

func NewConductorHandler(base *BaseHandler, verificationService services.VerificationService) *ConductorHandler {
	return &ConductorHandler{
		BaseHandler:         base,
		verificationService: verificationService,
	}
}

func (h *ConductorHandler) RegisterRoutes(r *gin.RouterGroup) {
	conductor := r.Group("/conductor")
	conductor.Use(middleware.AuthMiddleware(), middleware.RoleMiddleware(models.UserRoleConductor))
	{
		conductor.POST("/verify", h.VerifyPass)
		conductor.GET("/dashboard", h.GetDashboard)
		conductor.GET("/history", h.GetHistory)
	}
}

// VerifyPass - проверка проездного по номеру или QR
// @Summary Verify a bus pass
// @Tags conductor
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.VerifyPassRequest true "Pass number or QR payload"
// @Success 200 {object} SuccessResponse
// @Router /conductor/verify [post]
func (h *ConductorHandler) VerifyPass(c *gin.Context) {
	conductorID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.VerifyPassRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.verificationService.VerifyPass(conductorID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	message := "Pass verified"
	if !resp.IsValid {
		message = "Pass is invalid"
	}
	h.OK(c, resp, message)
}

// GetDashboard - проверки и агрегаты за сегодня
func (h *ConductorHandler) GetDashboard(c *gin.Context) {
	conductorID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	resp, err := h.verificationService.GetDashboard(conductorID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.OK(c, resp, "")
}

// GetHistory - постраничная история проверок
func (h *ConductorHandler) GetHistory(c *gin.Context) {
	conductorID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.VerificationHistoryRequest
	if !h.BindAndValidate_Query(c, &req) {
		return
	}

	resp, err := h.verificationService.GetHistory(conductorID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.OK(c, resp, "")
}
