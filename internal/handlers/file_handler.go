package handlers

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"buspass_backend/internal/config"
	"buspass_backend/internal/logger"
	"buspass_backend/internal/middleware"
	"buspass_backend/internal/storage"
	"buspass_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// FileHandler принимает загрузки документов для заявок.
// Хранилище отдает URL, который пассажир передает в documentLink.
type FileHandler struct {
	*BaseHandler
	storage storage.Storage
	cfg     *config.Config
}

func NewFileHandler(base *BaseHandler, store storage.Storage, cfg *config.Config) *FileHandler {
	return &FileHandler{
		BaseHandler: base,
		storage:     store,
		cfg:         cfg,
	}
}

func (h *FileHandler) RegisterRoutes(r *gin.RouterGroup) {
	files := r.Group("/files")
	files.Use(middleware.AuthMiddleware())
	{
		files.POST("/documents", h.UploadDocument)
	}
}

// UploadDocument - загрузка документа (multipart/form-data, поле "document")
// @Summary Upload an application document
// @Tags files
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param document formData file true "Document file"
// @Success 201 {object} SuccessResponse
// @Router /files/documents [post]
func (h *FileHandler) UploadDocument(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("document")
	if err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Missing document file"))
		return
	}

	if fileHeader.Size > h.cfg.Upload.MaxSize {
		apperrors.HandleError(c, apperrors.NewBadRequestError(
			fmt.Sprintf("Document exceeds maximum size of %d bytes", h.cfg.Upload.MaxSize)))
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if !h.allowedType(contentType) {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Unsupported document type: "+contentType))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.HandleServiceError(c, apperrors.InternalError(err))
		return
	}
	defer file.Close()

	ext := filepath.Ext(fileHeader.Filename)
	path := fmt.Sprintf("documents/%s/%d_%s%s", userID, time.Now().Unix(), uuid.NewString()[:8], ext)

	ctx := c.Request.Context()
	if err := h.storage.Save(ctx, path, file, contentType); err != nil {
		h.HandleServiceError(c, apperrors.InternalError(err))
		return
	}

	url, err := h.storage.GetURL(ctx, path)
	if err != nil {
		h.HandleServiceError(c, apperrors.InternalError(err))
		return
	}

	logger.CtxInfo(ctx, "Документ загружен", "path", path, "size", fileHeader.Size)

	h.Created(c, gin.H{"documentLink": url, "path": path}, "Document uploaded successfully")
}

func (h *FileHandler) allowedType(contentType string) bool {
	for _, allowed := range h.cfg.Upload.AllowedTypes {
		if strings.EqualFold(allowed, contentType) {
			return true
		}
	}
	return false
}
