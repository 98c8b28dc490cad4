package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/emre/notesphere/internal/app/models/dto"
	"github.com/emre/notesphere/internal/middleware"
	"github.com/emre/notesphere/internal/pkg/filestorage"
)

// UploadController handles attachment file uploads. Files are stored first;
// the returned URL is then referenced from note create and update requests.
type UploadController struct {
	storage filestorage.FileStorage
}

// NewUploadController creates a new UploadController
func NewUploadController(storage filestorage.FileStorage) *UploadController {
	return &UploadController{
		storage: storage,
	}
}

// Upload stores an attachment file
// @Summary Upload an attachment file
// @Description Stores an image or PDF and returns its public URL
// @Tags uploads
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "File to upload"
// @Param kind formData string true "Attachment kind" Enums(image, pdf)
// @Success 201 {object} dto.APIResponse{data=dto.UploadResponse} "File uploaded successfully"
// @Failure 400 {object} dto.ErrorResponse "Missing file or unsupported type"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/uploads [post]
func (c *UploadController) Upload(ctx *gin.Context) {
	file, err := ctx.FormFile("file")
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "File is required").
			WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	var kind filestorage.Kind
	switch ctx.PostForm("kind") {
	case "image":
		kind = filestorage.KindImage
	case "pdf":
		kind = filestorage.KindPDF
	default:
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid attachment kind").
			WithDetails("kind must be image or pdf")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	url, err := c.storage.SaveFile(file, kind)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      dto.UploadResponse{URL: url},
		Timestamp: time.Now(),
	})
}
