package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/emre/notesphere/internal/app/models"
	"github.com/emre/notesphere/internal/app/models/dto"
	"github.com/emre/notesphere/internal/app/services"
	"github.com/emre/notesphere/internal/middleware"
)

// SubjectController handles subject-related endpoints
type SubjectController struct {
	subjectService *services.SubjectService
}

// NewSubjectController creates a new SubjectController
func NewSubjectController(subjectService *services.SubjectService) *SubjectController {
	return &SubjectController{
		subjectService: subjectService,
	}
}

func parseIDParam(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+name).
			WithDetails(name + " must be a positive number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}

func toSubjectResponse(s *models.Subject) dto.SubjectResponse {
	return dto.SubjectResponse{ID: s.ID, Name: s.Name, CreatedAt: s.CreatedAt}
}

func toChapterResponse(c *models.Chapter) dto.ChapterResponse {
	return dto.ChapterResponse{ID: c.ID, SubjectID: c.SubjectID, Name: c.Name, CreatedAt: c.CreatedAt}
}

// GetSubjects lists all subjects
// @Summary List subjects
// @Description Retrieves all subjects ordered by name
// @Tags subjects
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.SubjectResponse} "Subjects retrieved successfully"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /subjects [get]
func (c *SubjectController) GetSubjects(ctx *gin.Context) {
	subjects, err := c.subjectService.GetSubjects(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	responses := make([]dto.SubjectResponse, 0, len(subjects))
	for _, s := range subjects {
		responses = append(responses, toSubjectResponse(s))
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      responses,
		Timestamp: time.Now(),
	})
}

// GetSubjectByID retrieves a subject with its chapters
// @Summary Get subject by ID
// @Description Retrieves a specific subject with its chapters
// @Tags subjects
// @Produce json
// @Param id path int true "Subject ID"
// @Success 200 {object} dto.APIResponse{data=dto.SubjectDetailResponse} "Subject retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid subject ID"
// @Failure 404 {object} dto.ErrorResponse "Subject not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /subjects/{id} [get]
func (c *SubjectController) GetSubjectByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	subject, err := c.subjectService.GetSubjectDetail(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	chapters := make([]dto.ChapterResponse, 0, len(subject.Chapters))
	for _, ch := range subject.Chapters {
		chapters = append(chapters, toChapterResponse(ch))
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: dto.SubjectDetailResponse{
			ID:        subject.ID,
			Name:      subject.Name,
			CreatedAt: subject.CreatedAt,
			Chapters:  chapters,
		},
		Timestamp: time.Now(),
	})
}

// CreateSubject handles subject creation
// @Summary Create a new subject
// @Description Creates a new subject with a unique name
// @Tags subjects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateSubjectRequest true "Subject information"
// @Success 201 {object} dto.APIResponse{data=dto.SubjectResponse} "Subject created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 409 {object} dto.ErrorResponse "Subject already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/subjects [post]
func (c *SubjectController) CreateSubject(ctx *gin.Context) {
	var req dto.CreateSubjectRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.RespondValidationError(ctx, err)
		return
	}

	subject, err := c.subjectService.CreateSubject(ctx, req.Name)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      toSubjectResponse(subject),
		Timestamp: time.Now(),
	})
}

// RenameSubject handles subject renaming
// @Summary Rename a subject
// @Description Changes a subject's name, keeping names unique
// @Tags subjects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Subject ID"
// @Param request body dto.RenameSubjectRequest true "New subject name"
// @Success 200 {object} dto.APIResponse{data=dto.SubjectResponse} "Subject renamed successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Subject not found"
// @Failure 409 {object} dto.ErrorResponse "Subject already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/subjects/{id} [put]
func (c *SubjectController) RenameSubject(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.RenameSubjectRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.RespondValidationError(ctx, err)
		return
	}

	subject, err := c.subjectService.RenameSubject(ctx, id, req.Name)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      toSubjectResponse(subject),
		Timestamp: time.Now(),
	})
}

// DeleteSubject handles subject deletion
// @Summary Delete a subject
// @Description Deletes a subject that has no chapters or notes
// @Tags subjects
// @Produce json
// @Security BearerAuth
// @Param id path int true "Subject ID"
// @Success 204 "Subject deleted successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid subject ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Subject not found"
// @Failure 409 {object} dto.ErrorResponse "Subject still has chapters or notes"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/subjects/{id} [delete]
func (c *SubjectController) DeleteSubject(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.subjectService.DeleteSubject(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
