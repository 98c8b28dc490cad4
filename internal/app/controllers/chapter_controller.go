package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/emre/notesphere/internal/app/models/dto"
	"github.com/emre/notesphere/internal/app/services"
	"github.com/emre/notesphere/internal/middleware"
)

// ChapterController handles chapter-related endpoints
type ChapterController struct {
	chapterService *services.ChapterService
}

// NewChapterController creates a new ChapterController
func NewChapterController(chapterService *services.ChapterService) *ChapterController {
	return &ChapterController{
		chapterService: chapterService,
	}
}

// GetChaptersBySubject lists chapters of a subject
// @Summary List subject chapters
// @Description Retrieves all chapters belonging to a subject
// @Tags chapters
// @Produce json
// @Param id path int true "Subject ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.ChapterResponse} "Chapters retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid subject ID"
// @Failure 404 {object} dto.ErrorResponse "Subject not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /subjects/{id}/chapters [get]
func (c *ChapterController) GetChaptersBySubject(ctx *gin.Context) {
	subjectID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	chapters, err := c.chapterService.GetChaptersBySubject(ctx, subjectID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	responses := make([]dto.ChapterResponse, 0, len(chapters))
	for _, ch := range chapters {
		responses = append(responses, toChapterResponse(ch))
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      responses,
		Timestamp: time.Now(),
	})
}

// CreateChapter handles chapter creation
// @Summary Create a new chapter
// @Description Creates a chapter under an existing subject
// @Tags chapters
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateChapterRequest true "Chapter information"
// @Success 201 {object} dto.APIResponse{data=dto.ChapterResponse} "Chapter created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Subject not found"
// @Failure 409 {object} dto.ErrorResponse "Chapter already exists in the subject"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/chapters [post]
func (c *ChapterController) CreateChapter(ctx *gin.Context) {
	var req dto.CreateChapterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.RespondValidationError(ctx, err)
		return
	}

	chapter, err := c.chapterService.CreateChapter(ctx, req.SubjectID, req.Name)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      toChapterResponse(chapter),
		Timestamp: time.Now(),
	})
}

// RenameChapter handles chapter renaming
// @Summary Rename a chapter
// @Description Changes a chapter's name within its subject
// @Tags chapters
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Chapter ID"
// @Param request body dto.RenameChapterRequest true "New chapter name"
// @Success 200 {object} dto.APIResponse{data=dto.ChapterResponse} "Chapter renamed successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Chapter not found"
// @Failure 409 {object} dto.ErrorResponse "Chapter already exists in the subject"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/chapters/{id} [put]
func (c *ChapterController) RenameChapter(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.RenameChapterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.RespondValidationError(ctx, err)
		return
	}

	chapter, err := c.chapterService.RenameChapter(ctx, id, req.Name)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      toChapterResponse(chapter),
		Timestamp: time.Now(),
	})
}

// DeleteChapter handles chapter deletion
// @Summary Delete a chapter
// @Description Deletes a chapter that has no notes
// @Tags chapters
// @Produce json
// @Security BearerAuth
// @Param id path int true "Chapter ID"
// @Success 204 "Chapter deleted successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid chapter ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Chapter not found"
// @Failure 409 {object} dto.ErrorResponse "Chapter still has notes"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/chapters/{id} [delete]
func (c *ChapterController) DeleteChapter(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.chapterService.DeleteChapter(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
