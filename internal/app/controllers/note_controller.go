package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/emre/notesphere/internal/app/models/dto"
	"github.com/emre/notesphere/internal/app/services"
	"github.com/emre/notesphere/internal/middleware"
)

// NoteController handles note-related endpoints. The public handlers only
// expose published notes; the admin handlers see everything.
type NoteController struct {
	noteService *services.NoteService
}

// NewNoteController creates a new NoteController
func NewNoteController(noteService *services.NoteService) *NoteController {
	return &NoteController{
		noteService: noteService,
	}
}

// GetNotes lists published notes
// @Summary List published notes
// @Description Retrieves published notes, optionally filtered by subject and chapter
// @Tags notes
// @Produce json
// @Param subjectId query int false "Filter by subject ID"
// @Param chapterId query int false "Filter by chapter ID"
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(20)
// @Success 200 {object} dto.APIResponse{data=dto.NoteListResponse} "Notes retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid filter parameters"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /notes [get]
func (c *NoteController) GetNotes(ctx *gin.Context) {
	c.listNotes(ctx, false)
}

// GetAllNotes lists all notes including drafts
// @Summary List all notes
// @Description Retrieves all notes including unpublished drafts
// @Tags notes
// @Produce json
// @Security BearerAuth
// @Param subjectId query int false "Filter by subject ID"
// @Param chapterId query int false "Filter by chapter ID"
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(20)
// @Success 200 {object} dto.APIResponse{data=dto.NoteListResponse} "Notes retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid filter parameters"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/notes [get]
func (c *NoteController) GetAllNotes(ctx *gin.Context) {
	c.listNotes(ctx, true)
}

func (c *NoteController) listNotes(ctx *gin.Context, includeUnpublished bool) {
	var filter dto.NoteFilterRequest
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		middleware.RespondValidationError(ctx, err)
		return
	}

	list, err := c.noteService.ListNotes(ctx, filter, includeUnpublished)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      list,
		Timestamp: time.Now(),
	})
}

// GetNoteByID retrieves a published note
// @Summary Get note by ID
// @Description Retrieves a published note with its attachments
// @Tags notes
// @Produce json
// @Param id path int true "Note ID"
// @Success 200 {object} dto.APIResponse{data=dto.NoteResponse} "Note retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid note ID"
// @Failure 404 {object} dto.ErrorResponse "Note not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /notes/{id} [get]
func (c *NoteController) GetNoteByID(ctx *gin.Context) {
	c.getNote(ctx, false)
}

// GetAnyNoteByID retrieves a note regardless of publish status
// @Summary Get any note by ID
// @Description Retrieves a note with its attachments, published or not
// @Tags notes
// @Produce json
// @Security BearerAuth
// @Param id path int true "Note ID"
// @Success 200 {object} dto.APIResponse{data=dto.NoteResponse} "Note retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid note ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Note not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/notes/{id} [get]
func (c *NoteController) GetAnyNoteByID(ctx *gin.Context) {
	c.getNote(ctx, true)
}

func (c *NoteController) getNote(ctx *gin.Context, includeUnpublished bool) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	note, err := c.noteService.GetNote(ctx, id, includeUnpublished)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      note,
		Timestamp: time.Now(),
	})
}

// CreateNote handles note creation
// @Summary Create a new note
// @Description Creates a note with its initial attachments in one step
// @Tags notes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateNoteRequest true "Note information"
// @Success 201 {object} dto.APIResponse{data=dto.NoteResponse} "Note created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Subject or chapter not found"
// @Failure 409 {object} dto.ErrorResponse "Chapter does not belong to the subject"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/notes [post]
func (c *NoteController) CreateNote(ctx *gin.Context) {
	var req dto.CreateNoteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.RespondValidationError(ctx, err)
		return
	}

	note, err := c.noteService.CreateNote(ctx, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      note,
		Timestamp: time.Now(),
	})
}

// UpdateNote handles note updates
// @Summary Update a note
// @Description Updates a note's fields and applies an attachment diff atomically
// @Tags notes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Note ID"
// @Param request body dto.UpdateNoteRequest true "Note information"
// @Success 200 {object} dto.APIResponse{data=dto.NoteResponse} "Note updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Note, subject, chapter or attachment not found"
// @Failure 409 {object} dto.ErrorResponse "Chapter does not belong to the subject"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/notes/{id} [put]
func (c *NoteController) UpdateNote(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateNoteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.RespondValidationError(ctx, err)
		return
	}

	note, err := c.noteService.UpdateNote(ctx, id, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      note,
		Timestamp: time.Now(),
	})
}

// SetPublishStatus toggles a note's publish flag
// @Summary Set note publish status
// @Description Publishes or unpublishes a note
// @Tags notes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Note ID"
// @Param request body dto.PublishStatusRequest true "Publish flag"
// @Success 200 {object} dto.APIResponse{data=dto.NoteResponse} "Publish status updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Note not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/notes/{id}/publish [patch]
func (c *NoteController) SetPublishStatus(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.PublishStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.RespondValidationError(ctx, err)
		return
	}

	note, err := c.noteService.SetPublishStatus(ctx, id, *req.IsPublished)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      note,
		Timestamp: time.Now(),
	})
}

// DeleteNote handles single note deletion
// @Summary Delete a note
// @Description Deletes a note with its attachments and stored files
// @Tags notes
// @Produce json
// @Security BearerAuth
// @Param id path int true "Note ID"
// @Success 204 "Note deleted successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid note ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Note not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/notes/{id} [delete]
func (c *NoteController) DeleteNote(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.noteService.DeleteNote(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// BulkDeleteNotes handles batch note deletion
// @Summary Bulk delete notes
// @Description Deletes a batch of notes; ids that match nothing are skipped
// @Tags notes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.BulkDeleteNotesRequest true "Note IDs"
// @Success 200 {object} dto.APIResponse{data=map[string]int64} "Deleted count"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/notes/bulk-delete [post]
func (c *NoteController) BulkDeleteNotes(ctx *gin.Context) {
	var req dto.BulkDeleteNotesRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.RespondValidationError(ctx, err)
		return
	}

	deleted, err := c.noteService.DeleteNotes(ctx, req.IDs)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      map[string]int64{"deleted": deleted},
		Timestamp: time.Now(),
	})
}
