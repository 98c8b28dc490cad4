package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emre/notesphere/internal/app/controllers"
	"github.com/emre/notesphere/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	adminAuthController *controllers.AdminAuthController,
	subjectController *controllers.SubjectController,
	chapterController *controllers.ChapterController,
	noteController *controllers.NoteController,
	uploadController *controllers.UploadController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	v1.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// --- Public read-only routes ---
	subjects := v1.Group("/subjects")
	{
		subjects.GET("", subjectController.GetSubjects)
		subjects.GET("/:id", subjectController.GetSubjectByID)
		subjects.GET("/:id/chapters", chapterController.GetChaptersBySubject)
	}

	notes := v1.Group("/notes")
	{
		notes.GET("", noteController.GetNotes)
		notes.GET("/:id", noteController.GetNoteByID)
	}

	// --- Admin routes ---
	admin := v1.Group("/admin")
	admin.POST("/login", adminAuthController.Login)

	protected := admin.Group("")
	protected.Use(authMiddleware.AdminAuth())
	{
		protected.POST("/subjects", subjectController.CreateSubject)
		protected.PUT("/subjects/:id", subjectController.RenameSubject)
		protected.DELETE("/subjects/:id", subjectController.DeleteSubject)

		protected.POST("/chapters", chapterController.CreateChapter)
		protected.PUT("/chapters/:id", chapterController.RenameChapter)
		protected.DELETE("/chapters/:id", chapterController.DeleteChapter)

		protected.GET("/notes", noteController.GetAllNotes)
		protected.GET("/notes/:id", noteController.GetAnyNoteByID)
		protected.POST("/notes", noteController.CreateNote)
		protected.PUT("/notes/:id", noteController.UpdateNote)
		protected.DELETE("/notes/:id", noteController.DeleteNote)
		protected.PATCH("/notes/:id/publish", noteController.SetPublishStatus)
		protected.POST("/notes/bulk-delete", noteController.BulkDeleteNotes)

		protected.POST("/uploads", uploadController.Upload)
	}
}
