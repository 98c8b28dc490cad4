package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emre/notesphere/internal/app/models/dto"
)

// RespondValidationError writes a 400 with field-level details extracted from
// a binding error.
func RespondValidationError(c *gin.Context, err error) {
	errorDetail := dto.HandleValidationError(err)
	c.JSON(http.StatusBadRequest, dto.APIResponse{Error: errorDetail})
}
