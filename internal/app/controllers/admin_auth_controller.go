package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/emre/notesphere/internal/app/models/dto"
	"github.com/emre/notesphere/internal/app/services"
	"github.com/emre/notesphere/internal/middleware"
)

// AdminAuthController handles admin authentication
type AdminAuthController struct {
	adminAuthService *services.AdminAuthService
}

// NewAdminAuthController creates a new AdminAuthController
func NewAdminAuthController(adminAuthService *services.AdminAuthService) *AdminAuthController {
	return &AdminAuthController{
		adminAuthService: adminAuthService,
	}
}

// Login verifies the admin passcode and returns a session token
// @Summary Admin login
// @Description Verifies the shared admin passcode and issues a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.AdminLoginRequest true "Admin passcode"
// @Success 200 {object} dto.APIResponse{data=dto.AdminLoginResponse} "Login successful"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Invalid passcode"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/login [post]
func (c *AdminAuthController) Login(ctx *gin.Context) {
	var req dto.AdminLoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.RespondValidationError(ctx, err)
		return
	}

	resp, err := c.adminAuthService.Login(ctx, req.Passcode)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      resp,
		Timestamp: time.Now(),
	})
}
