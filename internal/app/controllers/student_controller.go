package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/voltclub/clubsphere/internal/app/models/dto"
	"github.com/voltclub/clubsphere/internal/app/services"
	"github.com/voltclub/clubsphere/internal/middleware"
)

// StudentController handles student profile operations
type StudentController struct {
	authService services.IAuthService
	logger      zerolog.Logger
}

// NewStudentController creates a new StudentController
func NewStudentController(authService services.IAuthService, logger zerolog.Logger) *StudentController {
	return &StudentController{
		authService: authService,
		logger:      logger,
	}
}

// Me returns the profile of the authenticated student.
// @Summary Get own student profile
// @Tags students
// @Produce json
// @Security BearerAuth
// @Router /api/v1/students/me [get]
func (c *StudentController) Me(ctx *gin.Context) {
	enrollmentNumber := ctx.GetString(middleware.ContextKeyEnrollmentNumber)
	if enrollmentNumber == "" {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Unauthorized")))
		return
	}

	profile, err := c.authService.GetProfile(ctx.Request.Context(), enrollmentNumber)
	if err != nil {
		c.logger.Warn().Err(err).Str("enrollmentNumber", enrollmentNumber).Msg("Profile lookup failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(profile))
}
