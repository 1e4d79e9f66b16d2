// Package controllers handles HTTP request handling
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/voltclub/clubsphere/internal/app/models/dto"
	"github.com/voltclub/clubsphere/internal/app/services"
	"github.com/voltclub/clubsphere/internal/middleware"
)

// AuthController handles authentication related operations
type AuthController struct {
	authService services.IAuthService
	logger      zerolog.Logger
}

// NewAuthController creates a new AuthController
func NewAuthController(authService services.IAuthService, logger zerolog.Logger) *AuthController {
	return &AuthController{
		authService: authService,
		logger:      logger,
	}
}

// ProbeEnrollment tells the client whether an enrollment number should
// sign up or can log in.
// @Summary Probe an enrollment number
// @Tags auth
// @Accept json
// @Produce json
// @Router /auth/enrollment [post]
func (c *AuthController) ProbeEnrollment(ctx *gin.Context) {
	var req dto.EnrollmentProbeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid enrollment probe payload")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request body")))
		return
	}

	result, err := c.authService.ProbeEnrollment(ctx.Request.Context(), req.EnrollmentNumber)
	if err != nil {
		c.logger.Warn().Err(err).Str("enrollmentNumber", req.EnrollmentNumber).Msg("Enrollment probe failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(result))
}

// SendVerificationLink mails a verification link to an unverified student.
// @Summary Send a signup verification email
// @Tags auth
// @Accept json
// @Produce json
// @Router /auth/sendEmailVerification [post]
func (c *AuthController) SendVerificationLink(ctx *gin.Context) {
	var req dto.SendVerificationLinkRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid verification link payload")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request body")))
		return
	}

	if err := c.authService.SendVerificationLink(ctx.Request.Context(), &req); err != nil {
		c.logger.Warn().Err(err).
			Str("enrollmentNumber", req.EnrollmentNumber).
			Str("email", req.Email).
			Msg("Sending verification link failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.MessageResponse{Message: "Email sent"}))
}

// VerifyEmail handles the emailed verification link callback.
// @Summary Confirm an email verification link
// @Tags auth
// @Produce json
// @Param eno query string true "Enrollment number"
// @Param email query string true "Email address the link was issued for"
// @Param token query string true "Verification token"
// @Router /auth/studentEmailVerify/ [get]
func (c *AuthController) VerifyEmail(ctx *gin.Context) {
	enrollmentNumber := ctx.Query("eno")
	emailAddr := ctx.Query("email")
	token := ctx.Query("token")

	err := c.authService.ConfirmVerificationLink(ctx.Request.Context(), enrollmentNumber, emailAddr, token)
	if err != nil {
		c.logger.Warn().Err(err).Str("enrollmentNumber", enrollmentNumber).Msg("Email verification failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.MessageResponse{Message: "Email verified"}))
}

// Signup completes registration with a password.
// @Summary Complete student signup
// @Tags auth
// @Accept json
// @Produce json
// @Router /auth/signup [post]
func (c *AuthController) Signup(ctx *gin.Context) {
	var req dto.SignupRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid signup payload")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request body")))
		return
	}

	response, err := c.authService.CompleteSignup(ctx.Request.Context(), &req)
	if err != nil {
		c.logger.Warn().Err(err).Str("enrollmentNumber", req.EnrollmentNumber).Msg("Signup failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Str("enrollmentNumber", req.EnrollmentNumber).Msg("Student signup successful")
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(response))
}

// Login authenticates a registered student.
// @Summary Student login
// @Tags auth
// @Accept json
// @Produce json
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid login payload")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request body")))
		return
	}

	response, err := c.authService.Login(ctx.Request.Context(), &req)
	if err != nil {
		c.logger.Warn().Err(err).Str("email", req.Email).Msg("Login failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(response))
}
