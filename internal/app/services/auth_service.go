package services

import (
	"context"
	"fmt"
	"net/url"

	"github.com/rs/zerolog"
	"github.com/voltclub/clubsphere/internal/app/models"
	"github.com/voltclub/clubsphere/internal/app/models/dto"
	"github.com/voltclub/clubsphere/internal/app/repositories"
	"github.com/voltclub/clubsphere/internal/pkg/apperrors"
	"github.com/voltclub/clubsphere/internal/pkg/auth"
	"github.com/voltclub/clubsphere/internal/pkg/email"
	"github.com/voltclub/clubsphere/internal/pkg/validation"
)

// IAuthService defines the auth workflows exposed over HTTP
type IAuthService interface {
	ProbeEnrollment(ctx context.Context, enrollmentNumber string) (*dto.EnrollmentProbeResponse, error)
	SendVerificationLink(ctx context.Context, req *dto.SendVerificationLinkRequest) error
	ConfirmVerificationLink(ctx context.Context, enrollmentNumber, emailAddr, token string) error
	CompleteSignup(ctx context.Context, req *dto.SignupRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	GetProfile(ctx context.Context, enrollmentNumber string) (*dto.StudentProfile, error)
}

// AuthService orchestrates the signup state machine
// (UNVERIFIED -> EMAIL_LINK_SENT -> EMAIL_VERIFIED -> REGISTERED)
// and the login workflow. The student directory is the only shared
// mutable state; all conflict checks are re-enforced by its
// conditional writes.
type AuthService struct {
	studentRepo repositories.IStudentRepository
	dispatcher  email.Dispatcher
	jwtService  *auth.JWTService
	postbackURL string
	logger      zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	studentRepo repositories.IStudentRepository,
	dispatcher email.Dispatcher,
	jwtService *auth.JWTService,
	postbackURL string,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		studentRepo: studentRepo,
		dispatcher:  dispatcher,
		jwtService:  jwtService,
		postbackURL: postbackURL,
		logger:      logger,
	}
}

// validateEnrollmentNumber enforces the institutional identifier shape.
// The empty check is redundant with the length check but both are
// enforced, matching the documented contract.
func (s *AuthService) validateEnrollmentNumber(enrollmentNumber string) error {
	if enrollmentNumber == "" {
		return apperrors.NewValidationError("Enrollment number is required")
	}
	if !validation.IsValidEnrollmentNumber(enrollmentNumber) {
		return apperrors.NewValidationError("Enrollment number should be of 9 characters")
	}
	return nil
}

func (s *AuthService) validateEmail(emailAddr string) error {
	if emailAddr == "" {
		return apperrors.NewValidationError("Email is required")
	}
	if !validation.IsValidEmail(emailAddr) {
		return apperrors.NewValidationError("Email format is invalid")
	}
	return nil
}

// ProbeEnrollment reports whether an enrollment number should enter the
// signup flow or can log in already. No side effects.
func (s *AuthService) ProbeEnrollment(ctx context.Context, enrollmentNumber string) (*dto.EnrollmentProbeResponse, error) {
	if err := s.validateEnrollmentNumber(enrollmentNumber); err != nil {
		return nil, err
	}

	student, err := s.studentRepo.FindByEnrollmentNumber(ctx, enrollmentNumber)
	if err != nil {
		return nil, err
	}

	if student.IsEmailVerified() {
		return &dto.EnrollmentProbeResponse{
			State: dto.ProbeStateLogin,
			Email: *student.Email,
		}, nil
	}

	return &dto.EnrollmentProbeResponse{State: dto.ProbeStateSignup}, nil
}

// SendVerificationLink mails a single-use verification link for an
// unverified, unregistered enrollment number. Sending the link does not
// verify anything by itself; the record is mutated only when the link
// is confirmed.
func (s *AuthService) SendVerificationLink(ctx context.Context, req *dto.SendVerificationLinkRequest) error {
	if err := s.validateEnrollmentNumber(req.EnrollmentNumber); err != nil {
		return err
	}
	if err := s.validateEmail(req.Email); err != nil {
		return err
	}

	student, err := s.studentRepo.FindByEnrollmentNumber(ctx, req.EnrollmentNumber)
	if err != nil {
		return err
	}

	if student.IsRegistered() {
		return apperrors.ErrAlreadyRegistered
	}
	if student.IsEmailVerified() {
		return apperrors.ErrEmailAlreadyVerified
	}

	// The token binds both the enrollment number and the address so the
	// link cannot be replayed with a different email parameter.
	token, err := s.jwtService.IssueVerificationToken(req.EnrollmentNumber, req.Email)
	if err != nil {
		return fmt.Errorf("%w: verification token issuance failed: %v", apperrors.ErrInternal, err)
	}

	verificationURL := fmt.Sprintf("%s/auth/studentEmailVerify/?eno=%s&email=%s&token=%s",
		s.postbackURL,
		url.QueryEscape(req.EnrollmentNumber),
		url.QueryEscape(req.Email),
		url.QueryEscape(token),
	)

	if err := s.dispatcher.Send(req.Email, verificationURL); err != nil {
		s.logger.Error().Err(err).Str("email", req.Email).Msg("Verification email dispatch failed")
		return fmt.Errorf("%w: %v", apperrors.ErrMailDelivery, err)
	}

	s.logger.Info().
		Str("enrollmentNumber", req.EnrollmentNumber).
		Str("email", req.Email).
		Msg("Verification email dispatched")
	return nil
}

// ConfirmVerificationLink validates the emailed token and marks the
// email identity as verified. Confirming the same link twice is a
// no-op because the directory write is conditional on the same value.
func (s *AuthService) ConfirmVerificationLink(ctx context.Context, enrollmentNumber, emailAddr, token string) error {
	if err := s.validateEnrollmentNumber(enrollmentNumber); err != nil {
		return err
	}
	if emailAddr == "" {
		return apperrors.NewValidationError("Email is required")
	}
	if token == "" {
		return apperrors.NewValidationError("Token is required")
	}

	claims, err := s.jwtService.VerifyToken(token)
	if err != nil {
		return apperrors.ErrTokenInvalid
	}

	// The token must have been issued for exactly this enrollment
	// number and address; a valid token for another student or another
	// email does not count.
	if claims.EnrollmentNumber() != enrollmentNumber || claims.Email != emailAddr {
		return apperrors.ErrTokenInvalid
	}

	if _, err := s.studentRepo.SetEmailVerified(ctx, enrollmentNumber, emailAddr); err != nil {
		return err
	}

	s.logger.Info().
		Str("enrollmentNumber", enrollmentNumber).
		Str("email", emailAddr).
		Msg("Student email verified")
	return nil
}

// CompleteSignup hashes the chosen password and closes the signup path
// for this enrollment number. Hashing failure aborts before any write;
// a directory write failure aborts before token issuance.
func (s *AuthService) CompleteSignup(ctx context.Context, req *dto.SignupRequest) (*dto.AuthResponse, error) {
	if err := s.validateEnrollmentNumber(req.EnrollmentNumber); err != nil {
		return nil, err
	}
	if err := s.validateEmail(req.Email); err != nil {
		return nil, err
	}
	if req.Password == "" {
		return nil, apperrors.NewValidationError("Password is required")
	}

	student, err := s.studentRepo.FindByEnrollmentNumber(ctx, req.EnrollmentNumber)
	if err != nil {
		return nil, err
	}

	if !student.IsEmailVerified() {
		return nil, apperrors.ErrEmailNotVerified
	}
	if *student.Email != req.Email {
		return nil, apperrors.ErrEmailMismatch
	}
	if student.IsRegistered() {
		return nil, apperrors.ErrAlreadyRegistered
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("%w: password hashing failed: %v", apperrors.ErrInternal, err)
	}

	// The conditional write re-checks the registration precondition, so
	// a concurrent signup for the same enrollment number cannot slip
	// past the check above.
	updated, err := s.studentRepo.SetCredential(ctx, req.EnrollmentNumber, hash)
	if err != nil {
		return nil, err
	}

	response, err := s.buildAuthResponse(updated, "Student signup successful")
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("enrollmentNumber", req.EnrollmentNumber).Msg("Student registered")
	return response, nil
}

// Login authenticates a registered student by email and password and
// issues a session token bound to the enrollment number.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	if req.Email == "" {
		return nil, apperrors.NewValidationError("Email is required")
	}
	if req.Password == "" {
		return nil, apperrors.NewValidationError("Password is required")
	}

	student, err := s.studentRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}

	// An unregistered account and a wrong password are both reported as
	// invalid credentials.
	if !student.IsRegistered() {
		return nil, apperrors.ErrInvalidCredentials
	}
	if !auth.CheckPassword(*student.PasswordHash, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	response, err := s.buildAuthResponse(student, "Student login successful")
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("enrollmentNumber", student.EnrollmentNumber).Msg("Student logged in")
	return response, nil
}

// GetProfile returns the public profile for a session's enrollment number
func (s *AuthService) GetProfile(ctx context.Context, enrollmentNumber string) (*dto.StudentProfile, error) {
	student, err := s.studentRepo.FindByEnrollmentNumber(ctx, enrollmentNumber)
	if err != nil {
		return nil, err
	}

	profile := dto.NewStudentProfile(student)
	return &profile, nil
}

func (s *AuthService) buildAuthResponse(student *models.Student, message string) (*dto.AuthResponse, error) {
	accessToken, expiresIn, err := s.jwtService.IssueSessionToken(student.EnrollmentNumber)
	if err != nil {
		return nil, fmt.Errorf("%w: session token issuance failed: %v", apperrors.ErrInternal, err)
	}

	return &dto.AuthResponse{
		Message: message,
		Token: dto.TokenResponse{
			AccessToken: accessToken,
			TokenType:   "Bearer",
			ExpiresIn:   expiresIn,
		},
		Student: dto.NewStudentProfile(student),
	}, nil
}
