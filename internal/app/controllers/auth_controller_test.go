package controllers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/voltclub/clubsphere/internal/app/controllers"
	"github.com/voltclub/clubsphere/internal/app/models/dto"
	"github.com/voltclub/clubsphere/internal/app/routes"
	"github.com/voltclub/clubsphere/internal/middleware"
	"github.com/voltclub/clubsphere/internal/pkg/apperrors"
	"github.com/voltclub/clubsphere/internal/pkg/auth"
)

// stubAuthService returns canned results so handler tests exercise only
// the HTTP layer: binding, status mapping and the response envelope.
type stubAuthService struct {
	probeResult   *dto.EnrollmentProbeResponse
	probeErr      error
	sendErr       error
	confirmErr    error
	signupResult  *dto.AuthResponse
	signupErr     error
	loginResult   *dto.AuthResponse
	loginErr      error
	profileResult *dto.StudentProfile
	profileErr    error

	confirmedEno   string
	confirmedEmail string
	confirmedToken string
}

func (s *stubAuthService) ProbeEnrollment(_ context.Context, _ string) (*dto.EnrollmentProbeResponse, error) {
	return s.probeResult, s.probeErr
}

func (s *stubAuthService) SendVerificationLink(_ context.Context, _ *dto.SendVerificationLinkRequest) error {
	return s.sendErr
}

func (s *stubAuthService) ConfirmVerificationLink(_ context.Context, enrollmentNumber, emailAddr, token string) error {
	s.confirmedEno = enrollmentNumber
	s.confirmedEmail = emailAddr
	s.confirmedToken = token
	return s.confirmErr
}

func (s *stubAuthService) CompleteSignup(_ context.Context, _ *dto.SignupRequest) (*dto.AuthResponse, error) {
	return s.signupResult, s.signupErr
}

func (s *stubAuthService) Login(_ context.Context, _ *dto.LoginRequest) (*dto.AuthResponse, error) {
	return s.loginResult, s.loginErr
}

func (s *stubAuthService) GetProfile(_ context.Context, _ string) (*dto.StudentProfile, error) {
	return s.profileResult, s.profileErr
}

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{
		SecretKey:            "test-secret",
		SessionTokenExp:      time.Hour,
		VerificationTokenExp: 15 * time.Minute,
		TokenIssuer:          "clubsphere.test",
	})
}

func newTestRouter(service *stubAuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	logger := zerolog.Nop()
	authController := controllers.NewAuthController(service, logger)
	studentController := controllers.NewStudentController(service, logger)
	authMiddleware := middleware.NewAuthMiddleware(newTestJWTService())

	routes.SetupRouter(router, authController, studentController, authMiddleware)
	return router
}

func performJSON(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

type envelope struct {
	Success bool             `json:"success"`
	Body    json.RawMessage  `json:"body"`
	Error   *dto.ErrorDetail `json:"error"`
}

func decodeEnvelope(t *testing.T, recorder *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &env))
	return env
}

func TestProbeEnrollmentEndpoint(t *testing.T) {
	service := &stubAuthService{
		probeResult: &dto.EnrollmentProbeResponse{State: dto.ProbeStateLogin, Email: "a@x.com"},
	}
	router := newTestRouter(service)

	recorder := performJSON(router, http.MethodPost, "/auth/enrollment", `{"enrollmentNumber":"123456789"}`)

	assert.Equal(t, http.StatusOK, recorder.Code)
	env := decodeEnvelope(t, recorder)
	assert.True(t, env.Success)
	assert.Nil(t, env.Error)

	var body dto.EnrollmentProbeResponse
	require.NoError(t, json.Unmarshal(env.Body, &body))
	assert.Equal(t, dto.ProbeStateLogin, body.State)
	assert.Equal(t, "a@x.com", body.Email)
}

func TestProbeEnrollmentEndpointRejectsBadJSON(t *testing.T) {
	router := newTestRouter(&stubAuthService{})

	recorder := performJSON(router, http.MethodPost, "/auth/enrollment", `{"enrollmentNumber":`)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	env := decodeEnvelope(t, recorder)
	assert.False(t, env.Success)
	require.NotNil(t, env.Error)
	assert.Equal(t, dto.ErrorCodeValidationFailed, env.Error.Code)
}

func TestErrorStatusMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   dto.ErrorCode
	}{
		{"validation", apperrors.NewValidationError("Enrollment number should be of 9 characters"), http.StatusBadRequest, dto.ErrorCodeValidationFailed},
		{"not found", apperrors.ErrStudentNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
		{"already registered", apperrors.ErrAlreadyRegistered, http.StatusConflict, dto.ErrorCodeConflict},
		{"already verified", apperrors.ErrEmailAlreadyVerified, http.StatusConflict, dto.ErrorCodeConflict},
		{"delivery", apperrors.ErrMailDelivery, http.StatusBadGateway, dto.ErrorCodeMailDelivery},
		{"internal", apperrors.ErrInternal, http.StatusInternalServerError, dto.ErrorCodeInternalServer},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router := newTestRouter(&stubAuthService{sendErr: tc.err})

			recorder := performJSON(router, http.MethodPost, "/auth/sendEmailVerification",
				`{"enrollmentNumber":"123456789","email":"a@x.com"}`)

			assert.Equal(t, tc.wantStatus, recorder.Code)
			env := decodeEnvelope(t, recorder)
			assert.False(t, env.Success)
			require.NotNil(t, env.Error)
			assert.Equal(t, tc.wantCode, env.Error.Code)
			assert.NotEmpty(t, env.Error.Message)
		})
	}
}

func TestSendVerificationLinkEndpoint(t *testing.T) {
	router := newTestRouter(&stubAuthService{})

	recorder := performJSON(router, http.MethodPost, "/auth/sendEmailVerification",
		`{"enrollmentNumber":"123456789","email":"a@x.com"}`)

	assert.Equal(t, http.StatusOK, recorder.Code)
	env := decodeEnvelope(t, recorder)
	assert.True(t, env.Success)

	var body dto.MessageResponse
	require.NoError(t, json.Unmarshal(env.Body, &body))
	assert.Equal(t, "Email sent", body.Message)
}

func TestVerifyEmailEndpointPlumbsQueryParams(t *testing.T) {
	service := &stubAuthService{}
	router := newTestRouter(service)

	recorder := performJSON(router, http.MethodGet,
		"/auth/studentEmailVerify/?eno=123456789&email=a%40x.com&token=tok123", "")

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "123456789", service.confirmedEno)
	assert.Equal(t, "a@x.com", service.confirmedEmail)
	assert.Equal(t, "tok123", service.confirmedToken)

	env := decodeEnvelope(t, recorder)
	assert.True(t, env.Success)

	var body dto.MessageResponse
	require.NoError(t, json.Unmarshal(env.Body, &body))
	assert.Equal(t, "Email verified", body.Message)
}

func TestVerifyEmailEndpointInvalidToken(t *testing.T) {
	router := newTestRouter(&stubAuthService{confirmErr: apperrors.ErrTokenInvalid})

	recorder := performJSON(router, http.MethodGet,
		"/auth/studentEmailVerify/?eno=123456789&email=a%40x.com&token=expired", "")

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	env := decodeEnvelope(t, recorder)
	assert.False(t, env.Success)
	require.NotNil(t, env.Error)
	assert.Equal(t, dto.ErrorCodeUnauthorized, env.Error.Code)
}

func TestSignupEndpoint(t *testing.T) {
	service := &stubAuthService{
		signupResult: &dto.AuthResponse{
			Message: "Student signup successful",
			Token:   dto.TokenResponse{AccessToken: "jwt", TokenType: "Bearer", ExpiresIn: 3600},
			Student: dto.StudentProfile{EnrollmentNumber: "123456789", Email: "a@x.com"},
		},
	}
	router := newTestRouter(service)

	recorder := performJSON(router, http.MethodPost, "/auth/signup",
		`{"enrollmentNumber":"123456789","email":"a@x.com","password":"pw1"}`)

	assert.Equal(t, http.StatusOK, recorder.Code)
	env := decodeEnvelope(t, recorder)
	assert.True(t, env.Success)

	var body dto.AuthResponse
	require.NoError(t, json.Unmarshal(env.Body, &body))
	assert.Equal(t, "Student signup successful", body.Message)
	assert.Equal(t, "jwt", body.Token.AccessToken)
	assert.Equal(t, "123456789", body.Student.EnrollmentNumber)
}

func TestLoginEndpointInvalidCredentials(t *testing.T) {
	router := newTestRouter(&stubAuthService{loginErr: apperrors.ErrInvalidCredentials})

	recorder := performJSON(router, http.MethodPost, "/auth/login",
		`{"email":"a@x.com","password":"wrongpw"}`)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	env := decodeEnvelope(t, recorder)
	assert.False(t, env.Success)
	require.NotNil(t, env.Error)
	assert.Equal(t, dto.ErrorCodeInvalidCredentials, env.Error.Code)
	assert.Equal(t, "Invalid password or id", env.Error.Message)
}

func TestStudentMeRequiresSession(t *testing.T) {
	router := newTestRouter(&stubAuthService{})

	recorder := performJSON(router, http.MethodGet, "/api/v1/students/me", "")
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	env := decodeEnvelope(t, recorder)
	assert.False(t, env.Success)
	require.NotNil(t, env.Error)
}

func TestStudentMeWithValidToken(t *testing.T) {
	service := &stubAuthService{
		profileResult: &dto.StudentProfile{
			EnrollmentNumber: "123456789",
			Email:            "a@x.com",
			FirstName:        "Asha",
			LastName:         "Patel",
			ClubCredits:      "120",
		},
	}
	router := newTestRouter(service)

	token, _, err := newTestJWTService().IssueSessionToken("123456789")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/students/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)
	env := decodeEnvelope(t, recorder)
	assert.True(t, env.Success)

	var body dto.StudentProfile
	require.NoError(t, json.Unmarshal(env.Body, &body))
	assert.Equal(t, "123456789", body.EnrollmentNumber)
	assert.Equal(t, "a@x.com", body.Email)
}

func TestStudentMeRejectsGarbageToken(t *testing.T) {
	router := newTestRouter(&stubAuthService{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/students/me", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}
