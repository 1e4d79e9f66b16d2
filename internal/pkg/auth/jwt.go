package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// JWT errors
var (
	// ErrInvalidToken covers expired, tampered and malformed tokens alike
	// so callers cannot distinguish why verification failed.
	ErrInvalidToken  = errors.New("invalid token")
	ErrInvalidFormat = errors.New("invalid token format")
)

// JWTConfig defines JWT configuration settings
type JWTConfig struct {
	SecretKey            string
	SessionTokenExp      time.Duration
	VerificationTokenExp time.Duration
	TokenIssuer          string
}

// JWTService issues and verifies signed, time-bounded identity tokens.
// The subject of every token is a student enrollment number.
type JWTService struct {
	config JWTConfig
	now    func() time.Time
}

// NewJWTService creates a new JWT service
func NewJWTService(config JWTConfig) *JWTService {
	return &JWTService{
		config: config,
		now:    time.Now,
	}
}

// WithClock replaces the service clock. Used by tests to simulate expiry.
func (s *JWTService) WithClock(now func() time.Time) *JWTService {
	s.now = now
	return s
}

// Claims defines JWT token content
type Claims struct {
	// Email is set on verification tokens only and binds the token to
	// the address the verification link was requested for.
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// EnrollmentNumber returns the token subject.
func (c *Claims) EnrollmentNumber() string {
	return c.Subject
}

// IssueSessionToken creates a session token asserting the bearer's
// enrollment number. Returns the token and its lifetime in seconds.
func (s *JWTService) IssueSessionToken(enrollmentNumber string) (string, int64, error) {
	token, err := s.issue(enrollmentNumber, "", s.config.SessionTokenExp)
	if err != nil {
		return "", 0, err
	}
	return token, int64(s.config.SessionTokenExp.Seconds()), nil
}

// IssueVerificationToken creates a short-lived token binding an
// enrollment number to the email address being verified.
func (s *JWTService) IssueVerificationToken(enrollmentNumber, email string) (string, error) {
	return s.issue(enrollmentNumber, email, s.config.VerificationTokenExp)
}

func (s *JWTService) issue(subject, email string, ttl time.Duration) (string, error) {
	now := s.now()
	claims := &Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    s.config.TokenIssuer,
			Subject:   subject,
			ID:        uuid.New().String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.config.SecretKey))
	if err != nil {
		return "", err
	}
	return signed, nil
}

// VerifyToken validates signature and expiry and returns the embedded
// claims. Every failure mode collapses into ErrInvalidToken.
func (s *JWTService) VerifyToken(tokenString string) (*Claims, error) {
	if strings.TrimSpace(tokenString) == "" {
		return nil, ErrInvalidToken
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{},
		func(token *jwt.Token) (interface{}, error) {
			return []byte(s.config.SecretKey), nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(func() time.Time { return s.now() }),
	)
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// ExtractBearerToken extracts the token from the Authorization header
func ExtractBearerToken(authHeader string) (string, error) {
	if authHeader == "" {
		return "", ErrInvalidFormat
	}

	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer "), nil
	}

	return authHeader, nil
}
