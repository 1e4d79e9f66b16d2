package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/voltclub/clubsphere/internal/app/models/dto"
	"github.com/voltclub/clubsphere/internal/pkg/auth"
)

// ContextKeyEnrollmentNumber is the gin context key holding the
// authenticated student's enrollment number.
const ContextKeyEnrollmentNumber = "enrollmentNumber"

// AuthMiddleware validates session tokens on protected routes
type AuthMiddleware struct {
	jwtService *auth.JWTService
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(jwtService *auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
	}
}

// JWTAuth middleware for session token validation
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(
				dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
			return
		}

		tokenString, err := auth.ExtractBearerToken(authHeader)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(
				dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Invalid token format")))
			return
		}

		claims, err := m.jwtService.VerifyToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(
				dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Unauthorized")))
			return
		}

		c.Set(ContextKeyEnrollmentNumber, claims.EnrollmentNumber())
		c.Next()
	}
}
