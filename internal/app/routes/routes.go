package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/voltclub/clubsphere/internal/app/controllers"
	"github.com/voltclub/clubsphere/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	studentController *controllers.StudentController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// --- Public auth routes ---
	// The verification callback lives under the same /auth prefix that
	// is baked into the emailed link URL.
	auth := router.Group("/auth")
	{
		auth.POST("/enrollment", authController.ProbeEnrollment)
		auth.POST("/sendEmailVerification", authController.SendVerificationLink)
		auth.GET("/studentEmailVerify/", authController.VerifyEmail)
		auth.POST("/signup", authController.Signup)
		auth.POST("/login", authController.Login)
	}

	// --- Authenticated routes ---
	v1 := router.Group("/api/v1")
	v1.Use(authMiddleware.JWTAuth())
	{
		v1.GET("/students/me", studentController.Me)
	}
}
