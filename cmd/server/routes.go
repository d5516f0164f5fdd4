package main

import (
	"github.com/gin-gonic/gin"

	"bpr-presale.backend/internal/interfaces/http/handlers"
	"bpr-presale.backend/internal/interfaces/http/middleware"
)

type routeDeps struct {
	registrationHandler *handlers.RegistrationHandler
	adminHandler        *handlers.AdminHandler
	emailHandler        *handlers.EmailHandler
}

func registerAPIRoutes(r *gin.Engine, d routeDeps) {
	api := r.Group("/api")
	{
		// Public intake routes
		api.POST("/register", middleware.IdempotencyMiddleware(), d.registrationHandler.Register)
		api.GET("/check-email/:email", d.registrationHandler.CheckEmail)

		// Operator routes
		api.GET("/registrations", d.registrationHandler.List)
		api.POST("/admin/verify", d.adminHandler.Verify)
		api.POST("/send-email", d.emailHandler.SendEmail)
		api.POST("/send-batch-emails", d.emailHandler.SendBatchEmails)
	}
}
