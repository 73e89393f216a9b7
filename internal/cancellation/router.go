package cancellation

import (
	"stayease/internal/shared/config"
	"stayease/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupCancellationRoutes registers policy and cancellation routes
func SetupCancellationRoutes(rg *gin.RouterGroup, cfg *config.Config, controller *Controller) {
	// Hotel cancellation policy routes (admin only)
	adminHotels := rg.Group("/admin/hotels")
	adminHotels.Use(middleware.JWTAuthWithConfig(cfg), middleware.RequireAdmin())
	{
		adminHotels.POST("/:id/cancellation-policy", controller.CreatePolicy)
		adminHotels.PUT("/:id/cancellation-policy", controller.UpdatePolicy)
	}

	// Public policy lookup
	rg.GET("/hotels/:id/cancellation-policy", controller.GetPolicy)

	// Booking cancellation routes
	bookings := rg.Group("/bookings")
	bookings.Use(middleware.JWTAuthWithConfig(cfg), middleware.RequireRoles("USER", "ADMIN"))
	{
		bookings.POST("/:id/cancellation/preview", controller.PreviewRefund)
		bookings.POST("/:id/request-cancel", controller.RequestCancellation)
	}

	// Cancellation management routes
	cancellations := rg.Group("/cancellations")
	cancellations.Use(middleware.JWTAuthWithConfig(cfg), middleware.RequireRoles("USER", "ADMIN"))
	{
		cancellations.GET("/:id", controller.GetCancellation)
	}

	// User-specific cancellation routes
	users := rg.Group("/users")
	users.Use(middleware.JWTAuthWithConfig(cfg), middleware.RequireRoles("USER", "ADMIN"))
	{
		users.GET("/cancellations", controller.GetUserCancellations)
	}
}
