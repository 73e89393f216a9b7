package bookings

import (
	"stayease/internal/shared/config"
	"stayease/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupBookingRoutes registers authenticated booking routes
func SetupBookingRoutes(rg *gin.RouterGroup, cfg *config.Config, controller *Controller) {
	bookings := rg.Group("/bookings")
	bookings.Use(middleware.JWTAuthWithConfig(cfg))
	{
		bookings.POST("", controller.CreateBooking)
		bookings.GET("", controller.GetUserBookings)
		bookings.GET("/:id", controller.GetBooking)
	}
}

// SetupAdminBookingRoutes registers admin-only booking routes
func SetupAdminBookingRoutes(rg *gin.RouterGroup, cfg *config.Config, controller *Controller) {
	admin := rg.Group("/admin/bookings")
	admin.Use(middleware.JWTAuthWithConfig(cfg))
	admin.Use(middleware.RequireAdmin())
	{
		admin.GET("", controller.GetAllBookings)
	}
}
