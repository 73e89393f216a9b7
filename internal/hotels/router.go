package hotels

import (
	"stayease/internal/shared/config"
	"stayease/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupHotelRoutes registers public hotel catalog routes
func SetupHotelRoutes(rg *gin.RouterGroup, controller *Controller) {
	hotels := rg.Group("/hotels")
	{
		hotels.GET("", controller.SearchHotels)
		hotels.GET("/:id", controller.GetHotel)
		hotels.GET("/:id/rooms", controller.GetRooms)
	}
}

// SetupAdminHotelRoutes registers admin-only hotel management routes
func SetupAdminHotelRoutes(rg *gin.RouterGroup, cfg *config.Config, controller *Controller) {
	admin := rg.Group("/admin/hotels")
	admin.Use(middleware.JWTAuthWithConfig(cfg))
	admin.Use(middleware.RequireAdmin())
	{
		admin.POST("", controller.CreateHotel)
		admin.PUT("/:id", controller.UpdateHotel)
		admin.DELETE("/:id", controller.DeleteHotel)
		admin.POST("/:id/rooms", controller.AddRoom)
	}
}
