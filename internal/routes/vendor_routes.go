package routes

import (
	"github.com/gin-gonic/gin"

	"fleet_vendor/internal/controllers"
	"fleet_vendor/internal/middleware"
)

func VendorRoutes(r *gin.Engine) {
	vendor := r.Group("/api/v1/vendor")
	vendor.POST("/login", controllers.Login)

	authed := vendor.Group("")
	authed.Use(middleware.RequireAuth())
	{
		authed.POST("/create-vendor", middleware.RequirePermission("vendor:create"), controllers.CreateVendor)
		authed.GET("/sub-vendors", controllers.ListSubVendors)
		authed.POST("/logout", controllers.Logout)
	}
}
