package routes

import (
	"github.com/gin-gonic/gin"

	"fleet_vendor/internal/controllers"
	"fleet_vendor/internal/middleware"
)

// SuperVendorRoutes exposes the dashboard and the elevated overrides.
func SuperVendorRoutes(r *gin.Engine) {
	super := r.Group("/api/v1/super-vendor")
	super.Use(middleware.RequireAuth())
	super.Use(middleware.RequirePermission("super:override"))
	{
		super.GET("/dashboard", controllers.GetDashboard)
		super.PATCH("/override/vehicle/:vehicleId", controllers.OverrideVehicleOperation)
		super.PATCH("/override/vehicle-documents/:vehicleId", controllers.ForceVerifyVehicleDocuments)
		super.PATCH("/override/driver-documents/:driverId", controllers.ForceVerifyDriverLicense)
	}
}
