package routes

import (
	"github.com/gin-gonic/gin"

	"fleet_vendor/internal/controllers"
	"fleet_vendor/internal/middleware"
)

// RideRoutes covers fleet onboarding: vehicles, drivers, assignment.
func RideRoutes(r *gin.Engine) {
	ride := r.Group("/api/v1/ride")
	ride.Use(middleware.RequireAuth())
	ride.Use(middleware.RequirePermission("ride:manage"))
	{
		ride.POST("/vehicles", controllers.CreateVehicle)
		ride.POST("/drivers", controllers.CreateDriver)
		ride.POST("/assign-driver", controllers.AssignDriver)
	}
}
