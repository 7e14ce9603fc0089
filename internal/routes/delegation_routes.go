package routes

import (
	"github.com/gin-gonic/gin"

	"fleet_vendor/internal/controllers"
	"fleet_vendor/internal/middleware"
)

func DelegationRoutes(r *gin.Engine) {
	delegation := r.Group("/api/v1/delegation")
	delegation.Use(middleware.RequireAuth())
	delegation.Use(middleware.RequirePermission("delegation:manage"))
	{
		delegation.POST("/delegate", controllers.Delegate)
		delegation.POST("/revoke", controllers.Revoke)
	}
}
