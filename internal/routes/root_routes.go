package routes

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"fleet_vendor/internal/controllers"
)

// RootRoutes exposes the one-time SUPER vendor bootstrap, gated by the
// ALLOW_ROOTING env flag.
func RootRoutes(r *gin.Engine) {
	root := r.Group("/api/v1/root")
	root.Use(func(c *gin.Context) {
		if os.Getenv("ALLOW_ROOTING") != "true" {
			c.AbortWithStatus(http.StatusForbidden)
			return
		}
		c.Next()
	})
	{
		root.POST("/super-vendor", controllers.CreateSuperVendor)
	}
}
