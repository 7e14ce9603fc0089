package routes

import (
	ginlog "github.com/gin-contrib/logger"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.New()

	// Recovery and request logging middleware
	r.Use(gin.Recovery())
	r.Use(ginlog.SetLogger())

	RootRoutes(r)
	VendorRoutes(r)
	DelegationRoutes(r)
	RideRoutes(r)
	SuperVendorRoutes(r)

	return r
}
