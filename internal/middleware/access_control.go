package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"fleet_vendor/internal/config"
	"fleet_vendor/internal/models"
)

// RequirePermission loads the authenticated vendor fresh from the database
// and aborts unless it holds the required capability. The vendor is
// re-loaded on every request on purpose: delegation state can change between
// requests, so the check is never served from a cached vendor.
func RequirePermission(required string) gin.HandlerFunc {
	return func(c *gin.Context) {
		vendorID := VendorID(c)

		var vendor models.Vendor
		err := config.DB.Preload("DelegatedPermissions").First(&vendor, vendorID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Vendor not found"})
			} else {
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Permission check failed"})
			}
			return
		}

		if !vendor.HasPermission(required) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "Insufficient permissions | " + required + " permission is required",
			})
			return
		}

		c.Set("vendor", &vendor)
		c.Next()
	}
}

// Vendor returns the vendor loaded by RequirePermission.
func Vendor(c *gin.Context) *models.Vendor {
	return c.MustGet("vendor").(*models.Vendor)
}
