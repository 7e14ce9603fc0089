package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"fleet_vendor/internal/auth"
	"fleet_vendor/internal/config"
	"fleet_vendor/internal/middleware"
	"fleet_vendor/internal/models"
)

// Login authenticates a vendor by email and password and issues a JWT.
func Login(c *gin.Context) {
	var body struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var vendor models.Vendor
	if err := config.DB.Where("email = ?", body.Email).First(&vendor).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database error: " + err.Error()})
		}
		return
	}

	if !(auth.BcryptHasher{}).Compare(vendor.Password, body.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	token, err := middleware.GenerateToken(vendor.ID, vendor.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"vendor": gin.H{
			"id":    vendor.ID,
			"name":  vendor.Name,
			"email": vendor.Email,
			"role":  vendor.Role,
		},
		"message": "Login successfully as " + vendor.Role,
	})
}

// Logout acknowledges a token drop. Tokens are stateless; the client
// discards its copy.
func Logout(c *gin.Context) {
	vendorID := middleware.VendorID(c)

	var vendor models.Vendor
	if err := config.DB.First(&vendor, vendorID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No vendor found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Logged out successfully"})
}
