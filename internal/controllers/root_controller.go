package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CreateSuperVendor bootstraps the single SUPER vendor. Conflicts once one
// exists; the route itself is gated behind ALLOW_ROOTING.
func CreateSuperVendor(c *gin.Context) {
	var input struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	vendor, err := hierarchyService().CreateRootVendor(input.Name, input.Email, input.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"super_vendor": gin.H{
			"id":    vendor.ID,
			"name":  vendor.Name,
			"email": vendor.Email,
			"role":  vendor.Role,
		},
		"message": "successfully created super vendor",
	})
}
