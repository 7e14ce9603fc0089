package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fleet_vendor/internal/middleware"
	"fleet_vendor/internal/services"
)

// CreateVendor registers a sub-vendor under the authenticated vendor.
func CreateVendor(c *gin.Context) {
	parent := middleware.Vendor(c)

	var input struct {
		Name        string   `json:"name" binding:"required"`
		Email       string   `json:"email" binding:"required,email"`
		Password    string   `json:"password" binding:"required"`
		Role        string   `json:"role" binding:"required"`
		Permissions []string `json:"permissions"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	vendor, err := hierarchyService().CreateSubVendor(parent, services.SubVendorInput{
		Name:        input.Name,
		Email:       input.Email,
		Password:    input.Password,
		Role:        input.Role,
		Permissions: input.Permissions,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status": "success",
		"vendor": gin.H{
			"id":    vendor.ID,
			"name":  vendor.Name,
			"email": vendor.Email,
			"role":  vendor.Role,
		},
		"message": "Successfully created vendor",
	})
}

// ListSubVendors returns the full descendant closure of the authenticated
// vendor's sub-tree.
func ListSubVendors(c *gin.Context) {
	vendorID := middleware.VendorID(c)

	descendants, err := hierarchyService().ListDescendants(vendorID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": descendants})
}
