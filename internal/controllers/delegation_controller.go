package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fleet_vendor/internal/middleware"
)

type delegationInput struct {
	SubVendorID uint     `json:"sub_vendor_id" binding:"required"`
	Permissions []string `json:"permissions" binding:"required"`
}

// Delegate grants permissions to a descendant vendor.
func Delegate(c *gin.Context) {
	grantorID := middleware.VendorID(c)

	var input delegationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	_, err := delegationService().Delegate(grantorID, input.SubVendorID, input.Permissions)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"permissions": input.Permissions,
		"message":     "delegated permissions successfully",
	})
}

// Revoke removes previously delegated permissions from a descendant.
func Revoke(c *gin.Context) {
	revokerID := middleware.VendorID(c)

	var input delegationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	_, err := delegationService().Revoke(revokerID, input.SubVendorID, input.Permissions)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":             true,
		"revoked_permissions": input.Permissions,
		"message":             "revoked permissions successfully",
	})
}
