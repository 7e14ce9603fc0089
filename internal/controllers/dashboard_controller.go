package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"fleet_vendor/internal/middleware"
)

// --------- SUPER VENDOR DASHBOARD & OVERRIDES -------- //

// GetDashboard returns fleet status over the authenticated vendor's
// sub-tree: vehicle counts, pending verifications, available drivers.
func GetDashboard(c *gin.Context) {
	vendorID := middleware.VendorID(c)

	data, err := dashboardService().Compute(vendorID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   "Fetched dashboard successfully",
		"dashboard": data,
	})
}

// OverrideVehicleOperation forces a vehicle to INACTIVE.
func OverrideVehicleOperation(c *gin.Context) {
	vehicleID, ok := paramID(c, "vehicleId")
	if !ok {
		return
	}

	_, err := complianceService().OverrideVehicleStatus(vehicleID, middleware.Vendor(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Vehicle operation overridden by Super Vendor",
	})
}

// ForceVerifyVehicleDocuments marks every pending document with a file
// reference as verified.
func ForceVerifyVehicleDocuments(c *gin.Context) {
	vehicleID, ok := paramID(c, "vehicleId")
	if !ok {
		return
	}

	verified, err := complianceService().VerifyVehicleDocuments(vehicleID, middleware.Vendor(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Documents verified successfully!",
		"data":    gin.H{"verified_documents": verified},
	})
}

// ForceVerifyDriverLicense verifies a driver's license.
func ForceVerifyDriverLicense(c *gin.Context) {
	driverID, ok := paramID(c, "driverId")
	if !ok {
		return
	}

	_, err := complianceService().VerifyDriverLicense(driverID, middleware.Vendor(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "License verified successfully!",
	})
}

func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name + " format."})
		return 0, false
	}
	return uint(id), true
}
