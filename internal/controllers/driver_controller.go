package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"fleet_vendor/internal/middleware"
	"fleet_vendor/internal/models"
	"fleet_vendor/internal/services"
)

// --------- DRIVER ONBOARDING -------- //

// driverDocField maps a multipart field to its document type.
var driverDocFields = []struct {
	field   string
	docType string
}{
	{"aadhaar", models.DocAadhaar},
	{"pan", models.DocPAN},
	{"medical", models.DocMedicalCert},
}

// CreateDriver onboards a driver with license and identity documents.
// Document files arrive as multipart uploads; a failed upload degrades to
// an empty file URL.
func CreateDriver(c *gin.Context) {
	vendorID := middleware.VendorID(c)

	licenseExpiry, err := time.Parse("2006-01-02", c.PostForm("license_expiry"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid license_expiry date"})
		return
	}

	input := services.CreateDriverInput{
		FullName:      c.PostForm("full_name"),
		ContactNumber: c.PostForm("contact_number"),
		Email:         c.PostForm("email"),
		LicenseNumber: c.PostForm("license_number"),
		LicenseExpiry: licenseExpiry,
	}

	for _, df := range driverDocFields {
		number := c.PostForm(df.field + "_number")
		expiryValue := c.PostForm(df.field + "_expiry")
		if number == "" && expiryValue == "" {
			continue
		}
		expiry, err := time.Parse("2006-01-02", expiryValue)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + df.field + "_expiry date"})
			return
		}
		input.Documents = append(input.Documents, services.DriverDocumentInput{
			Type:           df.docType,
			DocumentNumber: number,
			FileURL:        uploadFormFile(c, df.field),
			ExpiryDate:     expiry,
		})
	}

	driver, err := complianceService().CreateDriver(vendorID, input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"driver":  driver,
		"message": "Driver created successfully",
	})
}

// AssignDriver links a driver to a vehicle.
func AssignDriver(c *gin.Context) {
	var input struct {
		VehicleID uint `json:"vehicle_id" binding:"required"`
		DriverID  uint `json:"driver_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	vehicle, err := complianceService().AssignDriver(input.VehicleID, input.DriverID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"vehicle": vehicle,
		"message": "Driver assigned successfully",
	})
}
