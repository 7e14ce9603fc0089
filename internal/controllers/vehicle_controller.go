package controllers

import (
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	logrus "github.com/sirupsen/logrus"

	"fleet_vendor/internal/middleware"
	"fleet_vendor/internal/models"
	"fleet_vendor/internal/services"
)

// ---------VEHICLE ONBOARDING-------- //

// CreateVehicle onboards a vehicle with its compliance documents. RC and
// POLLUTION files are expected in the multipart form; PERMIT is optional.
// A failed upload degrades to an empty file URL, it never aborts onboarding.
func CreateVehicle(c *gin.Context) {
	vendorID := middleware.VendorID(c)

	seatingCapacity, err := strconv.Atoi(c.PostForm("seating_capacity"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid seating_capacity"})
		return
	}

	input := services.CreateVehicleInput{
		RegistrationNumber: c.PostForm("registration_number"),
		Model:              c.PostForm("model"),
		SeatingCapacity:    seatingCapacity,
		FuelType:           c.PostForm("fuel_type"),
	}

	rcExpiry, err := parseDate(c.PostForm("rc_expiry"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid rc_expiry date"})
		return
	}
	pollutionExpiry, err := parseDate(c.PostForm("pollution_expiry"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid pollution_expiry date"})
		return
	}

	input.Documents = append(input.Documents,
		services.VehicleDocumentInput{
			Type:           models.DocRC,
			DocumentNumber: c.PostForm("rc_number"),
			FileURL:        uploadFormFile(c, "rc"),
			ExpiryDate:     rcExpiry,
		},
		services.VehicleDocumentInput{
			Type:           models.DocPollution,
			DocumentNumber: c.PostForm("pollution_number"),
			FileURL:        uploadFormFile(c, "pollution"),
			ExpiryDate:     pollutionExpiry,
		},
	)

	if _, err := c.FormFile("permit"); err == nil {
		permitExpiry, err := parseDate(c.PostForm("permit_expiry"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid permit_expiry date"})
			return
		}
		input.Documents = append(input.Documents, services.VehicleDocumentInput{
			Type:           models.DocPermit,
			DocumentNumber: c.PostForm("permit_number"),
			FileURL:        uploadFormFile(c, "permit"),
			ExpiryDate:     permitExpiry,
		})
	}

	vehicle, err := complianceService().CreateVehicle(vendorID, input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"vehicle": vehicle,
		"message": "Vehicle created successfully",
	})
}

// parseDate parses an optional YYYY-MM-DD form value.
func parseDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// uploadFormFile pushes a multipart file to document storage and returns
// its URL, or "" when the file is absent or the upload fails.
func uploadFormFile(c *gin.Context, field string) string {
	if uploader == nil {
		return ""
	}
	header, err := c.FormFile(field)
	if err != nil {
		return ""
	}
	file, err := header.Open()
	if err != nil {
		logrus.WithError(err).WithField("field", field).Warn("could not open uploaded file")
		return ""
	}
	defer func(f multipart.File) { _ = f.Close() }(file)

	url, err := uploader.Upload(c.Request.Context(), header.Filename, file, header.Header.Get("Content-Type"))
	if err != nil {
		logrus.WithError(err).WithField("field", field).Warn("document upload failed, storing empty file URL")
		return ""
	}
	return url
}
