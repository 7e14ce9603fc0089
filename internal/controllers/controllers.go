package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	logrus "github.com/sirupsen/logrus"

	"fleet_vendor/internal/apperr"
	"fleet_vendor/internal/auth"
	"fleet_vendor/internal/config"
	"fleet_vendor/internal/services"
	"fleet_vendor/internal/storage"
)

// uploader is wired at boot; nil means file uploads degrade to empty URLs.
var uploader storage.Uploader

// SetUploader installs the document file storage collaborator.
func SetUploader(u storage.Uploader) {
	uploader = u
}

func hierarchyService() *services.Hierarchy {
	return services.NewHierarchy(config.DB, auth.BcryptHasher{}, config.DefaultRolePermissions())
}

func delegationService() *services.Delegation {
	return services.NewDelegation(config.DB, hierarchyService())
}

func complianceService() *services.Compliance {
	return services.NewCompliance(config.DB)
}

func dashboardService() *services.Dashboard {
	return services.NewDashboard(config.DB, hierarchyService())
}

// respondError maps a service error onto the HTTP surface without
// downgrading its kind. Unknown errors become an opaque 500.
func respondError(c *gin.Context, err error) {
	status := apperr.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		logrus.WithError(err).Error("unhandled error")
		c.JSON(status, gin.H{"error": "internal server error"})
		return
	}
	if status >= http.StatusInternalServerError {
		logrus.WithError(err).Error("collaborator failure")
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
