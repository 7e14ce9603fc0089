// internal/models/driver.go
package models

import (
	"time"

	"gorm.io/gorm"
)

// Driver statuses.
const (
	DriverAvailable = "AVAILABLE"
	DriverOnTrip    = "ON_TRIP"
	DriverInactive  = "INACTIVE"
)

// Driver document types.
const (
	DocAadhaar     = "AADHAAR"
	DocPAN         = "PAN"
	DocMedicalCert = "MEDICAL_CERTIFICATE"
)

var DriverDocumentTypes = []string{DocAadhaar, DocPAN, DocMedicalCert}

// ValidDriverDocumentType reports whether t is a known driver document type.
func ValidDriverDocumentType(t string) bool {
	for _, d := range DriverDocumentTypes {
		if d == t {
			return true
		}
	}
	return false
}

// License is the driver's license sub-record. Validity requires both a
// future expiry date and a completed verification.
type License struct {
	LicenseNumber    string     `json:"license_number" gorm:"uniqueIndex"`
	ExpiryDate       time.Time  `json:"expiry_date"`
	Verified         bool       `json:"verified" gorm:"default:false"`
	VerificationDate *time.Time `json:"verification_date"`
}

// DriverDocument is an identity/medical document attached to a driver.
// ExpiryDate must be in the future at submission time.
type DriverDocument struct {
	gorm.Model
	DriverID       uint      `json:"driver_id" gorm:"index"`
	Type           string    `json:"type"`
	DocumentNumber string    `json:"document_number"`
	FileURL        string    `json:"file_url"`
	ExpiryDate     time.Time `json:"expiry_date"`
}

type Driver struct {
	gorm.Model
	FullName          string  `json:"full_name"`
	ContactNumber     string  `json:"contact_number" gorm:"index"`
	Email             string  `json:"email"`
	VendorID          uint    `json:"vendor_id" gorm:"index"`
	License           License `json:"license" gorm:"embedded;embeddedPrefix:license_"`
	AssignedVehicleID *uint   `json:"assigned_vehicle_id"`
	Status            string  `json:"status" gorm:"default:AVAILABLE"`

	Documents []DriverDocument `json:"documents,omitempty" gorm:"foreignKey:DriverID"`
}

// IsLicenseValid reports whether the license is verified and unexpired at now.
func (d *Driver) IsLicenseValid(now time.Time) bool {
	return d.License.Verified && d.License.ExpiryDate.After(now)
}

// RecomputeStatus enforces the license invariant: an invalid license forces
// INACTIVE, overriding any other status. Called at every mutation boundary
// rather than hidden in a persistence hook; returns true when the status
// changed.
func (d *Driver) RecomputeStatus(now time.Time) bool {
	if !d.IsLicenseValid(now) && d.Status != DriverInactive {
		d.Status = DriverInactive
		return true
	}
	return false
}
