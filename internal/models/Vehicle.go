// internal/models/vehicle.go
package models

import (
	"time"

	"gorm.io/gorm"
)

// Vehicle statuses.
const (
	VehicleActive           = "ACTIVE"
	VehicleInactive         = "INACTIVE"
	VehicleUnderMaintenance = "UNDER_MAINTENANCE"
)

// Vehicle document types. RC and POLLUTION are mandatory at onboarding.
const (
	DocRC        = "RC"
	DocPermit    = "PERMIT"
	DocPollution = "POLLUTION"
)

var FuelTypes = []string{"PETROL", "DIESEL", "ELECTRIC", "CNG"}

// ValidFuelType reports whether ft is a known fuel type.
func ValidFuelType(ft string) bool {
	for _, f := range FuelTypes {
		if f == ft {
			return true
		}
	}
	return false
}

// VehicleDocument is one compliance document attached to a vehicle.
// Verified flips one way, SUBMITTED -> VERIFIED; expiry is a read-time fact
// derived from ExpiryDate, not a stored state.
type VehicleDocument struct {
	gorm.Model
	VehicleID        uint       `json:"vehicle_id" gorm:"index"`
	Type             string     `json:"type"`
	DocumentNumber   string     `json:"document_number"`
	FileURL          string     `json:"file_url"`
	ExpiryDate       *time.Time `json:"expiry_date"`
	Verified         bool       `json:"verified" gorm:"default:false"`
	VerificationDate *time.Time `json:"verification_date"`
}

// Expired reports whether the document's expiry date has passed at now.
// Documents without an expiry date never expire.
func (d *VehicleDocument) Expired(now time.Time) bool {
	return d.ExpiryDate != nil && !d.ExpiryDate.After(now)
}

type Vehicle struct {
	gorm.Model
	RegistrationNumber string `json:"registration_number" gorm:"unique;not null"`
	VehicleModel       string `json:"model" gorm:"column:model"`
	SeatingCapacity    int    `json:"seating_capacity"`
	FuelType           string `json:"fuel_type"`
	VendorID           uint   `json:"vendor_id" gorm:"index:idx_vehicle_vendor_status"`
	Status             string `json:"status" gorm:"index:idx_vehicle_vendor_status;default:ACTIVE"`
	AssignedDriverID   *uint  `json:"assigned_driver_id"`

	Documents []VehicleDocument `json:"documents,omitempty" gorm:"foreignKey:VehicleID"`
}

// IsCompliant is true iff every document is verified and unexpired at now.
// Never cache this across requests; verification and expiry both move it.
func (v *Vehicle) IsCompliant(now time.Time) bool {
	for i := range v.Documents {
		d := &v.Documents[i]
		if !d.Verified || d.Expired(now) {
			return false
		}
	}
	return true
}

// HasPendingVerification reports whether any document still awaits
// verification. Feeds the dashboard's pendingVerifications count.
func (v *Vehicle) HasPendingVerification() bool {
	for i := range v.Documents {
		if !v.Documents[i].Verified {
			return true
		}
	}
	return false
}

// HasMandatoryDocuments checks the onboarding invariant: RC and POLLUTION
// must both be present. PERMIT is optional.
func (v *Vehicle) HasMandatoryDocuments() bool {
	var rc, pollution bool
	for i := range v.Documents {
		switch v.Documents[i].Type {
		case DocRC:
			rc = true
		case DocPollution:
			pollution = true
		}
	}
	return rc && pollution
}
