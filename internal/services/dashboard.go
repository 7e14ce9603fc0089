package services

import (
	"gorm.io/gorm"

	"fleet_vendor/internal/apperr"
	"fleet_vendor/internal/models"
)

// Dashboard computes fleet readouts over a vendor's sub-tree. Everything
// here is a derived read; nothing is cached, since verification and expiry
// can change the counts between queries.
type Dashboard struct {
	db        *gorm.DB
	hierarchy *Hierarchy
}

func NewDashboard(db *gorm.DB, hierarchy *Hierarchy) *Dashboard {
	return &Dashboard{db: db, hierarchy: hierarchy}
}

type FleetStatus struct {
	ActiveVehicles       int `json:"active_vehicles_count"`
	InactiveVehicles     int `json:"inactive_vehicles_count"`
	PendingVerifications int `json:"pending_verifications"`
}

type DashboardData struct {
	Vendor           *models.Vendor  `json:"vendor"`
	Descendants      []models.Vendor `json:"all_vendors"`
	Fleet            FleetStatus     `json:"fleet_status"`
	AvailableDrivers int             `json:"available_drivers_count"`
}

// Compute builds the dashboard for the vendor's fleet: the vendor itself
// plus the transitive closure of its descendants.
func (s *Dashboard) Compute(vendorID uint) (*DashboardData, error) {
	vendor, err := s.hierarchy.GetVendor(vendorID)
	if err != nil {
		return nil, err
	}
	descendants, err := s.hierarchy.ListDescendants(vendorID)
	if err != nil {
		return nil, err
	}

	vendorIDs := make([]uint, 0, len(descendants)+1)
	vendorIDs = append(vendorIDs, vendor.ID)
	for i := range descendants {
		vendorIDs = append(vendorIDs, descendants[i].ID)
	}

	var vehicles []models.Vehicle
	if err := s.db.Preload("Documents").Where("vendor_id IN ?", vendorIDs).Find(&vehicles).Error; err != nil {
		return nil, apperr.Dependency("could not load vehicles", err)
	}
	var drivers []models.Driver
	if err := s.db.Where("vendor_id IN ?", vendorIDs).Find(&drivers).Error; err != nil {
		return nil, apperr.Dependency("could not load drivers", err)
	}

	data := &DashboardData{Vendor: vendor, Descendants: descendants}
	for i := range vehicles {
		v := &vehicles[i]
		switch v.Status {
		case models.VehicleActive:
			data.Fleet.ActiveVehicles++
		case models.VehicleInactive:
			data.Fleet.InactiveVehicles++
		}
		if v.HasPendingVerification() {
			data.Fleet.PendingVerifications++
		}
	}
	for i := range drivers {
		if drivers[i].Status == models.DriverAvailable {
			data.AvailableDrivers++
		}
	}
	return data, nil
}
