package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"fleet_vendor/internal/apperr"
	"fleet_vendor/internal/models"
)

// Compliance owns the document lifecycle for vehicles and drivers:
// onboarding with mandatory documents, one-way verification, the elevated
// status override, and the driver license invariant.
type Compliance struct {
	db  *gorm.DB
	now func() time.Time
}

func NewCompliance(db *gorm.DB) *Compliance {
	return &Compliance{db: db, now: time.Now}
}

type VehicleDocumentInput struct {
	Type           string
	DocumentNumber string
	FileURL        string
	ExpiryDate     *time.Time
}

type CreateVehicleInput struct {
	RegistrationNumber string
	Model              string
	SeatingCapacity    int
	FuelType           string
	Documents          []VehicleDocumentInput
}

// CreateVehicle onboards a vehicle for the owning vendor. RC and POLLUTION
// documents must both be supplied; everything is validated before anything
// persists, and the vehicle plus its documents land in one create.
func (s *Compliance) CreateVehicle(vendorID uint, in CreateVehicleInput) (*models.Vehicle, error) {
	if in.RegistrationNumber == "" || in.Model == "" {
		return nil, apperr.Validation("registration number and model are required")
	}
	if in.SeatingCapacity < 1 {
		return nil, apperr.Validation("seating capacity must be at least 1")
	}
	if !models.ValidFuelType(in.FuelType) {
		return nil, apperr.Validation("invalid fuel type %q", in.FuelType)
	}

	vehicle := &models.Vehicle{
		RegistrationNumber: in.RegistrationNumber,
		VehicleModel:       in.Model,
		SeatingCapacity:    in.SeatingCapacity,
		FuelType:           in.FuelType,
		VendorID:           vendorID,
		Status:             models.VehicleActive,
	}
	for _, d := range in.Documents {
		switch d.Type {
		case models.DocRC, models.DocPermit, models.DocPollution:
		default:
			return nil, apperr.Validation("invalid vehicle document type %q", d.Type)
		}
		vehicle.Documents = append(vehicle.Documents, models.VehicleDocument{
			Type:           d.Type,
			DocumentNumber: d.DocumentNumber,
			FileURL:        d.FileURL,
			ExpiryDate:     d.ExpiryDate,
		})
	}
	if !vehicle.HasMandatoryDocuments() {
		return nil, apperr.Validation("missing required documents: RC and/or POLLUTION")
	}

	if err := s.db.Create(vehicle).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, apperr.Conflict("registration number already in use")
		}
		return nil, apperr.Dependency("could not create vehicle", err)
	}
	return vehicle, nil
}

type DriverDocumentInput struct {
	Type           string
	DocumentNumber string
	FileURL        string
	ExpiryDate     time.Time
}

type CreateDriverInput struct {
	FullName      string
	ContactNumber string
	Email         string
	LicenseNumber string
	LicenseExpiry time.Time
	Documents     []DriverDocumentInput
}

// CreateDriver onboards a driver. Document expiry dates must be in the
// future at submission time. The license starts unverified, so the license
// invariant puts a fresh driver at INACTIVE until it is verified.
func (s *Compliance) CreateDriver(vendorID uint, in CreateDriverInput) (*models.Driver, error) {
	if in.FullName == "" || in.ContactNumber == "" || in.Email == "" {
		return nil, apperr.Validation("full name, contact number and email are required")
	}
	if in.LicenseNumber == "" || in.LicenseExpiry.IsZero() {
		return nil, apperr.Validation("license number and expiry are required")
	}

	now := s.now()
	driver := &models.Driver{
		FullName:      in.FullName,
		ContactNumber: in.ContactNumber,
		Email:         in.Email,
		VendorID:      vendorID,
		License: models.License{
			LicenseNumber: in.LicenseNumber,
			ExpiryDate:    in.LicenseExpiry,
		},
		Status: models.DriverAvailable,
	}
	for _, d := range in.Documents {
		if !models.ValidDriverDocumentType(d.Type) {
			return nil, apperr.Validation("invalid driver document type %q", d.Type)
		}
		if d.DocumentNumber == "" {
			return nil, apperr.Validation("document number is required for %s", d.Type)
		}
		if !d.ExpiryDate.After(now) {
			return nil, apperr.Validation("%s expiry date must be in the future", d.Type)
		}
		driver.Documents = append(driver.Documents, models.DriverDocument{
			Type:           d.Type,
			DocumentNumber: d.DocumentNumber,
			FileURL:        d.FileURL,
			ExpiryDate:     d.ExpiryDate,
		})
	}
	driver.RecomputeStatus(now)

	if err := s.db.Create(driver).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, apperr.Conflict("license number already in use")
		}
		return nil, apperr.Dependency("could not create driver", err)
	}
	return driver, nil
}

// VerifyVehicleDocuments marks every unverified document that has a file
// reference as verified, stamping the verification time. Requires the
// elevated override capability.
func (s *Compliance) VerifyVehicleDocuments(vehicleID uint, actor *models.Vendor) ([]string, error) {
	if !actor.HasPermission(models.PermSuperOverride) {
		return nil, apperr.Forbidden("access denied")
	}

	vehicle, err := s.getVehicle(vehicleID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	var verified []string
	err = s.db.Transaction(func(tx *gorm.DB) error {
		for i := range vehicle.Documents {
			doc := &vehicle.Documents[i]
			if doc.Verified || doc.FileURL == "" {
				continue
			}
			doc.Verified = true
			ts := now
			doc.VerificationDate = &ts
			if err := tx.Save(doc).Error; err != nil {
				return err
			}
			verified = append(verified, doc.Type)
		}
		return nil
	})
	if err != nil {
		return nil, apperr.Dependency("could not verify vehicle documents", err)
	}
	if len(verified) == 0 {
		return nil, apperr.Conflict("no unverified documents with an uploaded file")
	}
	return verified, nil
}

// VerifyDriverLicense verifies the driver's license and, when that restores
// validity, brings the driver back to AVAILABLE. A driver currently ON_TRIP
// stays on the trip; verification never reassigns availability mid-trip.
func (s *Compliance) VerifyDriverLicense(driverID uint, actor *models.Vendor) (*models.Driver, error) {
	if !actor.HasPermission(models.PermSuperOverride) {
		return nil, apperr.Forbidden("access denied")
	}

	driver, err := s.getDriver(driverID)
	if err != nil {
		return nil, err
	}
	if driver.License.Verified {
		return nil, apperr.Conflict("license already verified")
	}

	now := s.now()
	ts := now
	driver.License.Verified = true
	driver.License.VerificationDate = &ts
	if driver.Status != models.DriverOnTrip {
		driver.Status = models.DriverAvailable
	}
	// An expired license stays invalid no matter who verified it.
	driver.RecomputeStatus(now)

	if err := s.db.Save(driver).Error; err != nil {
		return nil, apperr.Dependency("could not save driver", err)
	}
	return driver, nil
}

// OverrideVehicleStatus forces a vehicle to INACTIVE regardless of its
// current state. The manual fleet-safety override is always allowed for an
// actor holding the elevated capability.
func (s *Compliance) OverrideVehicleStatus(vehicleID uint, actor *models.Vendor) (*models.Vehicle, error) {
	if !actor.HasPermission(models.PermSuperOverride) {
		return nil, apperr.Forbidden("access denied")
	}

	vehicle, err := s.getVehicle(vehicleID)
	if err != nil {
		return nil, err
	}

	vehicle.Status = models.VehicleInactive
	if err := s.db.Save(vehicle).Error; err != nil {
		return nil, apperr.Dependency("could not save vehicle", err)
	}
	return vehicle, nil
}

// SaveDriver is the mutation boundary for driver updates: the license
// invariant is recomputed before the row is written, so an invalid license
// can never be persisted alongside an active status.
func (s *Compliance) SaveDriver(driver *models.Driver) error {
	driver.RecomputeStatus(s.now())
	if err := s.db.Save(driver).Error; err != nil {
		return apperr.Dependency("could not save driver", err)
	}
	return nil
}

// AssignDriver links a driver and a vehicle both ways in one transaction.
func (s *Compliance) AssignDriver(vehicleID, driverID uint) (*models.Vehicle, error) {
	vehicle, err := s.getVehicle(vehicleID)
	if err != nil {
		return nil, err
	}
	driver, err := s.getDriver(driverID)
	if err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		vehicle.AssignedDriverID = &driver.ID
		driver.AssignedVehicleID = &vehicle.ID
		if err := tx.Save(vehicle).Error; err != nil {
			return err
		}
		return tx.Save(driver).Error
	})
	if err != nil {
		return nil, apperr.Dependency("could not assign driver", err)
	}
	return vehicle, nil
}

func (s *Compliance) getVehicle(vehicleID uint) (*models.Vehicle, error) {
	var vehicle models.Vehicle
	err := s.db.Preload("Documents").First(&vehicle, vehicleID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("vehicle %d not found", vehicleID)
	}
	if err != nil {
		return nil, apperr.Dependency("could not load vehicle", err)
	}
	return &vehicle, nil
}

func (s *Compliance) getDriver(driverID uint) (*models.Driver, error) {
	var driver models.Driver
	err := s.db.Preload("Documents").First(&driver, driverID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("driver %d not found", driverID)
	}
	if err != nil {
		return nil, apperr.Dependency("could not load driver", err)
	}
	return &driver, nil
}
