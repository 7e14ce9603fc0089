package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleet_vendor/internal/apperr"
)

func TestDashboardCompute(t *testing.T) {
	db := newTestDB(t)
	h := newTestHierarchy(db)
	compliance := NewCompliance(db)
	dashboard := NewDashboard(db, h)
	acme, west, downtown := seedTree(t, h)

	// One vehicle per branch, plus one forced INACTIVE.
	v1, err := compliance.CreateVehicle(west.ID, validVehicleInput("KA-01-AA-0001", "https://files/a.pdf"))
	require.NoError(t, err)
	_, err = compliance.CreateVehicle(downtown.ID, validVehicleInput("KA-01-AA-0002", ""))
	require.NoError(t, err)
	inactive, err := compliance.CreateVehicle(acme.ID, validVehicleInput("KA-01-AA-0003", ""))
	require.NoError(t, err)
	_, err = compliance.OverrideVehicleStatus(inactive.ID, acme)
	require.NoError(t, err)

	// One driver restored to AVAILABLE, one left INACTIVE.
	available, err := compliance.CreateDriver(west.ID, validDriverInput("DL-DASH-1"))
	require.NoError(t, err)
	_, err = compliance.VerifyDriverLicense(available.ID, acme)
	require.NoError(t, err)
	parked := validDriverInput("DL-DASH-2")
	parked.Email = "parked@fleet.test"
	_, err = compliance.CreateDriver(downtown.ID, parked)
	require.NoError(t, err)

	data, err := dashboard.Compute(acme.ID)
	require.NoError(t, err)

	assert.Len(t, data.Descendants, 2)
	assert.Equal(t, 2, data.Fleet.ActiveVehicles)
	assert.Equal(t, 1, data.Fleet.InactiveVehicles)
	// All three vehicles still carry unverified documents.
	assert.Equal(t, 3, data.Fleet.PendingVerifications)
	assert.Equal(t, 1, data.AvailableDrivers)

	// Verifying v1's documents moves the pending count on the next read.
	_, err = compliance.VerifyVehicleDocuments(v1.ID, acme)
	require.NoError(t, err)
	data, err = dashboard.Compute(acme.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, data.Fleet.PendingVerifications)
}

func TestDashboardScopedToSubTree(t *testing.T) {
	db := newTestDB(t)
	h := newTestHierarchy(db)
	compliance := NewCompliance(db)
	dashboard := NewDashboard(db, h)
	_, west, downtown := seedTree(t, h)

	_, err := compliance.CreateVehicle(downtown.ID, validVehicleInput("KA-02-BB-0001", ""))
	require.NoError(t, err)

	// West's fleet does not include its sibling's vehicles.
	data, err := dashboard.Compute(west.ID)
	require.NoError(t, err)
	assert.Zero(t, data.Fleet.ActiveVehicles)
	assert.Empty(t, data.Descendants)
}

func TestDashboardUnknownVendor(t *testing.T) {
	db := newTestDB(t)
	h := newTestHierarchy(db)
	dashboard := NewDashboard(db, h)

	_, err := dashboard.Compute(99999)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestDashboardCountsAreLive(t *testing.T) {
	db := newTestDB(t)
	h := newTestHierarchy(db)
	compliance := NewCompliance(db)
	dashboard := NewDashboard(db, h)
	acme, _, _ := seedTree(t, h)

	driver, err := compliance.CreateDriver(acme.ID, validDriverInput("DL-LIVE-1"))
	require.NoError(t, err)

	before, err := dashboard.Compute(acme.ID)
	require.NoError(t, err)
	assert.Zero(t, before.AvailableDrivers)

	_, err = compliance.VerifyDriverLicense(driver.ID, acme)
	require.NoError(t, err)

	after, err := dashboard.Compute(acme.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, after.AvailableDrivers)

	// And back down once the license lapses and the invariant runs.
	reloaded, err := compliance.getDriver(driver.ID)
	require.NoError(t, err)
	reloaded.License.ExpiryDate = time.Now().AddDate(0, 0, -1)
	require.NoError(t, compliance.SaveDriver(reloaded))

	final, err := dashboard.Compute(acme.ID)
	require.NoError(t, err)
	assert.Zero(t, final.AvailableDrivers)
}
