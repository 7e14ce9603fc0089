package services

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"fleet_vendor/internal/config"
	"fleet_vendor/internal/models"
)

// plainHasher keeps service tests fast; hashing itself is covered by the
// auth package.
type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }
func (plainHasher) Compare(hash, password string) bool   { return hash == "hashed:"+password }

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	// A named shared-cache memory DB keeps all pooled connections on the
	// same database for the duration of one test.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.Vendor{},
		&models.DelegatedPermission{},
		&models.Vehicle{},
		&models.VehicleDocument{},
		&models.Driver{},
		&models.DriverDocument{},
	))
	return db
}

func newTestHierarchy(db *gorm.DB) *Hierarchy {
	return NewHierarchy(db, plainHasher{}, config.DefaultRolePermissions())
}

// seedTree builds SUPER "Acme" with REGIONAL "West" under it and LOCAL
// "Downtown" directly under Acme. This mirrors the shape delegation tests
// care about: Downtown is Acme's descendant but not West's.
func seedTree(t *testing.T, h *Hierarchy) (acme, west, downtown *models.Vendor) {
	t.Helper()
	var err error
	acme, err = h.CreateRootVendor("Acme", "acme@fleet.test", "secret")
	require.NoError(t, err)
	west, err = h.CreateSubVendor(acme, SubVendorInput{
		Name: "West", Email: "west@fleet.test", Password: "secret", Role: models.RoleRegional,
	})
	require.NoError(t, err)
	downtown, err = h.CreateSubVendor(acme, SubVendorInput{
		Name: "Downtown", Email: "downtown@fleet.test", Password: "secret", Role: models.RoleLocal,
	})
	require.NoError(t, err)
	return acme, west, downtown
}
