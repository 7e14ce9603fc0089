// internal/models/driver_test.go
package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDriverIsLicenseValid(t *testing.T) {
	now := time.Now()

	valid := Driver{License: License{Verified: true, ExpiryDate: now.AddDate(1, 0, 0)}}
	assert.True(t, valid.IsLicenseValid(now))

	unverified := Driver{License: License{Verified: false, ExpiryDate: now.AddDate(1, 0, 0)}}
	assert.False(t, unverified.IsLicenseValid(now))

	expired := Driver{License: License{Verified: true, ExpiryDate: now.AddDate(0, 0, -1)}}
	assert.False(t, expired.IsLicenseValid(now))
}

func TestDriverRecomputeStatus(t *testing.T) {
	now := time.Now()

	// Invalid license forces INACTIVE regardless of the prior status.
	for _, prior := range []string{DriverAvailable, DriverOnTrip} {
		d := Driver{
			Status:  prior,
			License: License{Verified: true, ExpiryDate: now.AddDate(0, 0, -1)},
		}
		assert.True(t, d.RecomputeStatus(now))
		assert.Equal(t, DriverInactive, d.Status)
	}

	// A valid license never promotes on its own.
	d := Driver{
		Status:  DriverInactive,
		License: License{Verified: true, ExpiryDate: now.AddDate(1, 0, 0)},
	}
	assert.False(t, d.RecomputeStatus(now))
	assert.Equal(t, DriverInactive, d.Status)

	// Already INACTIVE with an invalid license: nothing changes.
	d = Driver{
		Status:  DriverInactive,
		License: License{Verified: false, ExpiryDate: now.AddDate(1, 0, 0)},
	}
	assert.False(t, d.RecomputeStatus(now))
}
