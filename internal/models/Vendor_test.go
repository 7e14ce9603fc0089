// internal/models/vendor_test.go
package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVendorHasPermission(t *testing.T) {
	tests := []struct {
		name     string
		vendor   Vendor
		required string
		want     bool
	}{
		{
			name:     "wildcard grants anything",
			vendor:   Vendor{Permissions: []string{PermissionAll}},
			required: "vehicle:create",
			want:     true,
		},
		{
			name:     "wildcard grants elevated override too",
			vendor:   Vendor{Permissions: []string{PermissionAll}},
			required: PermSuperOverride,
			want:     true,
		},
		{
			name:     "literal match",
			vendor:   Vendor{Permissions: []string{"driver:create", "vehicle:create"}},
			required: "vehicle:create",
			want:     true,
		},
		{
			name:     "no match",
			vendor:   Vendor{Permissions: []string{"vehicle:read"}},
			required: "vehicle:create",
			want:     false,
		},
		{
			name: "delegated literal match",
			vendor: Vendor{
				Permissions:          []string{"booking:manage"},
				DelegatedPermissions: []DelegatedPermission{{Permission: "vehicle:create", DelegatedByID: 1}},
			},
			required: "vehicle:create",
			want:     true,
		},
		{
			name: "delegated wildcard is not expanded",
			vendor: Vendor{
				DelegatedPermissions: []DelegatedPermission{{Permission: PermissionAll, DelegatedByID: 1}},
			},
			required: "vehicle:create",
			want:     false,
		},
		{
			name:     "empty vendor has nothing",
			vendor:   Vendor{},
			required: "vehicle:create",
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.vendor.HasPermission(tt.required))
		})
	}
}

func TestValidRole(t *testing.T) {
	for _, role := range Roles {
		assert.True(t, ValidRole(role))
	}
	assert.False(t, ValidRole("GALACTIC"))
	assert.False(t, ValidRole(""))
	assert.False(t, ValidRole("super"))
}
