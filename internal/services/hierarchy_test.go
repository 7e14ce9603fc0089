package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleet_vendor/internal/apperr"
	"fleet_vendor/internal/config"
	"fleet_vendor/internal/models"
)

func TestCreateRootVendor(t *testing.T) {
	h := newTestHierarchy(newTestDB(t))

	root, err := h.CreateRootVendor("Acme", "acme@fleet.test", "secret")
	require.NoError(t, err)
	assert.Equal(t, models.RoleSuper, root.Role)
	assert.Nil(t, root.ParentID)
	assert.Equal(t, []string{models.PermissionAll}, root.Permissions)
	assert.Equal(t, "hashed:secret", root.Password)

	// Only one SUPER vendor may ever be bootstrapped.
	_, err = h.CreateRootVendor("Other", "other@fleet.test", "secret")
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
}

func TestCreateRootVendorValidation(t *testing.T) {
	h := newTestHierarchy(newTestDB(t))

	_, err := h.CreateRootVendor("", "acme@fleet.test", "secret")
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestCreateSubVendor(t *testing.T) {
	h := newTestHierarchy(newTestDB(t))
	root, err := h.CreateRootVendor("Acme", "acme@fleet.test", "secret")
	require.NoError(t, err)

	tests := []struct {
		name     string
		input    SubVendorInput
		wantKind apperr.Kind
		wantPerm []string
	}{
		{
			name:     "regional gets default permissions",
			input:    SubVendorInput{Name: "West", Email: "west@fleet.test", Password: "pw", Role: models.RoleRegional},
			wantPerm: []string{"vehicle:create", "driver:create"},
		},
		{
			name:     "city gets read defaults",
			input:    SubVendorInput{Name: "Metro", Email: "metro@fleet.test", Password: "pw", Role: models.RoleCity},
			wantPerm: []string{"vehicle:read", "driver:read"},
		},
		{
			name:     "explicit permissions win over defaults",
			input:    SubVendorInput{Name: "Ops", Email: "ops@fleet.test", Password: "pw", Role: models.RoleLocal, Permissions: []string{"custom:perm"}},
			wantPerm: []string{"custom:perm"},
		},
		{
			name:     "missing field rejected",
			input:    SubVendorInput{Name: "NoMail", Password: "pw", Role: models.RoleLocal},
			wantKind: apperr.KindValidation,
		},
		{
			name:     "SUPER role rejected",
			input:    SubVendorInput{Name: "Evil", Email: "evil@fleet.test", Password: "pw", Role: models.RoleSuper},
			wantKind: apperr.KindValidation,
		},
		{
			name:     "unknown role rejected",
			input:    SubVendorInput{Name: "Odd", Email: "odd@fleet.test", Password: "pw", Role: "GALACTIC"},
			wantKind: apperr.KindValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vendor, err := h.CreateSubVendor(root, tt.input)
			if tt.wantKind != apperr.KindUnknown {
				assert.Equal(t, tt.wantKind, apperr.KindOf(err))
				return
			}
			require.NoError(t, err)
			require.NotNil(t, vendor.ParentID)
			assert.Equal(t, root.ID, *vendor.ParentID)
			assert.Equal(t, tt.wantPerm, vendor.Permissions)
		})
	}
}

func TestCreateSubVendorDuplicateEmail(t *testing.T) {
	h := newTestHierarchy(newTestDB(t))
	root, err := h.CreateRootVendor("Acme", "acme@fleet.test", "secret")
	require.NoError(t, err)

	_, err = h.CreateSubVendor(root, SubVendorInput{Name: "A", Email: "dup@fleet.test", Password: "pw", Role: models.RoleLocal})
	require.NoError(t, err)
	_, err = h.CreateSubVendor(root, SubVendorInput{Name: "B", Email: "dup@fleet.test", Password: "pw", Role: models.RoleLocal})
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
}

func TestCustomRoleTableInjection(t *testing.T) {
	db := newTestDB(t)
	h := NewHierarchy(db, plainHasher{}, config.RolePermissions{
		models.RoleSuper: {models.PermissionAll},
		models.RoleLocal: {"depot:sweep"},
	})

	root, err := h.CreateRootVendor("Acme", "acme@fleet.test", "secret")
	require.NoError(t, err)
	local, err := h.CreateSubVendor(root, SubVendorInput{Name: "Depot", Email: "depot@fleet.test", Password: "pw", Role: models.RoleLocal})
	require.NoError(t, err)
	assert.Equal(t, []string{"depot:sweep"}, local.Permissions)

	// A role missing from the injected table yields no permissions.
	city, err := h.CreateSubVendor(root, SubVendorInput{Name: "Metro", Email: "metro@fleet.test", Password: "pw", Role: models.RoleCity})
	require.NoError(t, err)
	assert.Empty(t, city.Permissions)
}

func TestListDescendants(t *testing.T) {
	h := newTestHierarchy(newTestDB(t))
	acme, west, downtown := seedTree(t, h)

	// Deepen the tree: a CITY under West, a LOCAL under that city.
	city, err := h.CreateSubVendor(west, SubVendorInput{Name: "WestCity", Email: "wc@fleet.test", Password: "pw", Role: models.RoleCity})
	require.NoError(t, err)
	leaf, err := h.CreateSubVendor(city, SubVendorInput{Name: "WestLeaf", Email: "wl@fleet.test", Password: "pw", Role: models.RoleLocal})
	require.NoError(t, err)

	got, err := h.ListDescendants(acme.ID)
	require.NoError(t, err)

	ids := make(map[uint]bool, len(got))
	for _, v := range got {
		assert.False(t, ids[v.ID], "duplicate vendor %d in closure", v.ID)
		ids[v.ID] = true
	}
	assert.Equal(t, map[uint]bool{west.ID: true, downtown.ID: true, city.ID: true, leaf.ID: true}, ids)

	// Mid-tree node sees only its own sub-tree.
	got, err = h.ListDescendants(west.ID)
	require.NoError(t, err)
	require.Len(t, got, 2)

	// Depth 0: a leaf has no descendants.
	got, err = h.ListDescendants(leaf.ID)
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = h.ListDescendants(99999)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestListDescendantsSurvivesCycle(t *testing.T) {
	db := newTestDB(t)
	h := newTestHierarchy(db)
	acme, west, _ := seedTree(t, h)
	city, err := h.CreateSubVendor(west, SubVendorInput{Name: "WestCity", Email: "wc@fleet.test", Password: "pw", Role: models.RoleCity})
	require.NoError(t, err)

	// Corrupt the tree into a cycle west -> city -> west. Creation can never
	// produce this; the traversal still has to terminate.
	require.NoError(t, db.Model(&models.Vendor{}).Where("id = ?", west.ID).Update("parent_id", city.ID).Error)

	got, err := h.ListDescendants(acme.ID)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(got), 3)

	ok, err := h.IsDescendant(acme.ID, city.ID)
	require.NoError(t, err)
	assert.False(t, ok, "upward walk trapped in the cycle must terminate without reaching the root")
}

func TestIsDescendant(t *testing.T) {
	h := newTestHierarchy(newTestDB(t))
	acme, west, downtown := seedTree(t, h)
	leaf, err := h.CreateSubVendor(west, SubVendorInput{Name: "Leaf", Email: "leaf@fleet.test", Password: "pw", Role: models.RoleLocal})
	require.NoError(t, err)

	tests := []struct {
		name     string
		ancestor uint
		vendor   uint
		want     bool
	}{
		{"direct child", acme.ID, west.ID, true},
		{"grandchild", acme.ID, leaf.ID, true},
		{"sibling is not descendant", west.ID, downtown.ID, false},
		{"self is not own descendant", west.ID, west.ID, false},
		{"inverted relation", west.ID, acme.ID, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := h.IsDescendant(tt.ancestor, tt.vendor)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
