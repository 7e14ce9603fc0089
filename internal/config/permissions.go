package config

import "fleet_vendor/internal/models"

// RolePermissions maps a vendor role to the permission tokens it starts
// with. The table is injected into the hierarchy service rather than read
// from a global so tests can substitute custom role sets.
type RolePermissions map[string][]string

// Defaults returns the permission set for role, or nil for unknown roles.
// The returned slice is a copy; mutating it does not touch the table.
func (rp RolePermissions) Defaults(role string) []string {
	perms, ok := rp[role]
	if !ok {
		return nil
	}
	out := make([]string, len(perms))
	copy(out, perms)
	return out
}

// DefaultRolePermissions is the production role→permission table.
func DefaultRolePermissions() RolePermissions {
	return RolePermissions{
		models.RoleSuper:    {models.PermissionAll},
		models.RoleRegional: {"vehicle:create", "driver:create"},
		models.RoleCity:     {"vehicle:read", "driver:read"},
		models.RoleLocal:    {"booking:manage"},
	}
}
