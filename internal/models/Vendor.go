// internal/models/vendor.go
package models

import (
	"time"

	"gorm.io/gorm"
)

// Vendor roles, ordered top-down in the hierarchy.
const (
	RoleSuper    = "SUPER"
	RoleRegional = "REGIONAL"
	RoleCity     = "CITY"
	RoleLocal    = "LOCAL"
)

// PermissionAll grants every capability. Only role defaults may carry it;
// it is never delegated.
const PermissionAll = "*"

// PermSuperOverride gates force-verification and fleet-safety overrides.
const PermSuperOverride = "super:override"

var Roles = []string{RoleSuper, RoleRegional, RoleCity, RoleLocal}

// ValidRole reports whether role is one of the known vendor roles.
func ValidRole(role string) bool {
	for _, r := range Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Vendor is a tenant node in the fleet hierarchy. A SUPER vendor has no
// parent; every other vendor hangs off exactly one parent vendor.
type Vendor struct {
	gorm.Model
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" gorm:"unique;not null" binding:"required,email"`
	Password string `json:"-"` // bcrypt hash, never the plaintext
	Role     string `json:"role"`
	ParentID *uint  `json:"parent_id" gorm:"index"`

	// Capability tokens owned by this vendor (role defaults unless overridden).
	Permissions []string `json:"permissions" gorm:"serializer:json"`

	// Permissions granted by ancestors, kept separate from the base set so a
	// revoke can be scoped to the vendor that granted them.
	DelegatedPermissions []DelegatedPermission `json:"delegated_permissions,omitempty" gorm:"foreignKey:VendorID"`
}

// DelegatedPermission is one (permission, grantor) pair held by a vendor.
// The unique index makes repeated grants of the same pair idempotent. No
// soft delete here: a revoked entry must not shadow a later re-grant.
type DelegatedPermission struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	CreatedAt     time.Time `json:"created_at"`
	VendorID      uint      `json:"vendor_id" gorm:"uniqueIndex:idx_vendor_perm_grantor"`
	Permission    string    `json:"permission" gorm:"uniqueIndex:idx_vendor_perm_grantor"`
	DelegatedByID uint      `json:"delegated_by" gorm:"uniqueIndex:idx_vendor_perm_grantor"`
}

// HasPermission reports whether the vendor may perform the required
// capability: a wildcard or literal match in its own set, or a literal match
// among its delegated permissions. Delegated wildcards are not honored.
func (v *Vendor) HasPermission(required string) bool {
	for _, p := range v.Permissions {
		if p == PermissionAll || p == required {
			return true
		}
	}
	for _, d := range v.DelegatedPermissions {
		if d.Permission == required {
			return true
		}
	}
	return false
}
