package services

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"fleet_vendor/internal/apperr"
	"fleet_vendor/internal/models"
)

// Delegation grants and revokes permissions between a vendor and members of
// its own sub-tree. Delegation flows strictly downward, and only authority
// the grantor actually holds can be passed on.
type Delegation struct {
	db        *gorm.DB
	hierarchy *Hierarchy
}

func NewDelegation(db *gorm.DB, hierarchy *Hierarchy) *Delegation {
	return &Delegation{db: db, hierarchy: hierarchy}
}

// Delegate appends one (permission, grantor) entry per requested permission
// to the grantee. Granting an already-delegated pair is a no-op, so the call
// is idempotent. Wildcard delegation is refused outright; delegated
// authority is always an enumerated token list.
func (s *Delegation) Delegate(grantorID, granteeID uint, permissions []string) (*models.Vendor, error) {
	if len(permissions) == 0 {
		return nil, apperr.Validation("at least one permission is required")
	}
	for _, p := range permissions {
		if p == "" {
			return nil, apperr.Validation("empty permission token")
		}
		if p == models.PermissionAll {
			return nil, apperr.Validation("wildcard permission cannot be delegated")
		}
	}

	grantor, err := s.hierarchy.GetVendor(grantorID)
	if err != nil {
		return nil, err
	}
	grantee, err := s.hierarchy.GetVendor(granteeID)
	if err != nil {
		return nil, err
	}

	ok, err := s.hierarchy.IsDescendant(grantor.ID, grantee.ID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.Forbidden("vendor %d is not a descendant of vendor %d", grantee.ID, grantor.ID)
	}

	for _, p := range permissions {
		if !grantor.HasPermission(p) {
			return nil, apperr.Forbidden("cannot delegate %q: grantor does not hold it", p)
		}
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		for _, p := range permissions {
			entry := models.DelegatedPermission{
				VendorID:      grantee.ID,
				Permission:    p,
				DelegatedByID: grantor.ID,
			}
			// ON CONFLICT DO NOTHING over the (vendor, permission, grantor)
			// unique index keeps concurrent grants from doubling up.
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&entry).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, apperr.Dependency("could not persist delegation", err)
	}

	return s.hierarchy.GetVendor(grantee.ID)
}

// Revoke removes the grantee's delegated entries matching the given
// permissions where this revoker was the grantor. Revoking something never
// granted is a no-op, not an error.
func (s *Delegation) Revoke(revokerID, granteeID uint, permissions []string) (*models.Vendor, error) {
	if len(permissions) == 0 {
		return nil, apperr.Validation("at least one permission is required")
	}

	revoker, err := s.hierarchy.GetVendor(revokerID)
	if err != nil {
		return nil, err
	}
	grantee, err := s.hierarchy.GetVendor(granteeID)
	if err != nil {
		return nil, err
	}

	ok, err := s.hierarchy.IsDescendant(revoker.ID, grantee.ID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.Forbidden("vendor %d is not a descendant of vendor %d", grantee.ID, revoker.ID)
	}

	err = s.db.
		Where("vendor_id = ? AND delegated_by_id = ? AND permission IN ?", grantee.ID, revoker.ID, permissions).
		Delete(&models.DelegatedPermission{}).Error
	if err != nil {
		return nil, apperr.Dependency("could not revoke delegation", err)
	}

	return s.hierarchy.GetVendor(grantee.ID)
}
