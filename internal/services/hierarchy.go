package services

import (
	"errors"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"fleet_vendor/internal/apperr"
	"fleet_vendor/internal/auth"
	"fleet_vendor/internal/config"
	"fleet_vendor/internal/models"
)

// Hierarchy owns the vendor tree invariants: one SUPER root, every other
// vendor under exactly one existing parent, delegation-safe descendant
// lookups.
type Hierarchy struct {
	db       *gorm.DB
	hasher   auth.Hasher
	defaults config.RolePermissions
}

func NewHierarchy(db *gorm.DB, hasher auth.Hasher, defaults config.RolePermissions) *Hierarchy {
	return &Hierarchy{db: db, hasher: hasher, defaults: defaults}
}

// SubVendorInput carries the fields a parent supplies when creating a
// sub-vendor. Permissions may be empty, in which case the role's default
// set applies.
type SubVendorInput struct {
	Name        string
	Email       string
	Password    string
	Role        string
	Permissions []string
}

// CreateRootVendor bootstraps the single SUPER vendor. Fails with a
// conflict once any SUPER vendor exists.
func (h *Hierarchy) CreateRootVendor(name, email, password string) (*models.Vendor, error) {
	if name == "" || email == "" || password == "" {
		return nil, apperr.Validation("name, email and password are required")
	}

	var count int64
	if err := h.db.Model(&models.Vendor{}).Where("role = ?", models.RoleSuper).Count(&count).Error; err != nil {
		return nil, apperr.Dependency("could not check for existing super vendor", err)
	}
	if count > 0 {
		return nil, apperr.Conflict("super vendor already exists")
	}

	hash, err := h.hasher.Hash(password)
	if err != nil {
		return nil, apperr.Dependency("could not hash password", err)
	}

	vendor := &models.Vendor{
		Name:        name,
		Email:       email,
		Password:    hash,
		Role:        models.RoleSuper,
		ParentID:    nil,
		Permissions: h.defaults.Defaults(models.RoleSuper),
	}
	if err := h.db.Create(vendor).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, apperr.Conflict("email already in use")
		}
		return nil, apperr.Dependency("could not create super vendor", err)
	}
	return vendor, nil
}

// CreateSubVendor creates a child of parent. SUPER cannot be created this
// way, and the parent/role pairing is validated before anything persists.
func (h *Hierarchy) CreateSubVendor(parent *models.Vendor, in SubVendorInput) (*models.Vendor, error) {
	if parent == nil {
		return nil, apperr.Validation("parent vendor is required")
	}
	if in.Name == "" || in.Email == "" || in.Password == "" || in.Role == "" {
		return nil, apperr.Validation("name, email, password and role are required")
	}
	if in.Role == models.RoleSuper {
		return nil, apperr.Validation("cannot create a SUPER vendor under a parent")
	}
	if !models.ValidRole(in.Role) {
		return nil, apperr.Validation("invalid role %q", in.Role)
	}

	hash, err := h.hasher.Hash(in.Password)
	if err != nil {
		return nil, apperr.Dependency("could not hash password", err)
	}

	permissions := in.Permissions
	if len(permissions) == 0 {
		permissions = h.defaults.Defaults(in.Role)
	}

	parentID := parent.ID
	vendor := &models.Vendor{
		Name:        in.Name,
		Email:       in.Email,
		Password:    hash,
		Role:        in.Role,
		ParentID:    &parentID,
		Permissions: permissions,
	}
	if err := h.db.Create(vendor).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, apperr.Conflict("email already in use")
		}
		return nil, apperr.Dependency("could not create vendor", err)
	}
	return vendor, nil
}

// GetVendor loads a vendor with its delegated permissions, never from a
// cache: delegation state can change between calls.
func (h *Hierarchy) GetVendor(vendorID uint) (*models.Vendor, error) {
	var vendor models.Vendor
	err := h.db.Preload("DelegatedPermissions").First(&vendor, vendorID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("vendor %d not found", vendorID)
	}
	if err != nil {
		return nil, apperr.Dependency("could not load vendor", err)
	}
	return &vendor, nil
}

// ListDescendants returns the full closure under parent edges as a
// breadth-first walk over an in-memory children index. The visited set makes
// a corrupted cycle terminate instead of looping.
func (h *Hierarchy) ListDescendants(vendorID uint) ([]models.Vendor, error) {
	var exists int64
	if err := h.db.Model(&models.Vendor{}).Where("id = ?", vendorID).Count(&exists).Error; err != nil {
		return nil, apperr.Dependency("could not load vendor", err)
	}
	if exists == 0 {
		return nil, apperr.NotFound("vendor %d not found", vendorID)
	}

	var all []models.Vendor
	if err := h.db.Find(&all).Error; err != nil {
		return nil, apperr.Dependency("could not load vendors", err)
	}

	children := make(map[uint][]*models.Vendor, len(all))
	for i := range all {
		if all[i].ParentID != nil {
			children[*all[i].ParentID] = append(children[*all[i].ParentID], &all[i])
		}
	}

	var out []models.Vendor
	visited := map[uint]bool{vendorID: true}
	queue := []uint{vendorID}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, child := range children[current] {
			if visited[child.ID] {
				continue
			}
			visited[child.ID] = true
			out = append(out, *child)
			queue = append(queue, child.ID)
		}
	}
	return out, nil
}

// IsDescendant reports whether vendorID sits anywhere in ancestorID's
// sub-tree. Walks the parent chain upward; a visited set guards against a
// corrupted cycle.
func (h *Hierarchy) IsDescendant(ancestorID, vendorID uint) (bool, error) {
	if ancestorID == vendorID {
		return false, nil
	}
	visited := map[uint]bool{vendorID: true}
	currentID := vendorID
	for {
		var v models.Vendor
		err := h.db.Select("id", "parent_id").First(&v, currentID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, apperr.NotFound("vendor %d not found", currentID)
		}
		if err != nil {
			return false, apperr.Dependency("could not walk vendor hierarchy", err)
		}
		if v.ParentID == nil {
			return false, nil
		}
		if *v.ParentID == ancestorID {
			return true, nil
		}
		if visited[*v.ParentID] {
			return false, nil
		}
		visited[*v.ParentID] = true
		currentID = *v.ParentID
	}
}

// isUniqueViolation catches a uniqueness race that slipped past the
// explicit pre-checks. 23505 is postgres unique_violation.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pq.Error
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	return false
}
