package domain

import "errors"

// Resource names as they appear in the shop API paths.
const (
	ResourceProducts    = "products"
	ResourceUsers       = "users"
	ResourceRoles       = "roles"
	ResourcePermissions = "permissions"
	ResourceBrands      = "brands"
	ResourceCategories  = "categories"
	ResourceCoupons     = "coupons"
)

// Resources lists every administrable resource in menu order.
var Resources = []string{
	ResourceProducts,
	ResourceUsers,
	ResourceRoles,
	ResourcePermissions,
	ResourceBrands,
	ResourceCategories,
	ResourceCoupons,
}

// Entity is implemented by every administrable record. Check enforces the
// rules struct tags cannot express.
type Entity interface {
	Check() error
}

// Identified is implemented by records addressed by a numeric id.
type Identified interface {
	EntityID() int64
	SetEntityID(id int64)
}

// Normalizer is implemented by entities that rewrite fields before they are
// sent upstream.
type Normalizer interface {
	Normalize()
}

var ErrInvalidEntity = errors.New("invalid entity")
