package service

import (
	"github.com/martijn/shopadmin/internal/adapter/shopapi"
	"github.com/martijn/shopadmin/internal/core/domain"
	"github.com/martijn/shopadmin/internal/logger"
)

// ResourceServices bundles the CRUD workflow of every admin screen.
type ResourceServices struct {
	Products    *ResourceService[domain.Product]
	Users       *ResourceService[domain.User]
	Roles       *ResourceService[domain.Role]
	Permissions *ResourceService[domain.Permission]
	Brands      *ResourceService[domain.Brand]
	Categories  *ResourceService[domain.Category]
	Coupons     *ResourceService[domain.Coupon]
}

func NewResourceServices(client *shopapi.Client, defaultPerPage int, log *logger.Logger) *ResourceServices {
	return &ResourceServices{
		Products:    NewResourceService(shopapi.NewResource[domain.Product](client, domain.ResourceProducts), defaultPerPage, log),
		Users:       NewResourceService(shopapi.NewResource[domain.User](client, domain.ResourceUsers), defaultPerPage, log),
		Roles:       NewResourceService(shopapi.NewResource[domain.Role](client, domain.ResourceRoles), defaultPerPage, log),
		Permissions: NewResourceService(shopapi.NewResource[domain.Permission](client, domain.ResourcePermissions), defaultPerPage, log),
		Brands:      NewResourceService(shopapi.NewResource[domain.Brand](client, domain.ResourceBrands), defaultPerPage, log),
		Categories:  NewResourceService(shopapi.NewResource[domain.Category](client, domain.ResourceCategories), defaultPerPage, log),
		Coupons:     NewResourceService(shopapi.NewResource[domain.Coupon](client, domain.ResourceCoupons), defaultPerPage, log),
	}
}
