package domain

// Fields accepted in the query and order parameters of each list screen.
var (
	queryFields = map[string][]string{
		ResourceProducts:    {"id", "name", "sku", "price", "stock", "brand_id", "category_id", "active", "created_at"},
		ResourceUsers:       {"id", "email", "full_name", "active", "roles", "created_at"},
		ResourceRoles:       {"id", "name"},
		ResourcePermissions: {"id", "name"},
		ResourceBrands:      {"id", "name", "slug"},
		ResourceCategories:  {"id", "name", "slug", "parent_id"},
		ResourceCoupons:     {"id", "code", "discount_type", "value", "active", "starts_at", "expires_at"},
	}

	orderFields = map[string][]string{
		ResourceProducts:    {"id", "name", "sku", "price", "stock", "created_at", "updated_at"},
		ResourceUsers:       {"id", "email", "full_name", "created_at"},
		ResourceRoles:       {"id", "name"},
		ResourcePermissions: {"id", "name"},
		ResourceBrands:      {"id", "name"},
		ResourceCategories:  {"id", "name"},
		ResourceCoupons:     {"id", "code", "value", "starts_at", "expires_at"},
	}
)

// QueryFields returns the filterable fields of a resource.
func QueryFields(resource string) []string {
	return queryFields[resource]
}

// OrderFields returns the sortable fields of a resource.
func OrderFields(resource string) []string {
	return orderFields[resource]
}
