package util

const (
	DefaultPerPage = 20
	MaxPerPage     = 100
)

// ListFilter is the page request for list screens: filters, sort order and
// the 0-based page position.
type ListFilter struct {
	// Filters parsed from query parameter
	Filters []QueryFilter `json:"filters,omitempty"`
	// Order by clauses parsed from order parameter
	Order []OrderClause `json:"order,omitempty"`
	// Pagination
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
}

// Normalize clamps the page position and size into their valid ranges. An
// unset size takes defaultPerPage.
func (f *ListFilter) Normalize(defaultPerPage int) {
	if f.Page < 0 {
		f.Page = 0
	}
	if f.PerPage == 0 {
		f.PerPage = defaultPerPage
	}
	if f.PerPage == 0 {
		f.PerPage = DefaultPerPage
	}
	f.PerPage = ClampPerPage(f.PerPage)
}

// ClampPerPage bounds an explicit page size to [1, MaxPerPage].
func ClampPerPage(perPage int) int {
	return min(max(perPage, 1), MaxPerPage)
}

// ParseListFilter parses the query and order parameters of a list request
// and checks their fields against the allowed sets.
func ParseListFilter(queryStr, orderStr string, queryFields, orderFields []string) (ListFilter, error) {
	var filter ListFilter

	filters, err := ParseQueryString(queryStr)
	if err != nil {
		return filter, err
	}
	if err := ValidateFilterFields(filters, queryFields); err != nil {
		return filter, err
	}

	orders, err := ParseOrderString(orderStr)
	if err != nil {
		return filter, err
	}
	if err := ValidateOrderFields(orders, orderFields); err != nil {
		return filter, err
	}

	filter.Filters = filters
	filter.Order = orders
	return filter, nil
}
