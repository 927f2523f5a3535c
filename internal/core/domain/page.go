package domain

// Page is one slice of a paginated list returned by the shop API.
// Page indexes are 0-based.
type Page[T any] struct {
	Items      []T `json:"items"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
	Page       int `json:"page"`
	PerPage    int `json:"per_page"`
}

// IsLast reports whether there is no page after this one.
func (p *Page[T]) IsLast() bool {
	return p.Page+1 >= p.TotalPages
}
