package dto

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// RedirectResponse tells the browser which view to show instead
type RedirectResponse struct {
	Error    string `json:"error"`
	Redirect string `json:"redirect"`
	Code     int    `json:"code"`
}

// PaginationInfo describes the returned page. Page is 0-based.
type PaginationInfo struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	PerPage    int `json:"per_page"`
	TotalPages int `json:"total_pages"`
}

// ListResponse represents one page of a resource list
type ListResponse[T any] struct {
	Items      []T            `json:"items"`
	Pagination PaginationInfo `json:"pagination"`
}
