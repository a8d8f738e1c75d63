package models

// ============================================
// Shared DTOs
// ============================================

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// MessageResponse is returned by operations that have nothing else to report.
type MessageResponse struct {
	Message string `json:"message"`
}

// PaginatedResponse is one page of an ordered collection. Page is 0-indexed.
type PaginatedResponse[T any] struct {
	Items      []T `json:"items"`
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalItems int `json:"totalItems"`
	TotalPages int `json:"totalPages"`
}

// PageQuery binds the ?page=&pageSize= query parameters.
type PageQuery struct {
	Page     int `form:"page,default=0"`
	PageSize int `form:"pageSize,default=20"`
}
