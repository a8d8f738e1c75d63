package service

import "github.com/Marga-Ghale/ora-identity-services/internal/models"

const DefaultPageSize = 20

// ValidatePage rejects negative pages and non-positive page sizes. There is
// no upper bound on pageSize.
func ValidatePage(page, pageSize int) error {
	if page < 0 {
		return invalidf("page must be greater than or equal to 0")
	}
	if pageSize < 1 {
		return invalidf("pageSize must be greater than 0")
	}
	return nil
}

// Paginate returns items[page*pageSize : min(page*pageSize+pageSize, len(items))].
// A page past the end yields an empty page, not an error.
func Paginate[T any](items []T, page, pageSize int) (*models.PaginatedResponse[T], error) {
	if err := ValidatePage(page, pageSize); err != nil {
		return nil, err
	}

	total := len(items)
	totalPages := (total + pageSize - 1) / pageSize

	// Comparing pages rather than offsets keeps page*pageSize from overflowing.
	pageItems := make([]T, 0)
	if page < totalPages {
		start := page * pageSize
		end := start + pageSize
		if end > total {
			end = total
		}
		pageItems = append(pageItems, items[start:end]...)
	}

	return &models.PaginatedResponse[T]{
		Items:      pageItems,
		Page:       page,
		PageSize:   pageSize,
		TotalItems: total,
		TotalPages: totalPages,
	}, nil
}
