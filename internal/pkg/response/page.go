package response

// PageResponse is the standard wrapper for list endpoints.
type PageResponse[T any] struct {
	Items    []T `json:"items"`
	Offset   int `json:"offset"`
	PageSize int `json:"page_size"`
	Total    int `json:"total"`
}

// NewPageResponse builds the wrapper, guarding against a nil slice so
// the JSON never contains null items.
func NewPageResponse[T any](items []T, offset, pageSize, total int) PageResponse[T] {
	if items == nil {
		items = make([]T, 0)
	}

	return PageResponse[T]{
		Items:    items,
		Offset:   offset,
		PageSize: pageSize,
		Total:    total,
	}
}
