package paginationutil

// PaginationResult holds pagination metadata.
type PaginationResult struct {
	TotalCount int
	Truncated  bool
}

// ApplyPagination returns the paginated slice and metadata.
// It clamps offset and limit so out-of-range values never panic.
func ApplyPagination[T any](items []T, offset, limit int) ([]T, PaginationResult) {
	totalCount := len(items)
	if offset < 0 {
		offset = 0
	}
	if limit < 0 {
		limit = 0
	}

	start := min(offset, totalCount)
	end := min(offset+limit, totalCount)

	return items[start:end], PaginationResult{
		TotalCount: totalCount,
		Truncated:  offset+limit < totalCount,
	}
}
