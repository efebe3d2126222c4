package usecase

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// normalizePage clamps page to >= 1 and pageSize to 1..100 (0 means default).
func normalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return page, pageSize
}

func offsetOf(page, pageSize int) int {
	return (page - 1) * pageSize
}
