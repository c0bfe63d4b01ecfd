package usecase

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// normalizePage clamps page/limit to sane values: page >= 1, limit in
// (0, maxPageSize] with a default of 10.
func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return page, limit
}

// pageWindow returns the half-open [start, end) bounds of the requested page
// and the total page count (ceil of total/limit). Pages past the end yield
// an empty window.
func pageWindow(total, page, limit int) (start, end, totalPages int) {
	totalPages = (total + limit - 1) / limit
	start = (page - 1) * limit
	if start > total {
		start = total
	}
	end = start + limit
	if end > total {
		end = total
	}
	return start, end, totalPages
}
