package projection

// PageSize is the fixed page size for tabular views.
const PageSize = 10

// Page describes one slice of a filtered collection.
type Page struct {
	Number     int // 1-indexed, clamped to [1, TotalPages] (or 1 when empty)
	TotalPages int
	Total      int
	Start      int // slice bounds into the filtered collection
	End        int
}

// Paginate computes the visible slice for a 1-indexed page over total
// records. An empty collection yields zero pages and an empty slice;
// out-of-range page numbers are clamped rather than rejected.
func Paginate(total, page, size int) Page {
	if size <= 0 {
		size = PageSize
	}
	totalPages := (total + size - 1) / size

	if page < 1 {
		page = 1
	}
	if totalPages > 0 && page > totalPages {
		page = totalPages
	}

	start := (page - 1) * size
	if start > total {
		start = total
	}
	end := start + size
	if end > total {
		end = total
	}

	return Page{
		Number:     page,
		TotalPages: totalPages,
		Total:      total,
		Start:      start,
		End:        end,
	}
}
