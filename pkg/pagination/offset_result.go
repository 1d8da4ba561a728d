package pagination

// OffsetResult represents one page of a fully materialized result set.
type OffsetResult[T any] struct {
	Total int `json:"total"`
	Page  int `json:"page"`
	Pages int `json:"pages"`
	Size  int `json:"size"`
	Items []T `json:"items"`
}

// NewOffsetResult slices one page out of the whole sorted item set. Pages
// is always at least 1 and a page past the end is clamped to the last
// page, so repeated calls against unchanged data are stable.
func NewOffsetResult[T any](all []T, page, size int) *OffsetResult[T] {
	total := len(all)

	pages := (total + size - 1) / size
	if pages < 1 {
		pages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > pages {
		page = pages
	}

	start := (page - 1) * size
	end := start + size
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	items := all[start:end]
	if items == nil {
		items = []T{}
	}

	return &OffsetResult[T]{
		Total: total,
		Page:  page,
		Pages: pages,
		Size:  size,
		Items: items,
	}
}
