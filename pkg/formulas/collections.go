package formulas

import "strings"

// TopN returns at most the first n items. The slice is not copied.
func TopN[T any](items []T, n int) []T {
	if n < 0 {
		n = 0
	}
	if len(items) <= n {
		return items
	}
	return items[:n]
}

// FilterByName keeps items whose name contains term, case-insensitively.
// An empty term keeps everything.
func FilterByName[T any](items []T, term string, name func(T) string) []T {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return items
	}

	out := make([]T, 0, len(items))
	for _, item := range items {
		if strings.Contains(strings.ToLower(name(item)), term) {
			out = append(out, item)
		}
	}
	return out
}

// Page is one page of a larger list.
type Page[T any] struct {
	Items      []T `json:"items"`
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// Paginate slices items into 1-based pages. Out-of-range pages are empty.
func Paginate[T any](items []T, page, size int) Page[T] {
	if size <= 0 {
		size = 10
	}
	if page < 1 {
		page = 1
	}

	totalPages := len(items) / size
	if len(items)%size != 0 {
		totalPages++
	}

	p := Page[T]{
		Items:      []T{},
		Page:       page,
		PageSize:   size,
		Total:      len(items),
		TotalPages: totalPages,
	}

	if len(items) == 0 || page-1 > (len(items)-1)/size {
		return p
	}
	start := (page - 1) * size
	end := len(items)
	if len(items)-start > size {
		end = start + size
	}
	p.Items = items[start:end]
	return p
}
