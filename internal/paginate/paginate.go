// Package paginate provides the page-window computation used by every
// paged listing in the dialog (states, cities, dealers, distributors).
package paginate

// Per-kind page sizes. These are fixed by the kind of record being listed,
// not tunable per call site.
const (
	PerStates       = 5
	PerCities       = 4
	PerDealers      = 3
	PerDistributors = 3
)

// Page is the visible window over a list plus the affordances the caller
// needs to render navigation.
type Page[T any] struct {
	Items      []T
	Index      int // clamped page index
	HasPrev    bool
	HasNext    bool
	TotalPages int
}

// Paginate computes the visible slice of items for the requested page.
// An out-of-range page index is clamped into [0, totalPages-1], which keeps
// navigation stable when the underlying list shrinks between turns. A
// non-positive perPage falls back to PerStates.
func Paginate[T any](items []T, page, perPage int) Page[T] {
	if perPage <= 0 {
		perPage = PerStates
	}
	total := (len(items) + perPage - 1) / perPage
	if total == 0 {
		return Page[T]{Items: nil, Index: 0, TotalPages: 0}
	}
	if page < 0 {
		page = 0
	}
	if page >= total {
		page = total - 1
	}
	start := page * perPage
	end := start + perPage
	if end > len(items) {
		end = len(items)
	}
	return Page[T]{
		Items:      items[start:end],
		Index:      page,
		HasPrev:    page > 0,
		HasNext:    page < total-1,
		TotalPages: total,
	}
}
