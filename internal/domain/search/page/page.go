// Package page holds the pagination envelope of list results.
package page

// Page is one slice of an ordered result set.
type Page[T any] struct {
	Items   []T
	Total   int
	Page    int
	PerPage int
}

// TotalPages returns ceil(Total/PerPage), or 0 when there are no results.
func (p Page[T]) TotalPages() int {
	if p.Total <= 0 || p.PerPage <= 0 {
		return 0
	}
	return (p.Total + p.PerPage - 1) / p.PerPage
}

// Bounds returns the [start, end) window of page n within total items.
// Out-of-range pages yield an empty window.
func Bounds(total, n, perPage int) (start, end int) {
	if n < 1 || perPage < 1 {
		return 0, 0
	}
	// Compare page indexes before multiplying so huge n cannot overflow.
	if total <= 0 || n-1 > (total-1)/perPage {
		return total, total
	}
	start = (n - 1) * perPage
	end = total
	if perPage < total-start {
		end = start + perPage
	}
	return start, end
}

// Slice cuts page n out of all and wraps it with the total count.
func Slice[T any](all []T, n, perPage int) Page[T] {
	start, end := Bounds(len(all), n, perPage)
	items := make([]T, end-start)
	copy(items, all[start:end])
	return Page[T]{Items: items, Total: len(all), Page: n, PerPage: perPage}
}

// Map converts the items of p, keeping the envelope.
func Map[T, U any](p Page[T], fn func(T) U) Page[U] {
	out := make([]U, len(p.Items))
	for i, it := range p.Items {
		out[i] = fn(it)
	}
	return Page[U]{Items: out, Total: p.Total, Page: p.Page, PerPage: p.PerPage}
}
