// Package listview implements the filter/search/paginate computation shared
// by every list screen. Each screen used to reimplement the same
// lower-filter-slice sequence with slightly different predicates; here it is
// one generic engine parameterized by per-entity search fields and named
// filter predicates.
package listview

import (
	"net/url"
	"strconv"
	"strings"
)

// DefaultPageSize matches the row count of the dashboard tables.
const DefaultPageSize = 5

// Filters maps a structured-filter name to its active value. A missing or
// empty value means the filter is inactive.
type Filters map[string]string

// Predicate reports whether an entity satisfies a structured filter value.
type Predicate[T any] func(item T, value string) bool

// Definition describes how one entity type is searched and filtered.
type Definition[T any] struct {
	// SearchFields returns the string fields the free-text query is
	// matched against.
	SearchFields func(item T) []string
	// Filters holds the structured-filter predicates by name. Filter
	// names not present here are ignored rather than rejected.
	Filters map[string]Predicate[T]
}

// Result is one visible page of a filtered collection.
type Result[T any] struct {
	Items      []T `json:"items"`
	Total      int `json:"total"`
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalPages int `json:"total_pages"`
}

// Match reports whether a single entity is included for the given query and
// filters. The query matches when it is empty or a case-insensitive
// substring of at least one search field; every active filter must hold.
func (d Definition[T]) Match(item T, query string, filters Filters) bool {
	if query != "" {
		q := strings.ToLower(query)
		found := false
		if d.SearchFields != nil {
			for _, field := range d.SearchFields(item) {
				if strings.Contains(strings.ToLower(field), q) {
					found = true
					break
				}
			}
		}
		if !found {
			return false
		}
	}

	for name, value := range filters {
		if value == "" {
			continue
		}
		pred, ok := d.Filters[name]
		if !ok {
			continue
		}
		if !pred(item, value) {
			return false
		}
	}
	return true
}

// Apply returns the matching entities in their original collection order.
// The input slice is never modified.
func (d Definition[T]) Apply(items []T, query string, filters Filters) []T {
	matched := make([]T, 0, len(items))
	for _, item := range items {
		if d.Match(item, query, filters) {
			matched = append(matched, item)
		}
	}
	return matched
}

// View filters the collection and returns page `page` of the matches.
// Pages are 1-indexed. A page past the end yields an empty item list, not
// an error; callers reset to page 1 whenever the query or filters change.
func (d Definition[T]) View(items []T, query string, filters Filters, page, pageSize int) Result[T] {
	matched := d.Apply(items, query, filters)
	pageItems, totalPages := Paginate(matched, page, pageSize)
	return Result[T]{
		Items:      pageItems,
		Total:      len(matched),
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}

// Paginate slices out page `page` (1-indexed) and returns it with the total
// page count, ceil(len(items)/pageSize). Zero items means zero pages.
func Paginate[T any](items []T, page, pageSize int) ([]T, int) {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if page < 1 {
		page = 1
	}

	totalPages := (len(items) + pageSize - 1) / pageSize

	start := (page - 1) * pageSize
	if start >= len(items) {
		return []T{}, totalPages
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end:end], totalPages
}

// PageParams reads page and page_size from a query string, falling back to
// page 1 and the given default size.
func PageParams(values url.Values, defaultSize int) (page, pageSize int) {
	page, _ = strconv.Atoi(values.Get("page"))
	if page < 1 {
		page = 1
	}
	pageSize, _ = strconv.Atoi(values.Get("page_size"))
	if pageSize < 1 {
		pageSize = defaultSize
	}
	return page, pageSize
}

// FiltersFromQuery lifts every non-reserved query parameter into a Filters
// map. Unknown names are harmless; Match ignores them.
func FiltersFromQuery(values url.Values) Filters {
	filters := Filters{}
	for name, vals := range values {
		switch name {
		case "q", "page", "page_size":
			continue
		}
		if len(vals) > 0 && vals[0] != "" {
			filters[name] = vals[0]
		}
	}
	return filters
}
