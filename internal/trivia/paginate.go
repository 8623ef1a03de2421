package trivia

import (
	"strconv"
	"strings"
)

// PageSize is the fixed number of questions per page.
const PageSize = 10

// ParsePage reads a 1-based page number. Absent or non-integer input means page 1.
func ParsePage(raw string) int {
	page, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 1
	}
	return page
}

// Paginate returns items[(page-1)*PageSize : page*PageSize], clamped to the
// bounds of items. Pages outside the range yield an empty, non-nil slice.
func Paginate[T any](items []T, page int) []T {
	if page < 1 || page-1 > len(items)/PageSize {
		return []T{}
	}
	start := (page - 1) * PageSize
	end := min(start+PageSize, len(items))
	if start >= end {
		return []T{}
	}
	return items[start:end]
}
