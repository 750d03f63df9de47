package service

import (
	"strconv"
	"strings"
)

// QuestionsPerPage is the fixed window size of every paginated listing.
const QuestionsPerPage = 10

// ParsePage coerces a raw page parameter to a 1-based page number.
// Missing, non-numeric and non-positive values yield page 1.
func ParsePage(raw string) int {
	page, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// paginate returns items[(page-1)*QuestionsPerPage : page*QuestionsPerPage],
// clipped to the slice. A page past the end yields an empty, non-nil slice.
func paginate[T any](items []T, page int) []T {
	if page < 1 {
		page = 1
	}
	start := (page - 1) * QuestionsPerPage
	if start >= len(items) || start < 0 {
		return []T{}
	}
	end := start + QuestionsPerPage
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
