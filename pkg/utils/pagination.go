package utils

import (
	"math"
	"strconv"
)

const MaxPageLimit = 100

// ParsePagination reads page and limit query values. Missing, unparsable
// or non-positive values fall back to page 1 and defaultLimit.
func ParsePagination(pageRaw, limitRaw string, defaultLimit int) (page, limit int) {
	page = positiveOr(pageRaw, 1)
	limit = positiveOr(limitRaw, defaultLimit)
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	return page, limit
}

func Skip(page, limit int) int64 {
	return int64(page-1) * int64(limit)
}

func TotalPages(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int(math.Ceil(float64(total) / float64(limit)))
}

func positiveOr(raw string, def int) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
