package utils

import (
	"math"
	"net/url"
	"strconv"
)

const (
	DefaultLimit = 20
	MaxLimit     = 200

	// MaxOffset - предел OFFSET в PostgreSQL (bigint).
	MaxOffset uint64 = math.MaxInt64
)

func ParsePaginationParams(values url.Values) (limit uint64, offset uint64, page uint64) {
	limit = DefaultLimit
	page = 1

	if limitStr := values.Get("limit"); limitStr != "" {
		if l, err := strconv.ParseUint(limitStr, 10, 64); err == nil && l > 0 {
			if l > MaxLimit {
				limit = MaxLimit
			} else {
				limit = l
			}
		}
	}

	if pageStr := values.Get("page"); pageStr != "" {
		if p, err := strconv.ParseUint(pageStr, 10, 64); err == nil && p > 0 {
			page = p
		}
	}

	// offset из запроса имеет приоритет над page
	if offsetStr := values.Get("offset"); offsetStr != "" {
		if o, err := strconv.ParseUint(offsetStr, 10, 64); err == nil {
			o = min(o, MaxOffset)
			return limit, o, o/limit + 1
		}
	}

	// (page-1)*limit не должен выйти за MaxOffset
	if maxPage := MaxOffset/limit + 1; page > maxPage {
		page = maxPage
	}
	offset = (page - 1) * limit
	return
}
