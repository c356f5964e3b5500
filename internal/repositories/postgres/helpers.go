package postgres

import (
	"strings"

	"gorm.io/gorm"
)

const (
	defaultLimit = 50
	maxLimit     = 500
)

// applyPaginationAndSort orders by an allow-listed column and pages the query.
func applyPaginationAndSort(query *gorm.DB, sortBy, sortOrder string, allowed map[string]bool, limit, offset int) *gorm.DB {
	if !allowed[sortBy] {
		sortBy = "created_at"
	}
	order := "DESC"
	if strings.EqualFold(sortOrder, "asc") {
		order = "ASC"
	}
	query = query.Order(sortBy + " " + order)

	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	query = query.Limit(limit)
	if offset > 0 {
		query = query.Offset(offset)
	}
	return query
}
