package repository

import "fmt"

func placeholderClause(prefix string, index int) string {
	return fmt.Sprintf("%s$%d", prefix, index)
}

func orderLimitOffset(order string, limit, offset int) string {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return fmt.Sprintf(" ORDER BY %s LIMIT %d OFFSET %d", order, limit, offset)
}
