package core

import (
	"fmt"
	"strings"
)

const (
	FilterAll = "All"

	SortAsc  = "ASC"
	SortDesc = "DESC"
)

// SortableColumns lists the transactions columns a query may order by.
var SortableColumns = []string{
	"transaction_id",
	"transaction_date",
	"description",
	"amount",
	"type",
}

// QueryOptions selects and orders transactions. Empty fields mean no filter,
// no ordering and ascending order respectively.
type QueryOptions struct {
	FilterType string
	SortBy     string
	SortOrder  string
}

// Normalize applies the allow-lists and returns a copy safe to build SQL from.
// FilterType is not checked: it is always bound as a parameter, so an unknown
// value just matches nothing.
func (q QueryOptions) Normalize() (QueryOptions, error) {
	out := QueryOptions{
		FilterType: strings.TrimSpace(q.FilterType),
		SortBy:     strings.ToLower(strings.TrimSpace(q.SortBy)),
		SortOrder:  strings.ToUpper(strings.TrimSpace(q.SortOrder)),
	}
	if out.FilterType == FilterAll {
		out.FilterType = ""
	}

	if out.SortBy != "" && !isSortable(out.SortBy) {
		return QueryOptions{}, fmt.Errorf("%w: %q (must be one of %v)", ErrInvalidSortColumn, q.SortBy, SortableColumns)
	}

	switch out.SortOrder {
	case "":
		out.SortOrder = SortAsc
	case SortAsc, SortDesc:
	default:
		return QueryOptions{}, fmt.Errorf("%w: %q (must be ASC or DESC)", ErrInvalidSortOrder, q.SortOrder)
	}

	return out, nil
}

func isSortable(col string) bool {
	for _, c := range SortableColumns {
		if c == col {
			return true
		}
	}
	return false
}
