package criteria

import (
	"go.alis.build/criteria/maps"
)

// SortOrder represents the direction of sorting for a field.
//
// Use [SortOrder.String] to get the SQL representation ("ASC" or "DESC").
type SortOrder int64

const (
	// SortOrderAsc sorts values in ascending order.
	SortOrderAsc SortOrder = iota
	// SortOrderDesc sorts values in descending order.
	SortOrderDesc
)

// String returns the SQL representation of the SortOrder.
//
// Returns "ASC" for [SortOrderAsc] and "DESC" for [SortOrderDesc].
func (s SortOrder) String() string {
	return [...]string{"ASC", "DESC"}[s]
}

// parseSortOrder accepts exactly "ASC" or "DESC".
func parseSortOrder(direction string) (SortOrder, bool) {
	switch direction {
	case "ASC":
		return SortOrderAsc, true
	case "DESC":
		return SortOrderDesc, true
	default:
		return 0, false
	}
}

// Orderings maps field names to sort directions in request order.
type Orderings = maps.OrderedMap[string, SortOrder]

// Ordering is a single field-direction entry of Orderings.
type Ordering = maps.Pair[string, SortOrder]

// OrderBy returns Orderings holding the given entries in order.
func OrderBy(orderings ...Ordering) *Orderings {
	return maps.FromPairs(orderings...)
}
