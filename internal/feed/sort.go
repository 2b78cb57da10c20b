package feed

import (
	"cmp"
	"github.com/rookgm/orderfeed/internal/models"
	"slices"
)

// Compare orders by status priority, then newest first
func Compare(a, b models.Order) int {
	if c := cmp.Compare(a.Status.Priority(), b.Status.Priority()); c != 0 {
		return c
	}
	return b.CreatedAt.Compare(a.CreatedAt)
}

// Sort sorts orders in place. Orders with equal keys keep their relative order.
func Sort(orders []models.Order) {
	slices.SortStableFunc(orders, Compare)
}

// IsSorted reports whether orders follow the sort policy
func IsSorted(orders []models.Order) bool {
	return slices.IsSortedFunc(orders, Compare)
}
