package ranking

import (
	"cmp"
	"slices"
	"time"

	"github.com/motorline/vehicle-finder/pkg/types"
)

// Comparator returns the total order used over a filtered result: boost tier
// first, then the user-selected sort order within equal tiers. Callers must
// apply it with a stable sort so that SortVehicles ties keep their input
// order; the comparator itself does not break ties further.
func Comparator(order types.SortOrder, now time.Time) func(a, b *types.Vehicle) int {
	return func(a, b *types.Vehicle) int {
		tierA := ResolveTier(a, now)
		tierB := ResolveTier(b, now)
		if tierA != tierB {
			return int(tierB) - int(tierA)
		}
		return compareByOrder(order, a, b)
	}
}

// SortVehicles orders the slice in place with one stable sort. This is
// deliberately not a "boosted first, then sort the rest" partition: a boosted
// vehicle with a worse sort value still outranks an unboosted one.
func SortVehicles(vehicles []*types.Vehicle, order types.SortOrder, now time.Time) {
	slices.SortStableFunc(vehicles, Comparator(order, now))
}

func compareByOrder(order types.SortOrder, a, b *types.Vehicle) int {
	switch order {
	case types.SortRating:
		return cmp.Compare(b.Rating, a.Rating)
	case types.SortPriceAsc:
		return compareOptional(a.Price, b.Price, false)
	case types.SortPriceDesc:
		return compareOptional(a.Price, b.Price, true)
	case types.SortMileage:
		return compareOptional(a.Mileage, b.Mileage, false)
	}
	// newest first
	return cmp.Compare(b.Year, a.Year)
}

// compareOptional orders optional numeric values; missing values always sort
// after present ones regardless of direction.
func compareOptional(a, b *int, desc bool) int {
	if a == nil && b == nil {
		return 0
	}
	if a == nil {
		return 1
	}
	if b == nil {
		return -1
	}
	if desc {
		return cmp.Compare(*b, *a)
	}
	return cmp.Compare(*a, *b)
}
