package types

type SortOrder string

const (
	SortNewest    SortOrder = "newest"
	SortRating    SortOrder = "rating"
	SortPriceAsc  SortOrder = "price_asc"
	SortPriceDesc SortOrder = "price_desc"
	SortMileage   SortOrder = "mileage"
)

const DefaultSort = SortNewest

// ParseSortOrder maps a request value to a known sort order, falling back to
// the default for anything unknown.
func ParseSortOrder(value string) SortOrder {
	switch SortOrder(value) {
	case SortNewest, SortRating, SortPriceAsc, SortPriceDesc, SortMileage:
		return SortOrder(value)
	}
	return DefaultSort
}
