package view

import "github.com/motorline/vehicle-finder/pkg/types"

// activeCountLocked counts the dimensions that differ from their defaults.
// The category only counts when it differs from the category the view was
// opened with, and an auto-derived region never counts.
func (v *View) activeCountLocked() int {
	return ActiveCount(&v.applied, v.defaultCategory)
}

func ActiveCount(c *types.Criteria, defaultCategory string) int {
	if defaultCategory == "" {
		defaultCategory = types.CategoryAll
	}
	count := 0
	if c.Category != defaultCategory {
		count++
	}
	if c.Make != "" {
		count++
	}
	if c.Model != "" {
		count++
	}
	if c.Price.Min != types.PriceMin || c.Price.Max != types.PriceMax {
		count++
	}
	if c.Mileage.Min != types.MileageMin || c.Mileage.Max != types.MileageMax {
		count++
	}
	if c.FuelType != "" {
		count++
	}
	if c.Year != types.YearAny {
		count++
	}
	if c.Color != "" {
		count++
	}
	if c.State != "" && c.StateUserSet {
		count++
	}
	count += len(c.Features)
	return count
}
