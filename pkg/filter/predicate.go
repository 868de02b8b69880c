package filter

import (
	"github.com/motorline/vehicle-finder/pkg/types"
)

// Matches reports whether the vehicle satisfies every active dimension of the
// criteria. Dimensions are independent and combined with AND; an inactive
// dimension (empty string, zero year, full-width range) never excludes
// anything. Pure, no side effects.
func Matches(vehicle *types.Vehicle, criteria *types.Criteria) bool {
	if criteria.Category != "" && criteria.Category != types.CategoryAll {
		if NormalizeCategory(vehicle.Category) != NormalizeCategory(criteria.Category) {
			return false
		}
	}
	if criteria.Make != "" && !FoldEqual(vehicle.Make, criteria.Make) {
		return false
	}
	if criteria.Model != "" && !FoldEqual(vehicle.Model, criteria.Model) {
		return false
	}
	if criteria.FuelType != "" && !FoldEqual(vehicle.FuelType, criteria.FuelType) {
		return false
	}
	if criteria.Color != "" && !FoldEqual(vehicle.Color, criteria.Color) {
		return false
	}
	if criteria.Year != types.YearAny && vehicle.Year != criteria.Year {
		return false
	}
	// A vehicle without a price or mileage cannot be excluded on that
	// dimension.
	if vehicle.Price != nil && !criteria.Price.Contains(*vehicle.Price) {
		return false
	}
	if vehicle.Mileage != nil && !criteria.Mileage.Contains(*vehicle.Mileage) {
		return false
	}
	// An auto-derived state default is display-only.
	if criteria.StateUserSet && criteria.State != "" && !FoldEqual(vehicle.State, criteria.State) {
		return false
	}
	if !hasAllFeatures(vehicle, criteria.Features) {
		return false
	}
	return true
}

// hasAllFeatures checks superset semantics: every selected feature must be
// present on the vehicle.
func hasAllFeatures(vehicle *types.Vehicle, selected []string) bool {
	if len(selected) == 0 {
		return true
	}
	for _, want := range selected {
		found := false
		for _, have := range vehicle.Features {
			if FoldEqual(have, want) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
