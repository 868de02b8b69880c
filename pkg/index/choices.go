package index

import (
	"slices"
	"strings"

	"github.com/motorline/vehicle-finder/pkg/filter"
	"github.com/motorline/vehicle-finder/pkg/types"
)

// ChoiceSets are the valid values for the dependent dimensions given the
// current category/make/model selection. Controls populated from these never
// offer a choice that structurally yields zero results.
type ChoiceSets struct {
	Makes     []string `json:"makes"`
	Models    []string `json:"models"`
	FuelTypes []string `json:"fuelTypes"`
	Years     []int    `json:"years"`
	Colors    []string `json:"colors"`
}

// DeriveChoices scans the collection once and collects the distinct values
// per dimension over the scope the coarser selections define: makes scoped to
// category, models to category+make, the rest to category+make+model.
func DeriveChoices(vehicles []*types.Vehicle, category, makeValue, model string) ChoiceSets {
	makes := newDistinct()
	models := newDistinct()
	fuelTypes := newDistinct()
	colors := newDistinct()
	years := map[int]struct{}{}

	scopedCategory := category != "" && category != types.CategoryAll

	for _, vehicle := range vehicles {
		if scopedCategory && filter.NormalizeCategory(vehicle.Category) != filter.NormalizeCategory(category) {
			continue
		}
		makes.add(vehicle.Make)
		if makeValue != "" && !filter.FoldEqual(vehicle.Make, makeValue) {
			continue
		}
		models.add(vehicle.Model)
		if model != "" && !filter.FoldEqual(vehicle.Model, model) {
			continue
		}
		fuelTypes.add(vehicle.FuelType)
		colors.add(vehicle.Color)
		if vehicle.Year != 0 {
			years[vehicle.Year] = struct{}{}
		}
	}

	yearList := make([]int, 0, len(years))
	for year := range years {
		yearList = append(yearList, year)
	}
	// newest model years first
	slices.SortFunc(yearList, func(a, b int) int { return b - a })

	return ChoiceSets{
		Makes:     makes.sorted(),
		Models:    models.sorted(),
		FuelTypes: fuelTypes.sorted(),
		Years:     yearList,
		Colors:    colors.sorted(),
	}
}

// ContainsValue checks a stored dimension value against a derived choice-set,
// used to re-validate staged values after a coarser selection changed.
func ContainsValue(choices []string, value string) bool {
	return slices.ContainsFunc(choices, func(choice string) bool {
		return filter.FoldEqual(choice, value)
	})
}

// distinct keeps the first-seen casing per folded key.
type distinct struct {
	seen   map[string]struct{}
	values []string
}

func newDistinct() *distinct {
	return &distinct{seen: make(map[string]struct{})}
}

func (d *distinct) add(value string) {
	if value == "" {
		return
	}
	key := filter.Fold(value)
	if _, ok := d.seen[key]; ok {
		return
	}
	d.seen[key] = struct{}{}
	d.values = append(d.values, value)
}

func (d *distinct) sorted() []string {
	slices.SortFunc(d.values, func(a, b string) int {
		return strings.Compare(filter.Fold(a), filter.Fold(b))
	})
	if d.values == nil {
		return []string{}
	}
	return d.values
}
