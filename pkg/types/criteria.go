package types

import "slices"

const CategoryAll = "ALL"

// Global range bounds used to seed an unconstrained criteria. A range at
// these exact bounds counts as inactive.
const (
	PriceMin   = 0
	PriceMax   = 100_000_000
	MileageMin = 0
	MileageMax = 1_000_000
)

const YearAny = 0

type Range struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

func (r Range) Contains(value int) bool {
	return value >= r.Min && value <= r.Max
}

// Criteria is one full set of filter dimension values. The view keeps one
// applied instance and, during an edit session, one draft instance of the
// same shape.
type Criteria struct {
	Category string   `json:"category"`
	Make     string   `json:"make,omitempty"`
	Model    string   `json:"model,omitempty"`
	Price    Range    `json:"price"`
	Mileage  Range    `json:"mileage"`
	FuelType string   `json:"fuelType,omitempty"`
	Year     int      `json:"year,omitempty"`
	Color    string   `json:"color,omitempty"`
	Features []string `json:"features,omitempty"`
	Query    string   `json:"query,omitempty"`

	// State only excludes vehicles when StateUserSet is true. An
	// auto-derived default from the visitor's location is kept for display
	// but never constrains results.
	State        string `json:"state,omitempty"`
	StateUserSet bool   `json:"stateUserSet,omitempty"`
}

// NewCriteria returns an unconstrained criteria seeded with the category the
// view was opened with.
func NewCriteria(defaultCategory string) Criteria {
	if defaultCategory == "" {
		defaultCategory = CategoryAll
	}
	return Criteria{
		Category: defaultCategory,
		Price:    Range{Min: PriceMin, Max: PriceMax},
		Mileage:  Range{Min: MileageMin, Max: MileageMax},
	}
}

func (c *Criteria) Clone() Criteria {
	clone := *c
	clone.Features = slices.Clone(c.Features)
	return clone
}

func (c *Criteria) HasFeature(name string) bool {
	return slices.Contains(c.Features, name)
}

// ClearMakeDependents resets every dimension scoped by make (and therefore
// also by model).
func (c *Criteria) ClearMakeDependents() {
	c.Model = ""
	c.ClearModelDependents()
}

// ClearModelDependents resets the dimensions whose valid choice-set narrows
// with the selected model.
func (c *Criteria) ClearModelDependents() {
	c.FuelType = ""
	c.Year = YearAny
	c.Color = ""
}
