package types

// CriteriaPatch is the best-effort partial criteria a free-text parse
// produces. Every field is optional; an empty patch means "no additional
// filters". Patches are merged through Changes so dependent dimensions still
// cascade.
type CriteriaPatch struct {
	Category   *string  `json:"category,omitempty"`
	Make       *string  `json:"make,omitempty"`
	Model      *string  `json:"model,omitempty"`
	PriceMin   *int     `json:"priceMin,omitempty"`
	PriceMax   *int     `json:"priceMax,omitempty"`
	MileageMax *int     `json:"mileageMax,omitempty"`
	FuelType   *string  `json:"fuelType,omitempty"`
	Year       *int     `json:"year,omitempty"`
	Color      *string  `json:"color,omitempty"`
	State      *string  `json:"state,omitempty"`
	Features   []string `json:"features,omitempty"`
}

func (p *CriteriaPatch) IsEmpty() bool {
	return p.Category == nil && p.Make == nil && p.Model == nil &&
		p.PriceMin == nil && p.PriceMax == nil && p.MileageMax == nil &&
		p.FuelType == nil && p.Year == nil && p.Color == nil &&
		p.State == nil && len(p.Features) == 0
}

// Changes expands the patch into ordered dimension updates, coarse dimensions
// first so the reset cascade runs before the finer values are written.
func (p *CriteriaPatch) Changes(base Criteria) []Change {
	changes := make([]Change, 0, 8)
	if p.Category != nil {
		changes = append(changes, SetCategory{Value: *p.Category})
	}
	if p.Make != nil {
		changes = append(changes, SetMake{Value: *p.Make})
	}
	if p.Model != nil {
		changes = append(changes, SetModel{Value: *p.Model})
	}
	if p.PriceMin != nil || p.PriceMax != nil {
		priceRange := base.Price
		if p.PriceMin != nil {
			priceRange.Min = *p.PriceMin
		}
		if p.PriceMax != nil {
			priceRange.Max = *p.PriceMax
		}
		changes = append(changes, SetPriceRange{Min: priceRange.Min, Max: priceRange.Max})
	}
	if p.MileageMax != nil {
		changes = append(changes, SetMileageRange{Min: base.Mileage.Min, Max: *p.MileageMax})
	}
	if p.FuelType != nil {
		changes = append(changes, SetFuelType{Value: *p.FuelType})
	}
	if p.Year != nil {
		changes = append(changes, SetYear{Value: *p.Year})
	}
	if p.Color != nil {
		changes = append(changes, SetColor{Value: *p.Color})
	}
	if p.State != nil {
		changes = append(changes, SetState{Value: *p.State, UserSet: true})
	}
	for _, feature := range p.Features {
		changes = append(changes, AddFeature{Name: feature})
	}
	return changes
}
