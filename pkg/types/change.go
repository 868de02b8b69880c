package types

// Change is a tagged union over the filter dimensions. Every producer of a
// filter update goes through ApplyChange so the reset cascade for dependent
// dimensions lives in exactly one switch.
type Change interface {
	isChange()
}

type SetCategory struct{ Value string }
type SetMake struct{ Value string }
type SetModel struct{ Value string }
type SetPriceRange struct{ Min, Max int }
type SetMileageRange struct{ Min, Max int }
type SetFuelType struct{ Value string }
type SetYear struct{ Value int }
type SetColor struct{ Value string }
type SetState struct {
	Value   string
	UserSet bool
}
type AddFeature struct{ Name string }
type RemoveFeature struct{ Name string }
type SetQuery struct{ Value string }

func (SetCategory) isChange()     {}
func (SetMake) isChange()         {}
func (SetModel) isChange()        {}
func (SetPriceRange) isChange()   {}
func (SetMileageRange) isChange() {}
func (SetFuelType) isChange()     {}
func (SetYear) isChange()         {}
func (SetColor) isChange()        {}
func (SetState) isChange()        {}
func (AddFeature) isChange()      {}
func (RemoveFeature) isChange()   {}
func (SetQuery) isChange()        {}

// ApplyChange mutates the criteria with one dimension update. Changing a
// coarser dimension clears every finer dependent dimension in the same call,
// stale values never survive an incompatible parent selection.
func (c *Criteria) ApplyChange(change Change) {
	switch v := change.(type) {
	case SetCategory:
		if c.Category == v.Value {
			return
		}
		c.Category = v.Value
		c.Make = ""
		c.ClearMakeDependents()
	case SetMake:
		if c.Make == v.Value {
			return
		}
		c.Make = v.Value
		c.ClearMakeDependents()
	case SetModel:
		if c.Model == v.Value {
			return
		}
		c.Model = v.Value
		c.ClearModelDependents()
	case SetPriceRange:
		c.Price = Range{Min: v.Min, Max: v.Max}
	case SetMileageRange:
		c.Mileage = Range{Min: v.Min, Max: v.Max}
	case SetFuelType:
		c.FuelType = v.Value
	case SetYear:
		c.Year = v.Value
	case SetColor:
		c.Color = v.Value
	case SetState:
		c.State = v.Value
		c.StateUserSet = v.UserSet
	case AddFeature:
		if !c.HasFeature(v.Name) {
			c.Features = append(c.Features, v.Name)
		}
	case RemoveFeature:
		for i, f := range c.Features {
			if f == v.Name {
				c.Features = append(c.Features[:i], c.Features[i+1:]...)
				break
			}
		}
	case SetQuery:
		c.Query = v.Value
	}
}
