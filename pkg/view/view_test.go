package view

import (
	"testing"

	"github.com/motorline/vehicle-finder/pkg/engine"
	"github.com/motorline/vehicle-finder/pkg/index"
	"github.com/motorline/vehicle-finder/pkg/types"
)

func intPtr(v int) *int {
	return &v
}

func testCatalog() *index.Catalog {
	catalog := index.NewCatalog()
	catalog.Upsert(
		&types.Vehicle{Id: 1, Category: "SUV", Make: "Toyota", Model: "Fortuner", FuelType: "Diesel", Year: 2021, Color: "White", Price: intPtr(900000)},
		&types.Vehicle{Id: 2, Category: "SUV", Make: "Hyundai", Model: "Creta", FuelType: "Petrol", Year: 2022, Color: "Red", Price: intPtr(1200000)},
		&types.Vehicle{Id: 3, Category: "Sedan", Make: "Honda", Model: "City", FuelType: "Petrol", Year: 2020, Color: "Silver", Price: intPtr(800000)},
		&types.Vehicle{Id: 4, Category: "Sedan", Make: "Toyota", Model: "Camry", FuelType: "Hybrid", Year: 2023, Color: "White", Price: intPtr(3500000)},
	)
	return catalog
}

func testView(opts Options) *View {
	return NewView(testCatalog(), engine.NewEngine(), opts)
}

func TestUpdate_CategoryChangeClearsDependents(t *testing.T) {
	v := testView(Options{DefaultCategory: "SUV"})
	v.Update(types.SetMake{Value: "Toyota"})
	v.Update(types.SetModel{Value: "Fortuner"})
	v.Update(types.SetFuelType{Value: "Diesel"})

	v.Update(types.SetCategory{Value: "Sedan"})
	criteria := v.Criteria()
	if criteria.Make != "" || criteria.Model != "" || criteria.FuelType != "" {
		t.Errorf("Expected category change to clear make/model/fuel but got %+v", criteria)
	}
}

func TestUpdate_MakeChangeClearsModelAndFiner(t *testing.T) {
	v := testView(Options{})
	v.Update(types.SetMake{Value: "Toyota"})
	v.Update(types.SetModel{Value: "Fortuner"})
	v.Update(types.SetYear{Value: 2021})
	v.Update(types.SetColor{Value: "White"})

	v.Update(types.SetMake{Value: "Hyundai"})
	criteria := v.Criteria()
	if criteria.Model != "" || criteria.Year != types.YearAny || criteria.Color != "" {
		t.Errorf("Expected make change to clear model/year/color but got %+v", criteria)
	}
}

func TestResults_FilteredAndCounted(t *testing.T) {
	v := testView(Options{DefaultCategory: "SUV"})
	res := v.Results()
	if res.Total != 2 {
		t.Errorf("Expected 2 SUVs but got %d", res.Total)
	}
	if res.ActiveCount != 0 {
		t.Errorf("Expected default category not to count as active but got %d", res.ActiveCount)
	}

	v.Update(types.SetMake{Value: "Toyota"})
	res = v.Results()
	if res.Total != 1 {
		t.Errorf("Expected 1 Toyota SUV but got %d", res.Total)
	}
	if res.ActiveCount != 1 {
		t.Errorf("Expected 1 active filter but got %d", res.ActiveCount)
	}
}

func TestResults_PaginationResetsOnCriteriaChange(t *testing.T) {
	catalog := index.NewCatalog()
	vehicles := make([]*types.Vehicle, 0, 30)
	for i := 0; i < 30; i++ {
		vehicles = append(vehicles, &types.Vehicle{Id: types.VehicleId(i + 1), Category: "SUV", Make: "Tata", Year: 2010 + i%10})
	}
	catalog.Upsert(vehicles...)
	v := NewView(catalog, engine.NewEngine(), Options{PageSize: 5})

	res := v.Advance()
	if res.Revealed != 10 {
		t.Errorf("Expected 10 revealed after one advance but got %d", res.Revealed)
	}

	v.Update(types.SetCategory{Value: "SUV"})
	res = v.Results()
	if res.Revealed != 5 {
		t.Errorf("Expected reset to one page after criteria change but got %d", res.Revealed)
	}

	v.SetSort(types.SortRating)
	v.Advance()
	v.SetSort(types.SortNewest)
	res = v.Results()
	if res.Revealed != 5 {
		t.Errorf("Expected reset to one page after sort change but got %d", res.Revealed)
	}
}

func TestResults_PaginationSurvivesFeedUpdates(t *testing.T) {
	catalog := index.NewCatalog()
	vehicles := make([]*types.Vehicle, 0, 30)
	for i := 0; i < 30; i++ {
		vehicles = append(vehicles, &types.Vehicle{Id: types.VehicleId(i + 1), Category: "SUV", Make: "Tata", Year: 2010 + i%10})
	}
	catalog.Upsert(vehicles...)
	v := NewView(catalog, engine.NewEngine(), Options{PageSize: 5})

	res := v.Advance()
	if res.Revealed != 10 {
		t.Errorf("Expected 10 revealed after one advance but got %d", res.Revealed)
	}

	catalog.Upsert(&types.Vehicle{Id: 31, Category: "SUV", Make: "Tata", Year: 2024})
	res = v.Results()
	if res.Revealed != 10 {
		t.Errorf("Expected scroll position kept across a feed upsert but got %d revealed", res.Revealed)
	}
	if res.Total != 31 {
		t.Errorf("Expected new vehicle in the total but got %d", res.Total)
	}

	catalog.Remove(31)
	res = v.Results()
	if res.Revealed != 10 {
		t.Errorf("Expected scroll position kept across a feed removal but got %d revealed", res.Revealed)
	}
}

func TestApplyDraft_RevalidatesDependents(t *testing.T) {
	v := testView(Options{})
	v.OpenDraft()
	v.Stage(types.SetMake{Value: "Toyota"})
	v.Stage(types.SetFuelType{Value: "Diesel"})
	// Force an invalid combination into the draft: Honda offers no Diesel.
	v.Stage(types.SetMake{Value: "Honda"})
	v.Stage(types.SetFuelType{Value: "Diesel"})
	v.ApplyDraft()

	criteria := v.Criteria()
	if criteria.Make != "Honda" {
		t.Errorf("Expected make Honda but got %q", criteria.Make)
	}
	if criteria.FuelType != "" {
		t.Errorf("Expected invalid fuel type reset but got %q", criteria.FuelType)
	}
}

func TestApplyDraft_KeepsValidDependents(t *testing.T) {
	v := testView(Options{})
	v.OpenDraft()
	v.Stage(types.SetMake{Value: "Toyota"})
	v.Stage(types.SetModel{Value: "Fortuner"})
	v.Stage(types.SetFuelType{Value: "Diesel"})
	v.Stage(types.SetYear{Value: 2021})
	v.ApplyDraft()

	criteria := v.Criteria()
	if criteria.FuelType != "Diesel" || criteria.Year != 2021 {
		t.Errorf("Expected valid dependents kept but got %+v", criteria)
	}
}

func TestApplyDraft_AutoStateNotUpgraded(t *testing.T) {
	v := testView(Options{AutoState: "KA"})
	v.OpenDraft()
	v.Stage(types.SetMake{Value: "Toyota"})
	v.ApplyDraft()

	criteria := v.Criteria()
	if criteria.StateUserSet {
		t.Errorf("Expected inherited auto state to stay non-user-set")
	}
	if criteria.State != "KA" {
		t.Errorf("Expected auto state preserved but got %q", criteria.State)
	}
}

func TestApplyDraft_ChangedStateBecomesUserSet(t *testing.T) {
	v := testView(Options{AutoState: "KA"})
	v.OpenDraft()
	v.Stage(types.SetState{Value: "MH"})
	v.ApplyDraft()

	criteria := v.Criteria()
	if !criteria.StateUserSet {
		t.Errorf("Expected changed state to become user-set")
	}
}

func TestCancelDraft_DiscardsChanges(t *testing.T) {
	v := testView(Options{})
	v.OpenDraft()
	v.Stage(types.SetMake{Value: "Toyota"})
	v.CancelDraft()

	criteria := v.Criteria()
	if criteria.Make != "" {
		t.Errorf("Expected cancelled draft to leave applied criteria untouched")
	}
	if _, open := v.Draft(); open {
		t.Errorf("Expected no open draft after cancel")
	}
}

func TestResetDraft_ReturnsToOriginalDefaultCategory(t *testing.T) {
	v := testView(Options{DefaultCategory: "SUV"})
	v.OpenDraft()
	v.Stage(types.SetCategory{Value: "Sedan"})
	v.Stage(types.SetPriceRange{Min: 1, Max: 2})
	v.ResetDraft()
	v.ApplyDraft()

	criteria := v.Criteria()
	if criteria.Category != "SUV" {
		t.Errorf("Expected reset to the original default category but got %q", criteria.Category)
	}
	if criteria.Price.Min != types.PriceMin || criteria.Price.Max != types.PriceMax {
		t.Errorf("Expected ranges back at global bounds but got %+v", criteria.Price)
	}
}

func TestActiveCount(t *testing.T) {
	criteria := types.NewCriteria("SUV")
	if got := ActiveCount(&criteria, "SUV"); got != 0 {
		t.Errorf("Expected 0 active filters but got %d", got)
	}
	criteria.Make = "Toyota"
	criteria.Features = []string{"Sunroof", "ABS"}
	criteria.State = "KA"
	criteria.StateUserSet = false
	if got := ActiveCount(&criteria, "SUV"); got != 3 {
		t.Errorf("Expected 3 active filters (auto state excluded) but got %d", got)
	}
	criteria.StateUserSet = true
	if got := ActiveCount(&criteria, "SUV"); got != 4 {
		t.Errorf("Expected 4 active filters with user-set state but got %d", got)
	}
	criteria.Category = "Sedan"
	if got := ActiveCount(&criteria, "SUV"); got != 5 {
		t.Errorf("Expected changed category to count but got %d", got)
	}
}

func TestApplyParsed_SequenceGuard(t *testing.T) {
	v := testView(Options{})
	oldSeq := v.NextParseSeq("toyota suv")
	newSeq := v.NextParseSeq("honda sedan")

	honda := "Honda"
	if applied := v.ApplyParsed(newSeq, types.CriteriaPatch{Make: &honda}); !applied {
		t.Errorf("Expected newest parse result applied")
	}
	toyota := "Toyota"
	if applied := v.ApplyParsed(oldSeq, types.CriteriaPatch{Make: &toyota}); applied {
		t.Errorf("Expected stale parse result dropped")
	}
	criteria := v.Criteria()
	if criteria.Make != "Honda" {
		t.Errorf("Expected last-write-wins make Honda but got %q", criteria.Make)
	}
	if criteria.Query != "honda sedan" {
		t.Errorf("Expected literal query text preserved but got %q", criteria.Query)
	}
}

func TestApplyParsed_EmptyPatchKeepsFilters(t *testing.T) {
	v := testView(Options{})
	v.Update(types.SetMake{Value: "Toyota"})
	seq := v.NextParseSeq("something unparseable")
	if applied := v.ApplyParsed(seq, types.CriteriaPatch{}); !applied {
		t.Errorf("Expected empty patch accepted")
	}
	if criteria := v.Criteria(); criteria.Make != "Toyota" {
		t.Errorf("Expected failed parse to leave filters untouched")
	}
}
