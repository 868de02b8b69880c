package view

import (
	"github.com/motorline/vehicle-finder/pkg/filter"
	"github.com/motorline/vehicle-finder/pkg/index"
	"github.com/motorline/vehicle-finder/pkg/types"
)

// OpenDraft starts an edit session seeded from the applied criteria. A second
// call while a session is open reseeds it.
func (v *View) OpenDraft() {
	v.mu.Lock()
	defer v.mu.Unlock()
	draft := v.applied.Clone()
	v.draft = &draft
}

// Stage applies one change to the draft, cascading like a direct update. It
// is a no-op when no edit session is open.
func (v *View) Stage(change types.Change) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.draft == nil {
		return
	}
	v.draft.ApplyChange(change)
}

func (v *View) Draft() (types.Criteria, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.draft == nil {
		return types.Criteria{}, false
	}
	return v.draft.Clone(), true
}

func (v *View) CancelDraft() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.draft = nil
}

// ApplyDraft validates the draft and replaces the applied criteria in one
// update. Dependent values that fell out of the draft's choice-set are reset
// to "no constraint" instead of silently kept; the region value only upgrades
// to user-set when it actually changed against the previously applied value.
func (v *View) ApplyDraft() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.draft == nil {
		return
	}
	draft := v.draft.Clone()

	vehicles, _ := v.catalog.Snapshot()
	choices := index.DeriveChoices(vehicles, draft.Category, draft.Make, draft.Model)

	// Coarse dimensions first: an invalid make or model changes the scope
	// the finer dimensions are validated against.
	if draft.Make != "" && !index.ContainsValue(choices.Makes, draft.Make) {
		draft.Make = ""
		draft.ClearMakeDependents()
		choices = index.DeriveChoices(vehicles, draft.Category, draft.Make, draft.Model)
	}
	if draft.Model != "" && !index.ContainsValue(choices.Models, draft.Model) {
		draft.Model = ""
		draft.ClearModelDependents()
		choices = index.DeriveChoices(vehicles, draft.Category, draft.Make, draft.Model)
	}
	if draft.FuelType != "" && !index.ContainsValue(choices.FuelTypes, draft.FuelType) {
		draft.FuelType = ""
	}
	if draft.Color != "" && !index.ContainsValue(choices.Colors, draft.Color) {
		draft.Color = ""
	}
	if draft.Year != types.YearAny && !containsYear(choices.Years, draft.Year) {
		draft.Year = types.YearAny
	}

	// Reapplying an inherited auto-detected region must not make it a user
	// choice.
	if filter.FoldEqual(draft.State, v.applied.State) {
		draft.StateUserSet = v.applied.StateUserSet
	} else if draft.State != "" {
		draft.StateUserSet = true
	} else {
		draft.StateUserSet = false
	}

	v.applied = draft
	v.draft = nil
	v.window.Reset()
	v.lastKey = ""
}

// ResetDraft returns the draft to the initial state this view was opened
// with: the original default category, full ranges, empty sets. The auto
// region default is not restored, a reset clears the region entirely.
func (v *View) ResetDraft() {
	v.mu.Lock()
	defer v.mu.Unlock()
	reset := types.NewCriteria(v.defaultCategory)
	v.draft = &reset
}

func containsYear(years []int, year int) bool {
	for _, y := range years {
		if y == year {
			return true
		}
	}
	return false
}
