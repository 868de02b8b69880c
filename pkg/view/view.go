package view

import (
	"sync"

	"github.com/motorline/vehicle-finder/pkg/engine"
	"github.com/motorline/vehicle-finder/pkg/index"
	"github.com/motorline/vehicle-finder/pkg/types"
)

// View owns the state of one browsing surface: the applied criteria, the
// current draft editing session, the sort order and the pagination window.
// All mutation goes through the reset cascade in types.ApplyChange; the view
// additionally owns the draft/apply separation and the pagination resets.
type View struct {
	mu      sync.Mutex
	catalog *index.Catalog
	engine  *engine.Engine
	window  *engine.Window

	// defaultCategory is the category this view was opened with; reset
	// returns to it, and it does not count as an active filter.
	defaultCategory string

	applied types.Criteria
	order   types.SortOrder
	draft   *types.Criteria

	// lastKey identifies the result list the window position belongs to.
	lastKey string

	// parseSeq guards free-text parse results, see ApplyParsed.
	parseSeq uint64
}

type Options struct {
	DefaultCategory string
	PageSize        int

	// AutoState is the region default resolved from the visitor's location
	// by the caller. It is seeded with StateUserSet=false and therefore
	// never excludes results.
	AutoState string
}

func NewView(catalog *index.Catalog, eng *engine.Engine, opts Options) *View {
	applied := types.NewCriteria(opts.DefaultCategory)
	if opts.AutoState != "" {
		applied.State = opts.AutoState
		applied.StateUserSet = false
	}
	return &View{
		catalog:         catalog,
		engine:          eng,
		window:          engine.NewWindow(opts.PageSize),
		defaultCategory: applied.Category,
		applied:         applied,
		order:           types.DefaultSort,
	}
}

// Results computes the current ordered list and reveals the window prefix.
func (v *View) Results() Result {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.resultsLocked()
}

func (v *View) resultsLocked() Result {
	vehicles, version := v.catalog.Snapshot()
	// The reset key deliberately excludes the catalog version: only a
	// criteria or sort change collapses the revealed prefix, a background
	// feed tick must not throw away scroll position.
	key := v.engine.MemoKey(&v.applied, v.order, 0)
	if key != v.lastKey {
		v.window.Reset()
		v.lastKey = key
	}
	ordered := v.engine.Compute(vehicles, &v.applied, v.order, version)
	revealed := v.window.Reveal(ordered)
	return Result{
		Vehicles:    revealed,
		Total:       len(ordered),
		Revealed:    len(revealed),
		HasMore:     v.window.HasMore(len(ordered)),
		ActiveCount: v.activeCountLocked(),
		Criteria:    v.applied.Clone(),
		Sort:        v.order,
	}
}

// Result is the revealed subset plus the display metadata derived from it.
type Result struct {
	Vehicles    []*types.Vehicle `json:"items"`
	Total       int              `json:"total"`
	Revealed    int              `json:"revealed"`
	HasMore     bool             `json:"hasMore"`
	ActiveCount int              `json:"activeFilters"`
	Criteria    types.Criteria   `json:"criteria"`
	Sort        types.SortOrder  `json:"sort"`
}

// Advance is the visibility-driven pagination signal. It recomputes first so
// the cap applies to the current list, then grows the window by one page.
// Signals arriving once everything is revealed are no-ops.
func (v *View) Advance() Result {
	v.mu.Lock()
	defer v.mu.Unlock()
	res := v.resultsLocked()
	v.window.Advance(res.Total)
	return v.resultsLocked()
}

// Update applies one dimension change directly to the applied criteria,
// running the dependent reset cascade. The pagination window resets through
// the memo key comparison on the next Results call.
func (v *View) Update(change types.Change) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.applied.ApplyChange(change)
}

func (v *View) SetSort(order types.SortOrder) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.order = order
}

func (v *View) Criteria() types.Criteria {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.applied.Clone()
}

// Choices derives the valid dependent choice-sets for the applied selection.
func (v *View) Choices() index.ChoiceSets {
	v.mu.Lock()
	defer v.mu.Unlock()
	vehicles, _ := v.catalog.Snapshot()
	return index.DeriveChoices(vehicles, v.applied.Category, v.applied.Make, v.applied.Model)
}
