package engine

import "github.com/motorline/vehicle-finder/pkg/types"

// DefaultPageSize matches one viewport worth of listing cards.
const DefaultPageSize = 12

// Window reveals an increasing prefix of one ordered result list. It is
// advanced by an external visibility signal and must be reset whenever the
// inputs that defined the list change.
type Window struct {
	pageSize int
	revealed int
}

func NewWindow(pageSize int) *Window {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Window{pageSize: pageSize, revealed: pageSize}
}

func (w *Window) PageSize() int {
	return w.pageSize
}

func (w *Window) Revealed() int {
	return w.revealed
}

// Advance grows the revealed prefix by one page, capped at the list length.
// Redundant signals once everything is revealed are no-ops.
func (w *Window) Advance(total int) {
	if w.revealed >= total {
		return
	}
	w.revealed = min(w.revealed+w.pageSize, total)
}

// Reset returns the window to a single page, used when criteria or sort
// change and the old position is meaningless.
func (w *Window) Reset() {
	w.revealed = w.pageSize
}

func (w *Window) HasMore(total int) bool {
	return w.revealed < total
}

// Reveal slices the revealed prefix off the ordered list.
func (w *Window) Reveal(result []*types.Vehicle) []*types.Vehicle {
	if w.revealed >= len(result) {
		return result
	}
	return result[:w.revealed]
}
