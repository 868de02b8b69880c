package view

import "github.com/motorline/vehicle-finder/pkg/types"

// NextParseSeq reserves a sequence number for a free-text parse request. The
// view keeps the literal query text immediately; the structured filters only
// land if the parse result is still the newest one when it arrives.
func (v *View) NextParseSeq(query string) uint64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.parseSeq++
	v.applied.ApplyChange(types.SetQuery{Value: query})
	return v.parseSeq
}

// ApplyParsed merges a parse result into the applied criteria. Results for
// anything but the newest sequence are dropped (last-write-wins); an empty
// patch, which is also what parser failures degrade to, changes nothing.
func (v *View) ApplyParsed(seq uint64, patch types.CriteriaPatch) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if seq != v.parseSeq {
		return false
	}
	if patch.IsEmpty() {
		return true
	}
	for _, change := range patch.Changes(v.applied) {
		v.applied.ApplyChange(change)
	}
	return true
}
