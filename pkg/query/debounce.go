package query

import (
	"context"
	"sync"
	"time"

	"github.com/motorline/vehicle-finder/pkg/types"
)

// DefaultDebounce is the pause after the last keystroke before a parse is
// dispatched.
const DefaultDebounce = 300 * time.Millisecond

// Sink receives parse results together with the sequence number the query was
// issued under. The view uses the sequence to drop stale results.
type Sink interface {
	NextParseSeq(query string) uint64
	ApplyParsed(seq uint64, patch types.CriteriaPatch) bool
}

// Debouncer coalesces keystrokes into one parse call and guarantees
// last-write-wins: a parse for an older query that resolves after a newer one
// was issued is discarded, never queued.
type Debouncer struct {
	mu     sync.Mutex
	parser Parser
	sink   Sink
	delay  time.Duration
	timer  *time.Timer
}

func NewDebouncer(parser Parser, sink Sink, delay time.Duration) *Debouncer {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	return &Debouncer{parser: parser, sink: sink, delay: delay}
}

// Query registers a keystroke. The literal text lands in the sink
// immediately; the structured parse is scheduled after the debounce delay.
func (d *Debouncer) Query(ctx context.Context, text string) {
	seq := d.sink.NextParseSeq(text)

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, func() {
		patch := d.parser.Parse(ctx, text)
		d.sink.ApplyParsed(seq, patch)
	})
}

// Flush cancels any pending dispatch, used on view teardown.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
