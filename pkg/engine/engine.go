package engine

import (
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/motorline/vehicle-finder/pkg/filter"
	"github.com/motorline/vehicle-finder/pkg/ranking"
	"github.com/motorline/vehicle-finder/pkg/types"
)

var (
	noComputes = promauto.NewCounter(prometheus.CounterOpts{
		Name: "finder_computes_total",
		Help: "The total number of filter engine computations",
	})
	noMemoHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "finder_compute_memo_hits_total",
		Help: "The total number of computations served from the memo",
	})
)

// memoTTL bounds how long a cached ordering may be reused. Boost tiers are
// time sensitive, an expiring boost must drop out of the ranking without a
// criteria change.
const memoTTL = 30 * time.Second

type memoEntry struct {
	key     string
	result  []*types.Vehicle
	expires time.Time
}

// Engine filters the collection and applies one stable ranking sort. Compute
// is a pure function of (vehicles, criteria, sort); the memo only short
// circuits recomputation for an identical input tuple inside the TTL.
type Engine struct {
	mu   sync.Mutex
	memo memoEntry
	now  func() time.Time
}

func NewEngine() *Engine {
	return &Engine{now: time.Now}
}

// NewEngineWithClock injects the evaluation clock, used by tests to pin boost
// expiry.
func NewEngineWithClock(now func() time.Time) *Engine {
	return &Engine{now: now}
}

// Compute returns every vehicle passing the criteria, ordered by boost tier
// then the requested sort, ties keeping collection order. The version must
// change whenever the collection does.
func (e *Engine) Compute(vehicles []*types.Vehicle, criteria *types.Criteria, order types.SortOrder, version uint64) []*types.Vehicle {
	now := e.now()
	key := memoKey(criteria, order, version)

	e.mu.Lock()
	if key != "" && e.memo.key == key && now.Before(e.memo.expires) {
		result := e.memo.result
		e.mu.Unlock()
		noMemoHits.Inc()
		return result
	}
	e.mu.Unlock()

	noComputes.Inc()
	result := make([]*types.Vehicle, 0, len(vehicles)/4)
	for _, vehicle := range vehicles {
		if filter.Matches(vehicle, criteria) {
			result = append(result, vehicle)
		}
	}
	ranking.SortVehicles(result, order, now)

	if key != "" {
		e.mu.Lock()
		e.memo = memoEntry{key: key, result: result, expires: now.Add(memoTTL)}
		e.mu.Unlock()
	}
	return result
}

// MemoKey identifies a computation for pagination reset purposes: it changes
// whenever criteria or sort order change.
func (e *Engine) MemoKey(criteria *types.Criteria, order types.SortOrder, version uint64) string {
	return memoKey(criteria, order, version)
}

func memoKey(criteria *types.Criteria, order types.SortOrder, version uint64) string {
	data, err := sonic.Marshal(struct {
		Criteria *types.Criteria `json:"c"`
		Order    types.SortOrder `json:"o"`
		Version  uint64          `json:"v"`
	}{criteria, order, version})
	if err != nil {
		return ""
	}
	return string(data)
}
