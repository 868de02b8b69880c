package index

import (
	"iter"
	"slices"
	"sync"

	"github.com/motorline/vehicle-finder/pkg/types"
)

// Catalog holds the in-memory vehicle collection delivered by the feed. The
// version bumps on every mutation; the engine keys its memo on it.
type Catalog struct {
	mu      sync.RWMutex
	items   map[types.VehicleId]*types.Vehicle
	version uint64
}

func NewCatalog() *Catalog {
	return &Catalog{
		items: make(map[types.VehicleId]*types.Vehicle),
	}
}

func (c *Catalog) HandleVehicles(vehicles iter.Seq[*types.Vehicle]) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for vehicle := range vehicles {
		c.items[vehicle.Id] = vehicle
	}
	c.version++
}

func (c *Catalog) Upsert(vehicles ...*types.Vehicle) {
	c.HandleVehicles(slices.Values(vehicles))
}

func (c *Catalog) Remove(ids ...types.VehicleId) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, id := range ids {
		delete(c.items, id)
	}
	c.version++
}

func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Snapshot returns the collection ordered by id together with its version.
// The deterministic base order matters: the engine's stable sort keeps it for
// vehicles the comparator ties on.
func (c *Catalog) Snapshot() ([]*types.Vehicle, uint64) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	vehicles := make([]*types.Vehicle, 0, len(c.items))
	for _, vehicle := range c.items {
		vehicles = append(vehicles, vehicle)
	}
	slices.SortFunc(vehicles, func(a, b *types.Vehicle) int {
		return int(a.Id) - int(b.Id)
	})
	return vehicles, c.version
}
