package ranking

import (
	"time"

	"github.com/motorline/vehicle-finder/pkg/types"
)

// Tier is the discrete promotional ranking bucket. Higher wins. Tiers are
// recomputed per evaluation instant because boosts expire.
type Tier int

const (
	TierNone Tier = iota
	TierOtherBoost
	TierPremium
	TierFeatured
	TierTopSearch
	TierSpotlight
)

func (t Tier) String() string {
	switch t {
	case TierSpotlight:
		return "spotlight"
	case TierTopSearch:
		return "top_search"
	case TierFeatured:
		return "featured"
	case TierPremium:
		return "premium"
	case TierOtherBoost:
		return "boosted"
	}
	return "none"
}

// ResolveTier returns the highest tier the vehicle currently qualifies for. A
// boost only counts while active and unexpired at now.
func ResolveTier(vehicle *types.Vehicle, now time.Time) Tier {
	if vehicle.HasBoost(types.BoostHomepageSpotlight, now) {
		return TierSpotlight
	}
	if vehicle.HasBoost(types.BoostTopSearch, now) {
		return TierTopSearch
	}
	if vehicle.HasBoost(types.BoostFeaturedBadge, now) || vehicle.IsFeatured {
		return TierFeatured
	}
	if vehicle.IsPremium {
		return TierPremium
	}
	if vehicle.HasAnyEffectiveBoost(now) {
		return TierOtherBoost
	}
	return TierNone
}
