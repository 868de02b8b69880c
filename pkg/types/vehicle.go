package types

import "time"

type VehicleId uint32

type BoostType string

const (
	BoostHomepageSpotlight BoostType = "homepage_spotlight"
	BoostTopSearch         BoostType = "top_search"
	BoostFeaturedBadge     BoostType = "featured_badge"
)

// Boost is pure data; whether it currently counts toward ranking is decided
// by IsEffective with an injected evaluation instant.
type Boost struct {
	Type      BoostType `json:"type"`
	IsActive  bool      `json:"isActive"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func (b *Boost) IsEffective(now time.Time) bool {
	return b.IsActive && b.ExpiresAt.After(now)
}

// Vehicle is an immutable listing record owned by the data layer, the engine
// only reads it. Price and Mileage are pointers because the feed delivers
// listings without them; a missing value never fails a range filter.
type Vehicle struct {
	Id         VehicleId `json:"id"`
	Title      string    `json:"title,omitempty"`
	Category   string    `json:"category"`
	Make       string    `json:"make"`
	Model      string    `json:"model"`
	Year       int       `json:"year"`
	Price      *int      `json:"price,omitempty"`
	Mileage    *int      `json:"mileage,omitempty"`
	FuelType   string    `json:"fuelType,omitempty"`
	Color      string    `json:"color,omitempty"`
	State      string    `json:"state,omitempty"`
	Rating     float64   `json:"rating,omitempty"`
	Features   []string  `json:"features,omitempty"`
	Boosts     []Boost   `json:"boosts,omitempty"`
	IsFeatured bool      `json:"isFeatured,omitempty"`
	IsPremium  bool      `json:"isPremium,omitempty"`
	Img        string    `json:"img,omitempty"`
}

func (v *Vehicle) GetId() VehicleId {
	return v.Id
}

func (v *Vehicle) HasBoost(boostType BoostType, now time.Time) bool {
	for i := range v.Boosts {
		if v.Boosts[i].Type == boostType && v.Boosts[i].IsEffective(now) {
			return true
		}
	}
	return false
}

// HasAnyEffectiveBoost reports whether any boost, regardless of type, is
// currently effective.
func (v *Vehicle) HasAnyEffectiveBoost(now time.Time) bool {
	for i := range v.Boosts {
		if v.Boosts[i].IsEffective(now) {
			return true
		}
	}
	return false
}
