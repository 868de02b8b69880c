package messaging

import (
	"encoding/json"
	"testing"

	"github.com/motorline/vehicle-finder/pkg/types"
)

func TestGetName_CountryPrefix(t *testing.T) {
	if got := getName("in", VehiclesUpsertedTopic); got != "in_vehicle_added" {
		t.Errorf("Expected in_vehicle_added but got %q", got)
	}
	if got := getName("se", VehiclesRemovedTopic); got != "se_vehicle_removed" {
		t.Errorf("Expected se_vehicle_removed but got %q", got)
	}
}

func TestNewPublishing_RoundTrip(t *testing.T) {
	price := 900000
	vehicles := []*types.Vehicle{
		{Id: 1, Category: "SUV", Make: "Toyota", Model: "Fortuner", Price: &price},
		{Id: 2, Category: "Sedan", Make: "Honda", Model: "City"},
	}
	publishing, err := newPublishing(vehicles)
	if err != nil {
		t.Fatalf("Expected publishing built but got %v", err)
	}
	if publishing.ContentType != "application/json" {
		t.Errorf("Expected application/json but got %q", publishing.ContentType)
	}

	// The consumer side decodes the body the same way the finder binary does.
	var decoded []*types.Vehicle
	if err := json.Unmarshal(publishing.Body, &decoded); err != nil {
		t.Fatalf("Expected decodable body but got %v", err)
	}
	if len(decoded) != 2 || decoded[0].Id != 1 || decoded[1].Make != "Honda" {
		t.Errorf("Expected vehicles back but got %+v", decoded)
	}
	if decoded[0].Price == nil || *decoded[0].Price != 900000 {
		t.Errorf("Expected price preserved but got %v", decoded[0].Price)
	}
}
