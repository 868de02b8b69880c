package server

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/motorline/vehicle-finder/pkg/engine"
	"github.com/motorline/vehicle-finder/pkg/index"
	"github.com/motorline/vehicle-finder/pkg/query"
	"github.com/motorline/vehicle-finder/pkg/types"
)

func intPtr(v int) *int {
	return &v
}

func testServer() *WebServer {
	catalog := index.NewCatalog()
	catalog.Upsert(
		&types.Vehicle{Id: 1, Category: "SUV", Make: "Toyota", Model: "Fortuner", Year: 2021, Price: intPtr(900000), FuelType: "Diesel"},
		&types.Vehicle{Id: 2, Category: "SUV", Make: "Hyundai", Model: "Creta", Year: 2022, Price: intPtr(1200000), FuelType: "Petrol"},
		&types.Vehicle{Id: 3, Category: "Sedan", Make: "Honda", Model: "City", Year: 2020, Price: intPtr(800000), FuelType: "Petrol"},
	)
	return NewWebServer(catalog, engine.NewEngine(), query.NoopParser{}, nil)
}

func TestSearchHandler(t *testing.T) {
	ws := testServer()
	r := httptest.NewRequest("GET", "/api/search?category=SUV&sort=price_asc", nil)
	w := httptest.NewRecorder()
	ws.Handler().ServeHTTP(w, r)

	if w.Code != 200 {
		t.Fatalf("Expected 200 but got %d", w.Code)
	}
	var response SearchResponse
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Expected valid JSON but got %v", err)
	}
	if response.Total != 2 {
		t.Errorf("Expected 2 SUVs but got %d", response.Total)
	}
	if len(response.Items) != 2 || response.Items[0].Id != 1 {
		t.Errorf("Expected cheapest SUV first but got %+v", response.Items)
	}
	if response.HasMore {
		t.Errorf("Expected everything revealed")
	}
}

func TestSearchHandler_RevealPrefix(t *testing.T) {
	ws := testServer()
	r := httptest.NewRequest("GET", "/api/search?size=1&pages=1", nil)
	w := httptest.NewRecorder()
	ws.Handler().ServeHTTP(w, r)

	var response SearchResponse
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Expected valid JSON but got %v", err)
	}
	if response.Revealed != 1 || !response.HasMore {
		t.Errorf("Expected one revealed with more available but got %+v", response)
	}
}

func TestSearchHandler_ActiveCountAgainstViewDefault(t *testing.T) {
	ws := testServer()
	r := httptest.NewRequest("GET", "/api/search?category=Sedan&defaultCategory=ALL", nil)
	w := httptest.NewRecorder()
	ws.Handler().ServeHTTP(w, r)

	var response SearchResponse
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Expected valid JSON but got %v", err)
	}
	if response.ActiveFilters != 1 {
		t.Errorf("Expected category to count against the view default but got %d", response.ActiveFilters)
	}

	// Without a view default the requested category is the baseline.
	r = httptest.NewRequest("GET", "/api/search?category=Sedan", nil)
	w = httptest.NewRecorder()
	ws.Handler().ServeHTTP(w, r)
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Expected valid JSON but got %v", err)
	}
	if response.ActiveFilters != 0 {
		t.Errorf("Expected 0 active filters without a view default but got %d", response.ActiveFilters)
	}
}

func TestChoicesHandler(t *testing.T) {
	ws := testServer()
	r := httptest.NewRequest("GET", "/api/choices?category=SUV", nil)
	w := httptest.NewRecorder()
	ws.Handler().ServeHTTP(w, r)

	var choices index.ChoiceSets
	if err := json.Unmarshal(w.Body.Bytes(), &choices); err != nil {
		t.Fatalf("Expected valid JSON but got %v", err)
	}
	if len(choices.Makes) != 2 {
		t.Errorf("Expected 2 makes in SUV scope but got %v", choices.Makes)
	}
}
