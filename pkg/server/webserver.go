package server

import (
	"log"
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/motorline/vehicle-finder/pkg/engine"
	"github.com/motorline/vehicle-finder/pkg/index"
	"github.com/motorline/vehicle-finder/pkg/query"
	"github.com/motorline/vehicle-finder/pkg/storage"
	"github.com/motorline/vehicle-finder/pkg/types"
	"github.com/motorline/vehicle-finder/pkg/view"
)

var (
	noSearches = promauto.NewCounter(prometheus.CounterOpts{
		Name: "finder_searches_total",
		Help: "The total number of processed searches",
	})
	noChoiceRequests = promauto.NewCounter(prometheus.CounterOpts{
		Name: "finder_choice_requests_total",
		Help: "The total number of choice-set derivations served",
	})
)

type WebServer struct {
	Catalog       *index.Catalog
	Engine        *engine.Engine
	Parser        query.Parser
	SavedSearches *storage.SavedSearchStore
}

func NewWebServer(catalog *index.Catalog, eng *engine.Engine, parser query.Parser, savedSearches *storage.SavedSearchStore) *WebServer {
	if parser == nil {
		parser = query.NoopParser{}
	}
	return &WebServer{
		Catalog:       catalog,
		Engine:        eng,
		Parser:        parser,
		SavedSearches: savedSearches,
	}
}

func (ws *WebServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/search", ws.SearchHandler)
	mux.HandleFunc("GET /api/choices", ws.ChoicesHandler)
	if ws.SavedSearches != nil {
		mux.HandleFunc("GET /api/saved-searches", ws.ListSavedSearches)
		mux.HandleFunc("POST /api/saved-searches", ws.CreateSavedSearch)
		mux.HandleFunc("DELETE /api/saved-searches/{id}", ws.DeleteSavedSearch)
	}
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return mux
}

// SearchResponse mirrors view.Result for stateless HTTP consumption.
type SearchResponse struct {
	Items         []*types.Vehicle  `json:"items"`
	Total         int               `json:"total"`
	Revealed      int               `json:"revealed"`
	HasMore       bool              `json:"hasMore"`
	ActiveFilters int               `json:"activeFilters"`
	Sort          types.SortOrder   `json:"sort"`
	Criteria      types.Criteria    `json:"criteria"`
	Choices       *index.ChoiceSets `json:"choices,omitempty"`
}

// SearchHandler runs one filtered, ranked, prefix-revealed search. The reveal
// prefix is pages*size so a scrolling client asks for a growing prefix of the
// same ordering instead of disjoint pages.
func (ws *WebServer) SearchHandler(w http.ResponseWriter, r *http.Request) {
	noSearches.Inc()
	request, err := GetSearchRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	criteria := request.ToCriteria()
	if request.Query != "" {
		patch := ws.Parser.Parse(r.Context(), request.Query)
		for _, change := range patch.Changes(criteria) {
			criteria.ApplyChange(change)
		}
	}

	vehicles, version := ws.Catalog.Snapshot()
	order := request.SortOrder()
	ordered := ws.Engine.Compute(vehicles, &criteria, order, version)

	revealed := min(request.Revealed(), len(ordered))
	response := &SearchResponse{
		Items:         ordered[:revealed],
		Total:         len(ordered),
		Revealed:      revealed,
		HasMore:       revealed < len(ordered),
		ActiveFilters: view.ActiveCount(&criteria, request.ActiveCountDefault()),
		Sort:          order,
		Criteria:      criteria,
	}
	writeJson(w, response)
}

func (ws *WebServer) ChoicesHandler(w http.ResponseWriter, r *http.Request) {
	noChoiceRequests.Inc()
	q := r.URL.Query()
	vehicles, _ := ws.Catalog.Snapshot()
	choices := index.DeriveChoices(vehicles, q.Get("category"), q.Get("make"), q.Get("model"))
	writeJson(w, &choices)
}

func writeJson(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	bytes, err := sonic.Marshal(data)
	if err != nil {
		log.Printf("Failed to encode response: %v", err)
		http.Error(w, "encoding failed", http.StatusInternalServerError)
		return
	}
	if _, err = w.Write(bytes); err != nil {
		log.Printf("Failed to write response: %v", err)
	}
}

func userId(r *http.Request) string {
	if id := r.Header.Get("X-User-Id"); id != "" {
		return id
	}
	return "anonymous"
}

type savedSearchRequest struct {
	Name     string         `json:"name"`
	Criteria types.Criteria `json:"criteria"`
	Sort     string         `json:"sort"`
}

func (ws *WebServer) CreateSavedSearch(w http.ResponseWriter, r *http.Request) {
	var request savedSearchRequest
	if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	search, err := ws.SavedSearches.Save(r.Context(), userId(r), request.Name, request.Criteria, types.ParseSortOrder(request.Sort))
	if err != nil {
		log.Printf("Failed to save search: %v", err)
		http.Error(w, "save failed", http.StatusInternalServerError)
		return
	}
	writeJson(w, search)
}

func (ws *WebServer) ListSavedSearches(w http.ResponseWriter, r *http.Request) {
	searches, err := ws.SavedSearches.List(r.Context(), userId(r))
	if err != nil {
		log.Printf("Failed to list searches: %v", err)
		http.Error(w, "list failed", http.StatusInternalServerError)
		return
	}
	writeJson(w, searches)
}

func (ws *WebServer) DeleteSavedSearch(w http.ResponseWriter, r *http.Request) {
	if err := ws.SavedSearches.Delete(r.Context(), userId(r), r.PathValue("id")); err != nil {
		log.Printf("Failed to delete search: %v", err)
		http.Error(w, "delete failed", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
