package server

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/gorilla/schema"

	"github.com/motorline/vehicle-finder/pkg/types"
)

// SearchRequest is the wire shape of one catalog search. Ranges travel as
// "min-max" strings and are decoded separately from the flat fields.
type SearchRequest struct {
	Category string   `json:"category" schema:"category"`
	Make     string   `json:"make" schema:"make"`
	Model    string   `json:"model" schema:"model"`
	FuelType string   `json:"fuelType" schema:"fuel"`
	Year     int      `json:"year" schema:"year"`
	Color    string   `json:"color" schema:"color"`
	State    string   `json:"state" schema:"state"`
	StateSet bool     `json:"stateSet" schema:"stateSet"`
	Features []string `json:"features" schema:"feature"`
	Query    string   `json:"query" schema:"query"`
	Sort     string   `json:"sort" schema:"sort,default:newest"`
	PageSize int      `json:"pageSize" schema:"size,default:12"`
	Pages    int      `json:"pages" schema:"pages,default:1"`

	// DefaultCategory is the category the client's view opened with. The
	// active filter count only counts the category dimension when it
	// differs from it; absent, the requested category is its own default.
	DefaultCategory string `json:"defaultCategory" schema:"defaultCategory"`

	Price   types.Range `json:"price" schema:"-"`
	Mileage types.Range `json:"mileage" schema:"-"`
}

var queryDecoder = func() *schema.Decoder {
	decoder := schema.NewDecoder()
	decoder.IgnoreUnknownKeys(true)
	return decoder
}()

func GetSearchRequest(r *http.Request) (*SearchRequest, error) {
	request := &SearchRequest{
		Price:   types.Range{Min: types.PriceMin, Max: types.PriceMax},
		Mileage: types.Range{Min: types.MileageMin, Max: types.MileageMax},
	}
	query := r.URL.Query()
	if err := queryDecoder.Decode(request, query); err != nil {
		return nil, err
	}
	decodeRanges(query, request)
	return request, nil
}

func decodeRanges(query url.Values, request *SearchRequest) {
	if v := query.Get("price"); v != "" {
		var min, max int
		if _, err := fmt.Sscanf(v, "%d-%d", &min, &max); err == nil {
			request.Price = types.Range{Min: min, Max: max}
		}
	}
	if v := query.Get("mileage"); v != "" {
		var min, max int
		if _, err := fmt.Sscanf(v, "%d-%d", &min, &max); err == nil {
			request.Mileage = types.Range{Min: min, Max: max}
		}
	}
	// feature=a,b is accepted next to repeated feature params
	features := make([]string, 0, len(request.Features))
	for _, raw := range request.Features {
		for _, part := range strings.Split(raw, ",") {
			if part = strings.TrimSpace(part); part != "" {
				features = append(features, part)
			}
		}
	}
	request.Features = features
}

// ToCriteria maps the request onto a criteria seeded from defaults.
func (s *SearchRequest) ToCriteria() types.Criteria {
	criteria := types.NewCriteria(s.Category)
	criteria.Make = s.Make
	criteria.Model = s.Model
	criteria.FuelType = s.FuelType
	criteria.Year = s.Year
	criteria.Color = s.Color
	criteria.State = s.State
	criteria.StateUserSet = s.StateSet
	criteria.Features = s.Features
	criteria.Query = s.Query
	criteria.Price = s.Price
	criteria.Mileage = s.Mileage
	return criteria
}

// ActiveCountDefault is the category baseline for the active filter count.
func (s *SearchRequest) ActiveCountDefault() string {
	if s.DefaultCategory != "" {
		return s.DefaultCategory
	}
	return s.Category
}

func (s *SearchRequest) SortOrder() types.SortOrder {
	return types.ParseSortOrder(s.Sort)
}

// Revealed is the incremental-reveal prefix length this request asks for.
func (s *SearchRequest) Revealed() int {
	size := s.PageSize
	if size <= 0 {
		size = 12
	}
	pages := s.Pages
	if pages <= 0 {
		pages = 1
	}
	return size * pages
}
