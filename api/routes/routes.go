// Package routes searches for itineraries between two places. Results carry
// the backend's AI-written notes alongside the schedule.
package routes

import (
	"context"
	_ "embed"

	"github.com/kbukum/tripclient/api"
	"github.com/kbukum/tripclient/apiclient"
	"github.com/kbukum/tripclient/schema"
)

// EndpointSearch is the itinerary search path.
const EndpointSearch = "/routes/search"

//go:embed search_result.schema.json
var searchResultDocument []byte

var searchResultSchema = schema.MustJSONSchema[SearchResult](searchResultDocument)

// SearchRequest describes a trip.
type SearchRequest struct {
	Origin      string `json:"origin" validate:"required"`
	Destination string `json:"destination" validate:"required,nefield=Origin"`
	DepartAt    *Time  `json:"depart_at,omitempty"`
	Mode        string `json:"mode,omitempty" validate:"omitempty,oneof=driving transit walking cycling"`
	MaxResults  int    `json:"max_results,omitempty" validate:"gte=0,lte=10"`
}

// Leg is one segment of an itinerary.
type Leg struct {
	Mode            string  `json:"mode"`
	From            string  `json:"from"`
	To              string  `json:"to"`
	DepartAt        Time    `json:"depart_at"`
	ArriveAt        Time    `json:"arrive_at"`
	DurationMinutes float64 `json:"duration_minutes"`
	Instructions    string  `json:"instructions,omitempty"`
}

// Itinerary is one suggested way to make the trip.
type Itinerary struct {
	ID              any     `json:"id"`
	Summary         string  `json:"summary"`
	DurationMinutes float64 `json:"duration_minutes"`
	DepartAt        Time    `json:"depart_at"`
	ArriveAt        Time    `json:"arrive_at"`
	AINotes         string  `json:"ai_notes,omitempty"`
	Score           float64 `json:"score,omitempty"`
	Legs            []Leg   `json:"legs"`
}

// SearchResult is the search response.
type SearchResult struct {
	Itineraries []Itinerary `json:"itineraries"`
}

// Service calls the route search endpoint.
type Service struct {
	client *apiclient.Client
}

// New creates a Service.
func New(client *apiclient.Client) *Service {
	return &Service{client: client}
}

// Search returns itineraries for req.
func (s *Service) Search(ctx context.Context, req SearchRequest) (SearchResult, error) {
	if err := api.CheckInput(req); err != nil {
		return SearchResult{}, err
	}
	return apiclient.Post(ctx, s.client, EndpointSearch, req, searchResultSchema)
}
