// Package preferences reads and updates the signed-in user's travel
// preferences.
package preferences

import (
	"context"

	"github.com/kbukum/tripclient/api"
	"github.com/kbukum/tripclient/apiclient"
	"github.com/kbukum/tripclient/schema"
)

// Endpoint is the preferences resource path.
const Endpoint = "/preferences"

// Travel modes accepted by the backend.
const (
	ModeDriving = "driving"
	ModeTransit = "transit"
	ModeWalking = "walking"
	ModeCycling = "cycling"
)

// Preferences are the stored routing preferences.
type Preferences struct {
	TravelMode     string   `json:"travel_mode" validate:"omitempty,oneof=driving transit walking cycling"`
	AvoidTolls     bool     `json:"avoid_tolls"`
	AvoidHighways  bool     `json:"avoid_highways"`
	MaxWalkMinutes int      `json:"max_walk_minutes" validate:"gte=0,lte=120"`
	Interests      []string `json:"interests,omitempty" validate:"max=20,dive,required"`
	Language       string   `json:"language,omitempty" validate:"omitempty,bcp47_language_tag"`
}

// Service calls the preferences endpoints.
type Service struct {
	client *apiclient.Client
}

// New creates a Service.
func New(client *apiclient.Client) *Service {
	return &Service{client: client}
}

// Get returns the current preferences.
func (s *Service) Get(ctx context.Context) (Preferences, error) {
	return apiclient.Get(ctx, s.client, Endpoint, schema.Struct[Preferences]())
}

// Update replaces the stored preferences and returns the saved version.
func (s *Service) Update(ctx context.Context, p Preferences) (Preferences, error) {
	if err := api.CheckInput(p); err != nil {
		return Preferences{}, err
	}
	return apiclient.Put(ctx, s.client, Endpoint, p, schema.Struct[Preferences]())
}
