package services

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"marketplace-event-extractor/internal/models"
)

// shExploreResponse wraps the public StubHub explore/search endpoint payload.
// No credential is required, but the shape is shallow compared to a real
// catalog API: one flat record per event.
type shExploreResponse struct {
	Events []struct {
		Name  string `json:"name"`
		Venue struct {
			Name  string `json:"name"`
			City  string `json:"city"`
			State string `json:"state"`
		} `json:"venue"`
		EventDateLocal string `json:"eventDateLocal"` // ISO-8601
		ImageURL       string `json:"imageUrl"`
	} `json:"events"`
}

// StubHubExploreStrategy queries StubHub's public explore endpoint by the
// search phrase derived from the listing slug. StubHub exposes no
// credential-free ID lookup, so this is the resale chain's strongest step.
type StubHubExploreStrategy struct {
	fetcher *PageFetcher
	baseURL string
}

// NewStubHubExploreStrategy creates the explore step. An empty baseURL means
// the production endpoint.
func NewStubHubExploreStrategy(fetcher *PageFetcher, baseURL string) *StubHubExploreStrategy {
	if baseURL == "" {
		baseURL = "https://www.stubhub.com"
	}
	return &StubHubExploreStrategy{fetcher: fetcher, baseURL: baseURL}
}

// Name implements Strategy.
func (s *StubHubExploreStrategy) Name() string {
	return "stubhub-explore"
}

// Attempt implements Strategy.
func (s *StubHubExploreStrategy) Attempt(ctx context.Context, target *Target) (*models.PartialEvent, error) {
	phrase := target.Slug.SearchPhrase()
	if phrase == "" {
		return &models.PartialEvent{}, nil
	}

	query := url.Values{}
	query.Set("q", phrase)
	query.Set("rows", "1")
	if target.Slug.City != "" {
		query.Set("city", target.Slug.City)
	}

	endpoint := fmt.Sprintf("%s/explore/internal/search?%s", s.baseURL, query.Encode())

	var response shExploreResponse
	if err := s.fetcher.FetchJSON(ctx, endpoint, &response); err != nil {
		return nil, fmt.Errorf("stubhub explore %q: %w", phrase, err)
	}

	if len(response.Events) == 0 {
		return &models.PartialEvent{}, nil
	}

	event := response.Events[0]
	partial := &models.PartialEvent{
		Title:     event.Name,
		VenueName: event.Venue.Name,
		City:      event.Venue.City,
		State:     strings.ToUpper(event.Venue.State),
		Source:    models.SourceEmbedAPI,
	}
	partial.Date, partial.Time = splitISODateTime(event.EventDateLocal)
	if event.ImageURL != "" {
		partial.ImageURLs = []string{event.ImageURL}
	}

	return partial, nil
}
