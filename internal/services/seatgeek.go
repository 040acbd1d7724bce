package services

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"regexp"
	"strings"

	"marketplace-event-extractor/internal/models"
)

const seatgeekAPIBase = "https://api.seatgeek.com/2"

// seatgeekEventIDPattern matches the numeric trailing ID of a seatgeek.com
// listing URL, e.g. /concert-tickets/new-york-04-09-2026/6192834.
var seatgeekEventIDPattern = regexp.MustCompile(`^\d{5,12}$`)

// sgEvent is the subset of the SeatGeek platform API event payload the
// pipeline consumes.
type sgEvent struct {
	Title         string `json:"title"`
	DatetimeLocal string `json:"datetime_local"`
	Venue         struct {
		Name     string `json:"name"`
		Address  string `json:"address"`
		City     string `json:"city"`
		State    string `json:"state"`
		Capacity int    `json:"capacity"`
	} `json:"venue"`
	Performers []struct {
		Name  string `json:"name"`
		Image string `json:"image"`
	} `json:"performers"`
	Stats struct {
		LowestPrice  float64 `json:"lowest_price"`
		AveragePrice float64 `json:"average_price"`
		HighestPrice float64 `json:"highest_price"`
	} `json:"stats"`
	Taxonomies []struct {
		Name string `json:"name"`
	} `json:"taxonomies"`
}

// sgSearchResponse wraps the platform API keyword-search result list.
type sgSearchResponse struct {
	Events []sgEvent `json:"events"`
}

// SeatGeekLookupStrategy resolves a listing through the SeatGeek platform API
// using the numeric event ID at the end of the URL. Requires a client ID.
type SeatGeekLookupStrategy struct {
	fetcher  *PageFetcher
	clientID string
	baseURL  string
}

// NewSeatGeekLookupStrategy creates the ID-lookup step. An empty client ID
// makes the step a no-op; an empty baseURL means the production API.
func NewSeatGeekLookupStrategy(fetcher *PageFetcher, clientID, baseURL string) *SeatGeekLookupStrategy {
	if baseURL == "" {
		baseURL = seatgeekAPIBase
	}
	return &SeatGeekLookupStrategy{fetcher: fetcher, clientID: clientID, baseURL: baseURL}
}

// Name implements Strategy.
func (s *SeatGeekLookupStrategy) Name() string {
	return "seatgeek-lookup"
}

// Attempt implements Strategy.
func (s *SeatGeekLookupStrategy) Attempt(ctx context.Context, target *Target) (*models.PartialEvent, error) {
	if s.clientID == "" {
		log.Printf("[SEATGEEK] event lookup skipped: no client ID configured")
		return &models.PartialEvent{}, nil
	}

	eventID := seatgeekEventID(target)
	if eventID == "" {
		return &models.PartialEvent{}, nil
	}

	endpoint := fmt.Sprintf("%s/events/%s?client_id=%s",
		s.baseURL, url.PathEscape(eventID), url.QueryEscape(s.clientID))

	var event sgEvent
	if err := s.fetcher.FetchJSON(ctx, endpoint, &event); err != nil {
		return nil, fmt.Errorf("seatgeek lookup for %s: %w", eventID, err)
	}

	return partialFromSeatGeekEvent(&event, models.SourceDiscoveryAPI), nil
}

// SeatGeekSearchStrategy falls back to the platform API keyword search when
// the URL carries no usable numeric ID.
type SeatGeekSearchStrategy struct {
	fetcher  *PageFetcher
	clientID string
	baseURL  string
}

// NewSeatGeekSearchStrategy creates the keyword-search step.
func NewSeatGeekSearchStrategy(fetcher *PageFetcher, clientID, baseURL string) *SeatGeekSearchStrategy {
	if baseURL == "" {
		baseURL = seatgeekAPIBase
	}
	return &SeatGeekSearchStrategy{fetcher: fetcher, clientID: clientID, baseURL: baseURL}
}

// Name implements Strategy.
func (s *SeatGeekSearchStrategy) Name() string {
	return "seatgeek-search"
}

// Attempt implements Strategy.
func (s *SeatGeekSearchStrategy) Attempt(ctx context.Context, target *Target) (*models.PartialEvent, error) {
	if s.clientID == "" {
		log.Printf("[SEATGEEK] keyword search skipped: no client ID configured")
		return &models.PartialEvent{}, nil
	}

	phrase := target.Slug.SearchPhrase()
	if phrase == "" {
		return &models.PartialEvent{}, nil
	}

	query := url.Values{}
	query.Set("client_id", s.clientID)
	query.Set("q", phrase)
	query.Set("per_page", "1")
	if target.Slug.Date != "" {
		query.Set("datetime_local.gte", target.Slug.Date)
		query.Set("datetime_local.lte", target.Slug.Date+"T23:59:59")
	}

	endpoint := fmt.Sprintf("%s/events?%s", s.baseURL, query.Encode())

	var response sgSearchResponse
	if err := s.fetcher.FetchJSON(ctx, endpoint, &response); err != nil {
		return nil, fmt.Errorf("seatgeek search %q: %w", phrase, err)
	}

	if len(response.Events) == 0 {
		return &models.PartialEvent{}, nil
	}

	return partialFromSeatGeekEvent(&response.Events[0], models.SourceSearchAPI), nil
}

// seatgeekEventID pulls the numeric listing ID from the trailing path segment.
func seatgeekEventID(target *Target) string {
	segments := strings.Split(strings.Trim(target.URL.Path, "/"), "/")
	if len(segments) == 0 {
		return ""
	}
	last := segments[len(segments)-1]
	if seatgeekEventIDPattern.MatchString(last) {
		return last
	}
	return ""
}

// partialFromSeatGeekEvent maps a platform API event onto the pipeline's
// partial record.
func partialFromSeatGeekEvent(event *sgEvent, source string) *models.PartialEvent {
	partial := &models.PartialEvent{
		Title:  event.Title,
		Source: source,
	}

	partial.Date, partial.Time = splitISODateTime(event.DatetimeLocal)

	partial.VenueName = event.Venue.Name
	partial.Address = event.Venue.Address
	partial.City = event.Venue.City
	partial.State = strings.ToUpper(event.Venue.State)
	partial.Capacity = event.Venue.Capacity

	for _, performer := range event.Performers {
		if performer.Name != "" {
			partial.Performers = append(partial.Performers, performer.Name)
		}
		if performer.Image != "" {
			partial.ImageURLs = append(partial.ImageURLs, performer.Image)
		}
	}

	if event.Stats.LowestPrice > 0 {
		partial.Pricing = append(partial.Pricing, models.PricingTier{
			Level:      "Lowest Listed",
			Price:      event.Stats.LowestPrice,
			ServiceFee: roundCents(event.Stats.LowestPrice * 0.15),
			Tax:        roundCents(event.Stats.LowestPrice * 0.0875),
			Sections:   []string{},
		})
	}
	if event.Stats.AveragePrice > event.Stats.LowestPrice {
		partial.Pricing = append(partial.Pricing, models.PricingTier{
			Level:      "Average Listed",
			Price:      event.Stats.AveragePrice,
			ServiceFee: roundCents(event.Stats.AveragePrice * 0.15),
			Tax:        roundCents(event.Stats.AveragePrice * 0.0875),
			Sections:   []string{},
		})
	}

	partial.TypeHint = typeHintFromTaxonomies(event.Taxonomies)

	return partial
}

// typeHintFromTaxonomies maps SeatGeek taxonomy labels onto the event type
// enumeration.
func typeHintFromTaxonomies(taxonomies []struct {
	Name string `json:"name"`
}) string {
	for _, taxonomy := range taxonomies {
		name := strings.ToLower(taxonomy.Name)
		switch {
		case strings.Contains(name, "comedy"):
			return models.TypeComedy
		case strings.Contains(name, "sports") || name == "nba" || name == "nfl" || name == "mlb" || name == "nhl":
			return models.TypeSports
		case strings.Contains(name, "theater") || strings.Contains(name, "broadway"):
			return models.TypeTheater
		case strings.Contains(name, "film"):
			return models.TypeMovie
		case strings.Contains(name, "concert") || strings.Contains(name, "music"):
			return models.TypeConcert
		}
	}
	return ""
}
