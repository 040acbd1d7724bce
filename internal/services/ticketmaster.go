package services

import (
	"context"
	"fmt"
	"log"
	"math"
	"net/url"
	"regexp"
	"strings"

	"marketplace-event-extractor/internal/models"
)

const ticketmasterDiscoveryBase = "https://app.ticketmaster.com/discovery/v2"

// ticketmasterEventIDPattern matches the alphanumeric event IDs embedded in
// ticketmaster.com listing URLs, e.g. /event/0C005E8EA3C51A6E.
var ticketmasterEventIDPattern = regexp.MustCompile(`(?i)^[0-9A-Z]{14,20}$`)

// tmEvent is the subset of the Discovery API event payload the pipeline
// consumes. The same shape is returned by both the ID lookup and the keyword
// search.
type tmEvent struct {
	Name  string `json:"name"`
	Dates struct {
		Start struct {
			LocalDate string `json:"localDate"`
			LocalTime string `json:"localTime"`
		} `json:"start"`
	} `json:"dates"`
	Classifications []struct {
		Segment struct {
			Name string `json:"name"`
		} `json:"segment"`
		Genre struct {
			Name string `json:"name"`
		} `json:"genre"`
	} `json:"classifications"`
	PriceRanges []struct {
		Type string  `json:"type"`
		Min  float64 `json:"min"`
		Max  float64 `json:"max"`
	} `json:"priceRanges"`
	Images []struct {
		URL string `json:"url"`
	} `json:"images"`
	Embedded struct {
		Venues []struct {
			Name string `json:"name"`
			City struct {
				Name string `json:"name"`
			} `json:"city"`
			State struct {
				StateCode string `json:"stateCode"`
			} `json:"state"`
			Address struct {
				Line1 string `json:"line1"`
			} `json:"address"`
		} `json:"venues"`
		Attractions []struct {
			Name string `json:"name"`
		} `json:"attractions"`
	} `json:"_embedded"`
}

// tmSearchResponse wraps the keyword-search result list.
type tmSearchResponse struct {
	Embedded struct {
		Events []tmEvent `json:"events"`
	} `json:"_embedded"`
}

// TicketmasterDiscoveryStrategy looks an event up by the ID embedded in the
// listing URL via the credentialed Discovery API. The strongest, most
// structured signal in the ticketmaster chain.
type TicketmasterDiscoveryStrategy struct {
	fetcher *PageFetcher
	apiKey  string
	baseURL string
}

// NewTicketmasterDiscoveryStrategy creates the ID-lookup step. An empty API
// key makes the step a no-op; an empty baseURL means the production API.
func NewTicketmasterDiscoveryStrategy(fetcher *PageFetcher, apiKey, baseURL string) *TicketmasterDiscoveryStrategy {
	if baseURL == "" {
		baseURL = ticketmasterDiscoveryBase
	}
	return &TicketmasterDiscoveryStrategy{fetcher: fetcher, apiKey: apiKey, baseURL: baseURL}
}

// Name implements Strategy.
func (s *TicketmasterDiscoveryStrategy) Name() string {
	return "ticketmaster-discovery"
}

// Attempt implements Strategy.
func (s *TicketmasterDiscoveryStrategy) Attempt(ctx context.Context, target *Target) (*models.PartialEvent, error) {
	if s.apiKey == "" {
		log.Printf("[TICKETMASTER] discovery lookup skipped: no API key configured")
		return &models.PartialEvent{}, nil
	}

	eventID := ticketmasterEventID(target)
	if eventID == "" {
		return &models.PartialEvent{}, nil
	}

	endpoint := fmt.Sprintf("%s/events/%s.json?apikey=%s",
		s.baseURL, url.PathEscape(eventID), url.QueryEscape(s.apiKey))

	var event tmEvent
	if err := s.fetcher.FetchJSON(ctx, endpoint, &event); err != nil {
		return nil, fmt.Errorf("discovery lookup for %s: %w", eventID, err)
	}

	return partialFromTicketmasterEvent(&event, models.SourceDiscoveryAPI), nil
}

// TicketmasterSearchStrategy falls back to the Discovery keyword search when
// the ID lookup under-delivers (legacy or shortened IDs). The search phrase
// is the listing slug with its trailing date/city/state tokens stripped.
type TicketmasterSearchStrategy struct {
	fetcher *PageFetcher
	apiKey  string
	baseURL string
}

// NewTicketmasterSearchStrategy creates the keyword-search step.
func NewTicketmasterSearchStrategy(fetcher *PageFetcher, apiKey, baseURL string) *TicketmasterSearchStrategy {
	if baseURL == "" {
		baseURL = ticketmasterDiscoveryBase
	}
	return &TicketmasterSearchStrategy{fetcher: fetcher, apiKey: apiKey, baseURL: baseURL}
}

// Name implements Strategy.
func (s *TicketmasterSearchStrategy) Name() string {
	return "ticketmaster-search"
}

// Attempt implements Strategy.
func (s *TicketmasterSearchStrategy) Attempt(ctx context.Context, target *Target) (*models.PartialEvent, error) {
	if s.apiKey == "" {
		log.Printf("[TICKETMASTER] keyword search skipped: no API key configured")
		return &models.PartialEvent{}, nil
	}

	phrase := target.Slug.SearchPhrase()
	if phrase == "" {
		return &models.PartialEvent{}, nil
	}

	query := url.Values{}
	query.Set("apikey", s.apiKey)
	query.Set("keyword", phrase)
	query.Set("size", "1")
	if target.Slug.Date != "" {
		// Narrow the search to the day encoded in the slug.
		query.Set("startDateTime", target.Slug.Date+"T00:00:00Z")
		query.Set("endDateTime", target.Slug.Date+"T23:59:59Z")
	}

	endpoint := fmt.Sprintf("%s/events.json?%s", s.baseURL, query.Encode())

	var response tmSearchResponse
	if err := s.fetcher.FetchJSON(ctx, endpoint, &response); err != nil {
		return nil, fmt.Errorf("keyword search %q: %w", phrase, err)
	}

	if len(response.Embedded.Events) == 0 {
		return &models.PartialEvent{}, nil
	}

	return partialFromTicketmasterEvent(&response.Embedded.Events[0], models.SourceSearchAPI), nil
}

// tmEmbedResponse is the flatter payload served by the public event JSON
// endpoint that backs the Ticketmaster embed widget. Less structured than
// Discovery, no credential required.
type tmEmbedResponse struct {
	EventName string `json:"eventName"`
	VenueName string `json:"venueName"`
	City      string `json:"city"`
	State     string `json:"state"`
	EventDate string `json:"eventDate"` // ISO date
	EventTime string `json:"eventTime"` // HH:MM
	ImageURL  string `json:"imageUrl"`
}

// TicketmasterEmbedStrategy reads the credential-free widget endpoint, the
// last vendor-specific resort before generic HTML extraction.
type TicketmasterEmbedStrategy struct {
	fetcher *PageFetcher
	baseURL string
}

// NewTicketmasterEmbedStrategy creates the embed-endpoint step. baseURL
// overrides the production host in tests; empty means production.
func NewTicketmasterEmbedStrategy(fetcher *PageFetcher, baseURL string) *TicketmasterEmbedStrategy {
	if baseURL == "" {
		baseURL = "https://www.ticketmaster.com"
	}
	return &TicketmasterEmbedStrategy{fetcher: fetcher, baseURL: baseURL}
}

// Name implements Strategy.
func (s *TicketmasterEmbedStrategy) Name() string {
	return "ticketmaster-embed"
}

// Attempt implements Strategy.
func (s *TicketmasterEmbedStrategy) Attempt(ctx context.Context, target *Target) (*models.PartialEvent, error) {
	eventID := ticketmasterEventID(target)
	if eventID == "" {
		return &models.PartialEvent{}, nil
	}

	endpoint := fmt.Sprintf("%s/event/%s.json", s.baseURL, url.PathEscape(eventID))

	var response tmEmbedResponse
	if err := s.fetcher.FetchJSON(ctx, endpoint, &response); err != nil {
		return nil, fmt.Errorf("embed endpoint for %s: %w", eventID, err)
	}

	partial := &models.PartialEvent{
		Title:     response.EventName,
		VenueName: response.VenueName,
		City:      response.City,
		State:     strings.ToUpper(response.State),
		Date:      response.EventDate,
		Time:      response.EventTime,
		Source:    models.SourceEmbedAPI,
	}
	if response.ImageURL != "" {
		partial.ImageURLs = []string{response.ImageURL}
	}
	return partial, nil
}

// ticketmasterEventID pulls the event ID from the trailing path segment of a
// ticketmaster.com listing URL.
func ticketmasterEventID(target *Target) string {
	segments := strings.Split(strings.Trim(target.URL.Path, "/"), "/")
	if len(segments) == 0 {
		return ""
	}
	last := segments[len(segments)-1]
	if ticketmasterEventIDPattern.MatchString(last) && strings.Count(last, "-") == 0 {
		return last
	}
	return ""
}

// partialFromTicketmasterEvent maps a Discovery API event onto the pipeline's
// partial record.
func partialFromTicketmasterEvent(event *tmEvent, source string) *models.PartialEvent {
	partial := &models.PartialEvent{
		Title:  event.Name,
		Date:   event.Dates.Start.LocalDate,
		Source: source,
	}

	if t := event.Dates.Start.LocalTime; len(t) >= 5 {
		partial.Time = t[:5]
	}

	if len(event.Embedded.Venues) > 0 {
		venue := event.Embedded.Venues[0]
		partial.VenueName = venue.Name
		partial.Address = venue.Address.Line1
		partial.City = venue.City.Name
		partial.State = strings.ToUpper(venue.State.StateCode)
	}

	for _, attraction := range event.Embedded.Attractions {
		if attraction.Name != "" {
			partial.Performers = append(partial.Performers, attraction.Name)
		}
	}

	for _, image := range event.Images {
		if image.URL != "" {
			partial.ImageURLs = append(partial.ImageURLs, image.URL)
		}
	}

	for _, priceRange := range event.PriceRanges {
		level := priceRange.Type
		if level == "" {
			level = "Standard"
		}
		partial.Pricing = append(partial.Pricing, models.PricingTier{
			Level:      titleWord(level),
			Price:      priceRange.Min,
			ServiceFee: roundCents(priceRange.Min * 0.15),
			Tax:        roundCents(priceRange.Min * 0.0875),
			Sections:   []string{},
		})
	}

	if len(event.Classifications) > 0 {
		partial.TypeHint = typeHintFromClassification(
			event.Classifications[0].Segment.Name,
			event.Classifications[0].Genre.Name,
		)
	}

	return partial
}

// typeHintFromClassification maps Discovery segment/genre labels onto the
// draft's event type enumeration.
func typeHintFromClassification(segment, genre string) string {
	segment = strings.ToLower(segment)
	genre = strings.ToLower(genre)

	switch {
	case strings.Contains(genre, "comedy"):
		return models.TypeComedy
	case strings.Contains(segment, "sports"):
		return models.TypeSports
	case strings.Contains(segment, "theatre") || strings.Contains(segment, "arts"):
		return models.TypeTheater
	case strings.Contains(segment, "film"):
		return models.TypeMovie
	case strings.Contains(segment, "music"):
		return models.TypeConcert
	}
	return ""
}

// titleWord uppercases the first letter of a single label word.
func titleWord(word string) string {
	if word == "" {
		return word
	}
	return strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
}

// roundCents rounds a derived dollar amount to whole cents so synthetic fees
// are stable across runs.
func roundCents(amount float64) float64 {
	return math.Round(amount*100) / 100
}
