package models

import "time"

// EventDraft is the always-complete output record of the extraction pipeline.
// Every field is populated by construction: absence is represented by an
// explicit empty string or a synthetic default, never by a missing key, so
// the event-creation form can pre-fill itself without nil checks.
type EventDraft struct {
	ID          string `json:"id"` // deterministic, derived from title/date/venue
	Title       string `json:"title"`
	Description string `json:"description"`

	// Scheduling
	Date string `json:"date"` // ISO date (YYYY-MM-DD), placeholder if unrecoverable
	Time string `json:"time"` // HH:MM format (24-hour)

	// Location
	Venue Venue `json:"venue"`

	// Pricing - always at least one tier
	Pricing []PricingTier `json:"pricing"`

	// Content
	Performers []string `json:"performers"`
	ImageURLs  []string `json:"imageUrls"`

	// Classification
	Type     string `json:"type"`     // comedy|sports|theater|movie|concert|event
	Category string `json:"category"` // display category matching Type

	// Traceability
	Source      string    `json:"source"`          // strategy step that supplied the winning venue data
	RequestID   string    `json:"requestId"`       // per-extraction correlation ID
	ExtractedAt time.Time `json:"extractedAt"`     // when the draft was produced
	Error       string    `json:"error,omitempty"` // set when input was unusable; fields hold placeholders
}

// Venue describes where the event takes place. Name and Address may be empty
// strings (signal to the admin: ask the user), but City, State, and Capacity
// always carry defaults.
type Venue struct {
	Name     string `json:"name"`
	Address  string `json:"address"`
	City     string `json:"city"`
	State    string `json:"state"` // 2-letter abbreviation
	Capacity int    `json:"capacity"`
}

// PricingTier is a single price level offered for the event.
type PricingTier struct {
	Level      string   `json:"level"`      // tier display name
	Price      float64  `json:"price"`      // face price in USD
	ServiceFee float64  `json:"serviceFee"` // per-ticket service fee
	Tax        float64  `json:"tax"`        // per-ticket tax
	Sections   []string `json:"sections"`   // seating sections covered by this tier
}

// Event type constants
const (
	TypeComedy  = "comedy"
	TypeSports  = "sports"
	TypeTheater = "theater"
	TypeMovie   = "movie"
	TypeConcert = "concert"
	TypeEvent   = "event"
)

// Extraction source constants identify which strategy step supplied the
// winning venue/name data.
const (
	SourceDiscoveryAPI = "discovery-api"
	SourceSearchAPI    = "search-api"
	SourceEmbedAPI     = "embed-api"
	SourceHTML         = "html"
	SourceSlug         = "slug"
)
