package services

import (
	"time"

	"marketplace-event-extractor/internal/models"
	"marketplace-event-extractor/internal/reference"
)

// Normalizer turns the chain's accumulated partial into a structurally
// complete EventDraft. Every field the merge left empty is filled from the
// category-driven defaults, making the result a total, deterministic
// function of (accumulated fields, now) - no randomness anywhere.
type Normalizer struct{}

// NewNormalizer creates a normalizer.
func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

// placeholderDateOffset is how far out the placeholder date lands when no
// strategy recovered one. Far enough that the admin notices it is synthetic.
const placeholderDateOffset = 30 * 24 * time.Hour

// Normalize completes the accumulated partial into a draft. The caller
// supplies now so repeated runs against fixed upstream responses stay
// reproducible in tests.
func (n *Normalizer) Normalize(accumulated *models.PartialEvent, requestID string, now time.Time) models.EventDraft {
	if accumulated == nil {
		accumulated = &models.PartialEvent{}
	}

	title := accumulated.Title
	if title == "" {
		title = reference.FallbackTitle
	}

	eventType := accumulated.TypeHint
	if !models.ValidateEventType(eventType) {
		eventType = reference.ClassifyEventName(title)
	}

	city := accumulated.City
	if city == "" {
		city = reference.DefaultCity
	}
	state := accumulated.State
	if state == "" {
		state = reference.DefaultState
	}

	capacity := accumulated.Capacity
	if capacity <= 0 {
		capacity = reference.DefaultCapacity(eventType)
	}

	date := accumulated.Date
	if date == "" {
		date = now.Add(placeholderDateOffset).Format("2006-01-02")
	}
	clock := accumulated.Time
	if clock == "" {
		clock = reference.DefaultShowTime(eventType)
	}

	pricing := accumulated.Pricing
	if len(pricing) == 0 {
		pricing = reference.DefaultPricing(eventType)
	}

	description := accumulated.Description
	if description == "" {
		description = reference.DefaultDescription(eventType, title, city)
	}

	source := accumulated.Source
	if source == "" {
		source = models.SourceSlug
	}

	performers := accumulated.Performers
	if performers == nil {
		performers = []string{}
	}
	imageURLs := accumulated.ImageURLs
	if imageURLs == nil {
		imageURLs = []string{}
	}

	return models.EventDraft{
		ID:          models.GenerateDraftID(title, date, accumulated.VenueName),
		Title:       title,
		Description: description,
		Date:        date,
		Time:        clock,
		Venue: models.Venue{
			Name:     accumulated.VenueName,
			Address:  accumulated.Address,
			City:     city,
			State:    state,
			Capacity: capacity,
		},
		Pricing:     pricing,
		Performers:  performers,
		ImageURLs:   imageURLs,
		Type:        eventType,
		Category:    reference.DisplayCategory(eventType),
		Source:      source,
		RequestID:   requestID,
		ExtractedAt: now,
	}
}
