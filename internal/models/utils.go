package models

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// GenerateDraftID creates a deterministic ID for a draft based on its core
// attributes. Identical input state always yields the same ID.
func GenerateDraftID(title, date, venueName string) string {
	// Normalize inputs
	normalizedTitle := strings.ToLower(strings.TrimSpace(title))
	normalizedDate := strings.ToLower(strings.TrimSpace(date))
	normalizedVenue := strings.ToLower(strings.TrimSpace(venueName))

	input := fmt.Sprintf("%s|%s|%s", normalizedTitle, normalizedDate, normalizedVenue)

	hash := sha256.Sum256([]byte(input))

	return "draft_" + hex.EncodeToString(hash[:])[:8]
}

// ValidateEventType checks if the event type is one of the fixed enumeration.
func ValidateEventType(eventType string) bool {
	validTypes := []string{
		TypeComedy,
		TypeSports,
		TypeTheater,
		TypeMovie,
		TypeConcert,
		TypeEvent,
	}

	for _, validType := range validTypes {
		if eventType == validType {
			return true
		}
	}
	return false
}

// ValidateSource checks if the extraction source tag is valid.
func ValidateSource(source string) bool {
	validSources := []string{
		SourceDiscoveryAPI,
		SourceSearchAPI,
		SourceEmbedAPI,
		SourceHTML,
		SourceSlug,
	}

	for _, validSource := range validSources {
		if source == validSource {
			return true
		}
	}
	return false
}

// IsValidURL performs basic URL validation
func IsValidURL(url string) bool {
	if url == "" {
		return false
	}

	return strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://")
}

var imageExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp", ".svg", ".avif"}

// nonImageExtensions are document types sometimes found in og:image tags on
// broken pages. Extensionless CDN paths stay allowed.
var nonImageExtensions = []string{".html", ".htm", ".js", ".css", ".json", ".xml", ".pdf"}

// ValidateImageURL performs enhanced URL validation for gallery images.
func ValidateImageURL(url string) bool {
	if !IsValidURL(url) {
		return false
	}

	path := strings.ToLower(url)
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}

	for _, ext := range imageExtensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	for _, ext := range nonImageExtensions {
		if strings.HasSuffix(path, ext) {
			return false
		}
	}

	// No extension at all: common for CDN image routes, allow it.
	return true
}

// GetTypeDisplayName returns a human-readable name for an event type
func GetTypeDisplayName(eventType string) string {
	displayNames := map[string]string{
		TypeComedy:  "Comedy",
		TypeSports:  "Sports",
		TypeTheater: "Theater & Performing Arts",
		TypeMovie:   "Movies & Film",
		TypeConcert: "Concerts & Music",
		TypeEvent:   "General Events",
	}

	if displayName, exists := displayNames[eventType]; exists {
		return displayName
	}

	return eventType
}

// Validate checks that a completed draft honors its structural invariants:
// non-empty title, non-empty pricing, known type and source tags, and venue
// city/state/capacity carrying defaults.
func (d *EventDraft) Validate() error {
	if d.Title == "" {
		return fmt.Errorf("draft title cannot be empty")
	}
	if len(d.Pricing) == 0 {
		return fmt.Errorf("draft must have at least one pricing tier")
	}
	if !ValidateEventType(d.Type) {
		return fmt.Errorf("invalid event type: %s", d.Type)
	}
	if !ValidateSource(d.Source) {
		return fmt.Errorf("invalid extraction source: %s", d.Source)
	}
	if d.Venue.City == "" || d.Venue.State == "" {
		return fmt.Errorf("draft venue city/state must carry defaults")
	}
	if d.Venue.Capacity <= 0 {
		return fmt.Errorf("draft venue capacity must be positive")
	}
	if d.Date == "" || d.Time == "" {
		return fmt.Errorf("draft date/time must carry placeholders")
	}
	return nil
}
