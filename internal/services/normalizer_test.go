package services

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"marketplace-event-extractor/internal/models"
	"marketplace-event-extractor/internal/reference"
)

func TestNormalize(t *testing.T) {
	normalizer := NewNormalizer()
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	t.Run("EmptyPartialStillYieldsCompleteDraft", func(t *testing.T) {
		draft := normalizer.Normalize(&models.PartialEvent{}, "req-1", now)

		if err := draft.Validate(); err != nil {
			t.Fatalf("Draft from empty partial should be complete: %v", err)
		}
		if draft.Title != reference.FallbackTitle {
			t.Errorf("Expected fallback title, got %q", draft.Title)
		}
		if draft.Venue.City != "New York" || draft.Venue.State != "NY" {
			t.Errorf("Expected default location, got %s, %s", draft.Venue.City, draft.Venue.State)
		}
		if draft.Date != "2026-04-09" {
			t.Errorf("Placeholder date should be 30 days out, got %q", draft.Date)
		}
		if draft.Source != models.SourceSlug {
			t.Errorf("Empty partial should be tagged as slug-sourced, got %q", draft.Source)
		}
		if draft.Performers == nil || draft.ImageURLs == nil {
			t.Error("Slice fields must never be nil")
		}
	})

	t.Run("NilPartialIsTreatedAsEmpty", func(t *testing.T) {
		draft := normalizer.Normalize(nil, "req-2", now)
		if err := draft.Validate(); err != nil {
			t.Fatalf("Draft from nil partial should be complete: %v", err)
		}
	})

	t.Run("ComedyGetsThreeTiersAndLaughDescription", func(t *testing.T) {
		draft := normalizer.Normalize(&models.PartialEvent{
			Title: "Dave Chappelle Stand-Up Night",
			City:  "Austin",
		}, "req-3", now)

		if draft.Type != models.TypeComedy {
			t.Fatalf("Expected comedy classification, got %q", draft.Type)
		}
		if len(draft.Pricing) != 3 {
			t.Errorf("Comedy defaults should have 3 pricing tiers, got %d", len(draft.Pricing))
		}
		if !strings.Contains(strings.ToLower(draft.Description), "laugh") {
			t.Errorf("Comedy description should mention laughs: %q", draft.Description)
		}
		if draft.Time != "20:00" {
			t.Errorf("Comedy default show time should be 20:00, got %q", draft.Time)
		}
		if !strings.Contains(draft.Description, "Austin") {
			t.Errorf("Description should reference the extracted city: %q", draft.Description)
		}
	})

	t.Run("TypeHintWinsOverKeywordClassification", func(t *testing.T) {
		draft := normalizer.Normalize(&models.PartialEvent{
			Title:    "Funny Games Screening",
			TypeHint: models.TypeMovie,
		}, "req-4", now)

		if draft.Type != models.TypeMovie {
			t.Errorf("Vendor hint should win, got %q", draft.Type)
		}
	})

	t.Run("ExtractedFieldsAreNeverReplaced", func(t *testing.T) {
		pricing := []models.PricingTier{{Level: "Floor", Price: 120}}
		draft := normalizer.Normalize(&models.PartialEvent{
			Title:     "Wicked",
			VenueName: "Gershwin Theatre",
			City:      "Manhattan",
			State:     "NY",
			Date:      "2026-06-15",
			Time:      "19:00",
			Capacity:  1933,
			Pricing:   pricing,
			Source:    models.SourceDiscoveryAPI,
		}, "req-5", now)

		if draft.Venue.Name != "Gershwin Theatre" || draft.Venue.Capacity != 1933 {
			t.Errorf("Extracted venue fields should survive normalization: %+v", draft.Venue)
		}
		if draft.Date != "2026-06-15" || draft.Time != "19:00" {
			t.Errorf("Extracted date/time should survive: %s %s", draft.Date, draft.Time)
		}
		if !reflect.DeepEqual(draft.Pricing, pricing) {
			t.Errorf("Extracted pricing should survive: %+v", draft.Pricing)
		}
		if draft.Source != models.SourceDiscoveryAPI {
			t.Errorf("Source tag should survive: %q", draft.Source)
		}
	})

	t.Run("IdenticalInputsYieldIdenticalDrafts", func(t *testing.T) {
		partial := &models.PartialEvent{Title: "Cowboys vs Eagles", City: "Arlington", State: "TX"}
		first := normalizer.Normalize(partial, "req-6", now)
		second := normalizer.Normalize(partial, "req-6", now)

		if !reflect.DeepEqual(first, second) {
			t.Error("Normalization must be deterministic for fixed inputs")
		}
	})

	t.Run("DraftIDIsDeterministic", func(t *testing.T) {
		partial := &models.PartialEvent{Title: "Wicked", VenueName: "Gershwin Theatre", Date: "2026-06-15"}
		first := normalizer.Normalize(partial, "req-7", now)
		second := normalizer.Normalize(partial, "req-8", now)

		if first.ID == "" {
			t.Fatal("Draft ID should be populated")
		}
		if first.ID != second.ID {
			t.Errorf("Same content must yield the same ID: %q vs %q", first.ID, second.ID)
		}

		other := normalizer.Normalize(&models.PartialEvent{Title: "Hamilton"}, "req-9", now)
		if other.ID == first.ID {
			t.Error("Different content should yield a different ID")
		}
	})
}
