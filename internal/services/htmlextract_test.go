package services

import (
	"strings"
	"testing"

	"marketplace-event-extractor/internal/models"
)

const jsonldFixture = `<!DOCTYPE html>
<html><head>
<script type="application/ld+json">
{
  "@context": "https://schema.org",
  "@type": "MusicEvent",
  "name": "The Weeknd - After Hours Tour",
  "description": "  One night only.  ",
  "startDate": "2026-04-09T20:00:00-05:00",
  "location": {
    "@type": "Place",
    "name": "American Airlines Center",
    "address": {
      "@type": "PostalAddress",
      "streetAddress": "2500 Victory Ave",
      "addressLocality": "Dallas",
      "addressRegion": "tx"
    }
  },
  "performer": [{"@type": "MusicGroup", "name": "The Weeknd"}],
  "image": ["https://cdn.example.com/hero.jpg"]
}
</script>
<meta property="og:image" content="https://cdn.example.com/og.jpg">
</head><body></body></html>`

func TestExtractFromMarkup(t *testing.T) {
	extractor := NewHTMLExtractor(nil)

	t.Run("JSONLDEvent", func(t *testing.T) {
		partial, err := extractor.ExtractFromMarkup([]byte(jsonldFixture))
		if err != nil {
			t.Fatalf("ExtractFromMarkup failed: %v", err)
		}

		if partial.VenueName != "American Airlines Center" {
			t.Errorf("Venue: got %q", partial.VenueName)
		}
		if partial.Title != "The Weeknd - After Hours Tour" {
			t.Errorf("Title: got %q", partial.Title)
		}
		if partial.Date != "2026-04-09" || partial.Time != "20:00" {
			t.Errorf("Date/time: got %s %s", partial.Date, partial.Time)
		}
		if partial.City != "Dallas" || partial.State != "TX" {
			t.Errorf("Location: got %s, %s", partial.City, partial.State)
		}
		if partial.Description != "One night only." {
			t.Errorf("Description should be trimmed: %q", partial.Description)
		}
		if len(partial.Performers) != 1 || partial.Performers[0] != "The Weeknd" {
			t.Errorf("Performers: got %v", partial.Performers)
		}
		// Structured images come first, Open Graph images follow.
		if len(partial.ImageURLs) != 2 || partial.ImageURLs[0] != "https://cdn.example.com/hero.jpg" {
			t.Errorf("Images: got %v", partial.ImageURLs)
		}
		if partial.Source != models.SourceHTML {
			t.Errorf("Source: got %q", partial.Source)
		}
	})

	t.Run("GraphContainerIsDescended", func(t *testing.T) {
		markup := `<html><head><script type="application/ld+json">
		{"@context":"https://schema.org","@graph":[
		  {"@type":"WebPage","name":"ignored"},
		  {"@type":"ComedyEvent","name":"Open Mic Night","location":{"@type":"Place","name":"The Laugh Factory"}}
		]}</script></head></html>`

		partial, err := extractor.ExtractFromMarkup([]byte(markup))
		if err != nil {
			t.Fatalf("ExtractFromMarkup failed: %v", err)
		}
		if partial.VenueName != "The Laugh Factory" {
			t.Errorf("Venue from @graph: got %q", partial.VenueName)
		}
	})

	t.Run("BestCandidateWinsByScore", func(t *testing.T) {
		markup := `<html><head>
		<script type="application/ld+json">{"@type":"Event","name":"Title Only"}</script>
		<script type="application/ld+json">{"@type":"Event","name":"Full Event","location":"Madison Square Garden"}</script>
		</head></html>`

		partial, err := extractor.ExtractFromMarkup([]byte(markup))
		if err != nil {
			t.Fatalf("ExtractFromMarkup failed: %v", err)
		}
		if partial.VenueName != "Madison Square Garden" || partial.Title != "Full Event" {
			t.Errorf("Candidate with venue should win: %q @ %q", partial.Title, partial.VenueName)
		}
	})

	t.Run("MetaTagFallback", func(t *testing.T) {
		markup := `<html><head>
		<meta property="og:venue" content="Radio City Music Hall">
		</head><body></body></html>`

		partial, err := extractor.ExtractFromMarkup([]byte(markup))
		if err != nil {
			t.Fatalf("ExtractFromMarkup failed: %v", err)
		}
		if partial.VenueName != "Radio City Music Hall" {
			t.Errorf("Meta venue: got %q", partial.VenueName)
		}
	})

	t.Run("VendorFragmentFallback", func(t *testing.T) {
		markup := `<html><body>
		<div class="event-details"><span class="venue-name">  The Fillmore  </span></div>
		</body></html>`

		partial, err := extractor.ExtractFromMarkup([]byte(markup))
		if err != nil {
			t.Fatalf("ExtractFromMarkup failed: %v", err)
		}
		if partial.VenueName != "The Fillmore" {
			t.Errorf("Fragment venue should be trimmed: %q", partial.VenueName)
		}
	})

	t.Run("MalformedJSONLDIsSkipped", func(t *testing.T) {
		markup := `<html><head>
		<script type="application/ld+json">{not json at all</script>
		<meta name="venue" content="Backup Hall">
		</head></html>`

		partial, err := extractor.ExtractFromMarkup([]byte(markup))
		if err != nil {
			t.Fatalf("Malformed structured data must not fail the extractor: %v", err)
		}
		if partial.VenueName != "Backup Hall" {
			t.Errorf("Expected meta fallback after malformed JSON-LD, got %q", partial.VenueName)
		}
	})

	t.Run("OpenGraphImagesDeduplicated", func(t *testing.T) {
		markup := `<html><head>
		<meta property="og:image" content="https://cdn.example.com/a.jpg">
		<meta property="og:image" content="https://cdn.example.com/a.jpg">
		<meta property="og:image:secure_url" content="https://cdn.example.com/b.jpg">
		<meta property="og:image" content="not-a-url">
		<meta property="og:image" content="https://cdn.example.com/styles.css">
		</head></html>`

		partial, err := extractor.ExtractFromMarkup([]byte(markup))
		if err != nil {
			t.Fatalf("ExtractFromMarkup failed: %v", err)
		}
		// The duplicate, the non-URL, and the stylesheet are all dropped.
		want := []string{"https://cdn.example.com/a.jpg", "https://cdn.example.com/b.jpg"}
		if len(partial.ImageURLs) != 2 || partial.ImageURLs[0] != want[0] || partial.ImageURLs[1] != want[1] {
			t.Errorf("Images: got %v, want %v", partial.ImageURLs, want)
		}
	})

	t.Run("UselessMarkupYieldsEmptyPartial", func(t *testing.T) {
		partial, err := extractor.ExtractFromMarkup([]byte(`<html><body><p>hello</p></body></html>`))
		if err != nil {
			t.Fatalf("ExtractFromMarkup failed: %v", err)
		}
		if !partial.IsEmpty() {
			t.Errorf("Expected empty partial, got %+v", partial)
		}
	})

	t.Run("NonEventTypesIgnored", func(t *testing.T) {
		markup := `<html><head><script type="application/ld+json">
		{"@type":"Product","name":"Concert Tickets","offers":{"price":"45"}}</script></head></html>`

		partial, err := extractor.ExtractFromMarkup([]byte(markup))
		if err != nil {
			t.Fatalf("ExtractFromMarkup failed: %v", err)
		}
		if partial.Title != "" {
			t.Errorf("Product markup should be ignored, got title %q", partial.Title)
		}
	})
}

func TestSplitISODateTime(t *testing.T) {
	cases := []struct {
		in    string
		date  string
		clock string
	}{
		{"2026-04-09T20:00:00-05:00", "2026-04-09", "20:00"},
		{"2026-04-09 19:30:00", "2026-04-09", "19:30"},
		{"2026-04-09", "2026-04-09", ""},
		{"  2026-04-09T08:05Z ", "2026-04-09", "08:05"},
		{"garbage", "", ""},
		{"", "", ""},
	}

	for _, tc := range cases {
		date, clock := splitISODateTime(tc.in)
		if date != tc.date || clock != tc.clock {
			t.Errorf("splitISODateTime(%q) = (%q, %q), want (%q, %q)", tc.in, date, clock, tc.date, tc.clock)
		}
	}
}

func TestStructuredEventTypeMatching(t *testing.T) {
	if !isEventType("MusicEvent") {
		t.Error("MusicEvent should match")
	}
	if !isEventType([]interface{}{"Thing", "SportsEvent"}) {
		t.Error("Array @type with an event member should match")
	}
	if isEventType("Organization") {
		t.Error("Organization should not match")
	}
	if isEventType(nil) {
		t.Error("Nil @type should not match")
	}
	if isEventType(strings.Repeat("x", 3)) {
		t.Error("Arbitrary string should not match")
	}
}
