package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"marketplace-event-extractor/internal/models"
)

// HTMLExtractor harvests event signals from raw page markup. It never
// executes scripts: it pattern-matches vendor-authored structured data
// (JSON-LD event blocks), meta tags, and known markup fragments, in that
// priority order. Open Graph images are collected independently of the rest.
//
// Failure semantics: any fetch or parse error yields an empty partial; this
// component never lets an error escape into the chain as anything other than
// a logged "no data".
type HTMLExtractor struct {
	fetcher *PageFetcher
}

// NewHTMLExtractor creates an extractor backed by the given page fetcher.
func NewHTMLExtractor(fetcher *PageFetcher) *HTMLExtractor {
	return &HTMLExtractor{fetcher: fetcher}
}

// jsonldEventTypes are the schema.org @type values recognized as events.
var jsonldEventTypes = map[string]bool{
	"event":          true,
	"musicevent":     true,
	"comedyevent":    true,
	"theaterevent":   true,
	"sportsevent":    true,
	"screeningevent": true,
	"festival":       true,
}

// Name implements Strategy.
func (h *HTMLExtractor) Name() string {
	return "html-extract"
}

// Attempt implements Strategy: fetch the page and extract whatever signals
// the markup carries.
func (h *HTMLExtractor) Attempt(ctx context.Context, target *Target) (*models.PartialEvent, error) {
	body, err := h.fetcher.Fetch(ctx, target.RawURL)
	if err != nil {
		return nil, fmt.Errorf("page fetch failed: %w", err)
	}
	return h.ExtractFromMarkup(body)
}

// ExtractFromMarkup parses raw markup and returns the harvested signals. It
// is exported separately from Attempt so fixtures can exercise the parsing
// without a network round trip.
func (h *HTMLExtractor) ExtractFromMarkup(markup []byte) (*models.PartialEvent, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("markup parse failed: %w", err)
	}

	partial := &models.PartialEvent{Source: models.SourceHTML}

	if structured := h.extractStructuredEvent(doc); structured != nil {
		partial.MergeIfAbsent(structured)
	}
	if partial.VenueName == "" {
		h.extractMetaVenue(doc, partial)
	}
	if partial.VenueName == "" {
		h.extractVendorFragments(doc, partial)
	}

	// Images are independent of the venue signals: a page may expose a
	// gallery even when its event markup is useless, and vice versa.
	partial.MergeIfAbsent(&models.PartialEvent{ImageURLs: h.extractOpenGraphImages(doc)})

	if partial.IsEmpty() {
		return &models.PartialEvent{}, nil
	}
	return partial, nil
}

// extractStructuredEvent scans every JSON-LD script block for an event-typed
// object and converts the best candidate into a partial record. Vendor-
// authored structured data is the most reliable signal the markup offers.
func (h *HTMLExtractor) extractStructuredEvent(doc *goquery.Document) *models.PartialEvent {
	var best *models.PartialEvent
	bestScore := 0

	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, script *goquery.Selection) {
		raw := strings.TrimSpace(script.Text())
		if raw == "" {
			return
		}
		var payload interface{}
		if err := json.Unmarshal([]byte(raw), &payload); err != nil {
			return
		}
		for _, obj := range collectJSONObjects(payload) {
			candidate := eventFromStructuredData(obj)
			if candidate == nil {
				continue
			}
			score := structuredScore(candidate)
			if score > bestScore {
				best = candidate
				bestScore = score
			}
		}
	})

	return best
}

// collectJSONObjects flattens a decoded JSON-LD payload into candidate
// objects, descending into arrays and @graph containers.
func collectJSONObjects(payload interface{}) []map[string]interface{} {
	out := make([]map[string]interface{}, 0)
	switch v := payload.(type) {
	case map[string]interface{}:
		out = append(out, v)
		if graph, ok := v["@graph"]; ok {
			out = append(out, collectJSONObjects(graph)...)
		}
	case []interface{}:
		for _, item := range v {
			out = append(out, collectJSONObjects(item)...)
		}
	}
	return out
}

// eventFromStructuredData converts one JSON-LD object into a partial record,
// or nil when the object is not event-typed.
func eventFromStructuredData(obj map[string]interface{}) *models.PartialEvent {
	if !isEventType(obj["@type"]) {
		return nil
	}

	partial := &models.PartialEvent{Source: models.SourceHTML}
	partial.Title = stringField(obj, "name")
	partial.Description = strings.TrimSpace(stringField(obj, "description"))

	if start := stringField(obj, "startDate"); start != "" {
		partial.Date, partial.Time = splitISODateTime(start)
	}

	applyStructuredLocation(obj["location"], partial)
	partial.Performers = structuredPerformers(obj["performer"])

	if image := obj["image"]; image != nil {
		partial.ImageURLs = structuredImages(image)
	}

	return partial
}

// isEventType reports whether a JSON-LD @type value names an event schema.
func isEventType(value interface{}) bool {
	switch v := value.(type) {
	case string:
		return jsonldEventTypes[strings.ToLower(strings.TrimSpace(v))]
	case []interface{}:
		for _, item := range v {
			if s, ok := item.(string); ok && jsonldEventTypes[strings.ToLower(strings.TrimSpace(s))] {
				return true
			}
		}
	}
	return false
}

// applyStructuredLocation reads a schema.org Place into the partial's venue
// fields. The location may be a bare string or a nested object with a
// PostalAddress.
func applyStructuredLocation(value interface{}, partial *models.PartialEvent) {
	switch v := value.(type) {
	case string:
		partial.VenueName = strings.TrimSpace(v)
	case map[string]interface{}:
		partial.VenueName = stringField(v, "name")
		switch addr := v["address"].(type) {
		case string:
			partial.Address = strings.TrimSpace(addr)
		case map[string]interface{}:
			partial.Address = stringField(addr, "streetAddress")
			partial.City = stringField(addr, "addressLocality")
			partial.State = strings.ToUpper(stringField(addr, "addressRegion"))
		}
	}
}

// structuredPerformers flattens a performer field (object or array) into the
// performer name list.
func structuredPerformers(value interface{}) []string {
	var names []string
	switch v := value.(type) {
	case map[string]interface{}:
		if name := stringField(v, "name"); name != "" {
			names = append(names, name)
		}
	case []interface{}:
		for _, item := range v {
			if m, ok := item.(map[string]interface{}); ok {
				if name := stringField(m, "name"); name != "" {
					names = append(names, name)
				}
			}
		}
	}
	return names
}

// structuredImages flattens an image field (string or array) into URLs.
func structuredImages(value interface{}) []string {
	var urls []string
	switch v := value.(type) {
	case string:
		if s := strings.TrimSpace(v); s != "" {
			urls = append(urls, s)
		}
	case []interface{}:
		for _, item := range v {
			if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
				urls = append(urls, strings.TrimSpace(s))
			}
		}
	}
	return urls
}

// extractMetaVenue reads venue hints from named meta tags and Open Graph
// properties when no structured data was present.
func (h *HTMLExtractor) extractMetaVenue(doc *goquery.Document, partial *models.PartialEvent) {
	selectors := []string{
		`meta[property="og:venue"]`,
		`meta[name="venue"]`,
		`meta[property="event:location"]`,
		`meta[name="twitter:data1"]`,
	}

	for _, selector := range selectors {
		if content, ok := doc.Find(selector).First().Attr("content"); ok {
			if venue := strings.TrimSpace(content); venue != "" {
				partial.VenueName = venue
				return
			}
		}
	}
}

// vendorVenueSelectors are known markup fragments used as a last-resort
// textual scan. These class names drift whenever a vendor redesigns, so a
// miss here is expected and harmless.
var vendorVenueSelectors = []string{
	".event-venue-name",
	".venue-name",
	"[data-testid='venue-name']",
	".EventDetails__venue",
	"[itemprop='location'] [itemprop='name']",
}

// extractVendorFragments scans for vendor-specific venue markup.
func (h *HTMLExtractor) extractVendorFragments(doc *goquery.Document, partial *models.PartialEvent) {
	for _, selector := range vendorVenueSelectors {
		text := strings.TrimSpace(doc.Find(selector).First().Text())
		if text != "" {
			partial.VenueName = text
			return
		}
	}
}

// extractOpenGraphImages collects og:image tags, deduplicated in document
// order, for the draft's image gallery.
func (h *HTMLExtractor) extractOpenGraphImages(doc *goquery.Document) []string {
	var urls []string
	seen := make(map[string]bool)

	doc.Find(`meta[property="og:image"], meta[property="og:image:secure_url"]`).Each(func(_ int, tag *goquery.Selection) {
		content, ok := tag.Attr("content")
		if !ok {
			return
		}
		u := strings.TrimSpace(content)
		if u == "" || seen[u] || !models.ValidateImageURL(u) {
			return
		}
		seen[u] = true
		urls = append(urls, u)
	})

	return urls
}

// structuredScore ranks candidate structured events: venue and title are the
// decisive fields, date and images break ties.
func structuredScore(partial *models.PartialEvent) int {
	score := 0
	if partial.VenueName != "" {
		score += 4
	}
	if partial.Title != "" {
		score += 2
	}
	if partial.Date != "" {
		score++
	}
	if len(partial.ImageURLs) > 0 {
		score++
	}
	return score
}

// stringField reads a trimmed string value out of a decoded JSON object.
func stringField(obj map[string]interface{}, key string) string {
	if v, ok := obj[key].(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}

// splitISODateTime splits an ISO-8601 timestamp ("2026-04-09T20:00:00-05:00")
// into the draft's date and time fields. A bare date yields an empty time.
func splitISODateTime(value string) (date, clock string) {
	value = strings.TrimSpace(value)
	if len(value) >= 10 {
		date = value[:10]
	} else {
		return "", ""
	}
	if len(value) >= 16 && (value[10] == 'T' || value[10] == ' ') {
		clock = value[11:16]
	}
	return date, clock
}
