package services

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"marketplace-event-extractor/internal/config"
	"marketplace-event-extractor/internal/models"
	"marketplace-event-extractor/internal/slug"
)

// Extractor is the extraction pipeline facade: dispatch the URL to its
// chain, run the chain, normalize the accumulated partial into a draft.
// It never fails a request: malformed input and total upstream outage both
// degrade to a placeholder draft with the Error field set or empty.
type Extractor struct {
	cfg        config.Config
	dispatcher *Dispatcher
	runner     *ChainRunner
	normalizer *Normalizer
	now        func() time.Time
}

// NewExtractor wires the production pipeline from configuration.
func NewExtractor(cfg config.Config) *Extractor {
	fetcher := NewPageFetcher(cfg.FetchTimeout, cfg.MaxBodyBytes)
	return NewExtractorWith(cfg, NewDispatcher(cfg, fetcher), time.Now)
}

// NewExtractorWith assembles a pipeline around an explicit dispatcher and
// clock. Tests use it to point chains at fixture servers and freeze time.
func NewExtractorWith(cfg config.Config, dispatcher *Dispatcher, now func() time.Time) *Extractor {
	return &Extractor{
		cfg:        cfg,
		dispatcher: dispatcher,
		runner:     NewChainRunner(cfg.StepTimeout),
		normalizer: NewNormalizer(),
		now:        now,
	}
}

// Extract produces a structurally complete draft for any input string. The
// returned draft always validates; failure is reported through its Error
// field, never through a missing response.
func (e *Extractor) Extract(ctx context.Context, rawURL string) models.EventDraft {
	start := e.now()
	requestID := uuid.NewString()

	log.Printf("[EXTRACTION] request %s started for URL: %s", requestID, rawURL)

	target, err := e.buildTarget(rawURL)
	if err != nil {
		log.Printf("[EXTRACTION] request %s has unusable input: %v", requestID, err)
		// Label the placeholder draft with whatever host-like fragment the
		// input carries, so the admin can still tell the requests apart.
		draft := e.normalizer.Normalize(&models.PartialEvent{Title: hostLabel(rawURL)}, requestID, start)
		draft.Error = fmt.Sprintf("could not parse URL %q: %v", rawURL, err)
		recordExtraction("invalid", draft.Source, e.now().Sub(start))
		return draft
	}

	chain := e.dispatcher.Dispatch(target.Host)
	accumulated := e.runner.Run(ctx, chain, target)
	draft := e.normalizer.Normalize(accumulated, requestID, start)

	elapsed := e.now().Sub(start)
	recordExtraction(chain.Vendor, draft.Source, elapsed)
	log.Printf("[EXTRACTION] request %s completed via %s/%s in %v: title=%q venue=%q",
		requestID, chain.Vendor, draft.Source, elapsed, draft.Title, draft.Venue.Name)

	return draft
}

// hostLabel extracts the domain-like fragment of an unparseable input: the
// text after any scheme, up to the first path separator. Empty input yields
// an empty label and the normalizer's fallback title takes over.
func hostLabel(rawURL string) string {
	s := strings.TrimSpace(rawURL)
	if i := strings.Index(s, "://"); i >= 0 {
		s = s[i+3:]
	}
	if i := strings.IndexAny(s, "/?#"); i >= 0 {
		s = s[:i]
	}
	return s
}

// buildTarget parses the raw URL into the strategy target. Only absolute
// http(s) URLs with a hostname are usable.
func (e *Extractor) buildTarget(rawURL string) (*Target, error) {
	trimmed := strings.TrimSpace(rawURL)
	if trimmed == "" {
		return nil, fmt.Errorf("URL is empty")
	}

	parsed, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("URL parse failed: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("unsupported scheme %q", parsed.Scheme)
	}
	if parsed.Hostname() == "" {
		return nil, fmt.Errorf("URL has no hostname")
	}

	return &Target{
		RawURL: trimmed,
		URL:    parsed,
		Host:   strings.ToLower(parsed.Hostname()),
		Slug:   slug.Parse(slug.EventSegment(parsed.Path)),
	}, nil
}

// Capabilities is the static descriptor returned on GET requests so the
// admin UI can discover what the extract endpoint supports.
type Capabilities struct {
	Methods          []string          `json:"methods"` // verbs the extract route serves
	SupportedDomains []string          `json:"supportedDomains"`
	Credentials      map[string]string `json:"credentials"` // vendor -> configured|missing
	Version          string            `json:"version"`
}

// Capabilities reports the supported marketplaces and which credentialed
// strategies are live.
func (e *Extractor) Capabilities() Capabilities {
	credentialStatus := func(present bool) string {
		if present {
			return "configured"
		}
		return "missing"
	}

	return Capabilities{
		Methods:          []string{"GET", "POST"},
		SupportedDomains: e.dispatcher.SupportedDomains(),
		Credentials: map[string]string{
			"ticketmaster": credentialStatus(e.cfg.TicketmasterAPIKey != ""),
			"seatgeek":     credentialStatus(e.cfg.SeatGeekClientID != ""),
		},
		Version: "1.0.0",
	}
}
