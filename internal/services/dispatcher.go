package services

import (
	"context"
	"strings"

	"marketplace-event-extractor/internal/config"
	"marketplace-event-extractor/internal/models"
)

// HostPredicate decides whether a chain owns a hostname.
type HostPredicate func(host string) bool

// registration binds a hostname predicate to its strategy chain. Adding a
// marketplace means appending a registration, not editing a dispatch
// monolith.
type registration struct {
	domains []string // registrable domains, for the capability descriptor
	matches HostPredicate
	chain   *Chain
}

// Dispatcher classifies an input URL by hostname and selects the per-source
// strategy chain. Unrecognized domains and unparseable hosts fall through to
// the generic chain: the dispatcher never rejects a request.
type Dispatcher struct {
	registrations []registration
	generic       *Chain
}

// suffixMatch builds a predicate matching a registrable domain and its
// subdomains.
func suffixMatch(domains ...string) HostPredicate {
	return func(host string) bool {
		for _, domain := range domains {
			if host == domain || strings.HasSuffix(host, "."+domain) {
				return true
			}
		}
		return false
	}
}

// staticHintStrategy seeds a chain's accumulator with a vendor-implied event
// type before any network step runs. It carries no venue, so it never
// short-circuits.
type staticHintStrategy struct {
	hint string
}

func (s *staticHintStrategy) Name() string {
	return "vendor-type-hint"
}

func (s *staticHintStrategy) Attempt(_ context.Context, _ *Target) (*models.PartialEvent, error) {
	return &models.PartialEvent{TypeHint: s.hint}, nil
}

// NewDispatcher wires the per-marketplace chains from the configuration.
// Chain ordering inside each registration follows signal strength: vendor
// structured API, keyword search, public embed endpoint, generic HTML,
// then slug synthesis as the guaranteed terminal step.
func NewDispatcher(cfg config.Config, fetcher *PageFetcher) *Dispatcher {
	html := NewHTMLExtractor(fetcher)
	slugStep := NewSlugSynthesisStrategy()

	ticketmaster := &Chain{
		Vendor: "ticketmaster",
		Steps: []Strategy{
			NewTicketmasterDiscoveryStrategy(fetcher, cfg.TicketmasterAPIKey, ""),
			NewTicketmasterSearchStrategy(fetcher, cfg.TicketmasterAPIKey, ""),
			NewTicketmasterEmbedStrategy(fetcher, ""),
			html,
			slugStep,
		},
	}

	seatgeek := &Chain{
		Vendor: "seatgeek",
		Steps: []Strategy{
			NewSeatGeekLookupStrategy(fetcher, cfg.SeatGeekClientID, ""),
			NewSeatGeekSearchStrategy(fetcher, cfg.SeatGeekClientID, ""),
			html,
			slugStep,
		},
	}

	stubhub := &Chain{
		Vendor: "stubhub",
		Steps: []Strategy{
			NewStubHubExploreStrategy(fetcher, ""),
			html,
			slugStep,
		},
	}

	movies := &Chain{
		Vendor: "movies",
		Steps: []Strategy{
			&staticHintStrategy{hint: models.TypeMovie},
			html,
			slugStep,
		},
	}

	generic := &Chain{
		Vendor: "generic",
		Steps: []Strategy{
			html,
			slugStep,
		},
	}

	register := func(chain *Chain, domains ...string) registration {
		return registration{domains: domains, matches: suffixMatch(domains...), chain: chain}
	}

	return &Dispatcher{
		registrations: []registration{
			register(ticketmaster, "ticketmaster.com", "livenation.com"),
			register(seatgeek, "seatgeek.com"),
			register(stubhub, "stubhub.com"),
			register(movies, "fandango.com", "atomtickets.com"),
		},
		generic: generic,
	}
}

// Dispatch selects the chain owning the hostname. Empty or unrecognized
// hosts get the generic chain.
func (d *Dispatcher) Dispatch(host string) *Chain {
	host = strings.TrimPrefix(strings.ToLower(host), "www.")

	for _, reg := range d.registrations {
		if reg.matches(host) {
			return reg.chain
		}
	}
	return d.generic
}

// SupportedDomains lists the marketplaces with a dedicated chain, for the
// capability descriptor.
func (d *Dispatcher) SupportedDomains() []string {
	var domains []string
	for _, reg := range d.registrations {
		domains = append(domains, reg.domains...)
	}
	return domains
}
