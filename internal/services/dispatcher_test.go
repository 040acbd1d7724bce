package services

import (
	"testing"

	"marketplace-event-extractor/internal/config"
)

func newTestDispatcher() *Dispatcher {
	cfg := config.Config{
		TicketmasterAPIKey: "tm-key",
		SeatGeekClientID:   "sg-id",
	}
	return NewDispatcher(cfg, NewPageFetcher(cfg.FetchTimeout, cfg.MaxBodyBytes))
}

func TestDispatch(t *testing.T) {
	dispatcher := newTestDispatcher()

	cases := []struct {
		name   string
		host   string
		vendor string
	}{
		{"Ticketmaster", "ticketmaster.com", "ticketmaster"},
		{"TicketmasterWWW", "www.ticketmaster.com", "ticketmaster"},
		{"TicketmasterSubdomain", "concerts.ticketmaster.com", "ticketmaster"},
		{"LiveNationSharesChain", "www.livenation.com", "ticketmaster"},
		{"SeatGeek", "seatgeek.com", "seatgeek"},
		{"StubHub", "www.stubhub.com", "stubhub"},
		{"Fandango", "www.fandango.com", "movies"},
		{"AtomTickets", "atomtickets.com", "movies"},
		{"UnknownHost", "tickets.example.org", "generic"},
		{"EmptyHost", "", "generic"},
		{"LookalikeDomainNotMatched", "faketicketmaster.com", "generic"},
		{"MixedCaseHost", "WWW.SeatGeek.COM", "seatgeek"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			chain := dispatcher.Dispatch(tc.host)
			if chain.Vendor != tc.vendor {
				t.Errorf("Dispatch(%q) routed to %q, want %q", tc.host, chain.Vendor, tc.vendor)
			}
		})
	}
}

func TestEveryChainTerminatesWithSlugSynthesis(t *testing.T) {
	dispatcher := newTestDispatcher()

	hosts := []string{"ticketmaster.com", "seatgeek.com", "stubhub.com", "fandango.com", "unknown.example"}
	for _, host := range hosts {
		chain := dispatcher.Dispatch(host)
		if len(chain.Steps) == 0 {
			t.Fatalf("Chain for %s has no steps", host)
		}
		last := chain.Steps[len(chain.Steps)-1]
		if last.Name() != "slug-synthesis" {
			t.Errorf("Chain for %s must end in slug synthesis, ends in %q", host, last.Name())
		}
	}
}

func TestSupportedDomains(t *testing.T) {
	domains := newTestDispatcher().SupportedDomains()

	want := map[string]bool{
		"ticketmaster.com": true,
		"livenation.com":   true,
		"seatgeek.com":     true,
		"stubhub.com":      true,
		"fandango.com":     true,
		"atomtickets.com":  true,
	}

	if len(domains) != len(want) {
		t.Fatalf("Expected %d supported domains, got %d: %v", len(want), len(domains), domains)
	}
	for _, d := range domains {
		if !want[d] {
			t.Errorf("Unexpected supported domain %q", d)
		}
	}
}
