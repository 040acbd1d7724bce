package services

import (
	"context"
	"log"
	"net/url"
	"time"

	"marketplace-event-extractor/internal/models"
	"marketplace-event-extractor/internal/slug"
)

// Target is the parsed extraction request handed to every strategy step.
type Target struct {
	RawURL string
	URL    *url.URL
	Host   string    // lowercased hostname without port
	Slug   slug.Info // decomposition of the listing slug
}

// Strategy is a single extraction attempt for one marketplace. A strategy
// returns a partial record with whatever fields it could recover, or nil when
// it has no data. Strategies must not let network or parse failures escape as
// panics; an error return is logged by the chain and treated as "no data".
type Strategy interface {
	// Name identifies the step in logs and metrics, e.g. "ticketmaster-discovery".
	Name() string

	// Attempt tries to extract event data for the target. The context
	// carries the per-step timeout; implementations must respect it on
	// every outbound call.
	Attempt(ctx context.Context, target *Target) (*models.PartialEvent, error)
}

// Chain is the ordered list of extraction strategies for one marketplace,
// strongest signal first. Every chain terminates with the slug-synthesis
// step, so running a chain always produces a non-empty partial.
type Chain struct {
	Vendor string
	Steps  []Strategy
}

// ChainRunner executes strategy chains with per-step timeouts and records
// attempt outcomes.
type ChainRunner struct {
	stepTimeout time.Duration
}

// NewChainRunner creates a runner enforcing the given per-step timeout on
// each network strategy.
func NewChainRunner(stepTimeout time.Duration) *ChainRunner {
	if stepTimeout <= 0 {
		stepTimeout = 10 * time.Second
	}
	return &ChainRunner{stepTimeout: stepTimeout}
}

// Run tries the chain's steps in order, merging each step's fields into the
// accumulator with merge-if-absent semantics, and stops as soon as a step has
// yielded a venue name - the single strongest completeness signal. No step is
// retried: a failure or empty result simply falls through to the next step.
func (r *ChainRunner) Run(ctx context.Context, chain *Chain, target *Target) *models.PartialEvent {
	accumulated := &models.PartialEvent{}

	for _, step := range chain.Steps {
		stepCtx, cancel := context.WithTimeout(ctx, r.stepTimeout)
		partial, err := step.Attempt(stepCtx, target)
		cancel()

		if err != nil {
			log.Printf("[CHAIN] %s step %s failed for %s: %v", chain.Vendor, step.Name(), target.RawURL, err)
			recordStrategyAttempt(chain.Vendor, step.Name(), "error")
			continue
		}
		if partial.IsEmpty() {
			recordStrategyAttempt(chain.Vendor, step.Name(), "miss")
			continue
		}

		recordStrategyAttempt(chain.Vendor, step.Name(), "hit")
		accumulated.MergeIfAbsent(partial)

		if accumulated.HasVenue() {
			log.Printf("[CHAIN] %s step %s yielded venue %q, short-circuiting", chain.Vendor, step.Name(), accumulated.VenueName)
			break
		}
	}

	return accumulated
}
