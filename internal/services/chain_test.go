package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"marketplace-event-extractor/internal/models"
)

// stubStrategy is a canned strategy for chain tests. It records whether it ran
// and whether its context carried a deadline.
type stubStrategy struct {
	name        string
	partial     *models.PartialEvent
	err         error
	called      bool
	hadDeadline bool
}

func (s *stubStrategy) Name() string { return s.name }

func (s *stubStrategy) Attempt(ctx context.Context, target *Target) (*models.PartialEvent, error) {
	s.called = true
	_, s.hadDeadline = ctx.Deadline()
	if s.err != nil {
		return nil, s.err
	}
	return s.partial, nil
}

func TestChainRunner(t *testing.T) {
	target := &Target{RawURL: "https://example.com/event/some-show-dallas-texas-04-09-2026/"}

	t.Run("ShortCircuitsOnVenue", func(t *testing.T) {
		first := &stubStrategy{name: "first", partial: &models.PartialEvent{
			VenueName: "American Airlines Center",
			Source:    models.SourceDiscoveryAPI,
		}}
		second := &stubStrategy{name: "second", partial: &models.PartialEvent{Title: "Never Seen"}}

		runner := NewChainRunner(time.Second)
		got := runner.Run(context.Background(), &Chain{Vendor: "test", Steps: []Strategy{first, second}}, target)

		if second.called {
			t.Error("Chain should stop once a step yields a venue")
		}
		if got.VenueName != "American Airlines Center" {
			t.Errorf("Expected venue from first step, got %q", got.VenueName)
		}
		if got.Source != models.SourceDiscoveryAPI {
			t.Errorf("Expected winning source tag, got %q", got.Source)
		}
	})

	t.Run("ErrorFallsThroughToNextStep", func(t *testing.T) {
		failing := &stubStrategy{name: "failing", err: errors.New("upstream 503")}
		fallback := &stubStrategy{name: "fallback", partial: &models.PartialEvent{
			VenueName: "Paramount Theatre",
			Source:    models.SourceHTML,
		}}

		runner := NewChainRunner(time.Second)
		got := runner.Run(context.Background(), &Chain{Vendor: "test", Steps: []Strategy{failing, fallback}}, target)

		if !fallback.called {
			t.Error("A failing step should not stop the chain")
		}
		if got.VenueName != "Paramount Theatre" {
			t.Errorf("Expected fallback venue, got %q", got.VenueName)
		}
	})

	t.Run("PartialResultsAccumulateAcrossSteps", func(t *testing.T) {
		dateOnly := &stubStrategy{name: "date-only", partial: &models.PartialEvent{
			Date: "2026-04-09",
		}}
		venueStep := &stubStrategy{name: "venue", partial: &models.PartialEvent{
			VenueName: "The Majestic",
			Date:      "2099-01-01", // must not overwrite the earlier, higher-priority date
			Source:    models.SourceEmbedAPI,
		}}

		runner := NewChainRunner(time.Second)
		got := runner.Run(context.Background(), &Chain{Vendor: "test", Steps: []Strategy{dateOnly, venueStep}}, target)

		if got.Date != "2026-04-09" {
			t.Errorf("Earlier step's date should win, got %q", got.Date)
		}
		if got.VenueName != "The Majestic" {
			t.Errorf("Expected venue from second step, got %q", got.VenueName)
		}
	})

	t.Run("EmptyStepsCountAsMisses", func(t *testing.T) {
		miss := &stubStrategy{name: "miss", partial: &models.PartialEvent{}}
		runner := NewChainRunner(time.Second)
		got := runner.Run(context.Background(), &Chain{Vendor: "test", Steps: []Strategy{miss}}, target)

		if !got.IsEmpty() {
			t.Errorf("All-miss chain should yield an empty accumulator, got %+v", got)
		}
	})

	t.Run("EveryStepGetsADeadline", func(t *testing.T) {
		step := &stubStrategy{name: "observed", partial: &models.PartialEvent{}}
		runner := NewChainRunner(time.Second)
		runner.Run(context.Background(), &Chain{Vendor: "test", Steps: []Strategy{step}}, target)

		if !step.hadDeadline {
			t.Error("Step context should carry a per-step deadline")
		}
	})
}
