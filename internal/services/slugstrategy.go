package services

import (
	"context"

	"marketplace-event-extractor/internal/models"
)

// SlugSynthesisStrategy is the terminal, always-succeeding chain step: it
// converts the URL slug decomposition into a partial record without touching
// the network. It never yields a venue name, so it never short-circuits a
// chain; it only guarantees the chain terminates with a non-empty result.
type SlugSynthesisStrategy struct{}

// NewSlugSynthesisStrategy creates the terminal fallback step.
func NewSlugSynthesisStrategy() *SlugSynthesisStrategy {
	return &SlugSynthesisStrategy{}
}

// Name implements Strategy.
func (s *SlugSynthesisStrategy) Name() string {
	return "slug-synthesis"
}

// Attempt implements Strategy. It cannot fail.
func (s *SlugSynthesisStrategy) Attempt(_ context.Context, target *Target) (*models.PartialEvent, error) {
	info := target.Slug

	return &models.PartialEvent{
		Title:  info.Name,
		Date:   info.Date,
		City:   info.City,
		State:  info.State,
		Source: models.SourceSlug,
	}, nil
}
