package reference

import (
	"strings"

	"marketplace-event-extractor/internal/models"
)

// categoryBucket associates an event type with the keywords that signal it.
// Buckets are matched in order; the first hit wins.
type categoryBucket struct {
	eventType string
	keywords  []string
}

// categoryBuckets drives the keyword classifier. Ordering matters: comedy
// terms are checked before sports so "stand-up night at the arena" classifies
// as comedy, and movie terms come after theater so "musical film screening"
// stays a theater event.
var categoryBuckets = []categoryBucket{
	{
		eventType: models.TypeComedy,
		keywords: []string{
			"comedy", "comedian", "stand-up", "standup", "stand up",
			"improv", "funny", "laughs", "roast", "sketch",
		},
	},
	{
		eventType: models.TypeSports,
		keywords: []string{
			"nba", "nfl", "mlb", "nhl", "mls", "ncaa", "ufc", "wwe",
			"basketball", "football", "baseball", "hockey", "soccer",
			"wrestling", "boxing", "golf", "tennis", "nascar", "rodeo",
			"monster jam", "supercross", " vs ", " vs. ",
		},
	},
	{
		eventType: models.TypeTheater,
		keywords: []string{
			"musical", "broadway", "theater", "theatre", "ballet",
			"opera", "orchestra", "symphony", "cirque", " play ",
			"nutcracker", "phantom", "hamilton", "wicked",
		},
	},
	{
		eventType: models.TypeMovie,
		keywords: []string{
			"movie", "film", "cinema", "screening", "premiere",
			"imax", "matinee", "double feature",
		},
	},
}

// ClassifyEventName maps a human-readable event name onto one of the fixed
// event types. No keyword match defaults to concert, the most common
// marketplace listing kind. This classification is the single mechanism by
// which the normalizer produces plausible capacity, pricing, time, and
// description defaults for fields no strategy observed.
func ClassifyEventName(name string) string {
	// Pad so boundary keywords like " vs " match at the string edges too.
	lowered := " " + strings.ToLower(name) + " "

	for _, bucket := range categoryBuckets {
		for _, keyword := range bucket.keywords {
			if strings.Contains(lowered, keyword) {
				return bucket.eventType
			}
		}
	}

	return models.TypeConcert
}

// DisplayCategory returns the matching UI category label for an event type.
func DisplayCategory(eventType string) string {
	return models.GetTypeDisplayName(eventType)
}
