// Package slug decomposes the hyphen-delimited path segment of a marketplace
// URL into an event name, date, city, and state using positional heuristics.
// The slug is often the only reliably present signal for a listing, so this
// is the pipeline's guaranteed-success fallback: it never fails, it only
// degrades.
package slug

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"marketplace-event-extractor/internal/reference"
)

// Info is the best-effort decomposition of a URL slug.
type Info struct {
	Name       string   // title-cased event name; empty only for an empty slug
	NameTokens []string // raw lowercase tokens making up the name
	Date       string   // ISO date (YYYY-MM-DD), empty if no date run found
	City       string   // title-cased city, empty if not recognized
	State      string   // 2-letter abbreviation, empty if not recognized
}

// SearchPhrase returns the event name tokens joined as a lowercase phrase,
// suitable as a vendor keyword-search query.
func (i Info) SearchPhrase() string {
	return strings.Join(i.NameTokens, " ")
}

// Parse decomposes a URL path segment. The scan works backwards:
//
//  1. a trailing 3-token numeric run is consumed as a date (MM-DD-YYYY, or
//     DD-MM-YYYY when the first token cannot be a month),
//  2. the new trailing token (or trailing pair, for two-word state names) is
//     consumed as a state when it matches the state table, together with the
//     token before it as the city,
//  3. whatever remains is title-cased into the event name.
//
// Ambiguity is always resolved in favor of a non-empty name: if consuming
// city/state would leave fewer than two name tokens, the extraction is
// skipped. Names that genuinely end in a state-like token ("Living in LA")
// are a known false-positive source of this heuristic.
func Parse(segment string) Info {
	tokens := splitTokens(segment)
	if len(tokens) == 0 {
		return Info{}
	}

	info := Info{}

	tokens, info.Date = consumeTrailingDate(tokens)
	tokens, info.City, info.State = consumeTrailingLocation(tokens)

	info.NameTokens = tokens
	info.Name = reference.TitleCaseTokens(tokens)

	return info
}

// splitTokens splits a slug on hyphens, dropping empty tokens produced by
// doubled or leading/trailing separators.
func splitTokens(segment string) []string {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(segment)), "-")
	tokens := make([]string, 0, len(parts))
	for _, part := range parts {
		if part != "" {
			tokens = append(tokens, part)
		}
	}
	return tokens
}

// consumeTrailingDate looks for a 3-token numeric date run at the end of the
// token list. On a hit it returns the shortened list and the ISO date.
func consumeTrailingDate(tokens []string) ([]string, string) {
	if len(tokens) < 3 {
		return tokens, ""
	}

	first, errA := strconv.Atoi(tokens[len(tokens)-3])
	second, errB := strconv.Atoi(tokens[len(tokens)-2])
	year, errC := strconv.Atoi(tokens[len(tokens)-1])
	if errA != nil || errB != nil || errC != nil {
		return tokens, ""
	}
	if year < 1900 || year > 2200 || len(tokens[len(tokens)-1]) != 4 {
		return tokens, ""
	}

	month, day := first, second
	if month > 12 && day <= 12 {
		// Non-US sources encode DD-MM-YYYY.
		month, day = day, month
	}
	if !isValidCalendarDate(year, month, day) {
		return tokens, ""
	}

	date := fmt.Sprintf("%04d-%02d-%02d", year, month, day)
	return tokens[:len(tokens)-3], date
}

// isValidCalendarDate verifies the components round-trip through time.Date,
// rejecting overflows like month 13 or February 30.
func isValidCalendarDate(year, month, day int) bool {
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return t.Year() == year && int(t.Month()) == month && t.Day() == day
}

// consumeTrailingLocation inspects the trailing tokens for a state match
// (2-letter code, one-word name, or two-word name) preceded by a city token.
// It refuses to consume when fewer than two name tokens would remain, so a
// short slug keeps its full name instead of losing it to a spurious match.
func consumeTrailingLocation(tokens []string) (remaining []string, city, state string) {
	// Two-word state names ("new-york", "north-carolina") span two tokens.
	if len(tokens) >= 5 {
		joined := tokens[len(tokens)-2] + " " + tokens[len(tokens)-1]
		if abbr, ok := reference.StateAbbreviation(joined); ok {
			cityToken := tokens[len(tokens)-3]
			return tokens[:len(tokens)-3], titleCaseCity(cityToken), abbr
		}
	}

	if len(tokens) >= 4 {
		if abbr, ok := reference.StateAbbreviation(tokens[len(tokens)-1]); ok {
			cityToken := tokens[len(tokens)-2]
			return tokens[:len(tokens)-2], titleCaseCity(cityToken), abbr
		}
	}

	return tokens, "", ""
}

func titleCaseCity(token string) string {
	if token == "" {
		return ""
	}
	return strings.ToUpper(token[:1]) + token[1:]
}

// EventSegment picks the slug-bearing path segment out of a URL path: the
// longest hyphenated segment, which on every supported marketplace is the
// listing slug. Plain ID segments and static prefixes lose to it.
func EventSegment(path string) string {
	segments := strings.Split(strings.Trim(path, "/"), "/")

	best := ""
	bestHyphens := -1
	for _, segment := range segments {
		hyphens := strings.Count(segment, "-")
		if hyphens > bestHyphens || (hyphens == bestHyphens && len(segment) > len(best)) {
			best = segment
			bestHyphens = hyphens
		}
	}
	return best
}
