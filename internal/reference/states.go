// Package reference holds the static lookup tables the extraction pipeline
// relies on: US state names, title-casing small words, category keyword sets,
// and the category-driven synthetic defaults. Pure data, no network access.
package reference

import "strings"

// stateAbbreviations maps lowercased full US state names to their 2-letter
// postal abbreviations.
var stateAbbreviations = map[string]string{
	"alabama":              "AL",
	"alaska":               "AK",
	"arizona":              "AZ",
	"arkansas":             "AR",
	"california":           "CA",
	"colorado":             "CO",
	"connecticut":          "CT",
	"delaware":             "DE",
	"district of columbia": "DC",
	"florida":              "FL",
	"georgia":              "GA",
	"hawaii":               "HI",
	"idaho":                "ID",
	"illinois":             "IL",
	"indiana":              "IN",
	"iowa":                 "IA",
	"kansas":               "KS",
	"kentucky":             "KY",
	"louisiana":            "LA",
	"maine":                "ME",
	"maryland":             "MD",
	"massachusetts":        "MA",
	"michigan":             "MI",
	"minnesota":            "MN",
	"mississippi":          "MS",
	"missouri":             "MO",
	"montana":              "MT",
	"nebraska":             "NE",
	"nevada":               "NV",
	"new hampshire":        "NH",
	"new jersey":           "NJ",
	"new mexico":           "NM",
	"new york":             "NY",
	"north carolina":       "NC",
	"north dakota":         "ND",
	"ohio":                 "OH",
	"oklahoma":             "OK",
	"oregon":               "OR",
	"pennsylvania":         "PA",
	"rhode island":         "RI",
	"south carolina":       "SC",
	"south dakota":         "SD",
	"tennessee":            "TN",
	"texas":                "TX",
	"utah":                 "UT",
	"vermont":              "VT",
	"virginia":             "VA",
	"washington":           "WA",
	"west virginia":        "WV",
	"wisconsin":            "WI",
	"wyoming":              "WY",
}

// validAbbreviations is the reverse index of 2-letter codes for O(1) lookup.
var validAbbreviations = func() map[string]bool {
	m := make(map[string]bool, len(stateAbbreviations))
	for _, abbr := range stateAbbreviations {
		m[abbr] = true
	}
	return m
}()

// StateAbbreviation resolves a token to a 2-letter state code. It accepts a
// full state name ("texas") or an existing abbreviation in any case ("tx",
// "TX"). The second return reports whether the token matched at all.
//
// Known false-positive source: an event name that happens to end in a word
// like "in" or "me" matches a state code. The slug tokenizer mitigates this
// by refusing to consume tokens when too few would remain for the name.
func StateAbbreviation(token string) (string, bool) {
	normalized := strings.ToLower(strings.TrimSpace(token))
	if normalized == "" {
		return "", false
	}

	if abbr, ok := stateAbbreviations[normalized]; ok {
		return abbr, true
	}

	upper := strings.ToUpper(normalized)
	if len(upper) == 2 && validAbbreviations[upper] {
		return upper, true
	}

	return "", false
}
