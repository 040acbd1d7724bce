package models

// PartialEvent is the subset of draft fields a single extraction strategy may
// produce. Strategies return nil when they have nothing; a non-nil partial
// may fill any subset of fields and must never clear one.
type PartialEvent struct {
	Title       string
	Description string
	Date        string // ISO date (YYYY-MM-DD)
	Time        string // HH:MM (24-hour)
	VenueName   string
	Address     string
	City        string
	State       string
	Capacity    int
	Pricing     []PricingTier
	Performers  []string
	ImageURLs   []string
	TypeHint    string // event type suggested by the vendor, wins over keyword classification
	Source      string // strategy that produced this partial
}

// HasVenue reports whether this partial carries a venue name, the single
// strongest completeness signal. The chain executor short-circuits on it.
func (p *PartialEvent) HasVenue() bool {
	return p != nil && p.VenueName != ""
}

// IsEmpty reports whether the partial carries no usable signal at all.
func (p *PartialEvent) IsEmpty() bool {
	if p == nil {
		return true
	}
	return p.Title == "" && p.Description == "" && p.Date == "" && p.Time == "" &&
		p.VenueName == "" && p.Address == "" && p.City == "" && p.State == "" &&
		p.Capacity == 0 && len(p.Pricing) == 0 && len(p.Performers) == 0 &&
		len(p.ImageURLs) == 0 && p.TypeHint == ""
}

// MergeIfAbsent folds src into p, filling only fields p has not already set.
// Execution order equals priority order, so once a field is filled a later,
// lower-priority strategy can never overwrite it. Image URLs are the one
// additive field: they are appended with de-duplication rather than replaced.
func (p *PartialEvent) MergeIfAbsent(src *PartialEvent) {
	if src == nil {
		return
	}
	if p.Title == "" {
		p.Title = src.Title
	}
	if p.Description == "" {
		p.Description = src.Description
	}
	if p.Date == "" {
		p.Date = src.Date
	}
	if p.Time == "" {
		p.Time = src.Time
	}
	if p.VenueName == "" {
		p.VenueName = src.VenueName
		// Source tracks who supplied the winning venue data.
		if src.VenueName != "" && src.Source != "" {
			p.Source = src.Source
		}
	}
	if p.Address == "" {
		p.Address = src.Address
	}
	if p.City == "" {
		p.City = src.City
	}
	if p.State == "" {
		p.State = src.State
	}
	if p.Capacity == 0 {
		p.Capacity = src.Capacity
	}
	if len(p.Pricing) == 0 {
		p.Pricing = src.Pricing
	}
	if len(p.Performers) == 0 {
		p.Performers = src.Performers
	}
	if p.TypeHint == "" {
		p.TypeHint = src.TypeHint
	}
	p.ImageURLs = appendUniqueURLs(p.ImageURLs, src.ImageURLs)
}

// appendUniqueURLs appends additions to existing, skipping duplicates and
// empty strings while preserving first-seen order.
func appendUniqueURLs(existing, additions []string) []string {
	if len(additions) == 0 {
		return existing
	}
	seen := make(map[string]bool, len(existing))
	for _, u := range existing {
		seen[u] = true
	}
	for _, u := range additions {
		if u == "" || seen[u] {
			continue
		}
		seen[u] = true
		existing = append(existing, u)
	}
	return existing
}
