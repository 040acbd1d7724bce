package reference

import (
	"fmt"

	"marketplace-event-extractor/internal/models"
)

// categoryDefaults holds the synthetic values used to complete a draft when
// no strategy observed the real data. Everything here is a constant of the
// event type so two extractions of the same URL always produce identical
// drafts.
type categoryDefaults struct {
	capacity int
	showTime string // HH:MM (24-hour)
	pricing  []models.PricingTier
}

var defaultsByType = map[string]categoryDefaults{
	models.TypeComedy: {
		capacity: 350,
		showTime: "20:00",
		pricing: []models.PricingTier{
			{Level: "General Admission", Price: 45, ServiceFee: 7.50, Tax: 3.95, Sections: []string{"Main Floor"}},
			{Level: "Preferred Seating", Price: 65, ServiceFee: 9.75, Tax: 5.70, Sections: []string{"Front Center"}},
			{Level: "VIP Meet & Greet", Price: 95, ServiceFee: 14.25, Tax: 8.35, Sections: []string{"Front Row"}},
		},
	},
	models.TypeSports: {
		capacity: 18500,
		showTime: "19:00",
		pricing: []models.PricingTier{
			{Level: "Upper Level", Price: 35, ServiceFee: 6.50, Tax: 3.10, Sections: []string{"301-330"}},
			{Level: "Lower Level", Price: 85, ServiceFee: 12.75, Tax: 7.45, Sections: []string{"101-130"}},
			{Level: "Club Level", Price: 150, ServiceFee: 22.50, Tax: 13.15, Sections: []string{"C1-C12"}},
			{Level: "Courtside", Price: 450, ServiceFee: 67.50, Tax: 39.40, Sections: []string{"Floor A-D"}},
		},
	},
	models.TypeTheater: {
		capacity: 1200,
		showTime: "19:30",
		pricing: []models.PricingTier{
			{Level: "Balcony", Price: 59, ServiceFee: 8.85, Tax: 5.20, Sections: []string{"Balcony L", "Balcony R"}},
			{Level: "Mezzanine", Price: 89, ServiceFee: 13.35, Tax: 7.80, Sections: []string{"Mezzanine Center"}},
			{Level: "Orchestra", Price: 129, ServiceFee: 19.35, Tax: 11.30, Sections: []string{"Orchestra Center", "Orchestra Side"}},
		},
	},
	models.TypeMovie: {
		capacity: 150,
		showTime: "19:00",
		pricing: []models.PricingTier{
			{Level: "Standard", Price: 16, ServiceFee: 1.95, Tax: 1.40, Sections: []string{"All Seats"}},
			{Level: "Premium Recliner", Price: 24, ServiceFee: 2.95, Tax: 2.10, Sections: []string{"Rows D-F"}},
		},
	},
	models.TypeConcert: {
		capacity: 2500,
		showTime: "20:00",
		pricing: []models.PricingTier{
			{Level: "General Admission", Price: 39, ServiceFee: 6.85, Tax: 3.40, Sections: []string{"GA Floor"}},
			{Level: "Reserved", Price: 79, ServiceFee: 11.85, Tax: 6.90, Sections: []string{"Lower Bowl"}},
			{Level: "VIP Package", Price: 149, ServiceFee: 22.35, Tax: 13.05, Sections: []string{"Pit", "Box Seats"}},
		},
	},
	models.TypeEvent: {
		capacity: 500,
		showTime: "19:00",
		pricing: []models.PricingTier{
			{Level: "General Admission", Price: 25, ServiceFee: 4.50, Tax: 2.20, Sections: []string{"General"}},
		},
	},
}

// DefaultCapacity returns the synthetic venue capacity for an event type.
func DefaultCapacity(eventType string) int {
	if d, ok := defaultsByType[eventType]; ok {
		return d.capacity
	}
	return defaultsByType[models.TypeEvent].capacity
}

// DefaultShowTime returns the typical start time for an event type.
func DefaultShowTime(eventType string) string {
	if d, ok := defaultsByType[eventType]; ok {
		return d.showTime
	}
	return defaultsByType[models.TypeEvent].showTime
}

// DefaultPricing returns a copy of the synthetic pricing tiers for an event
// type. Callers get a fresh slice so one draft's edits cannot leak into the
// next.
func DefaultPricing(eventType string) []models.PricingTier {
	d, ok := defaultsByType[eventType]
	if !ok {
		d = defaultsByType[models.TypeEvent]
	}

	tiers := make([]models.PricingTier, len(d.pricing))
	copy(tiers, d.pricing)
	for i := range tiers {
		sections := make([]string, len(d.pricing[i].Sections))
		copy(sections, d.pricing[i].Sections)
		tiers[i].Sections = sections
	}
	return tiers
}

// DefaultDescription generates a category-appropriate description for an
// event when none was extracted. A total function of (type, title, city).
func DefaultDescription(eventType, title, city string) string {
	switch eventType {
	case models.TypeComedy:
		return fmt.Sprintf("Get ready to laugh until it hurts! %s brings a night of stand-up comedy to %s. Seating is limited, so grab your tickets early.", title, city)
	case models.TypeSports:
		return fmt.Sprintf("Catch all the action live as %s comes to %s. Experience the energy of a packed house and cheer on your team from the best seats in the building.", title, city)
	case models.TypeTheater:
		return fmt.Sprintf("Experience %s live on stage in %s. A night of world-class performance with full production staging, lighting, and sound.", title, city)
	case models.TypeMovie:
		return fmt.Sprintf("See %s on the big screen in %s. Reserved seating available, with concessions and premium formats at select showtimes.", title, city)
	case models.TypeConcert:
		return fmt.Sprintf("Don't miss %s live in %s. An unforgettable night of live music with full sound and lighting production.", title, city)
	default:
		return fmt.Sprintf("Join us for %s in %s. Tickets are available now.", title, city)
	}
}

// Default location used when no strategy produced any geographic signal.
const (
	DefaultCity  = "New York"
	DefaultState = "NY"
)

// FallbackTitle labels a draft when even the URL slug yielded no usable name.
const FallbackTitle = "New Event"
