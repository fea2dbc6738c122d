package services

import "time"

type Season string

const (
	Spring Season = "Spring"
	Summer Season = "Summer"
	Fall   Season = "Fall"
	Winter Season = "Winter"
)

// Suggestion is a product line that typically sells well in a season.
type Suggestion struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Trend       string `json:"trend"`
}

type SeasonalSuggestions struct {
	Season      Season       `json:"season"`
	Suggestions []Suggestion `json:"suggestions"`
}

var suggestionsBySeason = map[Season][]Suggestion{
	Spring: {
		{"Fresh Produce", "Seasonal fruits and vegetables are in high demand", "Rising"},
		{"Gardening Supplies", "Tools and seeds for spring planting", "Rising"},
		{"Allergy Medications", "Antihistamines and decongestants for seasonal allergies", "Rising"},
	},
	Summer: {
		{"Sunscreen", "High SPF protection for summer sun", "Rising"},
		{"Grilling Supplies", "Charcoal, propane, and grilling tools", "Rising"},
		{"Insect Repellent", "Protection against mosquitoes and other summer pests", "Rising"},
	},
	Fall: {
		{"School Supplies", "Notebooks, pens, and backpacks for back to school", "Rising"},
		{"Cold Medications", "Remedies for fall cold and flu season", "Rising"},
		{"Halloween Items", "Decorations, costumes, and candy", "Rising"},
	},
	Winter: {
		{"Holiday Decorations", "Lights, ornaments, and festive decor", "Rising"},
		{"Winter Clothing", "Hats, gloves, and warm accessories", "Rising"},
		{"Vitamins & Supplements", "Immune boosters for cold weather", "Rising"},
	},
}

// SeasonOf maps months to northern-hemisphere seasons: March-May is spring,
// June-August summer, September-November fall, the rest winter.
func SeasonOf(t time.Time) Season {
	switch m := t.Month(); {
	case m >= time.March && m <= time.May:
		return Spring
	case m >= time.June && m <= time.August:
		return Summer
	case m >= time.September && m <= time.November:
		return Fall
	default:
		return Winter
	}
}

// Seasonal returns the suggestions for the season the catalog clock is in.
func (s *AnalyticsService) Seasonal() SeasonalSuggestions {
	season := SeasonOf(s.Catalog.Now())
	out := make([]Suggestion, len(suggestionsBySeason[season]))
	copy(out, suggestionsBySeason[season])
	return SeasonalSuggestions{Season: season, Suggestions: out}
}
