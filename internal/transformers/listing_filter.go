package transformers

import (
	"strings"

	"realty-stream/internal/models"
)

type listingFilter struct {
	prices PriceParser
}

func NewListingFilter(prices PriceParser) ListingFilter {
	return &listingFilter{prices: prices}
}

// FilterProjects keeps projects whose name or location contains the search
// text and whose whole price range lies inside the price filter.
func (f *listingFilter) FilterProjects(projects []models.ProjectRecord, criteria FilterCriteria) []models.ProjectRecord {
	search := strings.ToLower(strings.TrimSpace(criteria.Search))
	out := make([]models.ProjectRecord, 0, len(projects))
	for _, p := range projects {
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Name), search) &&
			!strings.Contains(strings.ToLower(p.Location), search) {
			continue
		}
		if !f.priceMatches(p.PriceRange, criteria.Price) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// FilterCities matches the search text against the city name only.
func (f *listingFilter) FilterCities(cities []models.City, criteria FilterCriteria) []models.City {
	search := strings.ToLower(strings.TrimSpace(criteria.Search))
	out := make([]models.City, 0, len(cities))
	for _, c := range cities {
		if search != "" && !strings.Contains(strings.ToLower(c.Name), search) {
			continue
		}
		if !f.priceMatches(c.AvgPrice, criteria.Price) {
			continue
		}
		out = append(out, c)
	}
	return out
}

func (f *listingFilter) priceMatches(display string, filter *PriceRange) bool {
	if filter == nil {
		return true
	}
	r, err := f.prices.ParsePriceRange(display)
	if err != nil {
		return false
	}
	return r.Min >= filter.Min && r.Max <= filter.Max
}
