package transformers

import (
	"realty-stream/internal/models"
)

// PriceRange is a closed interval in lakh rupees.
type PriceRange struct {
	Min float64
	Max float64
}

// FilterCriteria narrows a listing. A nil Price matches every price.
type FilterCriteria struct {
	Search string
	Price  *PriceRange
}

type PriceParser interface {
	// ParsePriceRange reads a display range such as "₹75 Lac - ₹1.5 Cr".
	ParsePriceRange(s string) (PriceRange, error)
	// ParsePriceFilter reads a "min-max" filter expressed in lakh.
	ParsePriceFilter(s string) (*PriceRange, error)
}

type ListingFilter interface {
	FilterProjects(projects []models.ProjectRecord, criteria FilterCriteria) []models.ProjectRecord
	FilterCities(cities []models.City, criteria FilterCriteria) []models.City
}
