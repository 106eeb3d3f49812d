// Package catalog holds the static table of supported cities. It doubles as
// the geocoder's fallback coordinate table.
package catalog

import (
	"strings"

	"realty-stream/internal/models"
)

// DefaultSlug names the entry used when no better coordinates are known.
const DefaultSlug = "hyderabad"

var cities = []models.City{
	{
		Name:         "Hyderabad",
		Slug:         "hyderabad",
		Description:  "The City of Pearls",
		Projects:     "1200+ Projects",
		AvgPrice:     "₹1.2 Cr - ₹2.5 Cr",
		PopularAreas: []string{"Banjara Hills", "Gachibowli", "HITEC City"},
		Coordinates:  models.Coordinates{Lat: 17.3850, Lon: 78.4867},
	},
	{
		Name:         "Mumbai",
		Slug:         "mumbai",
		Description:  "The City of Dreams",
		Projects:     "2500+ Projects",
		AvgPrice:     "₹2.5 Cr - ₹5 Cr",
		PopularAreas: []string{"Bandra", "Juhu", "Powai"},
		Coordinates:  models.Coordinates{Lat: 19.0760, Lon: 72.8777},
	},
	{
		Name:         "Delhi",
		Slug:         "delhi",
		Description:  "The Capital City",
		Projects:     "1800+ Projects",
		AvgPrice:     "₹2 Cr - ₹4 Cr",
		PopularAreas: []string{"Gurgaon", "Noida", "Dwarka"},
		Coordinates:  models.Coordinates{Lat: 28.7041, Lon: 77.1025},
	},
	{
		Name:         "Bangalore",
		Slug:         "bangalore",
		Description:  "The Silicon Valley of India",
		Projects:     "2000+ Projects",
		AvgPrice:     "₹1.5 Cr - ₹3 Cr",
		PopularAreas: []string{"Whitefield", "Electronic City", "Sarjapur"},
		Coordinates:  models.Coordinates{Lat: 12.9716, Lon: 77.5946},
	},
	{
		Name:         "Chennai",
		Slug:         "chennai",
		Description:  "The Detroit of India",
		Projects:     "1500+ Projects",
		AvgPrice:     "₹1 Cr - ₹2.5 Cr",
		PopularAreas: []string{"OMR", "ECR", "Anna Nagar"},
		Coordinates:  models.Coordinates{Lat: 13.0827, Lon: 80.2707},
	},
	{
		Name:         "Kolkata",
		Slug:         "kolkata",
		Description:  "The City of Joy",
		Projects:     "1300+ Projects",
		AvgPrice:     "₹80 Lac - ₹2 Cr",
		PopularAreas: []string{"Salt Lake", "New Town", "Rajarhat"},
		Coordinates:  models.Coordinates{Lat: 22.5726, Lon: 88.3639},
	},
	{
		Name:         "Pune",
		Slug:         "pune",
		Description:  "The Oxford of the East",
		Projects:     "1600+ Projects",
		AvgPrice:     "₹90 Lac - ₹2 Cr",
		PopularAreas: []string{"Hinjewadi", "Kharadi", "Wakad"},
		Coordinates:  models.Coordinates{Lat: 18.5204, Lon: 73.8567},
	},
	{
		Name:         "Ahmedabad",
		Slug:         "ahmedabad",
		Description:  "The Manchester of India",
		Projects:     "1100+ Projects",
		AvgPrice:     "₹60 Lac - ₹1.5 Cr",
		PopularAreas: []string{"SG Highway", "Prahlad Nagar", "Bopal"},
		Coordinates:  models.Coordinates{Lat: 23.0225, Lon: 72.5714},
	},
	{
		Name:         "Jaipur",
		Slug:         "jaipur",
		Description:  "The Pink City",
		Projects:     "900+ Projects",
		AvgPrice:     "₹50 Lac - ₹1.2 Cr",
		PopularAreas: []string{"Vaishali Nagar", "Mansarovar", "Sitapura"},
		Coordinates:  models.Coordinates{Lat: 26.9124, Lon: 75.7873},
	},
	{
		Name:         "Lucknow",
		Slug:         "lucknow",
		Description:  "The City of Nawabs",
		Projects:     "800+ Projects",
		AvgPrice:     "₹40 Lac - ₹1 Cr",
		PopularAreas: []string{"Gomti Nagar", "Alambagh", "Indira Nagar"},
		Coordinates:  models.Coordinates{Lat: 26.8467, Lon: 80.9462},
	},
}

var bySlug = func() map[string]int {
	m := make(map[string]int, len(cities))
	for i, c := range cities {
		m[c.Slug] = i
	}
	return m
}()

// Slug normalizes a city name for table lookups.
func Slug(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Lookup finds a city by name, ignoring case and surrounding whitespace.
func Lookup(name string) (models.City, bool) {
	i, ok := bySlug[Slug(name)]
	if !ok {
		return models.City{}, false
	}
	return clone(cities[i]), true
}

// Default returns the fallback city.
func Default() models.City {
	return clone(cities[bySlug[DefaultSlug]])
}

// All returns the catalog in display order.
func All() []models.City {
	out := make([]models.City, len(cities))
	for i, c := range cities {
		out[i] = clone(c)
	}
	return out
}

func clone(c models.City) models.City {
	c.PopularAreas = append([]string(nil), c.PopularAreas...)
	return c
}
