package cache

import (
	"fmt"
	"strings"
)

// normalize a location fragment by lowercasing, collapsing whitespace and
// abbreviating common locality terms.
func NormalizeKeyComponent(s string) string {
	s = " " + strings.Join(strings.Fields(strings.ToLower(s)), " ")
	replacements := map[string]string{
		"road":    "rd",
		"street":  "st",
		"nagar":   "ngr",
		"sector":  "sec",
		"phase":   "ph",
		"highway": "hwy",
	}
	for full, abbr := range replacements {
		s = strings.ReplaceAll(s, " "+full, " "+abbr)
	}
	return strings.TrimPrefix(s, " ")
}

// cache key for a forward geocoding query restricted to a country.
func GeocodeKey(country, query string) string {
	return fmt.Sprintf("geocode:country:%s:query:%s", strings.ToUpper(strings.TrimSpace(country)), NormalizeKeyComponent(query))
}
