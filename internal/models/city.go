// internal/models/city.go
package models

// City is a supported city in the catalog.
type City struct {
	Name         string      `json:"name"`
	Slug         string      `json:"slug"`
	Description  string      `json:"description"`
	Projects     string      `json:"projects"`
	AvgPrice     string      `json:"avgPrice"`
	PopularAreas []string    `json:"popularAreas"`
	Coordinates  Coordinates `json:"coordinates"`
}

type CityListResponse struct {
	Data  []City `json:"data"`
	Total int    `json:"total"`
}
