// internal/models/project.go
package models

// Coordinates is a latitude/longitude pair in decimal degrees.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// ProjectRecord is one real-estate project listing. Values are never mutated
// after construction.
type ProjectRecord struct {
	Name        string      `json:"name"`
	Location    string      `json:"location"`
	PriceRange  string      `json:"priceRange"`
	BuilderName string      `json:"builderName"`
	Coordinates Coordinates `json:"coordinates"`
}

// ProjectFrame is the JSON payload carried by one stream frame.
type ProjectFrame struct {
	Project *ProjectRecord `json:"project"`
}

// StreamError is the JSON payload of a terminating error event, and the body
// of non-streaming error responses.
type StreamError struct {
	Error string `json:"error"`
}
