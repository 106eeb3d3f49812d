package services

import (
	"context"
	"fmt"
	"time"

	"realty-stream/internal/models"

	"github.com/jonboulle/clockwork"
)

// ProjectSource produces the ordered project listing for a city.
type ProjectSource interface {
	ListProjects(ctx context.Context, cityName string) ([]models.ProjectRecord, error)
}

type projectTemplate struct {
	name        string
	area        string
	priceRange  string
	builderName string
}

var mockTemplates = []projectTemplate{
	{"Luxury Heights", "Banjara Hills", "₹1.2 Cr - ₹2.5 Cr", "Prestige Group"},
	{"Green Valley Residency", "Gachibowli", "₹75 Lac - ₹1.5 Cr", "DLF Limited"},
	{"Royal Gardens", "Jubilee Hills", "₹2 Cr - ₹4 Cr", "Sobha Limited"},
	{"Tech Park Residences", "HITEC City", "₹90 Lac - ₹1.8 Cr", "Brigade Group"},
	{"Lakeview Apartments", "Hussain Sagar", "₹1.5 Cr - ₹3 Cr", "Godrej Properties"},
	{"Garden City", "Madhapur", "₹60 Lac - ₹1.2 Cr", "Prestige Group"},
	{"Sky Towers", "Kondapur", "₹2.5 Cr - ₹5 Cr", "Lodha Group"},
	{"Urban Oasis", "Kukatpally", "₹45 Lac - ₹90 Lac", "Sobha Limited"},
}

// MockProjectSource returns a fixed set of eight projects templated on the
// requested city after a simulated upstream delay.
type MockProjectSource struct {
	geocoder Geocoder
	clock    clockwork.Clock
	latency  time.Duration
}

func NewMockProjectSource(geocoder Geocoder, clock clockwork.Clock, latency time.Duration) *MockProjectSource {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &MockProjectSource{
		geocoder: geocoder,
		clock:    clock,
		latency:  latency,
	}
}

func (s *MockProjectSource) ListProjects(ctx context.Context, cityName string) ([]models.ProjectRecord, error) {
	if s.latency > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-s.clock.After(s.latency):
		}
	}

	projects := make([]models.ProjectRecord, 0, len(mockTemplates))
	for _, tmpl := range mockTemplates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		location := fmt.Sprintf("%s, %s", tmpl.area, cityName)
		projects = append(projects, models.ProjectRecord{
			Name:        tmpl.name,
			Location:    location,
			PriceRange:  tmpl.priceRange,
			BuilderName: tmpl.builderName,
			Coordinates: s.geocoder.Resolve(ctx, location, cityName),
		})
	}
	return projects, nil
}
