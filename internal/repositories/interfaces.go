package repositories

import (
	"context"

	"realty-stream/internal/models"
)

// GeocodeCache stores coordinates resolved by the external geocoder, keyed by
// normalized location and city hint.
type GeocodeCache interface {
	// Get returns the cached coordinates and whether the key was present.
	Get(ctx context.Context, key string) (models.Coordinates, bool, error)
	Set(ctx context.Context, key string, coords models.Coordinates) error
}
