package services

import (
	"context"
	"strings"

	"realty-stream/internal/catalog"
	"realty-stream/internal/models"
	"realty-stream/internal/repositories"
	"realty-stream/pkg/cache"
	"realty-stream/pkg/logger"
	"realty-stream/pkg/metrics"
	"realty-stream/pkg/positionstack"
)

// ForwardGeocoder looks up a free-text query restricted to a country.
type ForwardGeocoder interface {
	ForwardGeocode(ctx context.Context, query, country string) (positionstack.Result, error)
}

// Geocoder resolves a project location to coordinates. It never fails.
type Geocoder interface {
	Resolve(ctx context.Context, location, cityHint string) models.Coordinates
}

type GeocodingService struct {
	client  ForwardGeocoder
	cache   repositories.GeocodeCache
	country string
}

// NewGeocodingService builds a Geocoder. A nil client means no credential is
// configured and every unknown city resolves to the default coordinates. A
// nil cache disables caching.
func NewGeocodingService(client ForwardGeocoder, cache repositories.GeocodeCache, country string) *GeocodingService {
	return &GeocodingService{
		client:  client,
		cache:   cache,
		country: country,
	}
}

func (s *GeocodingService) Resolve(ctx context.Context, location, cityHint string) models.Coordinates {
	if city, ok := catalog.Lookup(cityHint); ok {
		metrics.GeocodeResolutionsTotal.WithLabelValues(metrics.SourceCityTable).Inc()
		return city.Coordinates
	}

	if s.client == nil {
		logger.GlobalLogger.Warnf("geocoding credential not configured, using default coordinates for %q", location)
		return s.fallback(metrics.SourceDefaultNoKey)
	}

	query := strings.TrimSpace(location)
	key := cache.GeocodeKey(s.country, query)
	if s.cache != nil {
		coords, ok, err := s.cache.Get(ctx, key)
		if err != nil {
			logger.GlobalLogger.Warnf("geocode cache read failed: key=%s, error=%v", key, err)
		}
		if ok {
			metrics.GeocodeResolutionsTotal.WithLabelValues(metrics.SourceCache).Inc()
			return coords
		}
	}

	res, err := s.client.ForwardGeocode(ctx, query, s.country)
	if err != nil {
		logger.GlobalLogger.Warnf("geocoding failed: location=%q, error=%v", location, err)
		return s.fallback(metrics.SourceFallback)
	}
	if !res.Found {
		logger.GlobalLogger.Debugf("geocoding returned no results: location=%q", location)
		return s.fallback(metrics.SourceFallback)
	}

	coords := models.Coordinates{Lat: res.Latitude, Lon: res.Longitude}
	if s.cache != nil {
		if err := s.cache.Set(ctx, key, coords); err != nil {
			logger.GlobalLogger.Warnf("geocode cache write failed: key=%s, error=%v", key, err)
		}
	}
	metrics.GeocodeResolutionsTotal.WithLabelValues(metrics.SourceExternal).Inc()
	return coords
}

func (s *GeocodingService) fallback(source string) models.Coordinates {
	metrics.GeocodeResolutionsTotal.WithLabelValues(source).Inc()
	return catalog.Default().Coordinates
}
