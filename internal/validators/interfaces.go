package validators

type CityValidator interface {
	// ValidateCityName returns the trimmed city name or ErrCityRequired.
	ValidateCityName(name string) (string, error)
}
