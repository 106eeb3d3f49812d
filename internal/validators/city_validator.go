package validators

import (
	"strings"

	apperrors "realty-stream/internal/errors"
)

type cityValidator struct{}

func NewCityValidator() CityValidator {
	return &cityValidator{}
}

func (v *cityValidator) ValidateCityName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", apperrors.ErrCityRequired
	}
	return name, nil
}
