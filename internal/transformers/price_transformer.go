package transformers

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	apperrors "realty-stream/internal/errors"
)

const lakhPerCrore = 100

var priceAmountRe = regexp.MustCompile(`(?i)^₹?\s*([0-9]+(?:\.[0-9]+)?)\s*(cr|crore|crores|lac|lacs|lakh|lakhs|l)?\s*\+?$`)

type priceTransformer struct{}

func NewPriceTransformer() PriceParser {
	return &priceTransformer{}
}

func (t *priceTransformer) ParsePriceRange(s string) (PriceRange, error) {
	lo, hi, ok := strings.Cut(s, "-")
	if !ok {
		return PriceRange{}, fmt.Errorf("%w: %q", apperrors.ErrInvalidPriceRange, s)
	}
	low, err := parseAmount(lo)
	if err != nil {
		return PriceRange{}, err
	}
	high, err := parseAmount(hi)
	if err != nil {
		return PriceRange{}, err
	}
	if low > high {
		return PriceRange{}, fmt.Errorf("%w: %q", apperrors.ErrInvalidPriceRange, s)
	}
	return PriceRange{Min: low, Max: high}, nil
}

func (t *priceTransformer) ParsePriceFilter(s string) (*PriceRange, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	lo, hi, ok := strings.Cut(s, "-")
	if !ok {
		return nil, fmt.Errorf("%w: %q", apperrors.ErrInvalidPriceRange, s)
	}
	low, err1 := strconv.ParseFloat(strings.TrimSpace(lo), 64)
	high, err2 := strconv.ParseFloat(strings.TrimSpace(hi), 64)
	if err1 != nil || err2 != nil || low < 0 || low > high {
		return nil, fmt.Errorf("%w: %q", apperrors.ErrInvalidPriceRange, s)
	}
	return &PriceRange{Min: low, Max: high}, nil
}

// parseAmount converts "₹1.2 Cr" or "₹75 Lac" to lakh. A bare number is
// taken as lakh.
func parseAmount(s string) (float64, error) {
	m := priceAmountRe.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, fmt.Errorf("%w: amount %q", apperrors.ErrInvalidPriceRange, s)
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, fmt.Errorf("%w: amount %q", apperrors.ErrInvalidPriceRange, s)
	}
	switch strings.ToLower(m[2]) {
	case "cr", "crore", "crores":
		v *= lakhPerCrore
	}
	return v, nil
}
