package handlers

import (
	"net/http"

	"realty-stream/internal/catalog"
	apperrors "realty-stream/internal/errors"
	"realty-stream/internal/models"
	"realty-stream/internal/transformers"

	"github.com/gin-gonic/gin"
)

type CityHandler struct {
	prices transformers.PriceParser
	filter transformers.ListingFilter
}

func NewCityHandler(prices transformers.PriceParser, filter transformers.ListingFilter) *CityHandler {
	return &CityHandler{prices: prices, filter: filter}
}

// ListCities godoc
// @Summary List supported cities
// @Description Lists the city catalog, optionally filtered by name and average price range
// @Tags Cities
// @Produce json
// @Param q query string false "Case-insensitive name search"
// @Param price query string false "Price filter in lakh, e.g. 50-100"
// @Success 200 {object} models.CityListResponse
// @Failure 400 {object} models.StreamError
// @Router /api/cities [get]
func (h *CityHandler) ListCities(c *gin.Context) {
	price, err := h.prices.ParsePriceFilter(c.Query("price"))
	if err != nil {
		_ = c.Error(err)
		return
	}

	cities := h.filter.FilterCities(catalog.All(), transformers.FilterCriteria{
		Search: c.Query("q"),
		Price:  price,
	})
	c.JSON(http.StatusOK, models.CityListResponse{Data: cities, Total: len(cities)})
}

// GetCity godoc
// @Summary Get a city
// @Tags Cities
// @Produce json
// @Param cityName path string true "City name"
// @Success 200 {object} models.City
// @Failure 404 {object} models.StreamError
// @Router /api/cities/{cityName} [get]
func (h *CityHandler) GetCity(c *gin.Context) {
	city, ok := catalog.Lookup(c.Param("cityName"))
	if !ok {
		_ = c.Error(apperrors.ErrCityNotFound)
		return
	}
	c.JSON(http.StatusOK, city)
}
