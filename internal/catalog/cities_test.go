package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"realty-stream/internal/models"
)

func TestLookup_CaseInsensitive(t *testing.T) {
	for _, name := range []string{"hyderabad", "Hyderabad", "  HYDERABAD "} {
		city, ok := Lookup(name)
		require.True(t, ok, name)
		assert.Equal(t, models.Coordinates{Lat: 17.3850, Lon: 78.4867}, city.Coordinates)
	}
}

func TestLookup_Unknown(t *testing.T) {
	_, ok := Lookup("atlantis")
	assert.False(t, ok)

	_, ok = Lookup("")
	assert.False(t, ok)
}

func TestDefault_IsHyderabad(t *testing.T) {
	d := Default()
	assert.Equal(t, "hyderabad", d.Slug)
	assert.Equal(t, 17.3850, d.Coordinates.Lat)
	assert.Equal(t, 78.4867, d.Coordinates.Lon)
}

func TestAll_TenCitiesInOrder(t *testing.T) {
	all := All()
	require.Len(t, all, 10)
	assert.Equal(t, "Hyderabad", all[0].Name)
	assert.Equal(t, "Lucknow", all[9].Name)
}

func TestAll_ReturnsCopies(t *testing.T) {
	all := All()
	all[0].PopularAreas[0] = "mutated"
	all[0].Name = "mutated"

	again, _ := Lookup("hyderabad")
	assert.Equal(t, "Hyderabad", again.Name)
	assert.Equal(t, "Banjara Hills", again.PopularAreas[0])
}
