package models_test

import (
	"testing"

	"github.com/lexirealty/homestead/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestDisplayRating(t *testing.T) {
	t.Run("absent rating renders N/A", func(t *testing.T) {
		place := models.NearbyPlace{Name: "Unrated Park"}
		assert.Equal(t, "N/A", place.DisplayRating())
	})

	t.Run("rating is scaled to the 0-100 display range", func(t *testing.T) {
		place := models.NearbyPlace{Name: "Gateway Elementary", Rating: 4.3, HasRating: true}
		assert.Equal(t, "86", place.DisplayRating())
	})

	t.Run("five stars is 100", func(t *testing.T) {
		place := models.NearbyPlace{Name: "Memorial Park", Rating: 5, HasRating: true}
		assert.Equal(t, "100", place.DisplayRating())
	})

	t.Run("out-of-range upstream rating is clamped", func(t *testing.T) {
		place := models.NearbyPlace{Name: "Odd Data", Rating: 6.2, HasRating: true}
		assert.Equal(t, "100", place.DisplayRating())
	})
}

func TestGeoPointValid(t *testing.T) {
	assert.True(t, models.GeoPoint{Latitude: 38.99, Longitude: -105.05}.Valid())
	assert.True(t, models.GeoPoint{Latitude: -90, Longitude: 180}.Valid())
	assert.False(t, models.GeoPoint{Latitude: 90.1, Longitude: 0}.Valid())
	assert.False(t, models.GeoPoint{Latitude: 0, Longitude: -180.5}.Valid())
}

func TestGeocodeAddress(t *testing.T) {
	listing := models.Listing{Address: "100 Main St", City: "Woodland Park"}
	assert.Equal(t, "100 Main St, Woodland Park", listing.GeocodeAddress())
}
