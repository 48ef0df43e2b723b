package places_test

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/lexirealty/homestead/internal/models"
	"github.com/lexirealty/homestead/internal/places"
	"github.com/lexirealty/homestead/test/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"googlemaps.github.io/maps"
)

func TestNearby(t *testing.T) {
	ctx := t.Context()
	point := models.GeoPoint{Latitude: 38.99, Longitude: -105.05}

	t.Run("unknown category is a usage error", func(t *testing.T) {
		mockClient := mocks.NewPlacesAPIClient(t)
		finder := places.NewFinder(mockClient, slog.Default())

		results, err := finder.Nearby(ctx, point, places.Category("casino"))

		require.Error(t, err)
		require.ErrorContains(t, err, "unknown place category")
		assert.Nil(t, results)
	})

	t.Run("non-OK provider status", func(t *testing.T) {
		mockClient := mocks.NewPlacesAPIClient(t)
		finder := places.NewFinder(mockClient, slog.Default())

		mockClient.On("NearbySearch", ctx, mock.Anything).
			Return(maps.PlacesSearchResponse{}, assert.AnError).Once()

		results, err := finder.Nearby(ctx, point, places.CategorySchool)

		require.Error(t, err)
		var statusErr *places.UpstreamStatusError
		require.ErrorAs(t, err, &statusErr)
		assert.Equal(t, assert.AnError.Error(), statusErr.Status)
		assert.Nil(t, results)
		mockClient.AssertExpectations(t)
	})

	t.Run("provider status is trimmed to its token", func(t *testing.T) {
		mockClient := mocks.NewPlacesAPIClient(t)
		finder := places.NewFinder(mockClient, slog.Default())

		apiErr := errors.New("maps: OVER_QUERY_LIMIT - You have exceeded your daily request quota")
		mockClient.On("NearbySearch", ctx, mock.Anything).
			Return(maps.PlacesSearchResponse{}, apiErr).Once()

		_, err := finder.Nearby(ctx, point, places.CategoryPark)

		var statusErr *places.UpstreamStatusError
		require.ErrorAs(t, err, &statusErr)
		assert.Equal(t, "OVER_QUERY_LIMIT", statusErr.Status)
		require.ErrorIs(t, err, apiErr)
		mockClient.AssertExpectations(t)
	})

	t.Run("request carries fixed radius and category type", func(t *testing.T) {
		mockClient := mocks.NewPlacesAPIClient(t)
		finder := places.NewFinder(mockClient, slog.Default())

		expected := &maps.NearbySearchRequest{
			Location: &maps.LatLng{Lat: point.Latitude, Lng: point.Longitude},
			Radius:   places.SearchRadiusMeters,
			Type:     maps.PlaceTypePark,
		}
		mockClient.On("NearbySearch", ctx, expected).
			Return(maps.PlacesSearchResponse{}, nil).Once()

		results, err := finder.Nearby(ctx, point, places.CategoryPark)

		require.NoError(t, err)
		assert.Empty(t, results)
		mockClient.AssertExpectations(t)
	})

	t.Run("results keep provider order and rating presence", func(t *testing.T) {
		mockClient := mocks.NewPlacesAPIClient(t)
		finder := places.NewFinder(mockClient, slog.Default())

		response := maps.PlacesSearchResponse{Results: []maps.PlacesSearchResult{
			{Name: "Gateway Elementary", Rating: 4.3},
			{Name: "Summit Middle School"},
			{Name: "Pikes Peak Academy", Rating: 3.9},
		}}
		mockClient.On("NearbySearch", ctx, mock.Anything).Return(response, nil).Once()

		results, err := finder.Nearby(ctx, point, places.CategorySchool)

		require.NoError(t, err)
		require.Len(t, results, 3)
		assert.Equal(t, "Gateway Elementary", results[0].Name)
		assert.True(t, results[0].HasRating)
		assert.InEpsilon(t, 4.3, results[0].Rating, 0.001)
		assert.Equal(t, "Summit Middle School", results[1].Name)
		assert.False(t, results[1].HasRating)
		assert.Equal(t, "Pikes Peak Academy", results[2].Name)
		mockClient.AssertExpectations(t)
	})
}
