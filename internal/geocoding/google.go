package geocoding

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lexirealty/homestead/internal/models"
	"googlemaps.github.io/maps"
)

// GoogleProvider is a struct that holds the client for Google Maps API
// and a logger for logging purposes. It is used to interact with the
// Google Maps geocoding services.
type GoogleProvider struct {
	client GoogleAPIClient // client is the Google Maps API client
	log    *slog.Logger    // log is the logger for logging operations
}

type GoogleAPIClient interface {
	Geocode(ctx context.Context, r *maps.GeocodingRequest) ([]maps.GeocodingResult, error)
}

// NewGoogleProvider initializes a new GoogleProvider with the given API client and logger.
// Returns a pointer to the GoogleProvider.
func NewGoogleProvider(client GoogleAPIClient, log *slog.Logger) *GoogleProvider {
	return &GoogleProvider{client: client, log: log}
}

// Geocode takes a context and an address string as input, and returns the geographical
// coordinates of the provided address using the Google Maps Geocoding API. It issues a
// single request, with no retry and no caching. If the address cannot be geocoded or if
// the response is empty, it returns an appropriate error from the package taxonomy.
func (gp *GoogleProvider) Geocode(ctx context.Context, address string) (*models.GeoPoint, error) {
	gp.log.DebugContext(ctx, "Geocoding using Google Maps", "address", address)

	req := maps.GeocodingRequest{Address: address}
	geocodeResponse, err := gp.client.Geocode(ctx, &req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpstreamRejected, err)
	}

	if len(geocodeResponse) == 0 {
		return nil, ErrNoMatch
	}
	location := geocodeResponse[0].Geometry.Location

	point := models.GeoPoint{Latitude: location.Lat, Longitude: location.Lng}
	if !point.Valid() {
		return nil, fmt.Errorf("%w: coordinates out of range (%f, %f)", ErrNoMatch, location.Lat, location.Lng)
	}

	return &point, nil
}
