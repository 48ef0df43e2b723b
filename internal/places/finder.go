package places

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/lexirealty/homestead/internal/models"
	"googlemaps.github.io/maps"
)

// Category is one of the fixed proximity-search categories shown on a
// listing page.
type Category string

const (
	// CategorySchool searches for schools near the listing.
	CategorySchool Category = "school"
	// CategoryPark searches for parks near the listing.
	CategoryPark Category = "park"
)

// SearchRadiusMeters is the fixed radius for all proximity searches.
const SearchRadiusMeters = 2000

// PlacesAPIClient is the session-scoped capability used to issue proximity
// searches. It must only be constructed once the map surface has reported
// ready; calling the finder with a handle from an uninitialized surface is
// a usage error.
type PlacesAPIClient interface {
	NearbySearch(ctx context.Context, r *maps.NearbySearchRequest) (maps.PlacesSearchResponse, error)
}

// UpstreamStatusError reports a non-OK status from the places provider.
// The raw status is kept for diagnostics; callers treat any finder error
// identically.
type UpstreamStatusError struct {
	Status string
	Err    error
}

func (e *UpstreamStatusError) Error() string {
	return fmt.Sprintf("places provider returned status %q", e.Status)
}

func (e *UpstreamStatusError) Unwrap() error { return e.Err }

// Finder performs proximity searches against the places provider.
type Finder struct {
	client PlacesAPIClient // client is the provider search session
	log    *slog.Logger    // log is the logger for logging operations
}

// NewFinder creates a Finder bound to the given search session.
func NewFinder(client PlacesAPIClient, log *slog.Logger) *Finder {
	return &Finder{client: client, log: log}
}

// Nearby returns places of the given category within the fixed radius of
// the point, in the provider's own relevance order. Results are never
// re-sorted locally.
func (f *Finder) Nearby(ctx context.Context, point models.GeoPoint, category Category) ([]models.NearbyPlace, error) {
	placeType, err := placeType(category)
	if err != nil {
		return nil, err
	}

	f.log.DebugContext(ctx, "Searching nearby places",
		"category", string(category), "lat", point.Latitude, "lng", point.Longitude)

	req := maps.NearbySearchRequest{
		Location: &maps.LatLng{Lat: point.Latitude, Lng: point.Longitude},
		Radius:   SearchRadiusMeters,
		Type:     placeType,
	}
	resp, err := f.client.NearbySearch(ctx, &req)
	if err != nil {
		return nil, &UpstreamStatusError{Status: statusToken(err), Err: err}
	}

	results := make([]models.NearbyPlace, 0, len(resp.Results))
	for _, r := range resp.Results {
		// The provider omits the rating field for unrated places, which
		// surfaces here as a zero value.
		results = append(results, models.NearbyPlace{
			Name:      r.Name,
			Rating:    float64(r.Rating),
			HasRating: r.Rating > 0,
		})
	}

	return results, nil
}

// statusToken extracts the bare provider status from a maps client error,
// which renders API failures as "maps: STATUS - message". Other errors
// pass through whole.
func statusToken(err error) string {
	s := strings.TrimPrefix(err.Error(), "maps: ")
	if idx := strings.Index(s, " - "); idx >= 0 {
		s = s[:idx]
	}
	return s
}

func placeType(category Category) (maps.PlaceType, error) {
	switch category {
	case CategorySchool:
		return maps.PlaceTypeSchool, nil
	case CategoryPark:
		return maps.PlaceTypePark, nil
	default:
		return "", fmt.Errorf("unknown place category: %s", category)
	}
}
