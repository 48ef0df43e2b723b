package geocoding

import (
	"context"
	"errors"

	"github.com/lexirealty/homestead/internal/models"
)

// Provider is an interface that defines a method for geocoding an address.
// The Geocode method takes a context and an address string as input,
// and returns the corresponding point and an error if any occurs.
type Provider interface {
	Geocode(ctx context.Context, address string) (*models.GeoPoint, error)
}

// Error taxonomy shared by all providers. Callers that only care about
// "did we get coordinates" treat every failure the same; the sentinels
// exist for diagnostics and tests.
var (
	// ErrTransportFailure means the request produced no response at all.
	ErrTransportFailure = errors.New("geocoding request failed in transport")
	// ErrUpstreamRejected means the endpoint responded with a non-success status.
	ErrUpstreamRejected = errors.New("geocoding endpoint rejected the request")
	// ErrNoMatch means the endpoint answered successfully but returned no usable result.
	ErrNoMatch = errors.New("geocoding endpoint returned no match")
)
