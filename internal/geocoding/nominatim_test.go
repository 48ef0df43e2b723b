package geocoding_test

import (
	"io"
	"log/slog"
	"net/http"
	"strings"
	"testing"

	"github.com/lexirealty/homestead/internal/geocoding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeHTTPClient struct {
	status int
	body   string
	err    error

	lastRequest *http.Request
}

func (f *fakeHTTPClient) Do(req *http.Request) (*http.Response, error) {
	f.lastRequest = req
	if f.err != nil {
		return nil, f.err
	}
	return &http.Response{
		StatusCode: f.status,
		Body:       io.NopCloser(strings.NewReader(f.body)),
	}, nil
}

func TestNominatimGeocode(t *testing.T) {
	ctx := t.Context()

	t.Run("transport failure", func(t *testing.T) {
		client := &fakeHTTPClient{err: assert.AnError}
		provider := geocoding.NewNominatimProviderWithClient(client, slog.Default())

		point, err := provider.Geocode(ctx, "100 Main St, Woodland Park")

		require.Nil(t, point)
		require.ErrorIs(t, err, geocoding.ErrTransportFailure)
	})

	t.Run("upstream rejected", func(t *testing.T) {
		client := &fakeHTTPClient{status: http.StatusForbidden, body: "blocked"}
		provider := geocoding.NewNominatimProviderWithClient(client, slog.Default())

		point, err := provider.Geocode(ctx, "100 Main St, Woodland Park")

		require.Nil(t, point)
		require.ErrorIs(t, err, geocoding.ErrUpstreamRejected)
	})

	t.Run("no match on empty result list", func(t *testing.T) {
		client := &fakeHTTPClient{status: http.StatusOK, body: `[]`}
		provider := geocoding.NewNominatimProviderWithClient(client, slog.Default())

		point, err := provider.Geocode(ctx, "gibberish address")

		require.Nil(t, point)
		require.ErrorIs(t, err, geocoding.ErrNoMatch)
	})

	t.Run("no match on malformed payload", func(t *testing.T) {
		client := &fakeHTTPClient{status: http.StatusOK, body: `{"not":"a list"}`}
		provider := geocoding.NewNominatimProviderWithClient(client, slog.Default())

		point, err := provider.Geocode(ctx, "100 Main St, Woodland Park")

		require.Nil(t, point)
		require.ErrorIs(t, err, geocoding.ErrNoMatch)
	})

	t.Run("no match on invalid coordinates", func(t *testing.T) {
		client := &fakeHTTPClient{status: http.StatusOK, body: `[{"lat":"not-a-number","lon":"-105.05"}]`}
		provider := geocoding.NewNominatimProviderWithClient(client, slog.Default())

		point, err := provider.Geocode(ctx, "100 Main St, Woodland Park")

		require.Nil(t, point)
		require.ErrorIs(t, err, geocoding.ErrNoMatch)
	})

	t.Run("successful geocoding", func(t *testing.T) {
		client := &fakeHTTPClient{status: http.StatusOK, body: `[{"lat":"38.99","lon":"-105.05"}]`}
		provider := geocoding.NewNominatimProviderWithClient(client, slog.Default())

		point, err := provider.Geocode(ctx, "100 Main St, Woodland Park")

		require.NoError(t, err)
		require.NotNil(t, point)
		require.InEpsilon(t, 38.99, point.Latitude, 0.01)
		require.InEpsilon(t, -105.05, point.Longitude, 0.01)

		require.NotNil(t, client.lastRequest)
		assert.Contains(t, client.lastRequest.URL.RawQuery, "q=")
		assert.NotEmpty(t, client.lastRequest.Header.Get("User-Agent"))
	})
}
