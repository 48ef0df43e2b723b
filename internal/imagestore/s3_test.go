package imagestore_test

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/lexirealty/homestead/internal/imagestore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	input *s3.PutObjectInput
	err   error
}

func (f *fakeS3) PutObject(_ context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &s3.PutObjectOutput{}, nil
}

func TestUpload(t *testing.T) {
	t.Parallel()

	t.Run("success - returns public url", func(t *testing.T) {
		t.Parallel()
		fake := &fakeS3{}
		store := imagestore.NewWithClient(fake, "homestead-images", "us-east-1", slog.Default())

		url, err := store.Upload(t.Context(), "property-images", "front.jpg", "image/jpeg", strings.NewReader("bytes"))

		require.NoError(t, err)
		assert.Contains(t, url, "https://homestead-images.s3.us-east-1.amazonaws.com/property-images/")
		assert.Contains(t, url, "-front.jpg")

		require.NotNil(t, fake.input)
		assert.Equal(t, "homestead-images", *fake.input.Bucket)
		assert.Equal(t, "image/jpeg", *fake.input.ContentType)
		assert.Contains(t, *fake.input.Key, "property-images/")

		body, err := io.ReadAll(fake.input.Body)
		require.NoError(t, err)
		assert.Equal(t, "bytes", string(body))
	})

	t.Run("error - put object fails", func(t *testing.T) {
		t.Parallel()
		fake := &fakeS3{err: assert.AnError}
		store := imagestore.NewWithClient(fake, "homestead-images", "us-east-1", slog.Default())

		url, err := store.Upload(t.Context(), "property-images", "front.jpg", "image/jpeg", strings.NewReader("bytes"))

		require.Empty(t, url)
		require.Error(t, err)
		require.ErrorContains(t, err, "failed to upload image")
		require.ErrorIs(t, err, assert.AnError)
	})

	t.Run("keys are unique per upload", func(t *testing.T) {
		t.Parallel()
		fake := &fakeS3{}
		store := imagestore.NewWithClient(fake, "homestead-images", "us-east-1", slog.Default())

		first, err := store.Upload(t.Context(), "property-images", "front.jpg", "image/jpeg", strings.NewReader("a"))
		require.NoError(t, err)
		second, err := store.Upload(t.Context(), "property-images", "front.jpg", "image/jpeg", strings.NewReader("b"))
		require.NoError(t, err)

		assert.NotEqual(t, first, second)
	})
}
