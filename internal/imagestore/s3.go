package imagestore

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// S3API is the subset of the S3 client used by the store.
// This allows for easy mocking in tests.
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Store uploads listing and article images to an S3 bucket and hands back
// public URLs for the document store to reference.
type Store struct {
	client S3API
	bucket string
	region string
	log    *slog.Logger
}

// New creates a Store backed by the default AWS configuration.
func New(ctx context.Context, bucket, region string, log *slog.Logger) (*Store, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return NewWithClient(s3.NewFromConfig(cfg), bucket, region, log), nil
}

// NewWithClient creates a Store with a custom S3 client. Useful for tests.
func NewWithClient(client S3API, bucket, region string, log *slog.Logger) *Store {
	return &Store{client: client, bucket: bucket, region: region, log: log}
}

// Upload stores the object under a unique key inside folder and returns
// its public URL.
func (s *Store) Upload(ctx context.Context, folder, filename, contentType string, body io.Reader) (string, error) {
	key := fmt.Sprintf("%s/%s-%s", folder, uuid.NewString(), filename)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}

	url := fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
	s.log.DebugContext(ctx, "Uploaded image", "key", key, "url", url)

	return url, nil
}
