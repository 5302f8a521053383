package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"

	"deskchat-server/internal/config"
)

// S3Storage handles uploads to S3-compatible blob storage.
type S3Storage struct {
	bucket        string
	publicBaseURL string
	client        *s3.Client
	log           zerolog.Logger
}

// NewS3Storage builds the storage client from static credentials, honoring
// a custom endpoint for S3-compatible providers.
func NewS3Storage(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*S3Storage, error) {
	resolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
		if cfg.BlobS3Endpoint != "" {
			return aws.Endpoint{
				URL:           cfg.BlobS3Endpoint,
				PartitionID:   "aws",
				SigningRegion: cfg.BlobS3Region,
			}, nil
		}
		return aws.Endpoint{}, &aws.EndpointNotFoundError{}
	})

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.BlobS3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.BlobS3AccessKeyID, cfg.BlobS3SecretKey, "")),
		awsconfig.WithEndpointResolverWithOptions(resolver),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.BlobS3UsePathStyle
	})

	return &S3Storage{
		bucket:        cfg.BlobS3Bucket,
		publicBaseURL: strings.TrimRight(cfg.BlobPublicBaseURL, "/"),
		client:        client,
		log:           log.With().Str("component", "s3-storage").Logger(),
	}, nil
}

// Upload stores one object under key.
func (s *S3Storage) Upload(ctx context.Context, key string, body io.Reader, contentType string) error {
	input := &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	}
	if _, err := s.client.PutObject(ctx, input); err != nil {
		return err
	}
	return nil
}

// PublicURL returns the externally reachable URL for a stored object.
func (s *S3Storage) PublicURL(key string) string {
	return s.publicBaseURL + "/" + strings.TrimPrefix(key, "/")
}

// Health performs a HeadBucket request.
func (s *S3Storage) Health(ctx context.Context) error {
	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(s.bucket)})
	return err
}
