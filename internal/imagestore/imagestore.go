// Package imagestore uploads product images to object storage and hands back
// publicly dereferenceable URLs. Upload failures are expected to be handled by
// the caller with a placeholder fallback; nothing here retries.
package imagestore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"path"
	"strings"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"shop-ledger/internal/config"
)

// ErrDisabled is returned when no image store is configured.
var ErrDisabled = errors.New("image store is disabled")

// Uploader stores an image binary and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, filename string, data []byte) (string, error)
}

// s3Uploader implements Uploader on top of an S3 bucket.
type s3Uploader struct {
	client  *s3.Client
	bucket  string
	prefix  string
	baseURL string
	logger  zerolog.Logger
}

// NewS3Uploader creates an S3-backed image uploader.
func NewS3Uploader(ctx context.Context, cfg config.ImageStoreConfig, logger zerolog.Logger) (Uploader, error) {
	logger = logger.With().Str("component", "s3-image-uploader").Logger()

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		logger.Error().Err(err).Msg("failed to load AWS configuration")
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	client := s3.NewFromConfig(awsCfg)

	baseURL := strings.TrimSuffix(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
	}

	logger.Info().
		Str("bucket", cfg.Bucket).
		Str("region", cfg.Region).
		Str("prefix", cfg.Prefix).
		Msg("S3 image uploader initialised")

	return &s3Uploader{
		client:  client,
		bucket:  cfg.Bucket,
		prefix:  cfg.Prefix,
		baseURL: baseURL,
		logger:  logger,
	}, nil
}

// Upload stores the image under a generated key and returns its public URL.
func (u *s3Uploader) Upload(ctx context.Context, filename string, data []byte) (string, error) {
	key := u.prefix + uuid.NewString() + strings.ToLower(path.Ext(filename))

	u.logger.Debug().
		Str("bucket", u.bucket).
		Str("key", key).
		Int("size", len(data)).
		Msg("uploading image to S3")

	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      awssdk.String(u.bucket),
		Key:         awssdk.String(key),
		Body:        bytes.NewReader(data),
		ContentType: awssdk.String(http.DetectContentType(data)),
	})
	if err != nil {
		u.logger.Error().
			Err(err).
			Str("bucket", u.bucket).
			Str("key", key).
			Msg("failed to upload image to S3")
		return "", fmt.Errorf("failed to upload image to S3 (bucket=%s, key=%s): %w", u.bucket, key, err)
	}

	url := u.baseURL + "/" + key

	u.logger.Info().
		Str("key", key).
		Str("url", url).
		Msg("image uploaded successfully")

	return url, nil
}

// disabledUploader rejects every upload so callers fall back to the
// placeholder URL.
type disabledUploader struct{}

// NewDisabledUploader creates an uploader for deployments without an image
// store configured.
func NewDisabledUploader() Uploader {
	return disabledUploader{}
}

func (disabledUploader) Upload(context.Context, string, []byte) (string, error) {
	return "", ErrDisabled
}
