package services

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"

	"github.com/gatormarket/backend/internal/models"
)

// ImageStorage stores uploaded images in an S3-compatible bucket. Listings
// persist only the returned object key; the bucket itself is external to
// the document store.
type ImageStorage struct {
	client  *minio.Client
	bucket  string
	baseURL string
	log     *zap.Logger
}

type ImageStorageConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	// PublicBaseURL is the base for returned object URLs (e.g. a CDN or
	// public bucket host). Defaults to the endpoint plus bucket.
	PublicBaseURL string
}

func NewImageStorage(ctx context.Context, cfg ImageStorageConfig, log *zap.Logger) (*ImageStorage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create object storage client: %w", err)
	}

	if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
		exists, existsErr := client.BucketExists(ctx, cfg.Bucket)
		if existsErr != nil || !exists {
			return nil, fmt.Errorf("ensure bucket %q: %w", cfg.Bucket, err)
		}
	}

	baseURL := strings.TrimRight(cfg.PublicBaseURL, "/")
	if baseURL == "" {
		baseURL = client.EndpointURL().String() + "/" + cfg.Bucket
	}

	log.Info("object storage ready",
		zap.String("endpoint", cfg.Endpoint),
		zap.String("bucket", cfg.Bucket))
	return &ImageStorage{
		client:  client,
		bucket:  cfg.Bucket,
		baseURL: baseURL,
		log:     log,
	}, nil
}

// Upload stores the file under a fresh opaque key, preserving the original
// extension, and returns the key plus a public URL.
func (s *ImageStorage) Upload(ctx context.Context, filename, contentType string, size int64, r io.Reader) (*models.ImageUploadResponse, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	key := "uploads/" + uuid.New().String() + ext

	if _, err := s.client.PutObject(ctx, s.bucket, key, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	}); err != nil {
		return nil, fmt.Errorf("put object %s: %w", key, err)
	}

	s.log.Info("image uploaded", zap.String("key", key), zap.Int64("size", size))
	return &models.ImageUploadResponse{
		Key: key,
		URL: s.baseURL + "/" + key,
	}, nil
}

// Delete removes an uploaded object. Missing keys are not an error.
func (s *ImageStorage) Delete(ctx context.Context, key string) error {
	return s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{})
}
