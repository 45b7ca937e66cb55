// Package storage provides the object store backing video and thumbnail
// uploads.
package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"vidhub/pkg/logger"
	"vidhub/pkg/models"
	"vidhub/pkg/utils"
)

// ObjectStore accepts a byte stream and returns a publicly-resolvable URL
type ObjectStore interface {
	Upload(ctx context.Context, r io.Reader, size int64, contentType string) (string, error)
}

// Config holds S3-compatible object-store settings
type Config struct {
	Endpoint  string
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
	UseSSL    bool
	PublicURL string
}

type minioStore struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

// New creates a minio-backed object store and ensures the bucket exists
func New(ctx context.Context, cfg Config) (ObjectStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket error: %w", err)
	}
	if !exists {
		err = client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{Region: cfg.Region})
		if err != nil {
			return nil, fmt.Errorf("create bucket error: %w", err)
		}
	}

	publicURL := cfg.PublicURL
	if publicURL == "" {
		scheme := "http"
		if cfg.UseSSL {
			scheme = "https"
		}
		publicURL = fmt.Sprintf("%s://%s/%s", scheme, cfg.Endpoint, cfg.Bucket)
	}

	return &minioStore{
		client:    client,
		bucket:    cfg.Bucket,
		publicURL: strings.TrimRight(publicURL, "/"),
	}, nil
}

// Upload streams the object under a random key and returns its public URL
func (s *minioStore) Upload(ctx context.Context, r io.Reader, size int64, contentType string) (string, error) {
	key := utils.RandomObjectKey(contentType)

	info, err := s.client.PutObject(ctx, s.bucket, key, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", models.NewUploadError("failed to upload object", err)
	}

	logger.Storage("put", key, info.Size)
	return fmt.Sprintf("%s/%s", s.publicURL, key), nil
}
