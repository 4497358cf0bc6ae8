// Copyright (c) 2026 Vidora. All rights reserved.

/*
Package blob is the object-storage collaborator for binary assets (video files,
avatars). The document store never holds binary data; documents carry object
keys, and this package turns keys into short-lived presigned URLs against a
MinIO / S3-compatible endpoint.

Absence is part of the contract: a presign request for storage that is not
configured, or a malformed key, yields an error the service layer maps to a
client-safe response — never a broken URL.
*/
package blob

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"strings"
	"time"

	mclient "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/vidora/vidora/internal/platform/config"
	"github.com/vidora/vidora/pkg/uuidv7"
)

// Store is the MinIO-backed presigned URL issuer.
type Store struct {
	client *mclient.Client
	bucket string
	ttl    time.Duration
}

// New creates and initializes the MinIO client.
//
// It normalizes the endpoint (strips the scheme, derives Secure from it) and
// fail-fast checks that the target bucket exists, so a misconfigured bucket
// surfaces at startup rather than on the first upload.
func New(ctx context.Context, cfg *config.Config) (*Store, error) {
	endpoint := cfg.S3Endpoint
	secure := strings.HasPrefix(endpoint, "https://")

	if u, err := url.Parse(endpoint); err == nil && u.Scheme != "" {
		endpoint = u.Host
		secure = u.Scheme == "https"
	}

	client, err := mclient.New(endpoint, &mclient.Options{
		Creds:  credentials.NewStaticV4(cfg.S3AccessKey, cfg.S3SecretKey, ""),
		Secure: secure,
	})
	if err != nil {
		return nil, fmt.Errorf("blob: failed to create client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.S3Bucket)
	if err != nil {
		return nil, fmt.Errorf("blob: failed to check bucket: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("blob: bucket %q does not exist", cfg.S3Bucket)
	}

	return &Store{
		client: client,
		bucket: cfg.S3Bucket,
		ttl:    cfg.S3PresignTTL,
	}, nil
}

// UploadURL generates a presigned PUT URL for a new object owned by ownerID.
//
// The object key has the form "<kind>/<ownerID>/<uuid>", so keys never collide
// and ownership is verifiable from the key alone.
func (s *Store) UploadURL(ctx context.Context, kind, ownerID string) (uploadURL, objectKey string, err error) {
	key := path.Join(kind, ownerID, uuidv7.New())

	u, err := s.client.PresignedPutObject(ctx, s.bucket, key, s.ttl)
	if err != nil {
		return "", "", fmt.Errorf("blob: failed to presign upload: %w", err)
	}

	return u.String(), key, nil
}

// DownloadURL generates a presigned GET URL for an existing object key.
func (s *Store) DownloadURL(ctx context.Context, objectKey string) (string, error) {
	u, err := s.client.PresignedGetObject(ctx, s.bucket, objectKey, s.ttl, url.Values{})
	if err != nil {
		return "", fmt.Errorf("blob: failed to presign download: %w", err)
	}

	return u.String(), nil
}

// Exists confirms that an uploaded object actually landed in the bucket.
func (s *Store) Exists(ctx context.Context, objectKey string) (bool, error) {
	_, err := s.client.StatObject(ctx, s.bucket, objectKey, mclient.StatObjectOptions{})
	if err != nil {
		resp := mclient.ToErrorResponse(err)
		if resp.Code == "NoSuchKey" || resp.StatusCode == 404 {
			return false, nil
		}
		return false, fmt.Errorf("blob: failed to stat object: %w", err)
	}

	return true, nil
}
