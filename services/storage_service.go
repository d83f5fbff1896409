package services

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"io"
	"time"

	"github.com/kurin/blazer/b2"
)

// StorageService wraps the Backblaze B2 bucket holding document blobs.
// The portal only ever streams uploads in, hands out signed download
// URLs, and deletes blobs on purge.
type StorageService struct {
	client *b2.Client
	bucket *b2.Bucket
}

// StoredBlob describes an uploaded blob.
type StoredBlob struct {
	ObjectName string
	SHA1       string
	Size       int64
}

func NewStorageService(ctx context.Context, keyID, applicationKey, bucketName string) (*StorageService, error) {
	client, err := b2.NewClient(ctx, keyID, applicationKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create B2 client: %w", err)
	}

	bucket, err := client.Bucket(ctx, bucketName)
	if err != nil {
		return nil, fmt.Errorf("failed to get bucket %s: %w", bucketName, err)
	}

	return &StorageService{client: client, bucket: bucket}, nil
}

// Upload streams the reader into the bucket under objectName, hashing
// as it goes rather than buffering the file in memory.
func (s *StorageService) Upload(ctx context.Context, r io.Reader, objectName string) (*StoredBlob, error) {
	obj := s.bucket.Object(objectName)
	writer := obj.NewWriter(ctx)

	hasher := sha1.New()
	size, err := io.Copy(io.MultiWriter(writer, hasher), r)
	if err != nil {
		writer.Close()
		return nil, fmt.Errorf("failed to upload blob: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to close blob writer: %w", err)
	}

	return &StoredBlob{
		ObjectName: objectName,
		SHA1:       hex.EncodeToString(hasher.Sum(nil)),
		Size:       size,
	}, nil
}

// DownloadURL returns a signed GET URL valid for the given duration.
func (s *StorageService) DownloadURL(ctx context.Context, objectName string, duration time.Duration) (string, error) {
	urlObj, err := s.bucket.Object(objectName).AuthURL(ctx, duration, "GET")
	if err != nil {
		return "", fmt.Errorf("failed to generate signed URL: %w", err)
	}
	return urlObj.String(), nil
}

// Delete removes a blob. Called only on purge, after the audit entry
// for the purge is written.
func (s *StorageService) Delete(ctx context.Context, objectName string) error {
	if err := s.bucket.Object(objectName).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete blob: %w", err)
	}
	return nil
}
