// Package minio provides a writer.Writer backed by a MinIO / S3-compatible
// object store, for deployments where the ldproxy store is synced from a
// bucket rather than a local directory.
//
// Usage:
//
//	cfg := minio.DefaultConfig("localhost:9000", "minioadmin", "minioadmin", "ldproxy-store")
//	w, err := minio.New(ctx, cfg)
//	if err != nil { ... }
package minio

import (
	"bytes"
	"context"

	miniogo "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/codehub-rony/ldproxy-config-generator/internal/errs"
	"github.com/codehub-rony/ldproxy-config-generator/internal/writer"
)

// Config holds the settings needed to reach the object store.
type Config struct {
	// Endpoint is the host:port of the storage server.
	Endpoint string

	// AccessKey / SecretKey are MinIO / S3 style credentials.
	AccessKey string
	SecretKey string

	// UseSSL controls whether TLS is used for the connection.
	UseSSL bool

	// Region is used by region-aware backends. Leave empty for MinIO.
	Region string

	// Bucket is the bucket the documents are written into.
	Bucket string

	// Prefix is prepended to every document path (e.g. "store/").
	Prefix string
}

// DefaultConfig returns a local-dev config for MinIO.
func DefaultConfig(endpoint, accessKey, secretKey, bucket string) *Config {
	return &Config{
		Endpoint:  endpoint,
		AccessKey: accessKey,
		SecretKey: secretKey,
		Bucket:    bucket,
	}
}

// Writer is a writer.Writer that puts documents into a bucket.
type Writer struct {
	client *miniogo.Client
	bucket string
	prefix string
}

// New connects to the object store using cfg and verifies the bucket exists
// before returning.
func New(ctx context.Context, cfg *Config) (*Writer, error) {
	client, err := miniogo.New(cfg.Endpoint, &miniogo.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, errs.Wrap(errs.ErrKindConnectionFailed, "failed to create minio client", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, errs.Wrap(errs.ErrKindConnectionFailed, "bucket check failed", err)
	}
	if !exists {
		return nil, errs.Newf(errs.ErrKindNotFound, "bucket %q does not exist", cfg.Bucket)
	}

	return &Writer{client: client, bucket: cfg.Bucket, prefix: cfg.Prefix}, nil
}

// WriteDocument serializes doc and puts it at <prefix><relPath> in the
// configured bucket, overwriting any previous object.
func (w *Writer) WriteDocument(ctx context.Context, relPath string, doc any) error {
	data, err := writer.Encode(doc)
	if err != nil {
		return err
	}

	key := w.prefix + relPath
	_, err = w.client.PutObject(ctx, w.bucket, key, bytes.NewReader(data), int64(len(data)),
		miniogo.PutObjectOptions{ContentType: "application/yaml"})
	if err != nil {
		return errs.Wrap(errs.ErrKindStorageFailed, "put document", err)
	}
	return nil
}
