// Package minio stores user documents in an S3-compatible bucket.
package minio

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// presignExpiry bounds how long a resolved document URL stays valid.
const presignExpiry = 15 * time.Minute

// Config describes the bucket connection.
type Config struct {
	Endpoint   string
	AccessKey  string
	SecretKey  string
	Bucket     string
	UseSSL     bool
	PublicBase string // optional public host; when set URLs are not presigned
	Region     string
}

// Bucket implements domain.DocumentStore.
type Bucket struct {
	client *minio.Client
	cfg    Config
	logger *slog.Logger

	ensureOnce sync.Once
	ensureErr  error
}

// NewBucket creates a client for cfg. No request is made until first use.
func NewBucket(cfg Config, logger *slog.Logger) (*Bucket, error) {
	if cfg.Region == "" {
		cfg.Region = "us-east-1"
	}
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}
	return &Bucket{client: client, cfg: cfg, logger: logger}, nil
}

// Put uploads r under key, creating the bucket on first write.
func (b *Bucket) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	if err := b.ensureBucket(ctx); err != nil {
		return err
	}
	info, err := b.client.PutObject(ctx, b.cfg.Bucket, key, r, size, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return fmt.Errorf("put object %s: %w", key, err)
	}
	b.logger.Info("document stored", "bucket", b.cfg.Bucket, "key", key, "size", info.Size)
	return nil
}

// URL returns a retrievable URL for key: under the public base when one is
// configured, otherwise a presigned GET.
func (b *Bucket) URL(ctx context.Context, key string) (string, error) {
	if b.cfg.PublicBase != "" {
		return strings.TrimRight(b.cfg.PublicBase, "/") + "/" + key, nil
	}
	u, err := b.client.PresignedGetObject(ctx, b.cfg.Bucket, key, presignExpiry, url.Values{})
	if err != nil {
		return "", fmt.Errorf("presign %s: %w", key, err)
	}
	return u.String(), nil
}

// CheckReadiness verifies the bucket is reachable.
func (b *Bucket) CheckReadiness(ctx context.Context) error {
	if _, err := b.client.BucketExists(ctx, b.cfg.Bucket); err != nil {
		return fmt.Errorf("minio: %w", err)
	}
	return nil
}

func (b *Bucket) ensureBucket(ctx context.Context) error {
	b.ensureOnce.Do(func() {
		exists, err := b.client.BucketExists(ctx, b.cfg.Bucket)
		if err != nil {
			b.ensureErr = fmt.Errorf("check bucket %s: %w", b.cfg.Bucket, err)
			return
		}
		if !exists {
			if err := b.client.MakeBucket(ctx, b.cfg.Bucket, minio.MakeBucketOptions{Region: b.cfg.Region}); err != nil {
				b.ensureErr = fmt.Errorf("make bucket %s: %w", b.cfg.Bucket, err)
			}
		}
	})
	return b.ensureErr
}
