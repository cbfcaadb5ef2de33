package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"

	"ramotsav.com/project-ramotsav/logger"
)

var ErrMediaNotFound = errors.New("media object not found")

type MediaConfig struct {
	Endpoint       string
	PublicEndpoint string
	AccessKey      string
	SecretKey      string
	Bucket         string
	Secure         bool
}

// MediaStore keeps uploaded post media and avatars in a public-read bucket.
type MediaStore struct {
	client *minio.Client
	bucket string
	public string
}

func NewMediaStore(ctx context.Context, cfg MediaConfig) (*MediaStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.Secure,
	})
	if err != nil {
		return nil, fmt.Errorf("minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("bucket check: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket: %w", err)
		}
		if err := client.SetBucketPolicy(ctx, cfg.Bucket, publicReadPolicy(cfg.Bucket)); err != nil {
			return nil, fmt.Errorf("bucket policy: %w", err)
		}
		logger.Log.Info("media bucket created", zap.String("bucket", cfg.Bucket))
	}

	public := cfg.PublicEndpoint
	if public == "" {
		scheme := "http://"
		if cfg.Secure {
			scheme = "https://"
		}
		public = scheme + cfg.Endpoint
	}
	return &MediaStore{client: client, bucket: cfg.Bucket, public: strings.TrimRight(public, "/")}, nil
}

func publicReadPolicy(bucket string) string {
	return `{
	"Version": "2012-10-17",
	"Statement": [{
		"Effect": "Allow",
		"Principal": "*",
		"Action": "s3:GetObject",
		"Resource": "arn:aws:s3:::` + bucket + `/*"
	}]
}`
}

// ObjectName builds a collision-free name that keeps the upload's extension.
func ObjectName(prefix, filename string) string {
	return prefix + "/" + uuid.NewString() + strings.ToLower(path.Ext(filename))
}

// Upload stores src and returns the public URL it can be played from.
func (m *MediaStore) Upload(ctx context.Context, name string, src io.Reader, size int64, contentType string) (string, error) {
	_, err := m.client.PutObject(ctx, m.bucket, name, src, size, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", name, err)
	}
	return m.URL(name), nil
}

func (m *MediaStore) Delete(ctx context.Context, name string) error {
	if _, err := m.client.StatObject(ctx, m.bucket, name, minio.StatObjectOptions{}); err != nil {
		var resp minio.ErrorResponse
		if errors.As(err, &resp) && resp.Code == "NoSuchKey" {
			return ErrMediaNotFound
		}
		return fmt.Errorf("stat %s: %w", name, err)
	}
	if err := m.client.RemoveObject(ctx, m.bucket, name, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("remove %s: %w", name, err)
	}
	return nil
}

func (m *MediaStore) URL(name string) string {
	return m.public + "/" + m.bucket + "/" + name
}

// ObjectFromURL returns the object name of a URL this store issued.
func (m *MediaStore) ObjectFromURL(url string) (string, bool) {
	prefix := m.public + "/" + m.bucket + "/"
	if !strings.HasPrefix(url, prefix) {
		return "", false
	}
	return strings.TrimPrefix(url, prefix), true
}
