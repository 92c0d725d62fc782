package minio

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/edsu-house/edsu-backend/pkg/config"
	"github.com/edsu-house/edsu-backend/pkg/logger"
)

const defaultUploadPrefix = "uploads"

// objectStore narrows the minio-go surface the client depends on.
type objectStore interface {
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error
	PutObject(ctx context.Context, bucketName, objectName string, reader *bytes.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	PresignedPutObject(ctx context.Context, bucketName, objectName string, expires time.Duration) (*url.URL, error)
	RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error
	ListObjects(ctx context.Context, bucketName string, opts minio.ListObjectsOptions) <-chan minio.ObjectInfo
}

type minioStore struct {
	api *minio.Client
}

func (s minioStore) BucketExists(ctx context.Context, bucket string) (bool, error) {
	return s.api.BucketExists(ctx, bucket)
}

func (s minioStore) MakeBucket(ctx context.Context, bucket string, opts minio.MakeBucketOptions) error {
	return s.api.MakeBucket(ctx, bucket, opts)
}

func (s minioStore) PutObject(ctx context.Context, bucket, object string, reader *bytes.Reader, size int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	return s.api.PutObject(ctx, bucket, object, reader, size, opts)
}

func (s minioStore) PresignedPutObject(ctx context.Context, bucket, object string, expires time.Duration) (*url.URL, error) {
	return s.api.PresignedPutObject(ctx, bucket, object, expires)
}

func (s minioStore) RemoveObject(ctx context.Context, bucket, object string, opts minio.RemoveObjectOptions) error {
	return s.api.RemoveObject(ctx, bucket, object, opts)
}

func (s minioStore) ListObjects(ctx context.Context, bucket string, opts minio.ListObjectsOptions) <-chan minio.ObjectInfo {
	return s.api.ListObjects(ctx, bucket, opts)
}

// Client wraps the object storage operations used by the backend.
type Client struct {
	store        objectStore
	bucket       string
	publicURL    string
	imgproxyURL  string
	probeTimeout time.Duration
	presignTTL   time.Duration
	now          func() time.Time
	newID        func() string
}

// Pinger exposes the health-check surface.
type Pinger interface {
	Ping(ctx context.Context) error
}

// UploadResult describes a stored object.
type UploadResult struct {
	Key          string
	URL          string
	ThumbnailURL string
}

// PresignResult describes a presigned PUT grant.
type PresignResult struct {
	UploadURL    string
	Key          string
	URL          string
	ThumbnailURL string
}

// ObjectInfo is the subset of listing metadata the cleanup job consumes.
type ObjectInfo struct {
	Key          string
	LastModified time.Time
}

// New builds a MinIO-backed storage client and verifies the bucket is reachable.
func New(ctx context.Context, cfg config.MinioConfig, logg *logger.Logger) (*Client, error) {
	if cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, errors.New("minio access key and secret key are required")
	}
	if cfg.Bucket == "" {
		return nil, errors.New("minio bucket is required")
	}

	api, err := minio.New(cfg.Address(), &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("building minio client: %w", err)
	}

	client := &Client{
		store:        minioStore{api: api},
		bucket:       cfg.Bucket,
		publicURL:    strings.TrimRight(cfg.PublicURL, "/"),
		imgproxyURL:  strings.TrimRight(cfg.ImgproxyURL, "/"),
		probeTimeout: cfg.ProbeTimeout,
		presignTTL:   cfg.PresignTTL,
		now:          time.Now,
		newID:        uuid.NewString,
	}

	if err := client.EnsureBucket(ctx); err != nil {
		return nil, err
	}

	if logg != nil {
		logg.Info(ctx, "object storage client initialized")
	}

	return client, nil
}

// Bucket returns the configured bucket name.
func (c *Client) Bucket() string {
	return c.bucket
}

// EnsureBucket probes for the bucket under a short timeout and creates it when missing.
func (c *Client) EnsureBucket(ctx context.Context) error {
	probeCtx := ctx
	if c.probeTimeout > 0 {
		var cancel context.CancelFunc
		probeCtx, cancel = context.WithTimeout(ctx, c.probeTimeout)
		defer cancel()
	}

	exists, err := c.store.BucketExists(probeCtx, c.bucket)
	if err != nil {
		return fmt.Errorf("checking bucket %q: %w", c.bucket, err)
	}
	if exists {
		return nil
	}
	if err := c.store.MakeBucket(ctx, c.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("creating bucket %q: %w", c.bucket, err)
	}
	return nil
}

// Ping verifies the bucket is reachable.
func (c *Client) Ping(ctx context.Context) error {
	probeCtx := ctx
	if c.probeTimeout > 0 {
		var cancel context.CancelFunc
		probeCtx, cancel = context.WithTimeout(ctx, c.probeTimeout)
		defer cancel()
	}
	if _, err := c.store.BucketExists(probeCtx, c.bucket); err != nil {
		return fmt.Errorf("minio health check: %w", err)
	}
	return nil
}

// ObjectKey builds a collision-free key under the given prefix.
func (c *Client) ObjectKey(prefix, filename string) string {
	if prefix == "" {
		prefix = defaultUploadPrefix
	}
	if filename == "" {
		filename = "file"
	}
	return fmt.Sprintf("%s/%d-%s-%s", prefix, c.now().UnixMilli(), c.newID(), filename)
}

// Upload stores a buffer under a fresh key and returns its public addresses.
func (c *Client) Upload(ctx context.Context, prefix, filename, contentType string, data []byte) (UploadResult, error) {
	if err := c.EnsureBucket(ctx); err != nil {
		return UploadResult{}, err
	}

	if contentType == "" {
		contentType = "application/octet-stream"
	}
	key := c.ObjectKey(prefix, filename)

	_, err := c.store.PutObject(ctx, c.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return UploadResult{}, fmt.Errorf("uploading object %q: %w", key, err)
	}

	publicURL := c.PublicURL(key)
	return UploadResult{
		Key:          key,
		URL:          publicURL,
		ThumbnailURL: publicURL,
	}, nil
}

// PresignPut issues a presigned PUT URL without probing the bucket, so a slow
// storage backend cannot stall the grant.
func (c *Client) PresignPut(ctx context.Context, prefix, filename string, expiry time.Duration) (PresignResult, error) {
	if expiry <= 0 {
		expiry = c.presignTTL
	}
	key := c.ObjectKey(prefix, filename)

	uploadURL, err := c.store.PresignedPutObject(ctx, c.bucket, key, expiry)
	if err != nil {
		return PresignResult{}, fmt.Errorf("presigning object %q: %w", key, err)
	}

	publicURL := c.PublicURL(key)
	return PresignResult{
		UploadURL:    uploadURL.String(),
		Key:          key,
		URL:          publicURL,
		ThumbnailURL: c.ThumbnailURL(publicURL),
	}, nil
}

// Remove deletes the object stored at key.
func (c *Client) Remove(ctx context.Context, key string) error {
	if key == "" {
		return errors.New("object key is required")
	}
	if err := c.store.RemoveObject(ctx, c.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("removing object %q: %w", key, err)
	}
	return nil
}

// ListObjects walks the bucket and returns key/modified pairs.
func (c *Client) ListObjects(ctx context.Context) ([]ObjectInfo, error) {
	var out []ObjectInfo
	for info := range c.store.ListObjects(ctx, c.bucket, minio.ListObjectsOptions{Recursive: true}) {
		if info.Err != nil {
			return nil, fmt.Errorf("listing bucket %q: %w", c.bucket, info.Err)
		}
		out = append(out, ObjectInfo{Key: info.Key, LastModified: info.LastModified})
	}
	return out, nil
}

// PublicURL maps an object key to its public address.
func (c *Client) PublicURL(key string) string {
	if c.publicURL == "" {
		return fmt.Sprintf("/%s/%s", c.bucket, key)
	}
	return fmt.Sprintf("%s/%s/%s", c.publicURL, c.bucket, key)
}

// ThumbnailURL derives an imgproxy address for the given public URL, falling
// back to the URL itself when no imgproxy endpoint is configured.
func (c *Client) ThumbnailURL(publicURL string) string {
	if c.imgproxyURL == "" {
		return publicURL
	}
	return fmt.Sprintf("%s/insecure/plain/%s", c.imgproxyURL, url.QueryEscape(publicURL))
}

// KeyFromURL recovers the object key from a public URL, or "" when the URL does
// not point into the configured bucket.
func (c *Client) KeyFromURL(publicURL string) string {
	marker := "/" + c.bucket + "/"
	idx := strings.Index(publicURL, marker)
	if idx < 0 {
		return ""
	}
	return publicURL[idx+len(marker):]
}
