// Package storage wraps the MinIO client behind a small interface so the
// upload path can be exercised without a live object store.
package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"
)

type minioAPI interface {
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error
}

type minioClientWrapper struct{ c *minio.Client }

func (w minioClientWrapper) BucketExists(ctx context.Context, bucketName string) (bool, error) {
	return w.c.BucketExists(ctx, bucketName)
}

func (w minioClientWrapper) MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error {
	return w.c.MakeBucket(ctx, bucketName, opts)
}

func (w minioClientWrapper) PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	return w.c.PutObject(ctx, bucketName, objectName, reader, objectSize, opts)
}

func (w minioClientWrapper) RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error {
	return w.c.RemoveObject(ctx, bucketName, objectName, opts)
}

// Client stores uploaded images and hands out their public URLs.
type Client struct {
	api        minioAPI
	bucket     string
	publicBase string
}

// NewClient wraps a real *minio.Client. publicBase is the externally
// reachable URL prefix of the bucket; when empty, URLs are built from the
// bucket path alone.
func NewClient(ctx context.Context, client *minio.Client, bucket, publicBase string) (*Client, error) {
	return NewClientWithAPI(ctx, minioClientWrapper{c: client}, bucket, publicBase)
}

// NewClientWithAPI allows injecting a mockable API (used in tests).
func NewClientWithAPI(ctx context.Context, api minioAPI, bucket, publicBase string) (*Client, error) {
	c := &Client{api: api, bucket: bucket, publicBase: strings.TrimSuffix(publicBase, "/")}
	if err := c.ensureBucketExists(ctx); err != nil {
		return nil, fmt.Errorf("ensure bucket: %w", err)
	}
	return c, nil
}

func (c *Client) ensureBucketExists(ctx context.Context) error {
	exists, err := c.api.BucketExists(ctx, c.bucket)
	if err != nil {
		return err
	}
	if !exists {
		return c.api.MakeBucket(ctx, c.bucket, minio.MakeBucketOptions{})
	}
	return nil
}

// Upload stores one object and returns its public URL.
func (c *Client) Upload(ctx context.Context, key, contentType string, size int64, reader io.Reader) (string, error) {
	_, err := c.api.PutObject(ctx, c.bucket, key, reader, size, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", fmt.Errorf("put object: %w", err)
	}
	return c.PublicURL(key), nil
}

func (c *Client) Remove(ctx context.Context, key string) error {
	return c.api.RemoveObject(ctx, c.bucket, key, minio.RemoveObjectOptions{})
}

func (c *Client) PublicURL(key string) string {
	if c.publicBase != "" {
		return c.publicBase + "/" + key
	}
	return "/" + c.bucket + "/" + key
}
