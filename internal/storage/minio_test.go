package storage

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	exists     bool
	existsErr  error
	madeBucket string
	putBucket  string
	putKey     string
	putType    string
	putSize    int64
	putErr     error
	removed    string
}

func (f *fakeAPI) BucketExists(ctx context.Context, bucketName string) (bool, error) {
	return f.exists, f.existsErr
}

func (f *fakeAPI) MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error {
	f.madeBucket = bucketName
	return nil
}

func (f *fakeAPI) PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	f.putBucket = bucketName
	f.putKey = objectName
	f.putType = opts.ContentType
	f.putSize = objectSize
	return minio.UploadInfo{Key: objectName, Size: objectSize}, f.putErr
}

func (f *fakeAPI) RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error {
	f.removed = objectName
	return nil
}

func TestNewClientCreatesMissingBucket(t *testing.T) {
	api := &fakeAPI{exists: false}
	_, err := NewClientWithAPI(context.Background(), api, "uploads", "")
	require.NoError(t, err)
	assert.Equal(t, "uploads", api.madeBucket)
}

func TestNewClientBucketCheckFails(t *testing.T) {
	api := &fakeAPI{existsErr: errors.New("connection refused")}
	_, err := NewClientWithAPI(context.Background(), api, "uploads", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ensure bucket")
}

func TestUpload(t *testing.T) {
	api := &fakeAPI{exists: true}
	client, err := NewClientWithAPI(context.Background(), api, "uploads", "https://cdn.example.com/uploads/")
	require.NoError(t, err)

	url, err := client.Upload(context.Background(), "123-abcd.jpg", "image/jpeg", 42, strings.NewReader("data"))
	require.NoError(t, err)

	assert.Equal(t, "https://cdn.example.com/uploads/123-abcd.jpg", url)
	assert.Equal(t, "uploads", api.putBucket)
	assert.Equal(t, "image/jpeg", api.putType)
	assert.Equal(t, int64(42), api.putSize)
}

func TestUploadError(t *testing.T) {
	api := &fakeAPI{exists: true, putErr: errors.New("disk full")}
	client, err := NewClientWithAPI(context.Background(), api, "uploads", "")
	require.NoError(t, err)

	_, err = client.Upload(context.Background(), "k.png", "image/png", 1, strings.NewReader("x"))
	assert.Error(t, err)
}

func TestPublicURLWithoutBase(t *testing.T) {
	api := &fakeAPI{exists: true}
	client, err := NewClientWithAPI(context.Background(), api, "uploads", "")
	require.NoError(t, err)
	assert.Equal(t, "/uploads/k.png", client.PublicURL("k.png"))
}

func TestRemove(t *testing.T) {
	api := &fakeAPI{exists: true}
	client, err := NewClientWithAPI(context.Background(), api, "uploads", "")
	require.NoError(t, err)
	require.NoError(t, client.Remove(context.Background(), "old.jpg"))
	assert.Equal(t, "old.jpg", api.removed)
}
