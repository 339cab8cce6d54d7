package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUploader struct {
	calls       int
	key         string
	contentType string
	size        int64
	url         string
	err         error
}

func (f *fakeUploader) Upload(ctx context.Context, key, contentType string, size int64, reader io.Reader) (string, error) {
	f.calls++
	f.key = key
	f.contentType = contentType
	f.size = size
	return f.url, f.err
}

func multipartBody(t *testing.T, filename, contentType string, payload []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	header.Set("Content-Type", contentType)
	part, err := mw.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(payload)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestUploadStoresImage(t *testing.T) {
	s, _ := newTestServer(t)
	store := &fakeUploader{url: "/uploads/123-abcd.png"}
	s.Storage = store

	body, contentType := multipartBody(t, "chart.png", "image/png", []byte("png bytes"))
	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	s.Upload(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp UploadResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "/uploads/123-abcd.png", resp.URL)
	assert.Equal(t, 1, store.calls)
	assert.Equal(t, "image/png", store.contentType)
	assert.True(t, strings.HasSuffix(store.key, ".png"))
}

func TestUploadRejectsRenamedBinary(t *testing.T) {
	s, _ := newTestServer(t)
	store := &fakeUploader{}
	s.Storage = store

	// A .exe renamed to .jpg still declares its real MIME type.
	body, contentType := multipartBody(t, "totally-a-photo.jpg", "application/octet-stream", []byte("MZ..."))
	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	s.Upload(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeError(t, rec).Message, "Unsupported file type")
	assert.Equal(t, 0, store.calls, "storage must not be touched for rejected uploads")
}

func TestUploadRejectsOversizedFile(t *testing.T) {
	s, _ := newTestServer(t)
	store := &fakeUploader{}
	s.Storage = store

	body, contentType := multipartBody(t, "huge.jpg", "image/jpeg", make([]byte, 11<<20))
	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	s.Upload(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeError(t, rec).Message, "too large")
	assert.Equal(t, 0, store.calls)
}

func TestUploadWithoutStorage(t *testing.T) {
	s, _ := newTestServer(t)

	body, contentType := multipartBody(t, "chart.png", "image/png", []byte("png bytes"))
	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	s.Upload(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
