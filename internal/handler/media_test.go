// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/ccms-go/internal/service"
	"github.com/olegiv/ccms-go/internal/storage"
	"github.com/olegiv/ccms-go/internal/store"
)

func newTestMedia(t *testing.T) (*service.Media, *storage.MemoryStore) {
	t.Helper()
	ctx := context.Background()

	db, err := store.NewDB(filepath.Join(t.TempDir(), "media.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, store.Migrate(ctx, db))

	objects := storage.NewMemoryStore()
	p := service.New(service.Deps{DB: db, Objects: objects})
	require.NoError(t, p.Media.EnsureBuckets(ctx))
	return p.Media, objects
}

// uploadRequest builds a multipart upload with a file part of the given
// content type.
func uploadRequest(t *testing.T, fields map[string]string, fileName, contentType string, data []byte) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if fileName != "" {
		hdr := make(textproto.MIMEHeader)
		hdr.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, fileName))
		hdr.Set("Content-Type", contentType)
		part, err := mw.CreatePart(hdr)
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "http://cms.example.com/api/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := range w {
		img.Set(x, 0, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func decodeUpload(t *testing.T, rr *httptest.ResponseRecorder) UploadResponse {
	t.Helper()
	var resp UploadResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp), "body: %s", rr.Body.String())
	return resp
}

func TestUpload(t *testing.T) {
	media, objects := newTestMedia(t)
	h := NewMediaHandler(media, "", "")

	rr := httptest.NewRecorder()
	h.Upload(rr, uploadRequest(t, map[string]string{"objectName": "logos/acme.png"}, "acme.png", "image/png", pngBytes(t, 640, 320)))

	require.Equal(t, http.StatusOK, rr.Code)
	resp := decodeUpload(t, rr)
	assert.True(t, resp.Success)
	assert.Equal(t, "logos/acme.png", resp.ObjectName)
	assert.Equal(t, "http://cms.example.com/api/images/company-assets/logos/acme.png", resp.PublicURL)
	assert.Equal(t, "http://cms.example.com/api/images/company-assets/thumbs/logos/acme.png.jpg", resp.ThumbnailURL)
	assert.Equal(t, 640, resp.Width)
	assert.Equal(t, 320, resp.Height)

	info, err := objects.StatObject(context.Background(), service.AssetsBucket, "logos/acme.png")
	require.NoError(t, err)
	assert.Equal(t, "image/png", info.ContentType)
}

func TestUploadPublicURLAndBasePath(t *testing.T) {
	media, _ := newTestMedia(t)
	h := NewMediaHandler(media, "https://www.example.com/", "/cms/")

	rr := httptest.NewRecorder()
	h.Upload(rr, uploadRequest(t, map[string]string{"objectName": "a.svg", "bucketName": "press-kit"}, "a.svg", "image/svg+xml", []byte(`<svg xmlns="http://www.w3.org/2000/svg"/>`)))

	require.Equal(t, http.StatusOK, rr.Code)
	resp := decodeUpload(t, rr)
	assert.Equal(t, "https://www.example.com/cms/api/images/press-kit/a.svg", resp.PublicURL)
	assert.Empty(t, resp.ThumbnailURL)
}

func TestUploadRejects(t *testing.T) {
	media, _ := newTestMedia(t)
	h := NewMediaHandler(media, "", "")

	tests := []struct {
		name        string
		fields      map[string]string
		fileName    string
		contentType string
		data        []byte
		wantError   string
	}{
		{"text file", map[string]string{"objectName": "notes.txt"}, "notes.txt", "text/plain", []byte("hello"), "Unsupported file type"},
		{"too large", map[string]string{"objectName": "big.png"}, "big.png", "image/png", bytes.Repeat([]byte{0}, 6<<20), "File exceeds the 5 MiB limit"},
		{"missing file", map[string]string{"objectName": "x.png"}, "", "", nil, "No file uploaded"},
		{"bad bucket", map[string]string{"objectName": "x.png", "bucketName": "Not_A_Bucket"}, "x.png", "image/png", []byte("png"), "bucketName"},
		{"traversal", map[string]string{"objectName": "../x.png"}, "x.png", "image/png", []byte("png"), "objectName"},
		{"cv bucket", map[string]string{"objectName": "x.png", "bucketName": service.CareerBucket}, "x.png", "image/png", []byte("png"), "bucketName"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			h.Upload(rr, uploadRequest(t, tt.fields, tt.fileName, tt.contentType, tt.data))

			assert.Equal(t, http.StatusBadRequest, rr.Code)
			resp := decodeUpload(t, rr)
			assert.False(t, resp.Success)
			assert.Contains(t, resp.Error, tt.wantError)
		})
	}
}

func TestUploadAcceptsFourMiB(t *testing.T) {
	media, _ := newTestMedia(t)
	h := NewMediaHandler(media, "", "")

	rr := httptest.NewRecorder()
	h.Upload(rr, uploadRequest(t, map[string]string{"objectName": "hero.png"}, "hero.png", "image/png", bytes.Repeat([]byte{1}, 4<<20)))

	require.Equal(t, http.StatusOK, rr.Code)
	resp := decodeUpload(t, rr)
	assert.True(t, resp.Success)
	assert.Zero(t, resp.Width)
}

func TestUploadMethodNotAllowed(t *testing.T) {
	media, _ := newTestMedia(t)
	h := NewMediaHandler(media, "", "")

	rr := httptest.NewRecorder()
	h.Upload(rr, httptest.NewRequest(http.MethodGet, "/api/upload", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
	assert.Equal(t, http.MethodPost, rr.Header().Get("Allow"))
	assert.False(t, decodeUpload(t, rr).Success)
}

func TestImage(t *testing.T) {
	media, objects := newTestMedia(t)
	h := NewMediaHandler(media, "", "")
	ctx := context.Background()

	require.NoError(t, objects.PutObject(ctx, service.AssetsBucket, "logos/x.png", strings.NewReader("PNGDATA"), 7, "image/png"))
	require.NoError(t, objects.PutObject(ctx, service.AssetsBucket, "docs/brochure.pdf", strings.NewReader("%PDF"), 4, ""))
	require.NoError(t, objects.PutObject(ctx, service.AssetsBucket, "blob", strings.NewReader("??"), 2, ""))
	require.NoError(t, objects.PutObject(ctx, service.CareerBucket, "cvs/1-a.pdf", strings.NewReader("%PDF"), 4, "application/pdf"))

	tests := []struct {
		name     string
		path     string
		want     int
		wantType string
		wantBody string
	}{
		{"stored type", "/api/images/company-assets/logos/x.png", http.StatusOK, "image/png", "PNGDATA"},
		{"extension fallback", "/api/images/company-assets/docs/brochure.pdf", http.StatusOK, "application/pdf", "%PDF"},
		{"octet-stream fallback", "/api/images/company-assets/blob", http.StatusOK, "application/octet-stream", "??"},
		{"under base path", "/cms/api/images/company-assets/logos/x.png", http.StatusOK, "image/png", "PNGDATA"},
		{"missing object", "/api/images/company-assets/logos/missing.png", http.StatusNotFound, "", ""},
		{"missing bucket", "/api/images/nope/logos/x.png", http.StatusNotFound, "", ""},
		{"cv bucket", "/api/images/career-applications/cvs/1-a.pdf", http.StatusNotFound, "", ""},
		{"bucket only", "/api/images/company-assets", http.StatusBadRequest, "", ""},
		{"no target", "/api/images/", http.StatusBadRequest, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			h.Image(rr, httptest.NewRequest(http.MethodGet, tt.path, nil))

			require.Equal(t, tt.want, rr.Code)
			if tt.want != http.StatusOK {
				return
			}
			assert.Equal(t, tt.wantType, rr.Header().Get("Content-Type"))
			assert.Equal(t, "public, max-age=31536000, immutable", rr.Header().Get("Cache-Control"))
			assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
			assert.Equal(t, strconv.Itoa(len(tt.wantBody)), rr.Header().Get("Content-Length"))
			body, _ := io.ReadAll(rr.Body)
			assert.Equal(t, tt.wantBody, string(body))
		})
	}
}

// resetStore returns objects whose body breaks after a few bytes, with no
// size known up front.
type resetStore struct {
	*storage.MemoryStore
}

type resetBody struct {
	sent bool
}

func (b *resetBody) Read(p []byte) (int, error) {
	if !b.sent {
		b.sent = true
		return copy(p, "PARTIAL"), nil
	}
	return 0, errors.New("backend connection reset")
}

func (b *resetBody) Close() error { return nil }

func (resetStore) GetObject(_ context.Context, _, key string) (*storage.Object, error) {
	return &storage.Object{
		Info: storage.ObjectInfo{Key: key, ContentType: "image/png"},
		Body: &resetBody{},
	}, nil
}

func TestImageBrokenStream(t *testing.T) {
	db, err := store.NewDB(filepath.Join(t.TempDir(), "media.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, store.Migrate(context.Background(), db))

	p := service.New(service.Deps{DB: db, Objects: resetStore{storage.NewMemoryStore()}})
	h := NewMediaHandler(p.Media, "", "")

	rr := httptest.NewRecorder()
	h.Image(rr, httptest.NewRequest(http.MethodGet, "/api/images/company-assets/logos/x.png", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.NotContains(t, rr.Body.String(), "PARTIAL")
	assert.Empty(t, rr.Header().Get("Cache-Control"))
}

func TestImageTarget(t *testing.T) {
	tests := []struct {
		path       string
		wantBucket string
		wantKey    string
		wantOK     bool
	}{
		{"/api/images/company-assets/logos/x.png", "company-assets", "logos/x.png", true},
		{"/api/images//company-assets//a/b/c.jpg", "company-assets", "a/b/c.jpg", true},
		{"/api/images/company-assets/../secret", "", "", false},
		{"/api/images/only-bucket", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			bucket, key, ok := imageTarget(tt.path)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantBucket, bucket)
			assert.Equal(t, tt.wantKey, key)
		})
	}
}
