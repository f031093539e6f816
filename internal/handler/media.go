// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package handler provides the HTTP handlers that sit outside the JSON API:
// image upload, the image proxy and health checks.
package handler

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/olegiv/ccms-go/internal/middleware"
	"github.com/olegiv/ccms-go/internal/service"
	"github.com/olegiv/ccms-go/internal/util"
)

// multipart overhead allowed on top of the image itself.
const formOverhead = 1 << 20

// maxProxySize bounds the objects the image proxy buffers.
const maxProxySize = 32 << 20

// MediaHandler handles image uploads and serves stored images.
type MediaHandler struct {
	media     *service.Media
	publicURL string
	basePath  string
}

// NewMediaHandler creates a media handler. publicURL overrides the request
// origin in returned URLs when set; basePath prefixes every returned path.
func NewMediaHandler(media *service.Media, publicURL, basePath string) *MediaHandler {
	return &MediaHandler{
		media:     media,
		publicURL: strings.TrimRight(publicURL, "/"),
		basePath:  "/" + strings.Trim(basePath, "/"),
	}
}

// UploadResponse is the body of POST /api/upload.
type UploadResponse struct {
	Success      bool   `json:"success"`
	PublicURL    string `json:"publicUrl,omitempty"`
	ObjectName   string `json:"objectName,omitempty"`
	ThumbnailURL string `json:"thumbnailUrl,omitempty"`
	Width        int    `json:"width,omitempty"`
	Height       int    `json:"height,omitempty"`
	Error        string `json:"error,omitempty"`
}

// Upload handles POST /api/upload. The multipart form carries file,
// objectName and an optional bucketName.
func (h *MediaHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		uploadError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	const limit = service.MaxImageSize + formOverhead
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	if err := r.ParseMultipartForm(service.MaxImageSize); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) || r.ContentLength > limit {
			uploadError(w, http.StatusBadRequest, "File exceeds the 5 MiB limit")
			return
		}
		uploadError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	file, header, err := r.FormFile("file")
	if err != nil {
		uploadError(w, http.StatusBadRequest, "No file uploaded")
		return
	}
	defer func() { _ = file.Close() }()

	img, err := h.media.UploadImage(r.Context(), service.ImageUpload{
		Bucket:      r.FormValue("bucketName"),
		ObjectName:  r.FormValue("objectName"),
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Body:        file,
	})
	if err != nil {
		var ve *service.ValidationError
		switch {
		case errors.Is(err, service.ErrUnsupportedMediaType):
			uploadError(w, http.StatusBadRequest, "Unsupported file type")
		case errors.Is(err, service.ErrPayloadTooLarge):
			uploadError(w, http.StatusBadRequest, "File exceeds the 5 MiB limit")
		case errors.As(err, &ve):
			uploadError(w, http.StatusBadRequest, ve.Error())
		default:
			slog.Error("image upload failed", "error", err, "path", middleware.GetRequestPath(r.Context()))
			uploadError(w, http.StatusInternalServerError, "Upload failed")
		}
		return
	}

	slog.Info("image uploaded", "bucket", img.Bucket, "object", img.ObjectName, "size", img.Size, "user_id", middleware.GetUserID(r))

	origin := h.origin(r)
	resp := UploadResponse{
		Success:    true,
		PublicURL:  origin + h.path(img.Path),
		ObjectName: img.ObjectName,
		Width:      img.Width,
		Height:     img.Height,
	}
	if img.ThumbnailPath != "" {
		resp.ThumbnailURL = origin + h.path(img.ThumbnailPath)
	}
	writeJSON(w, http.StatusOK, resp)
}

// Image handles GET /api/images/<bucket>/<key...>. The object is read in
// full before any header is written, so a failing backend stream becomes a
// 500 instead of a truncated 200.
func (h *MediaHandler) Image(w http.ResponseWriter, r *http.Request) {
	bucket, key, ok := imageTarget(r.URL.Path)
	if !ok {
		http.Error(w, "Invalid image path", http.StatusBadRequest)
		return
	}

	obj, err := h.media.OpenImage(r.Context(), bucket, key)
	if errors.Is(err, service.ErrNotFound) {
		http.Error(w, "Image not found", http.StatusNotFound)
		return
	}
	if err != nil {
		slog.Error("image proxy failed", "bucket", bucket, "key", key, "error", err)
		http.Error(w, "Failed to load image", http.StatusInternalServerError)
		return
	}
	defer func() { _ = obj.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(obj.Body, maxProxySize+1))
	if err == nil && len(data) > maxProxySize {
		err = fmt.Errorf("object exceeds %d bytes", maxProxySize)
	}
	if err != nil {
		slog.Error("image proxy read failed", "bucket", bucket, "key", key, "error", err)
		http.Error(w, "Failed to load image", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", obj.Info.ContentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(http.StatusOK)

	if r.Method == http.MethodHead {
		return
	}
	_, _ = w.Write(data)
}

// imageTarget splits a proxy path into bucket and key. Everything up to and
// including the "api/images" segments is dropped, so a base path prefix is
// tolerated.
func imageTarget(p string) (bucket, key string, ok bool) {
	var segs []string
	for _, s := range strings.Split(p, "/") {
		if s != "" {
			segs = append(segs, s)
		}
	}
	for i := 0; i+1 < len(segs); i++ {
		if segs[i] == "api" && segs[i+1] == "images" {
			segs = segs[i+2:]
			break
		}
	}
	if len(segs) < 2 {
		return "", "", false
	}

	key, err := util.CleanObjectKey(strings.Join(segs[1:], "/"))
	if err != nil {
		return "", "", false
	}
	return segs[0], key, true
}

// origin is the configured public URL or, failing that, the request's own.
func (h *MediaHandler) origin(r *http.Request) string {
	if h.publicURL != "" {
		return h.publicURL
	}
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	} else if p := r.Header.Get("X-Forwarded-Proto"); p == "https" || p == "http" {
		scheme = p
	}
	return scheme + "://" + r.Host
}

func (h *MediaHandler) path(p string) string {
	if h.basePath == "/" {
		return p
	}
	return h.basePath + p
}

func uploadError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, UploadResponse{Error: message})
}
