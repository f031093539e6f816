// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/olegiv/ccms-go/internal/imaging"
	"github.com/olegiv/ccms-go/internal/storage"
	"github.com/olegiv/ccms-go/internal/util"
)

// MaxImageSize is the largest image accepted by UploadImage.
const MaxImageSize = 5 << 20

// ImagePathPrefix is the route of the image proxy.
const ImagePathPrefix = "/api/images/"

const thumbPrefix = "thumbs/"

// imageTypes is the upload allow-list.
var imageTypes = map[string]string{
	"image/jpeg":    "jpg",
	"image/png":     "png",
	"image/gif":     "gif",
	"image/webp":    "webp",
	"image/svg+xml": "svg",
}

// extensionTypes resolves a content type when the store has none.
var extensionTypes = map[string]string{
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"png":  "image/png",
	"gif":  "image/gif",
	"webp": "image/webp",
	"svg":  "image/svg+xml",
	"ico":  "image/x-icon",
	"avif": "image/avif",
	"pdf":  "application/pdf",
	"doc":  "application/msword",
	"docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

// privateBuckets hold objects that are never uploaded to or served through
// the public image routes.
var privateBuckets = map[string]bool{CareerBucket: true}

var bucketName = regexp.MustCompile(`^[a-z0-9][a-z0-9.-]{1,61}[a-z0-9]$`)

// ImageUpload is one image received from the admin panel.
type ImageUpload struct {
	Bucket      string
	ObjectName  string
	ContentType string
	Size        int64
	Body        io.Reader
}

// UploadedImage describes a stored image. Paths are relative to the site
// root; the HTTP layer prefixes origin and base path.
type UploadedImage struct {
	Bucket        string `json:"bucket"`
	ObjectName    string `json:"objectName"`
	ContentType   string `json:"contentType"`
	Size          int64  `json:"size"`
	Path          string `json:"path"`
	ThumbnailPath string `json:"thumbnailPath,omitempty"`
	Width         int    `json:"width,omitempty"`
	Height        int    `json:"height,omitempty"`
}

// Media stores images on the object store and serves them back.
type Media struct {
	objects storage.ObjectStore
}

// UploadImage validates and stores an image. The target bucket is created
// on first use with a public-read policy; a policy failure is only logged.
// Raster images also get a JPEG thumbnail under thumbs/.
func (m *Media) UploadImage(ctx context.Context, up ImageUpload) (*UploadedImage, error) {
	ct := normalizeContentType(up.ContentType)
	ext, ok := imageTypes[ct]
	if !ok {
		return nil, fmt.Errorf("image type %q: %w", up.ContentType, ErrUnsupportedMediaType)
	}
	if up.Size > MaxImageSize {
		return nil, fmt.Errorf("image of %d bytes exceeds %d: %w", up.Size, MaxImageSize, ErrPayloadTooLarge)
	}

	bucket := up.Bucket
	if bucket == "" {
		bucket = AssetsBucket
	}
	if !bucketName.MatchString(bucket) {
		return nil, invalid("bucketName", "is not a valid bucket name")
	}
	if privateBuckets[bucket] {
		return nil, invalid("bucketName", "is not an image bucket")
	}
	key := up.ObjectName
	if strings.TrimSpace(key) == "" {
		key = uuid.NewString() + "." + ext
	}
	key, err := util.CleanObjectKey(key)
	if err != nil {
		return nil, invalid("objectName", err.Error())
	}

	data, err := io.ReadAll(io.LimitReader(up.Body, MaxImageSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading upload: %w", err)
	}
	if len(data) > MaxImageSize {
		return nil, fmt.Errorf("image exceeds %d bytes: %w", MaxImageSize, ErrPayloadTooLarge)
	}

	if err := m.ensurePublicBucket(ctx, bucket); err != nil {
		return nil, err
	}
	if err := m.objects.PutObject(ctx, bucket, key, bytes.NewReader(data), int64(len(data)), ct); err != nil {
		return nil, fmt.Errorf("storing image %s/%s: %w", bucket, key, err)
	}

	out := &UploadedImage{
		Bucket:      bucket,
		ObjectName:  key,
		ContentType: ct,
		Size:        int64(len(data)),
		Path:        ImagePath(bucket, key),
	}
	if imaging.IsRaster(ct) {
		m.addThumbnail(ctx, out, data)
	}
	return out, nil
}

func (m *Media) addThumbnail(ctx context.Context, out *UploadedImage, data []byte) {
	info, err := imaging.Inspect(data)
	if err != nil {
		slog.Debug("uploaded image is not decodable", "object", out.ObjectName, "error", err)
		return
	}
	out.Width, out.Height = info.Width, info.Height

	thumb, _, err := imaging.Thumbnail(data, imaging.ThumbnailSize)
	if err != nil {
		slog.Warn("thumbnail generation failed", "object", out.ObjectName, "error", err)
		return
	}
	key := thumbPrefix + out.ObjectName + ".jpg"
	if err := m.objects.PutObject(ctx, out.Bucket, key, bytes.NewReader(thumb), int64(len(thumb)), "image/jpeg"); err != nil {
		slog.Warn("storing thumbnail failed", "object", key, "error", err)
		return
	}
	out.ThumbnailPath = ImagePath(out.Bucket, key)
}

func (m *Media) ensurePublicBucket(ctx context.Context, bucket string) error {
	created, err := storage.EnsureBucket(ctx, m.objects, bucket)
	if err != nil {
		return err
	}
	if created {
		if err := m.objects.SetBucketPolicy(ctx, bucket, storage.PublicReadPolicy(bucket)); err != nil {
			slog.Warn("setting public bucket policy failed", "bucket", bucket, "error", err)
		}
	}
	return nil
}

// OpenImage opens an object for streaming and resolves its content type.
// The caller must close the returned body. Objects in private buckets are
// reported as ErrNotFound.
func (m *Media) OpenImage(ctx context.Context, bucket, key string) (*storage.Object, error) {
	if privateBuckets[bucket] {
		return nil, fmt.Errorf("object %s/%s: %w", bucket, key, ErrNotFound)
	}
	obj, err := m.objects.GetObject(ctx, bucket, key)
	if errors.Is(err, storage.ErrObjectNotFound) || errors.Is(err, storage.ErrBucketNotFound) {
		return nil, fmt.Errorf("object %s/%s: %w", bucket, key, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("opening object %s/%s: %w", bucket, key, err)
	}
	obj.Info.ContentType = ResolveContentType(obj.Info.ContentType, key)
	return obj, nil
}

// EnsureBuckets creates the buckets the site needs. Safe to run repeatedly.
func (m *Media) EnsureBuckets(ctx context.Context) error {
	if _, err := storage.EnsureBucket(ctx, m.objects, CareerBucket); err != nil {
		return err
	}
	return m.ensurePublicBucket(ctx, AssetsBucket)
}

// ResolveContentType prefers the stored type, then the key's extension,
// then application/octet-stream.
func ResolveContentType(stored, key string) string {
	if stored != "" {
		return stored
	}
	if ct, ok := extensionTypes[util.Ext(key)]; ok {
		return ct
	}
	return "application/octet-stream"
}

// ImagePath returns the proxy path of an object.
func ImagePath(bucket, key string) string {
	return ImagePathPrefix + bucket + "/" + key
}

func normalizeContentType(ct string) string {
	mt, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(ct))
	}
	return mt
}
