// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package imaging

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"
)

// createTestImage creates a gradient image with the given dimensions.
func createTestImage(width, height int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	return img
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	return buf.Bytes()
}

func TestIsRaster(t *testing.T) {
	tests := map[string]bool{
		"image/jpeg":    true,
		"image/png":     true,
		"image/gif":     true,
		"image/webp":    true,
		"image/svg+xml": false,
		"":              false,
	}
	for mime, want := range tests {
		if got := IsRaster(mime); got != want {
			t.Errorf("IsRaster(%q) = %v, want %v", mime, got, want)
		}
	}
}

func TestInspect(t *testing.T) {
	info, err := Inspect(encodePNG(t, createTestImage(320, 240)))
	if err != nil {
		t.Fatalf("Inspect: %v", err)
	}
	if info.Width != 320 || info.Height != 240 || info.Format != "png" {
		t.Errorf("Inspect = %+v", info)
	}
}

func TestInspect_NotRaster(t *testing.T) {
	svg := []byte(`<svg xmlns="http://www.w3.org/2000/svg" width="10" height="10"></svg>`)
	if _, err := Inspect(svg); !errors.Is(err, ErrNotRaster) {
		t.Errorf("Inspect(svg) error = %v, want ErrNotRaster", err)
	}
	tiff := []byte("II*\x00garbage")
	if _, err := Inspect(tiff); !errors.Is(err, ErrNotRaster) {
		t.Errorf("Inspect(tiff) error = %v, want ErrNotRaster", err)
	}
}

func TestThumbnail_FitsIntoBox(t *testing.T) {
	data, info, err := Thumbnail(encodePNG(t, createTestImage(800, 200)), ThumbnailSize)
	if err != nil {
		t.Fatalf("Thumbnail: %v", err)
	}
	if info.Width != 400 || info.Height != 100 {
		t.Errorf("thumbnail size = %dx%d, want 400x100", info.Width, info.Height)
	}

	decoded, err := jpeg.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("thumbnail is not a JPEG: %v", err)
	}
	if decoded.Bounds().Dx() != 400 {
		t.Errorf("decoded width = %d", decoded.Bounds().Dx())
	}
}

func TestThumbnail_SmallImageKeepsSize(t *testing.T) {
	_, info, err := Thumbnail(encodePNG(t, createTestImage(50, 30)), ThumbnailSize)
	if err != nil {
		t.Fatalf("Thumbnail: %v", err)
	}
	if info.Width != 50 || info.Height != 30 {
		t.Errorf("thumbnail size = %dx%d, want 50x30", info.Width, info.Height)
	}
}

func TestThumbnail_Garbage(t *testing.T) {
	if _, _, err := Thumbnail([]byte("not an image"), ThumbnailSize); !errors.Is(err, ErrNotRaster) {
		t.Errorf("error = %v, want ErrNotRaster", err)
	}
}

func TestApplyOrientation(t *testing.T) {
	src := createTestImage(40, 20)
	tests := []struct {
		orientation int
		w, h        int
	}{
		{1, 40, 20},
		{2, 40, 20},
		{3, 40, 20},
		{4, 40, 20},
		{5, 20, 40},
		{6, 20, 40},
		{7, 20, 40},
		{8, 20, 40},
	}
	for _, tt := range tests {
		b := applyOrientation(src, tt.orientation).Bounds()
		if b.Dx() != tt.w || b.Dy() != tt.h {
			t.Errorf("orientation %d: got %dx%d, want %dx%d", tt.orientation, b.Dx(), b.Dy(), tt.w, tt.h)
		}
	}
}
