// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package imaging inspects uploaded raster images and renders JPEG
// thumbnails for the admin media views.
package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"io"
	"net/http"
	"strings"

	_ "image/gif" // GIF decoder
	_ "image/png" // PNG decoder

	"github.com/disintegration/imaging"
	"github.com/rwcarlsen/goexif/exif"
	_ "golang.org/x/image/webp" // WebP decoder
)

// ThumbnailSize is the bounding box thumbnails are fitted into.
const ThumbnailSize = 400

// ThumbnailQuality is the JPEG quality used for thumbnails.
const ThumbnailQuality = 85

// ErrNotRaster is returned for content the decoders cannot read, such as SVG.
var ErrNotRaster = errors.New("not a decodable raster image")

// Info describes a decoded image as it will be displayed, i.e. after the
// EXIF orientation has been applied.
type Info struct {
	Width  int
	Height int
	Format string
}

// IsRaster reports whether mimeType is a format this package can decode.
func IsRaster(mimeType string) bool {
	switch mimeType {
	case "image/jpeg", "image/png", "image/gif", "image/webp":
		return true
	default:
		return false
	}
}

// Inspect reads image dimensions without decoding pixel data.
func Inspect(data []byte) (Info, error) {
	if rejectFormat(data) {
		return Info{}, ErrNotRaster
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Info{}, fmt.Errorf("%w: %v", ErrNotRaster, err)
	}

	info := Info{Width: cfg.Width, Height: cfg.Height, Format: format}
	if format == "jpeg" && readOrientation(bytes.NewReader(data)) >= 5 {
		info.Width, info.Height = info.Height, info.Width
	}
	return info, nil
}

// Thumbnail decodes data, applies its EXIF orientation, fits it into a
// size x size box, and returns it JPEG-encoded. Images already inside the box
// are re-encoded at their own size.
func Thumbnail(data []byte, size int) ([]byte, Info, error) {
	if rejectFormat(data) {
		return nil, Info{}, ErrNotRaster
	}
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, Info{}, fmt.Errorf("%w: %v", ErrNotRaster, err)
	}
	if format == "jpeg" {
		img = applyOrientation(img, readOrientation(bytes.NewReader(data)))
	}

	b := img.Bounds()
	if b.Dx() > size || b.Dy() > size {
		img = imaging.Fit(img, size, size, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, flatten(img), &jpeg.Options{Quality: ThumbnailQuality}); err != nil {
		return nil, Info{}, fmt.Errorf("encoding thumbnail: %w", err)
	}

	tb := img.Bounds()
	return buf.Bytes(), Info{Width: tb.Dx(), Height: tb.Dy(), Format: "jpeg"}, nil
}

// flatten composites transparent pixels onto white so JPEG output does not
// turn them black.
func flatten(img image.Image) image.Image {
	b := img.Bounds()
	bg := imaging.New(b.Dx(), b.Dy(), image.White)
	return imaging.Overlay(bg, img, image.Pt(0, 0), 1.0)
}

// rejectFormat refuses TIFF (CVE-2023-36308 in disintegration/imaging).
func rejectFormat(data []byte) bool {
	return strings.Contains(http.DetectContentType(data), "tiff")
}

// readOrientation returns the EXIF orientation tag, or 1 when absent.
func readOrientation(r io.Reader) int {
	x, err := exif.Decode(r)
	if err != nil {
		return 1
	}
	tag, err := x.Get(exif.Orientation)
	if err != nil {
		return 1
	}
	o, err := tag.Int(0)
	if err != nil {
		return 1
	}
	return o
}

// applyOrientation maps EXIF orientations 2-8 onto flips and rotations.
func applyOrientation(img image.Image, orientation int) image.Image {
	switch orientation {
	case 2:
		return imaging.FlipH(img)
	case 3:
		return imaging.Rotate180(img)
	case 4:
		return imaging.FlipV(img)
	case 5:
		return imaging.Transpose(img)
	case 6:
		return imaging.Rotate270(img)
	case 7:
		return imaging.Transverse(img)
	case 8:
		return imaging.Rotate90(img)
	default:
		return img
	}
}
