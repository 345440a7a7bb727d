// Package raster holds the in-memory pixel pipeline: buffer plumbing,
// module sampling and decorative module styling for QR images.
package raster

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
)

// NewFilled allocates a width x height RGBA buffer filled with bg.
func NewFilled(width, height int, bg color.RGBA) (*image.RGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid buffer dimensions %dx%d", width, height)
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: bg}, image.Point{}, draw.Src)
	return img, nil
}

// ToRGBA converts any decoded image into an RGBA buffer the pipeline can
// mutate. Images that already are *image.RGBA are returned as-is.
func ToRGBA(src image.Image) *image.RGBA {
	if rgba, ok := src.(*image.RGBA); ok {
		return rgba
	}
	bounds := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(dst, dst.Bounds(), src, bounds.Min, draw.Src)
	return dst
}

// ScaleNearest resizes a square src to size x size using nearest neighbor,
// which preserves the sharp module edges QR scanners rely on. Non-square
// sources are rejected rather than distorted.
func ScaleNearest(src *image.RGBA, size int) (*image.RGBA, error) {
	if size <= 0 {
		return nil, fmt.Errorf("invalid target size %d", size)
	}
	bounds := src.Bounds()
	currentW := bounds.Dx()
	if currentW == 0 {
		return nil, fmt.Errorf("source buffer is empty")
	}
	if currentW != bounds.Dy() {
		return nil, fmt.Errorf("source buffer must be square, got %dx%d", currentW, bounds.Dy())
	}
	if currentW == size && bounds.Dy() == size {
		return src, nil
	}

	scale := float64(size) / float64(currentW)
	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			ox := int(float64(x) / scale)
			oy := int(float64(y) / scale)
			if ox >= bounds.Dx() {
				ox = bounds.Dx() - 1
			}
			if oy >= bounds.Dy() {
				oy = bounds.Dy() - 1
			}
			dst.Set(x, y, src.At(bounds.Min.X+ox, bounds.Min.Y+oy))
		}
	}
	return dst, nil
}
