// Package compose layers decoration onto rendered QR buffers: logo overlays,
// solid borders and patterned frames.
package compose

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
)

// AddBorder pads the buffer with a uniform-color margin of width px on every
// side. The result is a new (w+2b)x(h+2b) buffer with the original drawn
// inset; the input is never mutated.
func AddBorder(src *image.RGBA, width int, col color.RGBA) (*image.RGBA, error) {
	if width < 0 {
		return nil, fmt.Errorf("border width must be non-negative, got %d", width)
	}
	bounds := src.Bounds()
	newW := bounds.Dx() + width*2
	newH := bounds.Dy() + width*2

	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	draw.Draw(dst, dst.Bounds(), &image.Uniform{C: col}, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(width, width, width+bounds.Dx(), width+bounds.Dy()), src, bounds.Min, draw.Src)
	return dst, nil
}
