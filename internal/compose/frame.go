package compose

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"strings"
)

// Frame patterns. A "rounded-" prefix on any pattern rounds the outer corners
// and carves a rounded inner stroke after the pattern is drawn.
const (
	FrameSimple    = "simple"
	FrameDashed    = "dashed"
	FrameDotted    = "dotted"
	FrameDouble    = "double"
	FrameDiagonal  = "diagonal"
	FrameGrid      = "grid"
	FrameIrregular = "irregular"
)

// ValidFramePattern reports whether pattern names a known frame style,
// with or without the rounded- prefix.
func ValidFramePattern(pattern string) bool {
	base := strings.TrimPrefix(pattern, "rounded-")
	switch base {
	case FrameSimple, FrameDashed, FrameDotted, FrameDouble, FrameDiagonal, FrameGrid, FrameIrregular:
		return true
	}
	return false
}

// AddFrame surrounds the buffer with a decorative patterned band of the given
// width. bg fills pattern gaps so carved regions match the QR padding; the
// result is a new buffer, the input is never mutated.
func AddFrame(src *image.RGBA, pattern string, width int, bg, frameColor color.RGBA) (*image.RGBA, error) {
	if width <= 0 {
		return nil, fmt.Errorf("frame width must be positive, got %d", width)
	}
	if !ValidFramePattern(pattern) {
		return nil, fmt.Errorf("unknown frame pattern %q", pattern)
	}

	bounds := src.Bounds()
	newW := bounds.Dx() + width*2
	newH := bounds.Dy() + width*2
	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	if bg.A != 0 {
		draw.Draw(dst, dst.Bounds(), &image.Uniform{C: bg}, image.Point{}, draw.Src)
	}

	rounded := strings.HasPrefix(pattern, "rounded-")
	base := strings.TrimPrefix(pattern, "rounded-")

	for y := 0; y < newH; y++ {
		for x := 0; x < newW; x++ {
			inFrame := x < width || x >= newW-width || y < width || y >= newH-width
			if !inFrame {
				continue
			}
			drawFramePixel(dst, base, x, y, newW, newH, width, bg, frameColor)
		}
	}

	// Original buffer goes in the center after the band.
	draw.Draw(dst, image.Rect(width, width, width+bounds.Dx(), width+bounds.Dy()), src, bounds.Min, draw.Src)

	if rounded {
		carveRoundedFrame(dst, width, bg)
	}
	return dst, nil
}

// drawFramePixel paints a single band pixel for the base pattern.
func drawFramePixel(dst *image.RGBA, pattern string, x, y, w, h, width int, bg, col color.RGBA) {
	switch pattern {
	case FrameDashed:
		dashLen := width * 3
		if dashLen < 6 {
			dashLen = 6
		}
		total := dashLen + dashLen/2
		if inFrameCorner(x, y, w, h, width) {
			dst.SetRGBA(x, y, col)
			return
		}
		if (y < width || y >= h-width) && x >= width && x < w-width && (x-width)%total < dashLen {
			dst.SetRGBA(x, y, col)
		}
		if (x < width || x >= w-width) && y >= width && y < h-width && (y-width)%total < dashLen {
			dst.SetRGBA(x, y, col)
		}
	case FrameIrregular:
		if inFrameCorner(x, y, w, h, width) {
			dst.SetRGBA(x, y, col)
			return
		}
		// Hash-driven dash lengths give the hand-drawn look.
		if (y < width || y >= h-width) && x >= width && x < w-width {
			hash := (x * 13) % 17
			total := 6 + hash%8 + hash%4
			if (x-width)%total < 4+hash%8 {
				dst.SetRGBA(x, y, col)
			}
		}
		if (x < width || x >= w-width) && y >= width && y < h-width {
			hash := (y * 13) % 17
			total := 6 + hash%8 + hash%4
			if (y-width)%total < 4+hash%8 {
				dst.SetRGBA(x, y, col)
			}
		}
	case FrameDotted:
		// Stamp-edge perforations: solid band with circular holes cut out.
		spacing := width
		if spacing < 6 {
			spacing = 6
		}
		radius := width / 3
		if radius < 2 {
			radius = 2
		}
		dst.SetRGBA(x, y, col)
		if y < width || y >= h-width {
			if x%spacing < radius*2 {
				cx := (x/spacing)*spacing + radius
				cy := width / 2
				if y >= h-width {
					cy = h - width/2
				}
				if sq(x-cx)+sq(y-cy) <= radius*radius {
					dst.SetRGBA(x, y, bg)
				}
			}
		} else if x < width || x >= w-width {
			if y%spacing < radius*2 {
				cy := (y/spacing)*spacing + radius
				cx := width / 2
				if x >= w-width {
					cx = w - width/2
				}
				if sq(x-cx)+sq(y-cy) <= radius*radius {
					dst.SetRGBA(x, y, bg)
				}
			}
		}
	case FrameDouble:
		// Outer stroke | gap | inner stroke split of the band width.
		outer := int(math.Max(2, math.Round(float64(width)*0.5)))
		gap := int(math.Max(1, math.Round(float64(width)*0.2)))
		inner := width - outer - gap
		if inner < 1 {
			inner = 1
		}
		edge := minEdgeDist(x, y, w, h)
		switch {
		case edge < outer:
			dst.SetRGBA(x, y, col)
		case edge < outer+gap:
			dst.SetRGBA(x, y, bg)
		case edge < outer+gap+inner:
			dst.SetRGBA(x, y, col)
		}
	case FrameDiagonal:
		spacing := width / 2
		if spacing < 2 {
			spacing = 2
		}
		thickness := width / 5
		if thickness < 2 {
			thickness = 2
		}
		if thickness >= spacing {
			thickness = spacing - 1
		}
		if (x+y)%spacing < thickness {
			dst.SetRGBA(x, y, col)
		}
	case FrameGrid:
		cell := width / 3
		if cell < 2 {
			cell = 2
		}
		if (x/cell+y/cell)%2 == 0 {
			dst.SetRGBA(x, y, col)
		}
	default: // simple
		dst.SetRGBA(x, y, col)
	}
}

// carveRoundedFrame rounds the outer frame corners and cuts a rounded stroke
// from the inner side of the band. Pixels outside the outer rounded rect are
// cleared to transparent; the inner carve matches the QR background so no
// halo appears against the padding.
func carveRoundedFrame(img *image.RGBA, width int, bg color.RGBA) {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	innerR := int(math.Max(2, math.Round(float64(width)*0.55)))
	outerR := innerR + width

	outerClear := color.RGBA{}
	innerClear := bg

	cut := int(math.Max(2, math.Ceil(float64(width)*0.33)))
	carveL, carveT := width-cut, width-cut
	carveR, carveB := w-1-width+cut, h-1-width+cut
	carveRadius := innerR + cut

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			inFrame := x < width || x >= w-width || y < width || y >= h-width
			if !inFrame {
				continue
			}
			if !insideRoundedRect(x, y, 0, 0, w-1, h-1, outerR) {
				img.SetRGBA(x, y, outerClear)
				continue
			}
			if insideRoundedRect(x, y, carveL, carveT, carveR, carveB, carveRadius) {
				img.SetRGBA(x, y, innerClear)
			}
		}
	}
}

// insideRoundedRect hit-tests a rounded rectangle given by inclusive bounds.
func insideRoundedRect(x, y, left, top, right, bottom, r int) bool {
	if left > right || top > bottom {
		return false
	}
	if r <= 0 {
		return x >= left && x <= right && y >= top && y <= bottom
	}
	if x >= left+r && x <= right-r && y >= top && y <= bottom {
		return true
	}
	if y >= top+r && y <= bottom-r && x >= left && x <= right {
		return true
	}
	for _, c := range [4][2]int{{left + r, top + r}, {right - r, top + r}, {left + r, bottom - r}, {right - r, bottom - r}} {
		if sq(x-c[0])+sq(y-c[1]) <= r*r {
			return true
		}
	}
	return false
}

func inFrameCorner(x, y, w, h, width int) bool {
	return (x < width && y < width) ||
		(x >= w-width && y < width) ||
		(x < width && y >= h-width) ||
		(x >= w-width && y >= h-width)
}

func minEdgeDist(x, y, w, h int) int {
	m := x
	if y < m {
		m = y
	}
	if w-1-x < m {
		m = w - 1 - x
	}
	if h-1-y < m {
		m = h - 1 - y
	}
	return m
}

func sq(v int) int { return v * v }
