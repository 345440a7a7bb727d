package compose

import (
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
)

// Shape controls the clip region used when compositing a logo.
type Shape string

const (
	ShapeSquare  Shape = "square"
	ShapeRounded Shape = "rounded"
	ShapeCircle  Shape = "circle"
)

// Layout names the anchor position of the logo within the QR buffer.
type Layout string

const (
	LayoutCenter      Layout = "center"
	LayoutTopLeft     Layout = "top-left"
	LayoutTopRight    Layout = "top-right"
	LayoutBottomLeft  Layout = "bottom-left"
	LayoutBottomRight Layout = "bottom-right"
	LayoutWatermark   Layout = "watermark"
)

// ParseShape validates a logo shape name from a request parameter.
func ParseShape(s string) (Shape, error) {
	switch Shape(s) {
	case ShapeSquare, ShapeRounded, ShapeCircle:
		return Shape(s), nil
	case "":
		return ShapeSquare, nil
	}
	return "", fmt.Errorf("unknown logo shape %q", s)
}

// ParseLayout validates a logo layout name from a request parameter.
func ParseLayout(s string) (Layout, error) {
	switch Layout(s) {
	case LayoutCenter, LayoutTopLeft, LayoutTopRight, LayoutBottomLeft,
		LayoutBottomRight, LayoutWatermark:
		return Layout(s), nil
	case "":
		return LayoutCenter, nil
	}
	return "", fmt.Errorf("unknown logo layout %q", s)
}

// marginRatio is the corner offset for non-center layouts, as a fraction of
// the buffer width.
const marginRatio = 0.08

// padRatio sizes the background pad around the logo, as a fraction of the
// logo size. The pad guarantees scan contrast between modules and logo.
const padRatio = 0.15

// anchorFor computes the top-left position of a logoSize square within a
// w x h buffer for the given layout.
func anchorFor(layout Layout, w, h, logoSize int) (int, int) {
	margin := int(marginRatio * float64(w))
	switch layout {
	case LayoutTopLeft:
		return margin, margin
	case LayoutTopRight:
		return w - margin - logoSize, margin
	case LayoutBottomLeft:
		return margin, h - margin - logoSize
	case LayoutBottomRight:
		return w - margin - logoSize, h - margin - logoSize
	case LayoutWatermark:
		return (w - logoSize) / 2, h - 2*margin - logoSize
	default: // center
		return (w - logoSize) / 2, (h - logoSize) / 2
	}
}

// OverlayLogo draws logo onto the buffer at the layout anchor, behind a
// bg-filled pad of the same shape and inside the shape's clip region. The
// logo is an optional decoration: a nil logo is a no-op and the buffer is
// returned unchanged.
//
// Callers are expected to keep sizePercent within a scannable range
// (10-25% of the buffer width); the compositor trusts its input.
func OverlayLogo(img *image.RGBA, logo image.Image, shape Shape, layout Layout, sizePercent float64, bg color.RGBA) *image.RGBA {
	if logo == nil {
		return img
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	logoSize := int(float64(w) * sizePercent / 100)
	if logoSize <= 0 {
		return img
	}
	x, y := anchorFor(layout, w, h, logoSize)

	scaled := imaging.Resize(logo, logoSize, logoSize, imaging.Lanczos)

	dc := gg.NewContextForRGBA(img)

	// Background pad, same shape kind as the clip region.
	pad := padRatio * float64(logoSize)
	padSize := float64(logoSize) + 2*pad
	px := float64(x) - pad
	py := float64(y) - pad
	dc.SetColor(bg)
	switch shape {
	case ShapeCircle:
		dc.DrawCircle(px+padSize/2, py+padSize/2, padSize/2)
	case ShapeRounded:
		dc.DrawRoundedRectangle(px, py, padSize, padSize, padSize/6)
	default:
		dc.DrawRectangle(px, py, padSize, padSize)
	}
	dc.Fill()

	// Clip region for the logo itself.
	fs := float64(logoSize)
	switch shape {
	case ShapeCircle:
		dc.DrawCircle(float64(x)+fs/2, float64(y)+fs/2, fs/2)
		dc.Clip()
	case ShapeRounded:
		dc.DrawRoundedRectangle(float64(x), float64(y), fs, fs, fs/6)
		dc.Clip()
	}
	dc.DrawImage(scaled, x, y)
	dc.ResetClip()

	return img
}
