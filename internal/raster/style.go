package raster

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/fogleman/gg"
)

// Style selects the shape drawn for each dark module.
type Style string

const (
	StyleSquare        Style = "square"
	StyleRounded       Style = "rounded"
	StyleDots          Style = "dots"
	StyleClassy        Style = "classy"
	StyleClassyRounded Style = "classy-rounded"
	StyleExtraRounded  Style = "extra-rounded"
	StyleDiamond       Style = "diamond"
	StyleStar          Style = "star"
	StyleFluid         Style = "fluid"
)

// ParseStyle validates a style name from a request parameter.
func ParseStyle(s string) (Style, error) {
	switch Style(s) {
	case StyleSquare, StyleRounded, StyleDots, StyleClassy, StyleClassyRounded,
		StyleExtraRounded, StyleDiamond, StyleStar, StyleFluid:
		return Style(s), nil
	case "":
		return StyleSquare, nil
	}
	return "", fmt.Errorf("unknown style %q", s)
}

// insetRatio is the padding kept between a module shape and its cell edge,
// as a fraction of the cell size.
const insetRatio = 0.1

// Rasterize redraws the sampled modules of src with one shape per dark cell.
// square is the identity style and returns src unchanged. Every other style
// allocates a new buffer of identical dimensions, fills it with bg, and draws
// a fg shape centered in each dark cell.
func Rasterize(src *image.RGBA, style Style, cellSize int, fg, bg color.RGBA) (*image.RGBA, error) {
	style, err := ParseStyle(string(style))
	if err != nil {
		return nil, err
	}
	if style == StyleSquare {
		return src, nil
	}

	grid, err := Sample(src, cellSize)
	if err != nil {
		return nil, err
	}

	bounds := src.Bounds()
	dst, err := NewFilled(bounds.Dx(), bounds.Dy(), bg)
	if err != nil {
		return nil, err
	}

	dc := gg.NewContextForRGBA(dst)
	dc.SetColor(fg)

	s := float64(cellSize)
	pad := insetRatio * s
	d := s - 2*pad

	for row := range grid {
		for col, dark := range grid[row] {
			if !dark {
				continue
			}
			x0 := float64(col) * s
			y0 := float64(row) * s
			drawModule(dc, style, x0, y0, s, pad, d)
			dc.Fill()
		}
	}
	return dst, nil
}

// drawModule traces one module shape into the context path. The drawable
// extent d is the cell size minus the inset padding on both sides; the
// radius ratios below define the visual identity of each style and must not
// be changed without breaking parity with existing renders.
func drawModule(dc *gg.Context, style Style, x0, y0, s, pad, d float64) {
	cx := x0 + s/2
	cy := y0 + s/2

	switch style {
	case StyleRounded:
		dc.DrawRoundedRectangle(x0+pad, y0+pad, d, d, d/4)
	case StyleDots:
		dc.DrawCircle(cx, cy, d/2.2)
	case StyleClassy:
		dc.DrawRectangle(x0+pad, y0+pad, d, d)
	case StyleClassyRounded:
		dc.DrawRoundedRectangle(x0+pad, y0+pad, d, d, d/3)
	case StyleExtraRounded:
		dc.DrawRoundedRectangle(x0+pad, y0+pad, d, d, d/2)
	case StyleFluid:
		dc.DrawRoundedRectangle(x0+pad, y0+pad, d, d, d/2.5)
	case StyleDiamond:
		dc.MoveTo(cx, y0+pad)
		dc.LineTo(x0+s-pad, cy)
		dc.LineTo(cx, y0+s-pad)
		dc.LineTo(x0+pad, cy)
		dc.ClosePath()
	case StyleStar:
		outer := d / 2
		inner := outer * 0.5
		for i := 0; i < 8; i++ {
			r := outer
			if i%2 == 1 {
				r = inner
			}
			angle := -math.Pi/2 + float64(i)*math.Pi/4
			px := cx + r*math.Cos(angle)
			py := cy + r*math.Sin(angle)
			if i == 0 {
				dc.MoveTo(px, py)
			} else {
				dc.LineTo(px, py)
			}
		}
		dc.ClosePath()
	}
}
