package compose

import (
	"image"
	"image/color"
	"testing"
)

var (
	black = color.RGBA{0, 0, 0, 255}
	white = color.RGBA{255, 255, 255, 255}
	blue  = color.RGBA{0, 0, 200, 255}
)

func uniformRGBA(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestAddBorderGeometry(t *testing.T) {
	src := uniformRGBA(40, 30, black)
	const b = 5

	out, err := AddBorder(src, b, blue)
	if err != nil {
		t.Fatal(err)
	}
	if out.Bounds().Dx() != 40+2*b || out.Bounds().Dy() != 30+2*b {
		t.Fatalf("border output = %v, want %dx%d", out.Bounds(), 40+2*b, 30+2*b)
	}

	for y := 0; y < out.Bounds().Dy(); y++ {
		for x := 0; x < out.Bounds().Dx(); x++ {
			inset := x >= b && x < b+40 && y >= b && y < b+30
			got := out.RGBAAt(x, y)
			if inset && got != black {
				t.Fatalf("inset pixel (%d,%d) = %v, want original", x, y, got)
			}
			if !inset && got != blue {
				t.Fatalf("border pixel (%d,%d) = %v, want border color", x, y, got)
			}
		}
	}
}

func TestAddBorderZeroWidth(t *testing.T) {
	src := uniformRGBA(10, 10, black)
	out, err := AddBorder(src, 0, blue)
	if err != nil {
		t.Fatal(err)
	}
	if out.Bounds() != src.Bounds() {
		t.Fatalf("zero border changed bounds to %v", out.Bounds())
	}
	if got := out.RGBAAt(5, 5); got != black {
		t.Fatalf("pixel (5,5) = %v, want original", got)
	}
}

func TestAddBorderRejectsNegativeWidth(t *testing.T) {
	src := uniformRGBA(10, 10, black)
	if _, err := AddBorder(src, -1, blue); err == nil {
		t.Fatal("AddBorder accepted negative width")
	}
}
