package raster

import (
	"image"
	"image/color"
	"testing"
)

var (
	black = color.RGBA{0, 0, 0, 255}
	white = color.RGBA{255, 255, 255, 255}
)

// fillCell paints one grid cell of a buffer entirely with col.
func fillCell(img *image.RGBA, row, col, cellSize int, c color.RGBA) {
	for y := row * cellSize; y < (row+1)*cellSize; y++ {
		for x := col * cellSize; x < (col+1)*cellSize; x++ {
			img.SetRGBA(x, y, c)
		}
	}
}

func TestSampleClassifiesCells(t *testing.T) {
	const cell = 10
	img, err := NewFilled(4*cell, 4*cell, white)
	if err != nil {
		t.Fatal(err)
	}
	dark := [][2]int{{0, 0}, {1, 2}, {3, 3}}
	for _, d := range dark {
		fillCell(img, d[0], d[1], cell, black)
	}

	grid, err := Sample(img, cell)
	if err != nil {
		t.Fatal(err)
	}
	if len(grid) != 4 || len(grid[0]) != 4 {
		t.Fatalf("grid size = %dx%d, want 4x4", len(grid), len(grid[0]))
	}
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			want := false
			for _, d := range dark {
				if d[0] == row && d[1] == col {
					want = true
				}
			}
			if grid[row][col] != want {
				t.Errorf("cell (%d,%d) dark = %v, want %v", row, col, grid[row][col], want)
			}
		}
	}
}

func TestSampleRejectsZeroCellSize(t *testing.T) {
	img, _ := NewFilled(10, 10, white)
	if _, err := Sample(img, 0); err == nil {
		t.Fatal("Sample accepted zero cell size")
	}
	if _, err := Sample(img, -3); err == nil {
		t.Fatal("Sample accepted negative cell size")
	}
}

func TestNewFilledRejectsBadDimensions(t *testing.T) {
	if _, err := NewFilled(0, 10, white); err == nil {
		t.Fatal("NewFilled accepted zero width")
	}
	if _, err := NewFilled(10, -1, white); err == nil {
		t.Fatal("NewFilled accepted negative height")
	}
}

func TestScaleNearestExactTarget(t *testing.T) {
	img, _ := NewFilled(20, 20, white)
	fillCell(img, 0, 0, 10, black)

	out, err := ScaleNearest(img, 100)
	if err != nil {
		t.Fatal(err)
	}
	if got := out.Bounds().Dx(); got != 100 {
		t.Fatalf("scaled width = %d, want 100", got)
	}
	// Top-left quadrant maps back to the dark source cell.
	if got := out.RGBAAt(25, 25); got != black {
		t.Errorf("pixel (25,25) = %v, want black", got)
	}
	if got := out.RGBAAt(75, 75); got != white {
		t.Errorf("pixel (75,75) = %v, want white", got)
	}
}

func TestScaleNearestRejectsNonSquare(t *testing.T) {
	img, _ := NewFilled(20, 10, white)
	if _, err := ScaleNearest(img, 50); err == nil {
		t.Fatal("ScaleNearest accepted a non-square source")
	}
}
