package raster

import (
	"fmt"
	"image"
)

// darkThreshold splits the red channel into dark and light modules. The base
// render is black on white, so a single mid cut is enough.
const darkThreshold = 128

// Sample classifies each cell of the rendered QR buffer as dark or light by
// reading the color at the cell origin. One representative pixel per cell is
// sufficient because the base render is aliased and cell-aligned.
//
// cellSize must be derived from the encoder's reported module dimension
// (bufferWidth / dimension); it is not assumed from any fixed QR version.
func Sample(img *image.RGBA, cellSize int) ([][]bool, error) {
	if cellSize <= 0 {
		return nil, fmt.Errorf("cell size must be positive, got %d", cellSize)
	}

	bounds := img.Bounds()
	rows := bounds.Dy() / cellSize
	cols := bounds.Dx() / cellSize

	grid := make([][]bool, rows)
	for row := 0; row < rows; row++ {
		grid[row] = make([]bool, cols)
		for col := 0; col < cols; col++ {
			px := img.RGBAAt(bounds.Min.X+col*cellSize, bounds.Min.Y+row*cellSize)
			grid[row][col] = px.R < darkThreshold
		}
	}
	return grid, nil
}
