package seam

import (
	"fmt"

	"seam-carver/internal/models"
)

// Energy returns the squared color gradient at (x, y): the squared channel
// differences between the left and right neighbors plus those between the
// up and down neighbors. Coordinates and neighbors are clamped to the
// image, so border pixels stand in for their missing neighbors.
func Energy(img *models.Image, x, y int) int {
	if !img.Valid() {
		return 0
	}

	x = clamp(x, 0, img.Width()-1)
	y = clamp(y, 0, img.Height()-1)

	left, right := img.Clamped(x-1, y), img.Clamped(x+1, y)
	up, down := img.Clamped(x, y-1), img.Clamped(x, y+1)

	return squaredDiff(left, right) + squaredDiff(up, down)
}

// EnergyMap evaluates Energy for every pixel.
func EnergyMap(img *models.Image) (*models.Matrix[int], error) {
	if !img.Valid() {
		return nil, fmt.Errorf("%w: energy of %s image", ErrNoSeam, img)
	}

	energy, err := models.NewMatrix[int](img.Width(), img.Height())
	if err != nil {
		return nil, err
	}

	for y := 0; y < img.Height(); y++ {
		row := energy.Row(y)
		for x := range row {
			row[x] = Energy(img, x, y)
		}
	}

	return energy, nil
}

func squaredDiff(a, b models.Pixel) int {
	dr, dg, db := b.R-a.R, b.G-a.G, b.B-a.B
	return dr*dr + dg*dg + db*db
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
