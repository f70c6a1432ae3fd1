package seam

import (
	"testing"

	"github.com/stretchr/testify/require"

	"seam-carver/internal/models"
)

func newImage(t *testing.T, rows [][]models.Pixel) *models.Image {
	t.Helper()
	img, err := models.NewImageFromRows(rows)
	require.NoError(t, err)
	return img
}

func uniformImage(t *testing.T, w, h int, p models.Pixel) *models.Image {
	t.Helper()
	rows := make([][]models.Pixel, h)
	for y := range rows {
		rows[y] = make([]models.Pixel, w)
		for x := range rows[y] {
			rows[y][x] = p
		}
	}
	return newImage(t, rows)
}

// noiseImage fills a w×h image from a fixed linear congruential sequence.
func noiseImage(t *testing.T, w, h int, seed uint32) *models.Image {
	t.Helper()
	state := seed
	next := func() int {
		state = state*1664525 + 1013904223
		return int(state>>24) % 256
	}

	rows := make([][]models.Pixel, h)
	for y := range rows {
		rows[y] = make([]models.Pixel, w)
		for x := range rows[y] {
			rows[y][x] = models.Pixel{R: next(), G: next(), B: next()}
		}
	}
	return newImage(t, rows)
}

func transposeImage(t *testing.T, img *models.Image) *models.Image {
	t.Helper()
	rows := img.Rows()
	out := make([][]models.Pixel, img.Width())
	for x := range out {
		out[x] = make([]models.Pixel, img.Height())
		for y := range out[x] {
			out[x][y] = rows[y][x]
		}
	}
	return newImage(t, out)
}

func energyMatrix(t *testing.T, rows [][]int) *models.Matrix[int] {
	t.Helper()
	m, err := models.NewMatrix[int](len(rows[0]), len(rows))
	require.NoError(t, err)
	for y, row := range rows {
		copy(m.Row(y), row)
	}
	return m
}

// verticalCost sums the energy along a vertical seam.
func verticalCost(t *testing.T, img *models.Image, s Seam) int {
	t.Helper()
	total := 0
	for y, x := range s {
		total += Energy(img, x, y)
	}
	return total
}

// horizontalCost sums the energy along a horizontal seam.
func horizontalCost(t *testing.T, img *models.Image, s Seam) int {
	t.Helper()
	total := 0
	for x, y := range s {
		total += Energy(img, x, y)
	}
	return total
}

func requireConnected(t *testing.T, s Seam, limit int) {
	t.Helper()
	for i, v := range s {
		require.GreaterOrEqual(t, v, 0, "entry %d", i)
		require.Less(t, v, limit, "entry %d", i)
		if i > 0 {
			d := v - s[i-1]
			require.LessOrEqual(t, d, 1, "entry %d", i)
			require.GreaterOrEqual(t, d, -1, "entry %d", i)
		}
	}
}
