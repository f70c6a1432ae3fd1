package seam

import (
	"seam-carver/internal/models"
)

// RemoveVerticalSeam deletes s[y] from every row y, shifting the rest of
// the row left, and narrows the image by one column. Seam entries are
// clamped to the current width. It does nothing when the image is at most
// one column wide or the seam does not cover every row.
func RemoveVerticalSeam(img *models.Image, s Seam) {
	w, h := img.Width(), img.Height()
	if w <= 1 || h <= 0 || len(s) < h {
		return
	}

	cols := make([]int, h)
	for y := range cols {
		cols[y] = clamp(s[y], 0, w-1)
	}

	_ = img.ExciseColumns(cols)
}

// RemoveHorizontalSeam deletes s[x] from every column x, shifting the rest
// of the column up, and shortens the image by one row. Seam entries are
// clamped to the current height. It does nothing when the image is at most
// one row tall or the seam does not cover every column.
func RemoveHorizontalSeam(img *models.Image, s Seam) {
	w, h := img.Width(), img.Height()
	if h <= 1 || w <= 0 || len(s) < w {
		return
	}

	rows := make([]int, w)
	for x := range rows {
		rows[x] = clamp(s[x], 0, h-1)
	}

	_ = img.ExciseRows(rows)
}

// Remove dispatches to the remover for the given orientation.
func Remove(img *models.Image, s Seam, o Orientation) {
	if o == Horizontal {
		RemoveHorizontalSeam(img, s)
		return
	}
	RemoveVerticalSeam(img, s)
}
