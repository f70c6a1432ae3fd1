package models

import (
	"fmt"
)

// Pixel holds three independent integer color channels. Values are
// conventionally in [0,255] but are not clamped here.
type Pixel struct {
	R int
	G int
	B int
}

// Image is a mutable width×height grid of pixels addressed by (column, row).
// Its dimensions only ever shrink.
type Image struct {
	pix *Matrix[Pixel]
}

// NewImage allocates a black width×height image.
func NewImage(width, height int) (*Image, error) {
	pix, err := NewMatrix[Pixel](width, height)
	if err != nil {
		return nil, fmt.Errorf("failed to create image: %w", err)
	}
	return &Image{pix: pix}, nil
}

// NewImageFromRows builds an image from row-major pixel rows. Every row
// must have the same non-zero length.
func NewImageFromRows(rows [][]Pixel) (*Image, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrInvalidDimensions)
	}

	img, err := NewImage(len(rows[0]), len(rows))
	if err != nil {
		return nil, err
	}

	for y, row := range rows {
		if len(row) != img.Width() {
			return nil, fmt.Errorf("%w: row %d has %d pixels, want %d",
				ErrInvalidDimensions, y, len(row), img.Width())
		}
		copy(img.pix.Row(y), row)
	}

	return img, nil
}

// Width returns the current number of columns.
func (img *Image) Width() int {
	if img == nil || img.pix == nil {
		return 0
	}
	return img.pix.Width()
}

// Height returns the current number of rows.
func (img *Image) Height() int {
	if img == nil || img.pix == nil {
		return 0
	}
	return img.pix.Height()
}

// Valid reports whether the image has backing storage of positive size.
func (img *Image) Valid() bool {
	return img.Width() > 0 && img.Height() > 0
}

// At returns the pixel at (x, y).
func (img *Image) At(x, y int) (Pixel, error) {
	if !img.Valid() {
		return Pixel{}, fmt.Errorf("%w: image is %s", ErrInvalidDimensions, img)
	}
	return img.pix.At(x, y)
}

// Set stores p at (x, y).
func (img *Image) Set(x, y int, p Pixel) error {
	if !img.Valid() {
		return fmt.Errorf("%w: image is %s", ErrInvalidDimensions, img)
	}
	return img.pix.Set(x, y, p)
}

// Clamped returns the pixel nearest to (x, y), so coordinates outside the
// image resolve to the border pixel.
func (img *Image) Clamped(x, y int) Pixel {
	if !img.Valid() {
		return Pixel{}
	}
	return img.pix.at(clamp(x, 0, img.Width()-1), clamp(y, 0, img.Height()-1))
}

// Row returns row y. The slice aliases the image storage and is only valid
// until the next removal.
func (img *Image) Row(y int) []Pixel {
	if !img.Valid() {
		return nil
	}
	return img.pix.Row(y)
}

// Rows returns a copy of the pixel grid in row-major order.
func (img *Image) Rows() [][]Pixel {
	rows := make([][]Pixel, img.Height())
	for y := range rows {
		rows[y] = append([]Pixel(nil), img.pix.Row(y)...)
	}
	return rows
}

// Each calls fn for every pixel in row-major order and stores the result.
func (img *Image) Each(fn func(Pixel) Pixel) {
	if !img.Valid() {
		return
	}
	for i, p := range img.pix.data {
		img.pix.data[i] = fn(p)
	}
}

// Clone returns a deep copy.
func (img *Image) Clone() *Image {
	if !img.Valid() {
		return &Image{}
	}
	return &Image{pix: img.pix.Clone()}
}

// Equal reports whether both images have the same size and pixels.
func (img *Image) Equal(other *Image) bool {
	if img.Width() != other.Width() || img.Height() != other.Height() {
		return false
	}
	if !img.Valid() {
		return true
	}
	for i, p := range img.pix.data {
		if other.pix.data[i] != p {
			return false
		}
	}
	return true
}

// ExciseColumns removes the pixel at cols[y] from every row y and shrinks
// the width by one. The storage is compacted.
func (img *Image) ExciseColumns(cols []int) error {
	w, h := img.Width(), img.Height()
	if w <= 1 {
		return fmt.Errorf("%w: cannot narrow image of width %d", ErrInvalidDimensions, w)
	}
	if len(cols) != h {
		return fmt.Errorf("column list has %d entries, want %d", len(cols), h)
	}
	for y, x := range cols {
		if x < 0 || x >= w {
			return fmt.Errorf("column %d out of bounds [0, %d) at row %d", x, w, y)
		}
	}

	img.pix.dropColumns(cols)
	return nil
}

// ExciseRows removes the pixel at rows[x] from every column x and shrinks
// the height by one. The storage is compacted.
func (img *Image) ExciseRows(rows []int) error {
	w, h := img.Width(), img.Height()
	if h <= 1 {
		return fmt.Errorf("%w: cannot shorten image of height %d", ErrInvalidDimensions, h)
	}
	if len(rows) != w {
		return fmt.Errorf("row list has %d entries, want %d", len(rows), w)
	}
	for x, y := range rows {
		if y < 0 || y >= h {
			return fmt.Errorf("row %d out of bounds [0, %d) at column %d", y, h, x)
		}
	}

	img.pix.dropRows(rows)
	return nil
}

// String describes the image size, e.g. "640x480".
func (img *Image) String() string {
	return fmt.Sprintf("%dx%d", img.Width(), img.Height())
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
