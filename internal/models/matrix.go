package models

import (
	"errors"
	"fmt"
)

// ErrInvalidDimensions is returned when a matrix or image is requested
// with a non-positive width or height.
var ErrInvalidDimensions = errors.New("invalid dimensions")

// Matrix is a width×height grid stored in one contiguous row-major slice.
type Matrix[T any] struct {
	data   []T
	width  int
	height int
}

// NewMatrix allocates a zeroed width×height matrix.
func NewMatrix[T any](width, height int) (*Matrix[T], error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}

	return &Matrix[T]{
		data:   make([]T, width*height),
		width:  width,
		height: height,
	}, nil
}

func (m *Matrix[T]) Width() int  { return m.width }
func (m *Matrix[T]) Height() int { return m.height }

// Contains reports whether (x, y) addresses a cell of the matrix.
func (m *Matrix[T]) Contains(x, y int) bool {
	return x >= 0 && x < m.width && y >= 0 && y < m.height
}

// At returns the cell at column x, row y.
func (m *Matrix[T]) At(x, y int) (T, error) {
	if !m.Contains(x, y) {
		var zero T
		return zero, fmt.Errorf("coordinates out of bounds: (%d,%d) for size %dx%d",
			x, y, m.width, m.height)
	}
	return m.data[y*m.width+x], nil
}

// Set stores v at column x, row y.
func (m *Matrix[T]) Set(x, y int, v T) error {
	if !m.Contains(x, y) {
		return fmt.Errorf("coordinates out of bounds: (%d,%d) for size %dx%d",
			x, y, m.width, m.height)
	}
	m.data[y*m.width+x] = v
	return nil
}

// at skips the bounds check.
func (m *Matrix[T]) at(x, y int) T { return m.data[y*m.width+x] }

// Row returns the cells of row y. The slice aliases the matrix storage.
func (m *Matrix[T]) Row(y int) []T {
	if y < 0 || y >= m.height {
		return nil
	}
	return m.data[y*m.width : (y+1)*m.width]
}

// Clone returns a deep copy.
func (m *Matrix[T]) Clone() *Matrix[T] {
	data := make([]T, len(m.data))
	copy(data, m.data)
	return &Matrix[T]{data: data, width: m.width, height: m.height}
}

// dropColumns compacts the matrix so that row y loses the cell at cols[y].
// cols must hold one in-range index per row.
func (m *Matrix[T]) dropColumns(cols []int) {
	newWidth := m.width - 1
	dst := 0
	for y := 0; y < m.height; y++ {
		row := m.data[y*m.width : (y+1)*m.width]
		cut := cols[y]
		dst += copy(m.data[dst:], row[:cut])
		dst += copy(m.data[dst:], row[cut+1:])
	}
	m.width = newWidth
	m.data = m.data[:newWidth*m.height]
}

// dropRows compacts the matrix so that column x loses the cell at rows[x].
// rows must hold one in-range index per column.
func (m *Matrix[T]) dropRows(rows []int) {
	for x := 0; x < m.width; x++ {
		for y := rows[x]; y < m.height-1; y++ {
			m.data[y*m.width+x] = m.data[(y+1)*m.width+x]
		}
	}
	m.height--
	m.data = m.data[:m.width*m.height]
}
