package seam

import (
	"errors"
	"fmt"

	"seam-carver/internal/models"
)

// ErrNoSeam is returned when no seam can be computed for an image,
// typically because it has no pixels.
var ErrNoSeam = errors.New("no seam available")

// Seam lists one index per line of the image: for a vertical seam the
// column removed from each row, for a horizontal seam the row removed from
// each column. Consecutive entries differ by at most one.
type Seam []int

// Orientation names the axis a seam runs along.
type Orientation int

const (
	Vertical Orientation = iota
	Horizontal
)

func (o Orientation) String() string {
	switch o {
	case Vertical:
		return "vertical"
	case Horizontal:
		return "horizontal"
	default:
		return fmt.Sprintf("Orientation(%d)", int(o))
	}
}

// FindMinVerticalSeam returns the top-to-bottom seam of minimum total
// energy. The result has one column index per row.
func FindMinVerticalSeam(img *models.Image) (Seam, error) {
	if !img.Valid() {
		return nil, fmt.Errorf("%w: vertical seam in %s image", ErrNoSeam, img)
	}

	energy, err := EnergyMap(img)
	if err != nil {
		return nil, err
	}

	return cheapestPath(energy)
}

// FindMinHorizontalSeam returns the left-to-right seam of minimum total
// energy. The result has one row index per column.
func FindMinHorizontalSeam(img *models.Image) (Seam, error) {
	if !img.Valid() {
		return nil, fmt.Errorf("%w: horizontal seam in %s image", ErrNoSeam, img)
	}

	energy, err := EnergyMap(img)
	if err != nil {
		return nil, err
	}

	transposed, err := transpose(energy)
	if err != nil {
		return nil, err
	}

	return cheapestPath(transposed)
}

// Find dispatches to the finder for the given orientation.
func Find(img *models.Image, o Orientation) (Seam, error) {
	if o == Horizontal {
		return FindMinHorizontalSeam(img)
	}
	return FindMinVerticalSeam(img)
}

// cheapestPath runs the seam dynamic program over the rows of energy and
// returns, for every row, the column of the globally cheapest connected
// path from the first row to the last.
func cheapestPath(energy *models.Matrix[int]) (Seam, error) {
	cost, parent, err := buildTables(energy)
	if err != nil {
		return nil, err
	}

	last := cost.Height() - 1
	path := make(Seam, cost.Height())
	path[last] = argmin(cost.Row(last))

	for y := last; y > 0; y-- {
		path[y-1] = parent.Row(y)[path[y]]
	}

	return path, nil
}

// buildTables fills the cumulative cost table and the parent table.
// cost(x, y) is the cheapest total energy of a path ending at (x, y) and
// parent(x, y) the column it came from in row y-1.
func buildTables(energy *models.Matrix[int]) (cost, parent *models.Matrix[int], err error) {
	w, h := energy.Width(), energy.Height()

	cost, err = models.NewMatrix[int](w, h)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to allocate cost table: %w", err)
	}
	parent, err = models.NewMatrix[int](w, h)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to allocate parent table: %w", err)
	}

	first, firstParent := cost.Row(0), parent.Row(0)
	copy(first, energy.Row(0))
	for x := range firstParent {
		firstParent[x] = x
	}

	for y := 1; y < h; y++ {
		prev := cost.Row(y - 1)
		cur, curParent, e := cost.Row(y), parent.Row(y), energy.Row(y)

		for x := 0; x < w; x++ {
			chosen := predecessor(prev, x)
			cur[x] = e[x] + prev[chosen]
			curParent[x] = chosen
		}
	}

	return cost, parent, nil
}

// predecessor picks the cheapest of x-1, x and x+1 in prev, clamped to the
// row. Ties go to the leftmost candidate, so left beats middle and middle
// beats right.
func predecessor(prev []int, x int) int {
	lo := x - 1
	if lo < 0 {
		lo = 0
	}
	hi := x + 1
	if hi > len(prev)-1 {
		hi = len(prev) - 1
	}

	best := lo
	for i := lo + 1; i <= hi; i++ {
		if prev[i] < prev[best] {
			best = i
		}
	}
	return best
}

// argmin returns the index of the first minimum in values.
func argmin(values []int) int {
	best := 0
	for i := 1; i < len(values); i++ {
		if values[i] < values[best] {
			best = i
		}
	}
	return best
}

func transpose(m *models.Matrix[int]) (*models.Matrix[int], error) {
	t, err := models.NewMatrix[int](m.Height(), m.Width())
	if err != nil {
		return nil, err
	}
	for y := 0; y < m.Height(); y++ {
		for x, v := range m.Row(y) {
			t.Row(x)[y] = v
		}
	}
	return t, nil
}
