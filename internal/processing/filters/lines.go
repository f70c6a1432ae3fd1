package filters

import (
	"context"
	"fmt"

	"seam-carver/internal/algorithms/seam"
	"seam-carver/internal/models"
)

const (
	MinLineFrequency = 1
	MaxLineFrequency = 25
)

// LineRemover thins an image by dropping whole rows or columns at a fixed
// frequency, without looking at the content.
type LineRemover struct {
	orientation seam.Orientation
}

// NewRowRemover drops rows.
func NewRowRemover() *LineRemover {
	return &LineRemover{orientation: seam.Horizontal}
}

// NewColumnRemover drops columns.
func NewColumnRemover() *LineRemover {
	return &LineRemover{orientation: seam.Vertical}
}

func (l *LineRemover) Name() string {
	if l.orientation == seam.Horizontal {
		return "remove-rows"
	}
	return "remove-columns"
}

// Apply expects an int "frequency" parameter.
func (l *LineRemover) Apply(ctx context.Context, img *models.Image, params map[string]interface{}) error {
	if err := checkInput(ctx, img, l.Name()); err != nil {
		return err
	}

	frequency, ok := params["frequency"].(int)
	if !ok {
		return fmt.Errorf("%s: frequency parameter missing or not an int", l.Name())
	}
	if frequency < 0 {
		return fmt.Errorf("%s: frequency %d must not be negative", l.Name(), frequency)
	}

	if l.orientation == seam.Horizontal {
		RemoveRows(img, frequency)
	} else {
		RemoveColumns(img, frequency)
	}
	return nil
}

// RemoveRows walks down the image from row 1 and deletes the current row
// every time frequency rows have been passed since the last deletion. It
// returns the new height. A zero frequency leaves the image untouched.
func RemoveRows(img *models.Image, frequency int) int {
	thin(img, frequency, seam.Horizontal)
	return img.Height()
}

// RemoveColumns is RemoveRows across columns. It returns the new width.
func RemoveColumns(img *models.Image, frequency int) int {
	thin(img, frequency, seam.Vertical)
	return img.Width()
}

func thin(img *models.Image, frequency int, o seam.Orientation) {
	if frequency <= 0 || !img.Valid() {
		return
	}

	size, span := img.Height, img.Width
	if o == seam.Vertical {
		size, span = img.Width, img.Height
	}

	line, skipped := 1, 1
	for line < size() {
		if skipped == frequency {
			seam.Remove(img, straightSeam(span(), line), o)
			skipped = 0
		} else {
			line++
			skipped++
		}
	}
}

// straightSeam returns a seam that cuts line index at every position.
func straightSeam(length, index int) seam.Seam {
	s := make(seam.Seam, length)
	for i := range s {
		s[i] = index
	}
	return s
}
