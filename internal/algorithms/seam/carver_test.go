package seam

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seam-carver/internal/logger"
	"seam-carver/internal/models"
)

type recorder struct {
	orientations []Orientation
	seams        []Seam
}

func (r *recorder) observe(o Orientation, s Seam) {
	r.orientations = append(r.orientations, o)
	r.seams = append(r.seams, append(Seam(nil), s...))
}

func TestResizeToSameSizeIsNoOp(t *testing.T) {
	img := noiseImage(t, 4, 3, 21)
	before := img.Clone()
	rec := &recorder{}

	result, err := NewCarver(logger.NewNop(), rec.observe).Resize(context.Background(), img, 4, 3)
	require.NoError(t, err)

	assert.Zero(t, result.SeamsRemoved())
	assert.True(t, result.Complete())
	assert.Empty(t, rec.orientations)
	assert.True(t, img.Equal(before))
}

func TestResizeOneColumnRemovesOneVerticalSeam(t *testing.T) {
	img := noiseImage(t, 5, 4, 22)
	rec := &recorder{}

	result, err := NewCarver(nil, rec.observe).Resize(context.Background(), img, 4, 4)
	require.NoError(t, err)

	assert.Equal(t, 1, result.VerticalSeams)
	assert.Zero(t, result.HorizontalSeams)
	assert.Equal(t, []Orientation{Vertical}, rec.orientations)
	assert.Equal(t, 4, img.Width())
	assert.Equal(t, 4, img.Height())
}

func TestResizeInterleavesAxes(t *testing.T) {
	img := noiseImage(t, 5, 5, 23)
	rec := &recorder{}

	result, err := NewCarver(nil, rec.observe).Resize(context.Background(), img, 3, 4)
	require.NoError(t, err)

	assert.Equal(t, []Orientation{Vertical, Horizontal, Vertical}, rec.orientations)
	assert.Equal(t, models.CarveResult{
		OriginalWidth:   5,
		OriginalHeight:  5,
		TargetWidth:     3,
		TargetHeight:    4,
		Width:           3,
		Height:          4,
		VerticalSeams:   2,
		HorizontalSeams: 1,
	}, result)

	// Every seam was computed against the size current at that step.
	assert.Len(t, rec.seams[0], 5)
	assert.Len(t, rec.seams[1], 4)
	assert.Len(t, rec.seams[2], 4)
}

func TestResizeIsDeterministic(t *testing.T) {
	src := noiseImage(t, 9, 7, 24)

	a, b := src.Clone(), src.Clone()
	recA, recB := &recorder{}, &recorder{}

	_, err := NewCarver(nil, recA.observe).Resize(context.Background(), a, 5, 4)
	require.NoError(t, err)
	_, err = NewCarver(nil, recB.observe).Resize(context.Background(), b, 5, 4)
	require.NoError(t, err)

	assert.Equal(t, recA.seams, recB.seams)
	assert.True(t, a.Equal(b))
}

func TestResizeKeepsHighContrastStripe(t *testing.T) {
	bg := models.Pixel{R: 10, G: 20, B: 30}
	stripe := models.Pixel{R: 250, G: 240, B: 230}

	rows := make([][]models.Pixel, 5)
	for y := range rows {
		rows[y] = []models.Pixel{bg, bg, stripe, bg, bg}
	}
	img := newImage(t, rows)
	rec := &recorder{}

	_, err := NewCarver(nil, rec.observe).Resize(context.Background(), img, 4, 5)
	require.NoError(t, err)

	// Columns 1 and 3 border the stripe and carry all the energy; columns
	// 0, 2 and 4 tie at zero and the tie goes to column 0.
	assert.Equal(t, []Seam{{0, 0, 0, 0, 0}}, rec.seams)

	want := make([][]models.Pixel, 5)
	for y := range want {
		want[y] = []models.Pixel{bg, stripe, bg, bg}
	}
	assert.Equal(t, want, img.Rows())
}

func TestResizeRejectsUnreachableTargets(t *testing.T) {
	tests := []struct {
		name string
		w, h int
	}{
		{"wider", 6, 3},
		{"taller", 5, 4},
		{"zero width", 0, 3},
		{"negative height", 5, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := noiseImage(t, 5, 3, 25)
			before := img.Clone()

			result, err := NewCarver(nil).Resize(context.Background(), img, tt.w, tt.h)
			assert.ErrorIs(t, err, ErrInvalidTarget)
			assert.Zero(t, result.SeamsRemoved())
			assert.True(t, img.Equal(before))
		})
	}
}

func TestResizeRejectsEmptyImage(t *testing.T) {
	_, err := NewCarver(nil).Resize(context.Background(), &models.Image{}, 1, 1)
	assert.ErrorIs(t, err, ErrInvalidTarget)
}

func TestResizeStopsWhenContextDone(t *testing.T) {
	img := noiseImage(t, 6, 6, 26)
	before := img.Clone()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := NewCarver(nil).Resize(ctx, img, 3, 3)
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, result.Complete())
	assert.Equal(t, 6, result.Width)
	assert.True(t, img.Equal(before))
}

func TestResizeStopsAtLastGoodSizeWhenCancelledMidway(t *testing.T) {
	img := noiseImage(t, 6, 6, 27)

	ctx, cancel := context.WithCancel(context.Background())
	steps := 0
	stopAfterTwo := func(Orientation, Seam) {
		steps++
		if steps == 2 {
			cancel()
		}
	}

	result, err := NewCarver(nil, stopAfterTwo).Resize(ctx, img, 2, 2)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 5, img.Width())
	assert.Equal(t, 5, img.Height())
	assert.Equal(t, 5, result.Width)
	assert.Equal(t, 5, result.Height)
	assert.Equal(t, 1, result.VerticalSeams)
	assert.Equal(t, 1, result.HorizontalSeams)
}
