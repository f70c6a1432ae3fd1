package conversion

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"

	"seam-carver/internal/models"
	"seam-carver/internal/opencv/safe"
)

func sample(t *testing.T) *models.Image {
	t.Helper()
	img, err := models.NewImageFromRows([][]models.Pixel{
		{{R: 255, G: 0, B: 0}, {R: 0, G: 255, B: 0}, {R: 0, G: 0, B: 255}},
		{{R: 10, G: 20, B: 30}, {R: 40, G: 50, B: 60}, {R: 70, G: 80, B: 90}},
	})
	require.NoError(t, err)
	return img
}

func TestImageToMatUsesBGR(t *testing.T) {
	m, err := ImageToMat(sample(t))
	require.NoError(t, err)
	defer m.Close()

	assert.Equal(t, 2, m.Rows())
	assert.Equal(t, 3, m.Cols())
	data, err := m.Bytes()
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 0, 255}, data[:3])
}

func TestMatRoundTrip(t *testing.T) {
	img := sample(t)
	m, err := ImageToMat(img)
	require.NoError(t, err)
	defer m.Close()

	back, err := MatToImage(m)
	require.NoError(t, err)
	assert.True(t, img.Equal(back))
}

func TestMatToImageGray(t *testing.T) {
	m, err := safe.NewMatFromBytes(1, 2, gocv.MatTypeCV8UC1, []byte{9, 200}, "gray")
	require.NoError(t, err)
	defer m.Close()

	img, err := MatToImage(m)
	require.NoError(t, err)
	p, err := img.At(1, 0)
	require.NoError(t, err)
	assert.Equal(t, models.Pixel{R: 200, G: 200, B: 200}, p)
}

func TestMatToImageRejectsClosedMat(t *testing.T) {
	m, err := ImageToMat(sample(t))
	require.NoError(t, err)
	m.Close()

	_, err = MatToImage(m)
	assert.Error(t, err)
}

func TestNRGBARoundTrip(t *testing.T) {
	img := sample(t)
	nrgba, err := ToNRGBA(img)
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{R: 255, A: 255}, nrgba.NRGBAAt(0, 0))

	back, err := FromImage(nrgba)
	require.NoError(t, err)
	assert.True(t, img.Equal(back))
}

func TestToNRGBAClampsChannels(t *testing.T) {
	img, err := models.NewImageFromRows([][]models.Pixel{{{R: -5, G: 300, B: 128}}})
	require.NoError(t, err)

	nrgba, err := ToNRGBA(img)
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{R: 0, G: 255, B: 128, A: 255}, nrgba.NRGBAAt(0, 0))
}

func TestFromImageHandlesOffsetBounds(t *testing.T) {
	src := image.NewRGBA(image.Rect(5, 5, 7, 6))
	src.Set(6, 5, color.RGBA{R: 1, G: 2, B: 3, A: 255})

	img, err := FromImage(src)
	require.NoError(t, err)
	assert.Equal(t, "2x1", img.String())
	p, err := img.At(1, 0)
	require.NoError(t, err)
	assert.Equal(t, models.Pixel{R: 1, G: 2, B: 3}, p)

	_, err = FromImage(nil)
	assert.Error(t, err)
}
