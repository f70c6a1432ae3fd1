package conversion

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	"gocv.io/x/gocv"

	"seam-carver/internal/models"
	"seam-carver/internal/opencv/safe"
)

// MatToImage converts an 8-bit gray, BGR or BGRA Mat to an image.
// Alpha is dropped.
func MatToImage(src *safe.Mat) (*models.Image, error) {
	if err := safe.ValidateMatForOperation(src, "Mat to image conversion"); err != nil {
		return nil, err
	}
	if err := safe.ValidateMatType(src.Type(), "Mat to image conversion"); err != nil {
		return nil, err
	}

	rows, cols, channels := src.Rows(), src.Cols(), src.Channels()
	data, err := src.Bytes()
	if err != nil {
		return nil, err
	}
	if len(data) < rows*cols*channels {
		return nil, fmt.Errorf("Mat data has %d bytes, want %d", len(data), rows*cols*channels)
	}

	img, err := models.NewImage(cols, rows)
	if err != nil {
		return nil, err
	}

	for y := 0; y < rows; y++ {
		row := img.Row(y)
		for x := range row {
			i := (y*cols + x) * channels
			switch channels {
			case 1:
				v := int(data[i])
				row[x] = models.Pixel{R: v, G: v, B: v}
			default:
				row[x] = models.Pixel{R: int(data[i+2]), G: int(data[i+1]), B: int(data[i])}
			}
		}
	}

	return img, nil
}

// ImageToMat converts img to a BGR Mat. Channels are clamped to [0,255].
func ImageToMat(img *models.Image) (*safe.Mat, error) {
	if !img.Valid() {
		return nil, fmt.Errorf("input image is %s", img)
	}

	w, h := img.Width(), img.Height()
	data := make([]byte, 0, w*h*3)
	for y := 0; y < h; y++ {
		for _, p := range img.Row(y) {
			data = append(data, toByte(p.B), toByte(p.G), toByte(p.R))
		}
	}

	return safe.NewMatFromBytes(h, w, gocv.MatTypeCV8UC3, data, "image_to_mat")
}

// ToNRGBA converts img to an opaque standard library image. Channels are
// clamped to [0,255].
func ToNRGBA(img *models.Image) (*image.NRGBA, error) {
	if !img.Valid() {
		return nil, fmt.Errorf("input image is %s", img)
	}

	w, h := img.Width(), img.Height()
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		off := y * dst.Stride
		for x, p := range img.Row(y) {
			px := dst.Pix[off+x*4 : off+x*4+4 : off+x*4+4]
			px[0], px[1], px[2], px[3] = toByte(p.R), toByte(p.G), toByte(p.B), 0xff
		}
	}
	return dst, nil
}

// FromImage converts any standard library image. Alpha is dropped without
// compositing.
func FromImage(src image.Image) (*models.Image, error) {
	if src == nil {
		return nil, fmt.Errorf("input image is nil")
	}

	nrgba := imaging.Clone(src)
	w, h := nrgba.Bounds().Dx(), nrgba.Bounds().Dy()

	img, err := models.NewImage(w, h)
	if err != nil {
		return nil, err
	}

	for y := 0; y < h; y++ {
		off := y * nrgba.Stride
		row := img.Row(y)
		for x := range row {
			px := nrgba.Pix[off+x*4 : off+x*4+3 : off+x*4+3]
			row[x] = models.Pixel{R: int(px[0]), G: int(px[1]), B: int(px[2])}
		}
	}
	return img, nil
}

func toByte(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
