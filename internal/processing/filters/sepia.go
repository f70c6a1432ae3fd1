package filters

import (
	"context"
	"math"

	"seam-carver/internal/models"
)

// SepiaFilter tones an image with the classic sepia matrix.
type SepiaFilter struct{}

func NewSepiaFilter() *SepiaFilter {
	return &SepiaFilter{}
}

func (s *SepiaFilter) Name() string {
	return "sepia"
}

func (s *SepiaFilter) Apply(ctx context.Context, img *models.Image, params map[string]interface{}) error {
	if err := checkInput(ctx, img, s.Name()); err != nil {
		return err
	}

	img.Each(Sepia)
	return nil
}

// Sepia maps p through the sepia matrix. Each output channel is rounded
// and capped at 255.
func Sepia(p models.Pixel) models.Pixel {
	r, g, b := float64(p.R), float64(p.G), float64(p.B)

	return models.Pixel{
		R: capChannel(int(math.Round(0.393*r + 0.769*g + 0.189*b))),
		G: capChannel(int(math.Round(0.349*r + 0.686*g + 0.168*b))),
		B: capChannel(int(math.Round(0.272*r + 0.534*g + 0.131*b))),
	}
}
