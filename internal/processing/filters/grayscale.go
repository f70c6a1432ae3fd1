package filters

import (
	"context"
	"math"

	"seam-carver/internal/models"
)

// GrayscaleConverter replaces every pixel with the rounded mean of its
// channels.
type GrayscaleConverter struct{}

func NewGrayscaleConverter() *GrayscaleConverter {
	return &GrayscaleConverter{}
}

func (g *GrayscaleConverter) Name() string {
	return "grayscale"
}

func (g *GrayscaleConverter) Apply(ctx context.Context, img *models.Image, params map[string]interface{}) error {
	if err := checkInput(ctx, img, g.Name()); err != nil {
		return err
	}

	img.Each(Grey)
	return nil
}

// Grey maps p to the gray pixel of the same mean intensity. Halves round
// away from zero.
func Grey(p models.Pixel) models.Pixel {
	v := int(math.Round(float64(p.R+p.G+p.B) / 3.0))
	return models.Pixel{R: v, G: v, B: v}
}
