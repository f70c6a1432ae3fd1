package filters

import (
	"context"
	"fmt"

	"seam-carver/internal/models"
)

// Filter transforms an image in place.
type Filter interface {
	Name() string
	Apply(ctx context.Context, img *models.Image, params map[string]interface{}) error
}

func checkInput(ctx context.Context, img *models.Image, name string) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if !img.Valid() {
		return fmt.Errorf("%s: %w: image is %s", name, models.ErrInvalidDimensions, img)
	}
	return nil
}

func capChannel(v int) int {
	if v > 255 {
		return 255
	}
	return v
}
