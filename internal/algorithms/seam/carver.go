package seam

import (
	"context"
	"errors"
	"fmt"

	"seam-carver/internal/logger"
	"seam-carver/internal/models"
)

// ErrInvalidTarget is returned when the requested size is not reachable by
// shrinking the image.
var ErrInvalidTarget = errors.New("invalid target size")

// SeamObserver is told about every seam right before it is removed.
type SeamObserver func(o Orientation, s Seam)

// Carver shrinks images to a target size by repeatedly removing the
// cheapest vertical and horizontal seams.
type Carver struct {
	logger    logger.Logger
	observers []SeamObserver
}

func NewCarver(log logger.Logger, observers ...SeamObserver) *Carver {
	if log == nil {
		log = logger.NewNop()
	}
	return &Carver{logger: log, observers: observers}
}

// Resize carves img in place down to targetWidth×targetHeight. Each pass
// removes one vertical seam while the image is too wide and then one
// horizontal seam while it is too tall, so both axes shrink alternately.
//
// If a seam cannot be found or ctx is done, Resize stops and returns the
// error; img keeps the size reached so far, which the result reports.
func (c *Carver) Resize(ctx context.Context, img *models.Image, targetWidth, targetHeight int) (models.CarveResult, error) {
	result := models.CarveResult{
		OriginalWidth:  img.Width(),
		OriginalHeight: img.Height(),
		TargetWidth:    targetWidth,
		TargetHeight:   targetHeight,
		Width:          img.Width(),
		Height:         img.Height(),
	}

	if err := ValidateTarget(img, targetWidth, targetHeight); err != nil {
		return result, err
	}

	c.logger.Info("Carver", "resize started", map[string]interface{}{
		"size":   img.String(),
		"target": fmt.Sprintf("%dx%d", targetWidth, targetHeight),
	})

	for img.Width() > targetWidth || img.Height() > targetHeight {
		if err := ctx.Err(); err != nil {
			return result, fmt.Errorf("resize stopped at %s: %w", img, err)
		}

		if img.Width() > targetWidth {
			if err := c.carve(img, Vertical); err != nil {
				return result, err
			}
			result.VerticalSeams++
			result.Width = img.Width()
		}

		if img.Height() > targetHeight {
			if err := c.carve(img, Horizontal); err != nil {
				return result, err
			}
			result.HorizontalSeams++
			result.Height = img.Height()
		}
	}

	c.logger.Info("Carver", "resize completed", map[string]interface{}{
		"size":             img.String(),
		"vertical_seams":   result.VerticalSeams,
		"horizontal_seams": result.HorizontalSeams,
	})

	return result, nil
}

// carve finds and removes one seam of the given orientation.
func (c *Carver) carve(img *models.Image, o Orientation) error {
	s, err := Find(img, o)
	if err != nil {
		c.logger.Error("Carver", err, map[string]interface{}{
			"orientation": o.String(),
			"size":        img.String(),
		})
		return fmt.Errorf("failed to find %s seam: %w", o, err)
	}

	for _, observe := range c.observers {
		observe(o, s)
	}

	Remove(img, s, o)

	c.logger.Debug("Carver", "seam removed", map[string]interface{}{
		"orientation": o.String(),
		"size":        img.String(),
	})
	return nil
}

// ValidateTarget checks that targetWidth×targetHeight is positive and no
// larger than img.
func ValidateTarget(img *models.Image, targetWidth, targetHeight int) error {
	if !img.Valid() {
		return fmt.Errorf("%w: source image is %s", ErrInvalidTarget, img)
	}
	if targetWidth <= 0 || targetHeight <= 0 {
		return fmt.Errorf("%w: target %dx%d must be positive", ErrInvalidTarget, targetWidth, targetHeight)
	}
	if targetWidth > img.Width() {
		return fmt.Errorf("%w: target width %d is greater than width %d", ErrInvalidTarget, targetWidth, img.Width())
	}
	if targetHeight > img.Height() {
		return fmt.Errorf("%w: target height %d is greater than height %d", ErrInvalidTarget, targetHeight, img.Height())
	}
	return nil
}
