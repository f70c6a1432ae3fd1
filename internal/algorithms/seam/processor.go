package seam

import (
	"context"
	"fmt"
	"time"

	"seam-carver/internal/logger"
	"seam-carver/internal/models"
)

// Processor exposes seam carving through the generic algorithm contract.
// Parameters "target_width" and "target_height" are ints; zero keeps the
// current size along that axis.
type Processor struct {
	name   string
	carver *Carver
}

func NewProcessor(log logger.Logger) *Processor {
	return &Processor{
		name:   "carve",
		carver: NewCarver(log),
	}
}

func (p *Processor) GetName() string {
	return p.name
}

func (p *Processor) GetDefaultParameters() map[string]interface{} {
	return map[string]interface{}{
		"target_width":  0,
		"target_height": 0,
	}
}

func (p *Processor) ValidateParameters(img *models.Image, params map[string]interface{}) error {
	w, h, err := p.targets(img, params)
	if err != nil {
		return err
	}
	return ValidateTarget(img, w, h)
}

func (p *Processor) Process(ctx context.Context, img *models.Image, params map[string]interface{}) (*models.ProcessingResult, error) {
	if err := p.ValidateParameters(img, params); err != nil {
		return nil, fmt.Errorf("parameter validation failed: %w", err)
	}

	w, h, _ := p.targets(img, params)
	start := time.Now()
	inputSize := img.String()

	carve, err := p.carver.Resize(ctx, img, w, h)
	result := &models.ProcessingResult{
		Algorithm:   p.name,
		Parameters:  params,
		InputSize:   inputSize,
		OutputSize:  img.String(),
		Carve:       &carve,
		ProcessTime: time.Since(start),
	}
	if err != nil {
		return result, fmt.Errorf("seam carving stopped at %s: %w", img, err)
	}

	return result, nil
}

// OutputPrefix names carved files after the size they reached.
func (p *Processor) OutputPrefix(result *models.ProcessingResult) string {
	if result == nil || result.Carve == nil {
		return "carved."
	}
	return fmt.Sprintf("carved%dX%d.", result.Carve.Width, result.Carve.Height)
}

func (p *Processor) targets(img *models.Image, params map[string]interface{}) (int, int, error) {
	w, err := intParam(params, "target_width")
	if err != nil {
		return 0, 0, err
	}
	h, err := intParam(params, "target_height")
	if err != nil {
		return 0, 0, err
	}

	if w == 0 {
		w = img.Width()
	}
	if h == 0 {
		h = img.Height()
	}
	return w, h, nil
}

func intParam(params map[string]interface{}, key string) (int, error) {
	raw, ok := params[key]
	if !ok {
		return 0, nil
	}
	v, ok := raw.(int)
	if !ok {
		return 0, fmt.Errorf("%s must be an int, got %T", key, raw)
	}
	return v, nil
}
