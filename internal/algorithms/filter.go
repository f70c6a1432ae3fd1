package algorithms

import (
	"context"
	"fmt"
	"time"

	"seam-carver/internal/models"
	"seam-carver/internal/processing/filters"
)

// filterAlgorithm adapts a filters.Filter to the Algorithm contract.
type filterAlgorithm struct {
	filter   filters.Filter
	prefix   string
	defaults map[string]interface{}
	validate func(params map[string]interface{}) error
}

func (f *filterAlgorithm) GetName() string {
	return f.filter.Name()
}

func (f *filterAlgorithm) GetDefaultParameters() map[string]interface{} {
	params := make(map[string]interface{}, len(f.defaults))
	for k, v := range f.defaults {
		params[k] = v
	}
	return params
}

func (f *filterAlgorithm) ValidateParameters(img *models.Image, params map[string]interface{}) error {
	if !img.Valid() {
		return fmt.Errorf("%w: image is %s", models.ErrInvalidDimensions, img)
	}
	if f.validate != nil {
		return f.validate(params)
	}
	return nil
}

func (f *filterAlgorithm) Process(ctx context.Context, img *models.Image, params map[string]interface{}) (*models.ProcessingResult, error) {
	if err := f.ValidateParameters(img, params); err != nil {
		return nil, fmt.Errorf("parameter validation failed: %w", err)
	}

	start := time.Now()
	inputSize := img.String()

	if err := f.filter.Apply(ctx, img, params); err != nil {
		return nil, fmt.Errorf("%s failed: %w", f.filter.Name(), err)
	}

	return &models.ProcessingResult{
		Algorithm:   f.filter.Name(),
		Parameters:  params,
		InputSize:   inputSize,
		OutputSize:  img.String(),
		ProcessTime: time.Since(start),
	}, nil
}

func (f *filterAlgorithm) OutputPrefix(*models.ProcessingResult) string {
	return f.prefix
}

func validateFrequency(params map[string]interface{}) error {
	frequency, ok := params["frequency"].(int)
	if !ok {
		return fmt.Errorf("frequency must be an int, got %T", params["frequency"])
	}
	if frequency < filters.MinLineFrequency || frequency > filters.MaxLineFrequency {
		return fmt.Errorf("frequency must be between %d and %d, got: %d",
			filters.MinLineFrequency, filters.MaxLineFrequency, frequency)
	}
	return nil
}
