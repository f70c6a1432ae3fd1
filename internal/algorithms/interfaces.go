package algorithms

import (
	"context"

	"seam-carver/internal/models"
)

// Algorithm defines the interface for image processing algorithms. Process
// mutates img in place.
type Algorithm interface {
	Process(ctx context.Context, img *models.Image, params map[string]interface{}) (*models.ProcessingResult, error)
	ValidateParameters(img *models.Image, params map[string]interface{}) error
	GetDefaultParameters() map[string]interface{}
	GetName() string
	// OutputPrefix is prepended to the input file name to name the output.
	OutputPrefix(result *models.ProcessingResult) string
}
