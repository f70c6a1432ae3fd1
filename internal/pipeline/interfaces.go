package pipeline

import (
	"context"
	"io"

	"seam-carver/internal/models"
)

// ImageLoader reads images from disk or memory into a models.Image.
type ImageLoader interface {
	// LoadFromFile decodes path. A positive width and height must match
	// the decoded size.
	LoadFromFile(ctx context.Context, path string, width, height int) (*ImageData, error)
	LoadFromBytes(ctx context.Context, data []byte, ext string, width, height int) (*ImageData, error)
}

// ImageSaver writes images in the format named by a file extension.
type ImageSaver interface {
	SaveToWriter(ctx context.Context, writer io.Writer, img *models.Image, ext string) error
	SaveToPath(ctx context.Context, path string, img *models.Image) error
}

// ImageData is a decoded image and where it came from.
type ImageData struct {
	Image  *models.Image
	Width  int
	Height int
	Format string
	Path   string
}
