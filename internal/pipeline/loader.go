package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/disintegration/imaging"
	"gocv.io/x/gocv"

	"seam-carver/internal/config"
	"seam-carver/internal/logger"
	"seam-carver/internal/models"
	"seam-carver/internal/opencv/conversion"
	"seam-carver/internal/opencv/safe"
	"seam-carver/internal/ppm"
)

type imageLoader struct {
	config        config.Config
	logger        logger.Logger
	timingTracker TimingTracker
}

func (l *imageLoader) LoadFromFile(ctx context.Context, path string, width, height int) (*ImageData, error) {
	tctx := l.timingTracker.StartTiming(ctx, "load_from_file")
	defer l.timingTracker.EndTiming(tctx)

	l.logger.Debug("ImageLoader", "loading image", map[string]interface{}{
		"path": path,
	})

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read image data: %w", err)
	}

	imageData, err := l.LoadFromBytes(ctx, data, extension(path), width, height)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	imageData.Path = path
	return imageData, nil
}

func (l *imageLoader) LoadFromBytes(ctx context.Context, data []byte, ext string, width, height int) (*ImageData, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if (width > 0) != (height > 0) {
		return nil, fmt.Errorf("%w: declared size %dx%d needs both width and height",
			ppm.ErrDimensionMismatch, width, height)
	}

	tctx := l.timingTracker.StartTiming(ctx, "decode")
	img, err := l.decode(data, ext, width, height)
	l.timingTracker.EndTiming(tctx)
	if err != nil {
		return nil, err
	}

	if width > 0 && height > 0 && (img.Width() != width || img.Height() != height) {
		return nil, fmt.Errorf("%w: declared %dx%d, decoded %s",
			ppm.ErrDimensionMismatch, width, height, img)
	}
	if err := l.config.CheckSize(img.Width(), img.Height()); err != nil {
		return nil, err
	}

	imageData := &ImageData{
		Image:  img,
		Width:  img.Width(),
		Height: img.Height(),
		Format: formatName(ext),
	}

	l.logger.Info("ImageLoader", "image loaded successfully", map[string]interface{}{
		"width":  imageData.Width,
		"height": imageData.Height,
		"format": imageData.Format,
	})

	return imageData, nil
}

func (l *imageLoader) decode(data []byte, ext string, width, height int) (*models.Image, error) {
	if ext == ".ppm" {
		return l.decodePPM(data, width, height)
	}

	img, err := l.decodeOpenCV(data)
	if err == nil {
		return img, nil
	}

	l.logger.Debug("ImageLoader", "OpenCV decode failed, trying imaging", map[string]interface{}{
		"error": err.Error(),
	})

	decoded, ierr := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if ierr != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, ierr)
	}
	return conversion.FromImage(decoded)
}

// decodePPM checks the header against the size limits before any pixel
// storage is allocated.
func (l *imageLoader) decodePPM(data []byte, width, height int) (*models.Image, error) {
	h, err := ppm.DecodeHeader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	if err := l.config.CheckSize(h.Width, h.Height); err != nil {
		return nil, err
	}

	if width > 0 && height > 0 {
		return ppm.DecodeSized(bytes.NewReader(data), width, height)
	}
	return ppm.Decode(bytes.NewReader(data))
}

func (l *imageLoader) decodeOpenCV(data []byte) (*models.Image, error) {
	mat, err := gocv.IMDecode(data, gocv.IMReadColor)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image with OpenCV: %w", err)
	}

	safeMat, err := safe.Adopt(mat, "loaded_image")
	if err != nil {
		return nil, fmt.Errorf("failed to decode image with OpenCV: %w", err)
	}
	defer safeMat.Close()

	l.logger.Debug("ImageLoader", "decoded with OpenCV", map[string]interface{}{
		"mat_id":   safeMat.ID(),
		"mat_tag":  safeMat.Tag(),
		"channels": safeMat.Channels(),
	})

	return conversion.MatToImage(safeMat)
}
