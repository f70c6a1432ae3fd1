package pipeline

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/disintegration/imaging"

	"seam-carver/internal/logger"
	"seam-carver/internal/models"
	"seam-carver/internal/opencv/conversion"
	"seam-carver/internal/ppm"
)

type imageSaver struct {
	jpegQuality   int
	logger        logger.Logger
	timingTracker TimingTracker
}

func (s *imageSaver) SaveToWriter(ctx context.Context, writer io.Writer, img *models.Image, ext string) error {
	if !img.Valid() {
		return fmt.Errorf("no image data to save")
	}

	tctx := s.timingTracker.StartTiming(ctx, "encode")
	defer s.timingTracker.EndTiming(tctx)

	s.logger.Debug("ImageSaver", "saving image", map[string]interface{}{
		"format": formatName(ext),
		"width":  img.Width(),
		"height": img.Height(),
	})

	var err error
	if ext == ".ppm" {
		err = ppm.Encode(writer, img)
	} else {
		err = s.encodeRaster(writer, img, ext)
	}

	if err != nil {
		s.logger.Error("ImageSaver", err, map[string]interface{}{
			"format": formatName(ext),
		})
		return err
	}
	return nil
}

// openCVFormats are written through OpenCV because imaging has no encoder
// for them.
var openCVFormats = map[string]bool{
	".webp": true,
	".jp2":  true,
	".pnm":  true,
	".pxm":  true,
	".ras":  true,
	".sr":   true,
}

func (s *imageSaver) encodeRaster(writer io.Writer, img *models.Image, ext string) error {
	format, err := imaging.FormatFromExtension(ext)
	if err != nil {
		if openCVFormats[ext] {
			return s.encodeOpenCV(writer, img, ext)
		}
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	nrgba, err := conversion.ToNRGBA(img)
	if err != nil {
		return err
	}

	return imaging.Encode(writer, nrgba, format, imaging.JPEGQuality(s.jpegQuality))
}

func (s *imageSaver) encodeOpenCV(writer io.Writer, img *models.Image, ext string) error {
	mat, err := conversion.ImageToMat(img)
	if err != nil {
		return err
	}
	defer mat.Close()

	data, err := mat.Encode(ext)
	if err != nil {
		return err
	}

	s.logger.Debug("ImageSaver", "encoded with OpenCV", map[string]interface{}{
		"mat_id":  mat.ID(),
		"mat_tag": mat.Tag(),
		"bytes":   len(data),
	})

	_, err = writer.Write(data)
	return err
}

// SaveToPath writes img to path. A failed write leaves no file behind.
func (s *imageSaver) SaveToPath(ctx context.Context, path string, img *models.Image) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close output file: %w", cerr)
		}
		if err != nil {
			_ = os.Remove(path)
		}
	}()

	w := bufio.NewWriter(f)
	if err := s.SaveToWriter(ctx, w, img, extension(path)); err != nil {
		return err
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	s.logger.Info("ImageSaver", "image saved", map[string]interface{}{
		"path": path,
		"size": img.String(),
	})
	return nil
}
