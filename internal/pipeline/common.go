package pipeline

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"time"
)

var ErrUnsupportedFormat = errors.New("unsupported image format")

type TimingTracker interface {
	StartTiming(ctx context.Context, operation string) context.Context
	EndTiming(ctx context.Context) time.Duration
}

func extension(path string) string {
	return strings.ToLower(filepath.Ext(path))
}

func formatName(ext string) string {
	switch ext {
	case ".ppm":
		return "ppm"
	case ".jpg", ".jpeg":
		return "jpeg"
	case ".tif", ".tiff":
		return "tiff"
	case "":
		return "unknown"
	default:
		return strings.TrimPrefix(ext, ".")
	}
}
