package models

import (
	"fmt"
	"time"
)

// CarveResult records what a resize run did to an image.
type CarveResult struct {
	OriginalWidth   int
	OriginalHeight  int
	TargetWidth     int
	TargetHeight    int
	Width           int
	Height          int
	VerticalSeams   int
	HorizontalSeams int
}

// Complete reports whether the image reached the requested size.
func (r CarveResult) Complete() bool {
	return r.Width == r.TargetWidth && r.Height == r.TargetHeight
}

// SeamsRemoved returns the total number of seams removed.
func (r CarveResult) SeamsRemoved() int {
	return r.VerticalSeams + r.HorizontalSeams
}

func (r CarveResult) String() string {
	return fmt.Sprintf("%dx%d -> %dx%d (target %dx%d, %d vertical, %d horizontal)",
		r.OriginalWidth, r.OriginalHeight, r.Width, r.Height,
		r.TargetWidth, r.TargetHeight, r.VerticalSeams, r.HorizontalSeams)
}

// ProcessingResult contains the output of one algorithm run
type ProcessingResult struct {
	Algorithm   string
	Parameters  map[string]interface{}
	InputSize   string
	OutputSize  string
	Carve       *CarveResult
	ProcessTime time.Duration
}
