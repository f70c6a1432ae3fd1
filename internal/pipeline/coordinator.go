package pipeline

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"seam-carver/internal/algorithms"
	"seam-carver/internal/algorithms/seam"
	"seam-carver/internal/config"
	"seam-carver/internal/debug/timing"
	"seam-carver/internal/logger"
	"seam-carver/internal/models"
)

// Job describes one load, process and save run.
type Job struct {
	InputPath  string
	Algorithm  string
	Parameters map[string]interface{}

	// ExpectedWidth and ExpectedHeight, when positive, must match the
	// decoded input.
	ExpectedWidth  int
	ExpectedHeight int

	// OutputPath overrides the derived output name.
	OutputPath string
}

type Result struct {
	OutputPath string
	Processing *models.ProcessingResult
	Stages     map[string]time.Duration

	// Partial is set when processing stopped early because no further seam
	// could be found. The image is saved at the size it reached.
	Partial bool
}

type Coordinator struct {
	mu               sync.Mutex
	config           config.Config
	logger           logger.Logger
	timingTracker    *timing.Tracker
	algorithmManager *algorithms.Manager
	loader           ImageLoader
	saver            ImageSaver
}

// NewCoordinator builds a coordinator and applies the parameter overrides
// from cfg to the algorithm defaults.
func NewCoordinator(cfg config.Config, log logger.Logger) (*Coordinator, error) {
	if log == nil {
		log = logger.NewNop()
	}
	tracker := timing.NewTracker(log)

	c := &Coordinator{
		config:           cfg,
		logger:           log,
		timingTracker:    tracker,
		algorithmManager: algorithms.NewManager(log),
		loader:           &imageLoader{config: cfg, logger: log, timingTracker: tracker},
		saver:            &imageSaver{jpegQuality: cfg.Output.JPEGQuality, logger: log, timingTracker: tracker},
	}

	for algorithm, params := range cfg.Parameters {
		for name, value := range params {
			if err := c.algorithmManager.SetParameter(algorithm, name, value); err != nil {
				return nil, fmt.Errorf("invalid [parameters] config: %w", err)
			}
		}
	}

	return c, nil
}

func (c *Coordinator) Algorithms() *algorithms.Manager {
	return c.algorithmManager
}

func (c *Coordinator) Timings() *timing.Tracker {
	return c.timingTracker
}

// Run executes job. Nothing is written when loading or processing fails,
// except when carving runs out of seams: the image is then saved at the
// size it reached and the result is marked Partial.
func (c *Coordinator) Run(ctx context.Context, job Job) (*Result, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	algorithm, err := c.algorithmManager.GetAlgorithm(job.Algorithm)
	if err != nil {
		return nil, err
	}

	result := &Result{Stages: make(map[string]time.Duration)}

	lctx := c.timingTracker.StartTiming(ctx, "load")
	imageData, err := c.loader.LoadFromFile(ctx, job.InputPath, job.ExpectedWidth, job.ExpectedHeight)
	result.Stages["load"] = c.timingTracker.EndTiming(lctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load image: %w", err)
	}

	params := c.algorithmManager.MergeParameters(job.Algorithm, job.Parameters)

	c.logger.Debug("Coordinator", "processing started", map[string]interface{}{
		"algorithm":  job.Algorithm,
		"parameters": params,
		"size":       imageData.Image.String(),
	})

	pctx := c.timingTracker.StartTiming(ctx, "process")
	processing, err := algorithm.Process(ctx, imageData.Image, params)
	result.Stages["process"] = c.timingTracker.EndTiming(pctx)
	result.Processing = processing
	if err != nil {
		if processing == nil || !errors.Is(err, seam.ErrNoSeam) {
			return result, fmt.Errorf("algorithm processing failed: %w", err)
		}

		result.Partial = true
		c.logger.Warning("Coordinator", "processing stopped early, saving partial result", map[string]interface{}{
			"algorithm": job.Algorithm,
			"size":      imageData.Image.String(),
			"error":     err.Error(),
		})
	}

	result.OutputPath = job.OutputPath
	if result.OutputPath == "" {
		result.OutputPath = c.OutputPath(job.InputPath, algorithm.OutputPrefix(processing))
	}

	sctx := c.timingTracker.StartTiming(ctx, "save")
	err = c.saver.SaveToPath(ctx, result.OutputPath, imageData.Image)
	result.Stages["save"] = c.timingTracker.EndTiming(sctx)
	if err != nil {
		return result, fmt.Errorf("failed to save image: %w", err)
	}

	c.logger.Info("Coordinator", "job completed", map[string]interface{}{
		"algorithm":   job.Algorithm,
		"input_size":  processing.InputSize,
		"output_size": processing.OutputSize,
		"output":      result.OutputPath,
	})

	return result, nil
}

// OutputPath names the output of inputPath: prefix plus the input's base
// name, in the configured output directory or next to the input.
func (c *Coordinator) OutputPath(inputPath, prefix string) string {
	dir := c.config.Output.Directory
	if dir == "" {
		dir = filepath.Dir(inputPath)
	}
	return filepath.Join(dir, prefix+filepath.Base(inputPath))
}
