package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"seam-carver/internal/config"
	"seam-carver/internal/debug/timing"
	"seam-carver/internal/logger"
	"seam-carver/internal/pipeline"
)

type globalOptions struct {
	configPath string
	logLevel   string
	logFormat  string
	outputDir  string
	output     string
	width      int
	height     int
	timings    bool
}

func newRootCommand() *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:           AppName,
		Short:         "Content-aware image resizing by seam carving",
		Version:       AppVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "TOML configuration file")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error, disabled")
	flags.StringVar(&opts.logFormat, "log-format", "", "log format: console or json")
	flags.StringVar(&opts.outputDir, "output-dir", "", "directory for output files (default: next to the input)")
	flags.StringVarP(&opts.output, "output", "o", "", "explicit output path")
	flags.IntVar(&opts.width, "width", 0, "declared input width; the input must match")
	flags.IntVar(&opts.height, "height", 0, "declared input height; the input must match")
	flags.BoolVar(&opts.timings, "timings", false, "print stage and operation timings")
	root.MarkFlagsRequiredTogether("width", "height")

	root.AddCommand(
		newCarveCommand(opts),
		newFilterCommand(opts, "grayscale", "Convert an image to grey"),
		newFilterCommand(opts, "sepia", "Apply a sepia tone"),
		newThinCommand(opts),
		newAlgorithmsCommand(opts),
	)
	return root
}

func newCarveCommand(opts *globalOptions) *cobra.Command {
	var targetWidth, targetHeight int

	cmd := &cobra.Command{
		Use:   "carve <input>",
		Short: "Shrink an image to a target size by removing low-energy seams",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params := make(map[string]interface{})
			if cmd.Flags().Changed("target-width") {
				params["target_width"] = targetWidth
			}
			if cmd.Flags().Changed("target-height") {
				params["target_height"] = targetHeight
			}
			return runJob(cmd, opts, pipeline.Job{
				InputPath:  args[0],
				Algorithm:  "carve",
				Parameters: params,
			})
		},
	}

	cmd.Flags().IntVarP(&targetWidth, "target-width", "W", 0, "target width (default: keep)")
	cmd.Flags().IntVarP(&targetHeight, "target-height", "H", 0, "target height (default: keep)")
	cmd.MarkFlagsOneRequired("target-width", "target-height")
	return cmd
}

func newFilterCommand(opts *globalOptions, name, short string) *cobra.Command {
	return &cobra.Command{
		Use:   name + " <input>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runJob(cmd, opts, pipeline.Job{InputPath: args[0], Algorithm: name})
		},
	}
}

func newThinCommand(opts *globalOptions) *cobra.Command {
	var rows, columns bool
	var frequency int

	cmd := &cobra.Command{
		Use:   "thin <input>",
		Short: "Drop every Nth row or column",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			algorithm := "remove-rows"
			if columns {
				algorithm = "remove-columns"
			}
			job := pipeline.Job{InputPath: args[0], Algorithm: algorithm}
			if cmd.Flags().Changed("frequency") {
				job.Parameters = map[string]interface{}{"frequency": frequency}
			}
			return runJob(cmd, opts, job)
		},
	}

	cmd.Flags().BoolVar(&rows, "rows", false, "remove rows")
	cmd.Flags().BoolVar(&columns, "columns", false, "remove columns")
	cmd.Flags().IntVarP(&frequency, "frequency", "f", 2, "remove one line after every N kept (1-25, default from config or 2)")
	cmd.MarkFlagsMutuallyExclusive("rows", "columns")
	cmd.MarkFlagsOneRequired("rows", "columns")
	return cmd
}

func newAlgorithmsCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "algorithms",
		Short: "List the available algorithms and their defaults",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := setup(cmd, opts)
			if err != nil {
				return err
			}
			coordinator, err := pipeline.NewCoordinator(cfg, log)
			if err != nil {
				return err
			}
			manager := coordinator.Algorithms()
			for _, name := range manager.GetAvailableAlgorithms() {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", name, formatParams(manager.GetParameters(name)))
			}
			return nil
		},
	}
}

func runJob(cmd *cobra.Command, opts *globalOptions, job pipeline.Job) error {
	cfg, log, err := setup(cmd, opts)
	if err != nil {
		return err
	}

	job.ExpectedWidth = opts.width
	job.ExpectedHeight = opts.height
	job.OutputPath = opts.output

	coordinator, err := pipeline.NewCoordinator(cfg, log)
	if err != nil {
		return err
	}

	result, err := coordinator.Run(cmd.Context(), job)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	partial := ""
	if result.Partial {
		partial = " partial"
	}
	fmt.Fprintf(out, "%s -> %s (%s)%s\n",
		result.Processing.InputSize, result.Processing.OutputSize, result.OutputPath, partial)

	if opts.timings {
		printTimings(out, result, coordinator.Timings())
	}
	return nil
}

func printTimings(w io.Writer, result *pipeline.Result, tracker *timing.Tracker) {
	for _, stage := range []string{"load", "process", "save"} {
		if d, ok := result.Stages[stage]; ok {
			fmt.Fprintf(w, "stage\t%s\t%s\n", stage, d)
		}
	}
	for _, op := range tracker.Operations() {
		fmt.Fprintf(w, "op\t%s\t%dx\tavg %s\n", op, len(tracker.GetTimings(op)), tracker.GetAverageTime(op))
	}
}

// setup loads the configuration file and applies flag overrides.
func setup(cmd *cobra.Command, opts *globalOptions) (config.Config, logger.Logger, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return config.Config{}, nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.Log.Level = opts.logLevel
	}
	if flags.Changed("log-format") {
		cfg.Log.Format = opts.logFormat
	}
	if flags.Changed("output-dir") {
		cfg.Output.Directory = opts.outputDir
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, nil, err
	}

	log, err := cfg.NewLogger(os.Stderr)
	if err != nil {
		return config.Config{}, nil, err
	}
	return cfg, log, nil
}

func formatParams(params map[string]interface{}) string {
	if len(params) == 0 {
		return "-"
	}
	parts := make([]string, 0, len(params))
	for k, v := range params {
		parts = append(parts, fmt.Sprintf("%s=%v", k, v))
	}
	sort.Strings(parts)
	return strings.Join(parts, " ")
}
