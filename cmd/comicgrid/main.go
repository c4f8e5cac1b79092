// Comic Grid - tinted filter variants, 2x2 grid and comic composite
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"comic-grid/internal/config"
	imageio "comic-grid/internal/io"
	"comic-grid/internal/opencv"
	"comic-grid/internal/pipeline"
)

const (
	AppName    = "comicgrid"
	AppVersion = "1.0.0"
)

// Exit codes.
const (
	exitOK = iota
	exitUsage
	exitDecode
	exitOutputDir
	exitPipeline
	exitWrite
)

// exitError carries the process exit status for an error.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func withCode(code int, err error) error {
	return &exitError{code: code, err: err}
}

type options struct {
	debug      bool
	configPath string
	outputDir  string
	workers    int
	timeout    time.Duration
	noMetrics  bool
}

func bindFlags(fs *pflag.FlagSet, opts *options) {
	fs.BoolVar(&opts.debug, "debug", false, "Enable debug mode with verbose logging")
	fs.StringVarP(&opts.configPath, "config", "c", "", "YAML file overriding the default variants and parameters")
	fs.StringVarP(&opts.outputDir, "output", "o", "", "Output directory (overrides config)")
	fs.IntVar(&opts.workers, "workers", -1, "Maximum concurrent variant workers, 0 for one per variant (overrides config)")
	fs.DurationVar(&opts.timeout, "timeout", 0, "Abort variants that have not started their filter within this duration")
	fs.BoolVar(&opts.noMetrics, "no-metrics", false, "Skip PSNR/MSE computation")
}

func newRootCommand() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:           AppName + " <image>",
		Short:         "Apply tinted filter variants to an image and build a comic composite",
		Long:          longHelp(),
		Version:       AppVersion,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts, cmd.Flags(), args[0])
		},
	}
	bindFlags(cmd.Flags(), opts)
	cmd.AddCommand(newFiltersCommand())
	return cmd
}

func longHelp() string {
	return "Apply tinted filter variants to an image and build a comic composite.\n\n" +
		"Supported image formats: " + strings.Join(imageio.SupportedFormats(), " ") + "\n" +
		"Run '" + AppName + " filters' to list the filters a variant can use."
}

func main() {
	cmd := newRootCommand()
	err := cmd.ExecuteContext(context.Background())
	if err == nil {
		os.Exit(exitOK)
	}

	var ee *exitError
	if errors.As(err, &ee) {
		fmt.Fprintln(os.Stderr, "Error:", ee.err)
		os.Exit(ee.code)
	}

	// Anything cobra rejects before RunE is a usage problem.
	fmt.Fprintln(os.Stderr, "Error:", err)
	fmt.Fprintln(os.Stderr, cmd.UsageString())
	os.Exit(exitUsage)
}

func run(ctx context.Context, opts *options, flags *pflag.FlagSet, inputPath string) error {
	logger := initLogger(opts.debug)
	start := time.Now()
	logger.WithFields(logrus.Fields{
		"version":    AppVersion,
		"debug_mode": opts.debug,
		"input":      inputPath,
	}).Info("Starting task")

	cfg, err := loadConfig(opts, flags)
	if err != nil {
		return withCode(exitUsage, err)
	}

	registry := newRegistry()
	if err := cfg.Validate(registry); err != nil {
		return withCode(exitUsage, fmt.Errorf("invalid configuration: %w", err))
	}

	loader := imageio.NewImageLoader(logger)
	src, err := loader.LoadImage(inputPath)
	if err != nil {
		logger.WithError(err).Error("Could not load image")
		return withCode(exitDecode, err)
	}

	writer := imageio.NewOutputWriter(cfg.OutputDir, loader, logger)
	if err := writer.Prepare(); err != nil {
		logger.WithError(err).Error("Could not prepare output directory")
		return withCode(exitOutputDir, err)
	}

	p := pipeline.New(registry, opencv.NewBilateralSmoother(), cfg.PipelineOptions(), logger)
	result, runErr := p.Run(ctx, src, cfg.RunVariants())

	// Whatever was produced is written, even after a variant failure.
	if result != nil {
		if err := result.Export(writer); err != nil {
			logger.WithError(err).Error("Failed to write results")
			if runErr == nil {
				return withCode(exitWrite, err)
			}
		}
	}
	if runErr != nil {
		var agg *pipeline.AggregateError
		if errors.As(runErr, &agg) {
			logger.WithField("failed_variants", agg.Variants()).Error("Variant processing failed")
		}
		return withCode(exitPipeline, runErr)
	}

	logger.WithFields(logrus.Fields{
		"output_dir":      writer.Dir(),
		"elapsed_seconds": time.Since(start).Seconds(),
	}).Info("Task completed")
	return nil
}

// loadConfig builds the run configuration: defaults, then the optional
// config file, then explicitly set flags.
func loadConfig(opts *options, flags *pflag.FlagSet) (config.Config, error) {
	cfg := config.Default()
	if opts.configPath != "" {
		loaded, err := config.Load(opts.configPath)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	if flags.Changed("output") {
		cfg.OutputDir = opts.outputDir
	}
	if flags.Changed("workers") {
		cfg.MaxWorkers = opts.workers
	}
	if flags.Changed("timeout") {
		cfg.Timeout = opts.timeout
	}
	if opts.noMetrics {
		cfg.Metrics = false
	}
	return cfg, nil
}

// initLogger initializes the logger with appropriate level
func initLogger(debugMode bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)

	if debugMode {
		logger.SetLevel(logrus.DebugLevel)
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   true,
		})
		logger.Debug("Debug logging enabled")
	} else {
		logger.SetLevel(logrus.InfoLevel)
		logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}

	return logger
}
