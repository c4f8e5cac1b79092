// Run configuration with reference defaults and YAML overrides
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"comic-grid/internal/algorithms"
	"comic-grid/internal/pipeline"
)

// Comic configures the final compositing stage.
type Comic struct {
	Diameter   int     `yaml:"diameter"`
	SigmaColor float64 `yaml:"sigma_color"`
	SigmaSpace float64 `yaml:"sigma_space"`
	PreBlur    int     `yaml:"pre_blur"`
}

type Config struct {
	OutputDir     string             `yaml:"output_dir"`
	GridColumns   int                `yaml:"grid_columns"`
	MaxWorkers    int                `yaml:"max_workers"` // 0 runs one worker per variant
	Timeout       time.Duration      `yaml:"timeout"`
	EdgeThreshold int                `yaml:"edge_threshold"` // comic stage, and edge variants without their own threshold
	Metrics       bool               `yaml:"metrics"`
	Comic         Comic              `yaml:"comic"`
	Variants      []pipeline.Variant `yaml:"variants"`
}

// Default reproduces the reference run: four tinted variants arranged 2×2.
func Default() Config {
	return Config{
		OutputDir:     "results",
		GridColumns:   2,
		EdgeThreshold: algorithms.DefaultEdgeThreshold,
		Metrics:       true,
		Comic: Comic{
			Diameter:   9,
			SigmaColor: 150,
			SigmaSpace: 150,
		},
		Variants: []pipeline.Variant{
			{
				Name:      "red",
				Tint:      [3]uint8{0, 0, 255},
				Algorithm: "bilateral",
				Parameters: map[string]interface{}{
					"d": 15.0, "sigma_color": 200.0, "sigma_space": 200.0,
				},
			},
			{
				Name:       "green",
				Tint:       [3]uint8{0, 255, 0},
				Algorithm:  "gaussian",
				Parameters: map[string]interface{}{"kernel_size": 15.0, "sigma": 10.0},
			},
			{
				Name:       "blue",
				Tint:       [3]uint8{255, 0, 0},
				Algorithm:  "median",
				Parameters: map[string]interface{}{"kernel_size": 15.0},
			},
			{
				Name:      "yellow",
				Tint:      [3]uint8{0, 255, 255},
				Algorithm: "edges",
			},
		},
	}
}

// Load reads a YAML file on top of the defaults. A variants list in the file
// replaces the default list entirely.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := Parse(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML into cfg. Fields the document does not set keep their
// current values; sequences such as variants are replaced, not merged.
func Parse(data []byte, cfg *Config) error {
	return yaml.Unmarshal(data, cfg)
}

// PipelineOptions converts the run settings into pipeline options.
func (c Config) PipelineOptions() pipeline.Options {
	return pipeline.Options{
		GridColumns: c.GridColumns,
		MaxWorkers:  c.MaxWorkers,
		Timeout:     c.Timeout,
		Metrics:     c.Metrics,
		Comic:       c.ComicParams(),
	}
}

// RunVariants returns the variants to run. Edge variants that set no
// threshold of their own use EdgeThreshold.
func (c Config) RunVariants() []pipeline.Variant {
	return lo.Map(c.Variants, func(v pipeline.Variant, _ int) pipeline.Variant {
		if v.Algorithm != "edges" {
			return v
		}
		if _, ok := v.Parameters["threshold"]; ok {
			return v
		}
		v.Parameters = lo.Assign(v.Parameters, map[string]interface{}{"threshold": c.EdgeThreshold})
		return v
	})
}

// ComicParams converts the comic section into compositor parameters.
func (c Config) ComicParams() algorithms.ComicParams {
	return algorithms.ComicParams{
		EdgeThreshold: c.EdgeThreshold,
		Diameter:      c.Comic.Diameter,
		SigmaColor:    c.Comic.SigmaColor,
		SigmaSpace:    c.Comic.SigmaSpace,
		PreBlur:       c.Comic.PreBlur,
	}
}

// Validate checks structure only. Filter parameters are checked per variant
// when the pipeline runs so that a bad variant fails on its own.
func (c Config) Validate(registry *algorithms.Registry) error {
	if c.OutputDir == "" {
		return fmt.Errorf("output_dir must not be empty")
	}
	if len(c.Variants) == 0 {
		return fmt.Errorf("at least one variant is required")
	}
	if c.GridColumns <= 0 {
		return fmt.Errorf("grid_columns must be positive, got %d", c.GridColumns)
	}
	if len(c.Variants)%c.GridColumns != 0 {
		return fmt.Errorf("%d variants cannot fill a grid with %d columns", len(c.Variants), c.GridColumns)
	}
	if c.MaxWorkers < 0 {
		return fmt.Errorf("max_workers must not be negative")
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative")
	}

	names := lo.Map(c.Variants, func(v pipeline.Variant, _ int) string { return v.Name })
	if lo.Contains(names, "") {
		return fmt.Errorf("every variant needs a name")
	}
	if dups := lo.FindDuplicates(names); len(dups) > 0 {
		return fmt.Errorf("duplicate variant names: %v", dups)
	}

	for _, v := range c.Variants {
		if !registry.IsValidAlgorithm(v.Algorithm) {
			return fmt.Errorf("variant %s: %w: %s", v.Name, algorithms.ErrUnknownAlgorithm, v.Algorithm)
		}
	}
	return nil
}
