package pipeline

import (
	"time"

	"comic-grid/internal/algorithms"
	"comic-grid/internal/core"
)

// Variant is one (tint, filter) job. Tint is in B,G,R order.
type Variant struct {
	Name       string                 `yaml:"name"`
	Tint       [3]uint8               `yaml:"tint"`
	Algorithm  string                 `yaml:"algorithm"`
	Parameters map[string]interface{} `yaml:"parameters,omitempty"`
}

// Color returns the tint as a core colour.
func (v Variant) Color() core.Color {
	return core.Color(v.Tint)
}

// Options tune a pipeline run.
type Options struct {
	// GridColumns is the number of tiles per grid row.
	GridColumns int
	// MaxWorkers caps concurrent variant workers; 0 runs all variants at once.
	MaxWorkers int
	// Timeout bounds the variant stage. Workers check it between stages; a
	// filter that has started always runs to completion.
	Timeout time.Duration
	// Metrics computes MSE/PSNR of every filtered variant against the source.
	Metrics bool
	Comic   algorithms.ComicParams
}

func DefaultOptions() Options {
	return Options{
		GridColumns: 2,
		Comic:       algorithms.DefaultComicParams(),
	}
}

// VariantResult is the outcome of one worker. On failure Err is a
// *VariantError and the buffers produced before the failing stage are kept.
type VariantResult struct {
	Variant  Variant
	Tinted   *core.Buffer
	Filtered *core.Buffer
	Metrics  map[string]float64
	Duration time.Duration
	Err      error
}

// OK reports whether the variant produced a filtered buffer.
func (r VariantResult) OK() bool {
	return r.Err == nil && r.Filtered != nil
}

// Result holds everything a run produced.
type Result struct {
	RunID    string
	Variants []VariantResult
	Grid     *core.Buffer
	Comic    *core.Buffer
	Duration time.Duration
}
