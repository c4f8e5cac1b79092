// Concurrent variant fan-out, grid assembly and comic compositing
package pipeline

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"comic-grid/internal/algorithms"
	"comic-grid/internal/core"
	"comic-grid/internal/metrics"
)

// Pipeline runs an ordered list of variants over one source image.
type Pipeline struct {
	registry  *algorithms.Registry
	comic     *algorithms.Comic
	evaluator *metrics.Evaluator
	opts      Options
	logger    logrus.FieldLogger
}

// New builds a pipeline. The smoother backs both the bilateral variant filter
// (through the registry) and the comic stage.
func New(registry *algorithms.Registry, smoother algorithms.Smoother, opts Options, logger logrus.FieldLogger) *Pipeline {
	p := &Pipeline{
		registry: registry,
		comic:    algorithms.NewComic(opts.Comic, smoother),
		opts:     opts,
		logger:   logger,
	}
	if opts.Metrics {
		p.evaluator = metrics.NewEvaluator()
	}
	return p
}

// indexedResult carries a worker's result back to the join step.
type indexedResult struct {
	index  int
	result VariantResult
}

// RunVariants starts one worker per variant (bounded by MaxWorkers), waits for
// all of them and returns the results in variant order. src is shared
// read-only. When any variant fails the error is an *AggregateError and the
// successful results are still returned.
func (p *Pipeline) RunVariants(ctx context.Context, src *core.Buffer, variants []Variant) ([]VariantResult, error) {
	return p.runVariants(ctx, p.logger, src, variants)
}

func (p *Pipeline) runVariants(ctx context.Context, logger logrus.FieldLogger, src *core.Buffer, variants []Variant) ([]VariantResult, error) {
	if src.Empty() {
		return nil, core.ErrEmptyBuffer
	}
	if p.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.opts.Timeout)
		defer cancel()
	}

	var g errgroup.Group
	if p.opts.MaxWorkers > 0 {
		g.SetLimit(p.opts.MaxWorkers)
	}

	done := make(chan indexedResult, len(variants))
	for i, v := range variants {
		i, v := i, v
		g.Go(func() error {
			done <- indexedResult{index: i, result: p.processVariant(ctx, logger, src, v)}
			return nil
		})
	}

	// Workers report failures through their result, never through the group.
	_ = g.Wait()
	close(done)

	results := make([]VariantResult, len(variants))
	for r := range done {
		results[r.index] = r.result
	}

	return results, collectFailures(results)
}

// RunVariantsSequential processes the variants one after another on the
// calling goroutine. It produces the same results as RunVariants.
func (p *Pipeline) RunVariantsSequential(ctx context.Context, src *core.Buffer, variants []Variant) ([]VariantResult, error) {
	if src.Empty() {
		return nil, core.ErrEmptyBuffer
	}
	if p.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.opts.Timeout)
		defer cancel()
	}

	results := make([]VariantResult, len(variants))
	for i, v := range variants {
		results[i] = p.processVariant(ctx, p.logger, src, v)
	}
	return results, collectFailures(results)
}

// processVariant tints src, applies the variant filter and expands
// single-channel output to three channels. Panics are converted to a
// VariantError for the stage that raised them.
func (p *Pipeline) processVariant(ctx context.Context, logger logrus.FieldLogger, src *core.Buffer, v Variant) (res VariantResult) {
	start := time.Now()
	res.Variant = v
	stage := StageTint
	log := logger.WithFields(logrus.Fields{"variant": v.Name, "algorithm": v.Algorithm})

	defer func() {
		if r := recover(); r != nil {
			res.Err = &VariantError{Variant: v.Name, Stage: stage, Err: fmt.Errorf("panic: %v", r)}
		}
		res.Duration = time.Since(start)
		if res.Err != nil {
			log.WithError(res.Err).WithField("duration_ms", res.Duration.Milliseconds()).Error("Variant failed")
			return
		}
		log.WithField("duration_ms", res.Duration.Milliseconds()).Debug("Variant completed")
	}()

	if err := ctx.Err(); err != nil {
		res.Err = &VariantError{Variant: v.Name, Stage: stage, Err: err}
		return res
	}
	res.Tinted = algorithms.Tint(src, v.Color())

	stage = StageFilter
	if err := ctx.Err(); err != nil {
		res.Err = &VariantError{Variant: v.Name, Stage: stage, Err: err}
		return res
	}
	params, err := p.registry.ResolveParameters(v.Algorithm, v.Parameters)
	if err != nil {
		res.Err = &VariantError{Variant: v.Name, Stage: stage, Err: err}
		return res
	}
	log.WithField("params", params).Debug("Applying filter")
	filtered, err := p.registry.Apply(v.Algorithm, res.Tinted, params)
	if err != nil {
		res.Err = &VariantError{Variant: v.Name, Stage: stage, Err: err}
		return res
	}

	stage = StageExpand
	if filtered.Channels() == 1 {
		filtered = filtered.ExpandGray()
	}
	if !filtered.SameShape(src) {
		res.Err = &VariantError{Variant: v.Name, Stage: stage,
			Err: fmt.Errorf("filter produced %s for %s source: %w", filtered, src, core.ErrDimensionMismatch)}
		return res
	}
	res.Filtered = filtered

	if p.evaluator != nil {
		res.Metrics = p.evaluator.CalculateAll(src, filtered)
		log.WithFields(metricFields(res.Metrics)).Info("Variant metrics")
	}
	return res
}

// AssembleGrid lays the filtered buffers out row-major, GridColumns per row.
func (p *Pipeline) AssembleGrid(results []VariantResult) (*core.Buffer, error) {
	tiles := make([]*core.Buffer, len(results))
	for i, r := range results {
		if !r.OK() {
			return nil, fmt.Errorf("variant %s has no filtered output", r.Variant.Name)
		}
		tiles[i] = r.Filtered
	}
	return core.Grid(tiles, p.opts.GridColumns)
}

// Run executes the whole chain: variants, join, grid and comic. On a variant
// failure the partial result is returned together with the *AggregateError
// and no grid is built.
func (p *Pipeline) Run(ctx context.Context, src *core.Buffer, variants []Variant) (*Result, error) {
	if src.Empty() {
		return nil, core.ErrEmptyBuffer
	}
	start := time.Now()
	result := &Result{RunID: uuid.NewString()}
	log := p.logger.WithField("run_id", result.RunID)

	log.WithFields(logrus.Fields{
		"variants": len(variants),
		"size":     src.String(),
	}).Info("Starting variant processing")

	variantResults, err := p.runVariants(ctx, log, src, variants)
	result.Variants = variantResults
	if err != nil {
		result.Duration = time.Since(start)
		return result, err
	}
	log.Info("Variant processing completed, assembling grid")
	p.logBestVariants(log, variantResults)

	grid, err := p.AssembleGrid(variantResults)
	if err != nil {
		result.Duration = time.Since(start)
		return result, fmt.Errorf("grid assembly: %w", err)
	}
	result.Grid = grid

	comic, err := p.comic.Apply(grid)
	if err != nil {
		result.Duration = time.Since(start)
		return result, fmt.Errorf("comic effect: %w", err)
	}
	result.Comic = comic
	result.Duration = time.Since(start)

	log.WithFields(logrus.Fields{
		"grid":        grid.String(),
		"duration_ms": result.Duration.Milliseconds(),
	}).Info("Pipeline completed")

	return result, nil
}

// logBestVariants reports, per metric, the variant closest to the source.
func (p *Pipeline) logBestVariants(logger logrus.FieldLogger, results []VariantResult) {
	if p.evaluator == nil || len(results) == 0 {
		return
	}
	for _, name := range p.evaluator.Names() {
		values := lo.Map(results, func(r VariantResult, _ int) float64 {
			if v, ok := r.Metrics[name]; ok {
				return v
			}
			return math.NaN()
		})
		best := p.evaluator.Best(name, values)
		if best < 0 {
			continue
		}
		logger.WithFields(logrus.Fields{
			"metric":  p.evaluator.Label(name),
			"variant": results[best].Variant.Name,
			"value":   loggableMetric(values[best]),
		}).Info("Closest variant")
	}
}

// metricFields turns metric values into log fields. JSON has no encoding for
// infinities or NaN, so those are logged as strings.
func metricFields(values map[string]float64) logrus.Fields {
	return logrus.Fields(lo.MapValues(values, func(v float64, _ string) interface{} {
		return loggableMetric(v)
	}))
}

func loggableMetric(v float64) interface{} {
	switch {
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	case math.IsNaN(v):
		return "nan"
	default:
		return v
	}
}
