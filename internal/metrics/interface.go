// Quality metrics comparing a filtered variant against its source
package metrics

import (
	"math"
	"sort"

	"comic-grid/internal/core"
)

// Metric defines the interface for quality metrics
type Metric interface {
	// Calculate computes the metric value
	Calculate(original, processed *core.Buffer) (float64, error)

	// GetName returns the metric name
	GetName() string

	// IsHigherBetter returns true if higher values indicate better quality
	IsHigherBetter() bool
}

// Evaluator manages and calculates multiple metrics
type Evaluator struct {
	metrics map[string]Metric
}

// NewEvaluator creates a new metrics evaluator
func NewEvaluator() *Evaluator {
	e := &Evaluator{
		metrics: make(map[string]Metric),
	}

	e.Register("mse", NewMSE())
	e.Register("psnr", NewPSNR())

	return e
}

// Register registers a metric
func (e *Evaluator) Register(name string, metric Metric) {
	e.metrics[name] = metric
}

// CalculateAll calculates all registered metrics. Metrics that fail are left out.
func (e *Evaluator) CalculateAll(original, processed *core.Buffer) map[string]float64 {
	results := make(map[string]float64)

	for name, metric := range e.metrics {
		if value, err := metric.Calculate(original, processed); err == nil {
			results[name] = value
		}
	}

	return results
}

// Names returns registered metric names, sorted.
func (e *Evaluator) Names() []string {
	names := make([]string, 0, len(e.metrics))
	for name := range e.metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Label returns the display name of a registered metric.
func (e *Evaluator) Label(name string) string {
	if metric, exists := e.metrics[name]; exists {
		return metric.GetName()
	}
	return name
}

// Best returns the index of the best value for the named metric, honouring
// its direction. NaN values are skipped. It returns -1 when nothing qualifies.
func (e *Evaluator) Best(name string, values []float64) int {
	metric, exists := e.metrics[name]
	if !exists {
		return -1
	}

	best := -1
	for i, v := range values {
		if math.IsNaN(v) {
			continue
		}
		if best < 0 || (metric.IsHigherBetter() && v > values[best]) || (!metric.IsHigherBetter() && v < values[best]) {
			best = i
		}
	}
	return best
}
