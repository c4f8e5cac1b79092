package pipeline

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// Stages a variant passes through.
const (
	StageTint   = "tint"
	StageFilter = "filter"
	StageExpand = "expand"
)

// VariantError records which variant failed and at which stage.
type VariantError struct {
	Variant string
	Stage   string
	Err     error
}

func (e *VariantError) Error() string {
	return fmt.Sprintf("variant %s: %s: %v", e.Variant, e.Stage, e.Err)
}

func (e *VariantError) Unwrap() error {
	return e.Err
}

// AggregateError lists every failed variant of a run, in variant order.
type AggregateError struct {
	Failures []*VariantError
	Total    int
}

func (e *AggregateError) Error() string {
	msgs := lo.Map(e.Failures, func(f *VariantError, _ int) string { return f.Error() })
	return fmt.Sprintf("%d of %d variants failed: %s", len(e.Failures), e.Total, strings.Join(msgs, "; "))
}

func (e *AggregateError) Unwrap() []error {
	return lo.Map(e.Failures, func(f *VariantError, _ int) error { return f })
}

// Variants returns the names of the failed variants.
func (e *AggregateError) Variants() []string {
	return lo.Map(e.Failures, func(f *VariantError, _ int) string { return f.Variant })
}

// collectFailures returns nil when every variant succeeded.
func collectFailures(results []VariantResult) error {
	failures := lo.FilterMap(results, func(r VariantResult, _ int) (*VariantError, bool) {
		if r.Err == nil {
			return nil, false
		}
		if ve, ok := r.Err.(*VariantError); ok {
			return ve, true
		}
		return &VariantError{Variant: r.Variant.Name, Stage: StageFilter, Err: r.Err}, true
	})
	if len(failures) == 0 {
		return nil
	}
	return &AggregateError{Failures: failures, Total: len(results)}
}
