// Algorithm registry for the per-variant filters
package algorithms

import (
	"errors"
	"fmt"
	"sort"

	"github.com/samber/lo"

	"comic-grid/internal/core"
)

var ErrUnknownAlgorithm = errors.New("algorithm not found")

// Algorithm defines the interface for image processing algorithms
type Algorithm interface {
	Apply(input *core.Buffer, params map[string]interface{}) (*core.Buffer, error)
	GetDefaultParams() map[string]interface{}
	GetName() string
	GetDescription() string
	Validate(params map[string]interface{}) error
	GetParameterInfo() []ParameterInfo
}

// ParameterInfo describes a parameter for help output and config docs
type ParameterInfo struct {
	Name        string      `json:"name" yaml:"name"`
	Type        string      `json:"type" yaml:"type"` // "int", "float"
	Min         interface{} `json:"min,omitempty" yaml:"min,omitempty"`
	Max         interface{} `json:"max,omitempty" yaml:"max,omitempty"`
	Default     interface{} `json:"default" yaml:"default"`
	Description string      `json:"description" yaml:"description"`
}

// Registry maps filter names to algorithms. It is safe for concurrent reads
// once construction is done.
type Registry struct {
	algorithms map[string]Algorithm
}

// NewRegistry registers the built-in filters. The bilateral filter is only
// available when a smoother is supplied, the morphological filters only when
// a morpher is.
func NewRegistry(smoother Smoother, morpher Morpher) *Registry {
	r := &Registry{algorithms: make(map[string]Algorithm)}

	r.Register("gaussian", NewGaussianFilter())
	r.Register("median", NewMedianFilter())
	r.Register("edges", NewEdgeFilter())
	r.Register("otsu", NewOtsuFilter())
	if smoother != nil {
		r.Register("bilateral", NewBilateralFilter(smoother))
	}
	if morpher != nil {
		r.Register("erode", NewMorphologyFilter(MorphErode, morpher))
		r.Register("dilate", NewMorphologyFilter(MorphDilate, morpher))
		r.Register("open", NewMorphologyFilter(MorphOpen, morpher))
		r.Register("close", NewMorphologyFilter(MorphClose, morpher))
	}
	return r
}

func (r *Registry) Register(name string, algorithm Algorithm) {
	r.algorithms[name] = algorithm
}

func (r *Registry) Get(name string) (Algorithm, bool) {
	algorithm, exists := r.algorithms[name]
	return algorithm, exists
}

// Apply resolves params and runs the named algorithm.
func (r *Registry) Apply(name string, input *core.Buffer, params map[string]interface{}) (*core.Buffer, error) {
	if input.Empty() {
		return nil, fmt.Errorf("%s: %w", name, core.ErrEmptyBuffer)
	}
	effective, err := r.ResolveParameters(name, params)
	if err != nil {
		return nil, err
	}

	algorithm, _ := r.Get(name)
	return algorithm.Apply(input, effective)
}

// ResolveParameters lays params over the algorithm defaults and validates
// the result. The returned map is a new map; params is not modified.
func (r *Registry) ResolveParameters(name string, params map[string]interface{}) (map[string]interface{}, error) {
	algorithm, exists := r.algorithms[name]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrUnknownAlgorithm, name)
	}

	effective := lo.Assign(algorithm.GetDefaultParams(), params)
	if err := algorithm.Validate(effective); err != nil {
		return nil, fmt.Errorf("invalid parameters for %s: %w", name, err)
	}
	return effective, nil
}

func (r *Registry) IsValidAlgorithm(name string) bool {
	_, exists := r.algorithms[name]
	return exists
}

// Names returns the registered algorithm names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.algorithms))
	for name := range r.algorithms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
