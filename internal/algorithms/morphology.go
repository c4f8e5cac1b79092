// Morphological operations algorithms
package algorithms

import (
	"fmt"

	"comic-grid/internal/core"
)

const maxIterations = 10

// MorphOp selects a morphological operation.
type MorphOp int

const (
	MorphErode MorphOp = iota
	MorphDilate
	MorphOpen
	MorphClose
)

func (op MorphOp) String() string {
	switch op {
	case MorphErode:
		return "erosion"
	case MorphDilate:
		return "dilation"
	case MorphOpen:
		return "opening"
	case MorphClose:
		return "closing"
	default:
		return fmt.Sprintf("MorphOp(%d)", int(op))
	}
}

// Morpher applies a morphological operation with a square structuring
// element of side size, iterations times. Implementations must keep the
// shape of src and must not modify it.
type Morpher interface {
	Morph(src *core.Buffer, op MorphOp, size, iterations int) (*core.Buffer, error)
}

var morphDescriptions = map[MorphOp]string{
	MorphErode:  "Morphological erosion to remove small bright noise",
	MorphDilate: "Morphological dilation to fill small dark gaps",
	MorphOpen:   "Erosion followed by dilation",
	MorphClose:  "Dilation followed by erosion",
}

// MorphologyFilter delegates one morphological operation to a Morpher
type MorphologyFilter struct {
	op      MorphOp
	morpher Morpher
}

func NewMorphologyFilter(op MorphOp, morpher Morpher) *MorphologyFilter {
	return &MorphologyFilter{op: op, morpher: morpher}
}

func (m *MorphologyFilter) Apply(input *core.Buffer, params map[string]interface{}) (*core.Buffer, error) {
	if input.Empty() {
		return nil, fmt.Errorf("input image is empty")
	}

	size := intParam(params, "kernel_size", 3)
	if _, err := OddSize(size); err != nil {
		return nil, err
	}
	output, err := m.morpher.Morph(input, m.op, size, intParam(params, "iterations", 1))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", m.op, err)
	}
	if !output.SameShape(input) {
		return nil, fmt.Errorf("morpher returned %s for %s input: %w", output, input, core.ErrDimensionMismatch)
	}
	return output, nil
}

func (m *MorphologyFilter) GetDefaultParams() map[string]interface{} {
	return map[string]interface{}{
		"kernel_size": 3.0,
		"iterations":  1.0,
	}
}

func (m *MorphologyFilter) GetName() string {
	return m.op.String()
}

func (m *MorphologyFilter) GetDescription() string {
	return morphDescriptions[m.op]
}

func (m *MorphologyFilter) Validate(params map[string]interface{}) error {
	if err := validateKernelSize(params, "kernel_size"); err != nil {
		return err
	}
	return checkRange(params, "iterations", 1, maxIterations)
}

func (m *MorphologyFilter) GetParameterInfo() []ParameterInfo {
	return []ParameterInfo{
		{
			Name:        "kernel_size",
			Type:        "int",
			Min:         1.0,
			Max:         float64(maxKernelSize),
			Default:     3.0,
			Description: "Size of the square structuring element",
		},
		{
			Name:        "iterations",
			Type:        "int",
			Min:         1.0,
			Max:         float64(maxIterations),
			Default:     1.0,
			Description: fmt.Sprintf("Number of %s iterations", m.op),
		},
	}
}
