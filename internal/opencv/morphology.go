package opencv

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"

	"comic-grid/internal/algorithms"
	"comic-grid/internal/core"
)

var morphTypes = map[algorithms.MorphOp]gocv.MorphType{
	algorithms.MorphErode:  gocv.MorphErode,
	algorithms.MorphDilate: gocv.MorphDilate,
	algorithms.MorphOpen:   gocv.MorphOpen,
	algorithms.MorphClose:  gocv.MorphClose,
}

// Morphology implements the morpher contract with OpenCV and a rectangular
// structuring element. Windows that reach past the image edge only see the
// samples inside the image.
type Morphology struct{}

func NewMorphology() *Morphology {
	return &Morphology{}
}

// Morph applies op iterations times on a copy of src.
func (m *Morphology) Morph(src *core.Buffer, op algorithms.MorphOp, size, iterations int) (*core.Buffer, error) {
	morphType, ok := morphTypes[op]
	if !ok {
		return nil, fmt.Errorf("unsupported morphological operation %s", op)
	}
	size, err := algorithms.OddSize(size)
	if err != nil {
		return nil, err
	}
	if iterations < 1 {
		iterations = 1
	}

	current, err := ToMat(src)
	if err != nil {
		return nil, err
	}
	defer func() { current.Close() }()

	kernel := gocv.GetStructuringElement(gocv.MorphRect, image.Pt(size, size))
	defer kernel.Close()

	for i := 0; i < iterations; i++ {
		next := gocv.NewMat()
		if err := gocv.MorphologyEx(current, &next, morphType, kernel); err != nil {
			next.Close()
			return nil, fmt.Errorf("%s size=%d iteration %d: %w", op, size, i+1, err)
		}
		current.Close()
		current = next
	}

	return FromMat(current)
}
