package opencv

import (
	"fmt"

	"gocv.io/x/gocv"

	"comic-grid/internal/core"
)

// BilateralSmoother implements the edge-preserving smoother contract with
// OpenCV's bilateral filter.
type BilateralSmoother struct{}

func NewBilateralSmoother() *BilateralSmoother {
	return &BilateralSmoother{}
}

// Smooth runs gocv.BilateralFilter on a copy of src.
func (s *BilateralSmoother) Smooth(src *core.Buffer, diameter int, sigmaColor, sigmaSpace float64) (*core.Buffer, error) {
	input, err := ToMat(src)
	if err != nil {
		return nil, err
	}
	defer input.Close()

	filtered := gocv.NewMat()
	defer filtered.Close()

	if err := gocv.BilateralFilter(input, &filtered, diameter, sigmaColor, sigmaSpace); err != nil {
		return nil, fmt.Errorf("bilateral filter d=%d sigmaColor=%.1f sigmaSpace=%.1f: %w",
			diameter, sigmaColor, sigmaSpace, err)
	}

	return FromMat(filtered)
}
