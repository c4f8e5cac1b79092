// Concrete implementations of quality metrics
package metrics

import (
	"fmt"
	"math"

	"comic-grid/internal/core"
)

// MSE implements mean squared error over every sample.
type MSE struct{}

func NewMSE() *MSE {
	return &MSE{}
}

func (m *MSE) Calculate(original, processed *core.Buffer) (float64, error) {
	if original.Empty() || processed.Empty() {
		return 0, fmt.Errorf("empty images")
	}

	// Single-channel results (edge masks) are compared against the expanded form.
	if processed.Channels() != original.Channels() {
		processed = processed.ExpandGray()
		original = original.ExpandGray()
	}
	if !original.SameShape(processed) {
		return 0, fmt.Errorf("image dimensions mismatch: %s vs %s", original, processed)
	}

	a, b := original.Bytes(), processed.Bytes()
	sum := 0.0
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return sum / float64(len(a)), nil
}

func (m *MSE) GetName() string {
	return "Mean Squared Error"
}

func (m *MSE) IsHigherBetter() bool {
	return false
}

// PSNR implements Peak Signal-to-Noise Ratio metric
type PSNR struct {
	mse *MSE
}

// NewPSNR creates a new PSNR metric
func NewPSNR() *PSNR {
	return &PSNR{mse: NewMSE()}
}

func (p *PSNR) Calculate(original, processed *core.Buffer) (float64, error) {
	mse, err := p.mse.Calculate(original, processed)
	if err != nil {
		return 0, err
	}
	if mse == 0 {
		return math.Inf(1), nil // Perfect match
	}

	maxVal := 255.0
	return 20 * math.Log10(maxVal/math.Sqrt(mse)), nil
}

func (p *PSNR) GetName() string {
	return "Peak Signal-to-Noise Ratio"
}

func (p *PSNR) IsHigherBetter() bool {
	return true
}
