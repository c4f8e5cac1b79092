// Filter algorithms applied to tinted variants
package algorithms

import (
	"fmt"

	"comic-grid/internal/core"
)

const maxKernelSize = 99

func validateKernelSize(params map[string]interface{}, key string) error {
	v, ok, err := numberParam(params, key)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	if v < 1 || v > maxKernelSize {
		return fmt.Errorf("%w: %s must be between 1 and %d, got %g", ErrInvalidKernelSize, key, maxKernelSize, v)
	}
	return nil
}

// GaussianFilter implements Gaussian blur filter
type GaussianFilter struct{}

// NewGaussianFilter creates a new Gaussian filter algorithm
func NewGaussianFilter() *GaussianFilter {
	return &GaussianFilter{}
}

func (g *GaussianFilter) Apply(input *core.Buffer, params map[string]interface{}) (*core.Buffer, error) {
	if input.Empty() {
		return nil, fmt.Errorf("input image is empty")
	}

	kernel, err := GaussianKernel(intParam(params, "kernel_size", 5), floatParam(params, "sigma", 0))
	if err != nil {
		return nil, err
	}

	return Convolve(input, kernel), nil
}

func (g *GaussianFilter) GetDefaultParams() map[string]interface{} {
	return map[string]interface{}{
		"kernel_size": 5.0,
		"sigma":       0.0,
	}
}

func (g *GaussianFilter) GetName() string {
	return "Gaussian Filter"
}

func (g *GaussianFilter) GetDescription() string {
	return "Gaussian blur for general noise reduction"
}

func (g *GaussianFilter) Validate(params map[string]interface{}) error {
	if err := validateKernelSize(params, "kernel_size"); err != nil {
		return err
	}
	return checkRange(params, "sigma", 0, 100)
}

func (g *GaussianFilter) GetParameterInfo() []ParameterInfo {
	return []ParameterInfo{
		{
			Name:        "kernel_size",
			Type:        "int",
			Min:         1.0,
			Max:         float64(maxKernelSize),
			Default:     5.0,
			Description: "Side length of the Gaussian kernel (even values are rounded up)",
		},
		{
			Name:        "sigma",
			Type:        "float",
			Min:         0.0,
			Max:         100.0,
			Default:     0.0,
			Description: "Standard deviation; 0 derives it from the kernel size",
		},
	}
}

// MedianFilter implements median filter
type MedianFilter struct{}

// NewMedianFilter creates a new median filter algorithm
func NewMedianFilter() *MedianFilter {
	return &MedianFilter{}
}

func (m *MedianFilter) Apply(input *core.Buffer, params map[string]interface{}) (*core.Buffer, error) {
	if input.Empty() {
		return nil, fmt.Errorf("input image is empty")
	}

	return Median(input, intParam(params, "kernel_size", 5))
}

func (m *MedianFilter) GetDefaultParams() map[string]interface{} {
	return map[string]interface{}{
		"kernel_size": 5.0,
	}
}

func (m *MedianFilter) GetName() string {
	return "Median Filter"
}

func (m *MedianFilter) GetDescription() string {
	return "Median filter to remove salt-and-pepper noise"
}

func (m *MedianFilter) Validate(params map[string]interface{}) error {
	return validateKernelSize(params, "kernel_size")
}

func (m *MedianFilter) GetParameterInfo() []ParameterInfo {
	return []ParameterInfo{
		{
			Name:        "kernel_size",
			Type:        "int",
			Min:         1.0,
			Max:         float64(maxKernelSize),
			Default:     5.0,
			Description: "Size of the median window (even values are rounded up)",
		},
	}
}

// EdgeFilter produces a single-channel Sobel edge mask
type EdgeFilter struct{}

func NewEdgeFilter() *EdgeFilter {
	return &EdgeFilter{}
}

func (e *EdgeFilter) Apply(input *core.Buffer, params map[string]interface{}) (*core.Buffer, error) {
	if input.Empty() {
		return nil, fmt.Errorf("input image is empty")
	}

	detector := NewEdgeDetector(intParam(params, "threshold", DefaultEdgeThreshold))
	return detector.Detect(input), nil
}

func (e *EdgeFilter) GetDefaultParams() map[string]interface{} {
	return map[string]interface{}{
		"threshold": float64(DefaultEdgeThreshold),
	}
}

func (e *EdgeFilter) GetName() string {
	return "Edge Detection"
}

func (e *EdgeFilter) GetDescription() string {
	return "Sobel gradient magnitude thresholded to a binary mask"
}

func (e *EdgeFilter) Validate(params map[string]interface{}) error {
	return checkRange(params, "threshold", 0, 1443) // max |∇| for 8-bit input
}

func (e *EdgeFilter) GetParameterInfo() []ParameterInfo {
	return []ParameterInfo{
		{
			Name:        "threshold",
			Type:        "int",
			Min:         0.0,
			Max:         1443.0,
			Default:     float64(DefaultEdgeThreshold),
			Description: "Gradient magnitude above which a pixel is an edge",
		},
	}
}

// BilateralFilter delegates to an external edge-preserving smoother
type BilateralFilter struct {
	smoother Smoother
}

// NewBilateralFilter creates a new bilateral filter algorithm
func NewBilateralFilter(smoother Smoother) *BilateralFilter {
	return &BilateralFilter{smoother: smoother}
}

func (b *BilateralFilter) Apply(input *core.Buffer, params map[string]interface{}) (*core.Buffer, error) {
	if input.Empty() {
		return nil, fmt.Errorf("input image is empty")
	}

	d := intParam(params, "d", 9)
	sigmaColor := floatParam(params, "sigma_color", 75)
	sigmaSpace := floatParam(params, "sigma_space", 75)

	output, err := b.smoother.Smooth(input, d, sigmaColor, sigmaSpace)
	if err != nil {
		return nil, fmt.Errorf("bilateral smoothing: %w", err)
	}
	if !output.SameShape(input) {
		return nil, fmt.Errorf("smoother returned %s for %s input: %w", output, input, core.ErrDimensionMismatch)
	}
	return output, nil
}

func (b *BilateralFilter) GetDefaultParams() map[string]interface{} {
	return map[string]interface{}{
		"d":           9.0,
		"sigma_color": 75.0,
		"sigma_space": 75.0,
	}
}

func (b *BilateralFilter) GetName() string {
	return "Bilateral Filter"
}

func (b *BilateralFilter) GetDescription() string {
	return "Bilateral filter for edge-preserving smoothing"
}

func (b *BilateralFilter) Validate(params map[string]interface{}) error {
	if err := validateKernelSize(params, "d"); err != nil {
		return err
	}
	if err := checkRange(params, "sigma_color", 1.0, 500.0); err != nil {
		return err
	}
	return checkRange(params, "sigma_space", 1.0, 500.0)
}

func (b *BilateralFilter) GetParameterInfo() []ParameterInfo {
	return []ParameterInfo{
		{
			Name:        "d",
			Type:        "int",
			Min:         1.0,
			Max:         float64(maxKernelSize),
			Default:     9.0,
			Description: "Diameter of each pixel neighborhood",
		},
		{
			Name:        "sigma_color",
			Type:        "float",
			Min:         1.0,
			Max:         500.0,
			Default:     75.0,
			Description: "Filter sigma in the color space",
		},
		{
			Name:        "sigma_space",
			Type:        "float",
			Min:         1.0,
			Max:         500.0,
			Default:     75.0,
			Description: "Filter sigma in the coordinate space",
		},
	}
}
