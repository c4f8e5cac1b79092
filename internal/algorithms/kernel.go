// Kernel generation and sliding-window convolution
package algorithms

import (
	"errors"
	"fmt"
	"math"

	"comic-grid/internal/core"
)

var ErrInvalidKernelSize = errors.New("invalid kernel size")

// truncationEpsilon absorbs floating point drift so that a normalized kernel
// over a flat region yields the flat value rather than value-1.
const truncationEpsilon = 1e-6

// Kernel is a square matrix of weights with odd side length.
type Kernel struct {
	Size    int
	Weights []float64 // row-major, Size*Size entries
}

// OddSize coerces a requested window size to an odd size. Even sizes round up;
// sizes below 1 are rejected.
func OddSize(size int) (int, error) {
	if size < 1 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidKernelSize, size)
	}
	if size%2 == 0 {
		size++
	}
	return size, nil
}

// NewKernel builds a kernel from row-major weights.
func NewKernel(size int, weights []float64) (*Kernel, error) {
	if size < 1 || size%2 == 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidKernelSize, size)
	}
	if len(weights) != size*size {
		return nil, fmt.Errorf("kernel of size %d needs %d weights, got %d", size, size*size, len(weights))
	}
	w := make([]float64, len(weights))
	copy(w, weights)
	return &Kernel{Size: size, Weights: w}, nil
}

// Radius is (Size-1)/2.
func (k *Kernel) Radius() int {
	return (k.Size - 1) / 2
}

// At returns the weight at kernel row i, column j.
func (k *Kernel) At(i, j int) float64 {
	return k.Weights[i*k.Size+j]
}

// Sum adds up all weights.
func (k *Kernel) Sum() float64 {
	s := 0.0
	for _, w := range k.Weights {
		s += w
	}
	return s
}

// DefaultSigma derives a spread from the kernel size when none is given.
// Same rule OpenCV uses for getGaussianKernel.
func DefaultSigma(size int) float64 {
	return 0.3*(float64(size-1)*0.5-1) + 0.8
}

// gaussianProfile returns a normalized 1D Gaussian of the given odd size.
func gaussianProfile(size int, sigma float64) []float64 {
	r := (size - 1) / 2
	profile := make([]float64, size)
	sum := 0.0
	for i := range profile {
		x := float64(i - r)
		profile[i] = math.Exp(-(x * x) / (2 * sigma * sigma))
		sum += profile[i]
	}
	for i := range profile {
		profile[i] /= sum
	}
	return profile
}

// GaussianKernel builds a 2D Gaussian as the outer product of two 1D profiles,
// normalized to sum to 1. A non-positive sigma selects DefaultSigma.
func GaussianKernel(size int, sigma float64) (*Kernel, error) {
	size, err := OddSize(size)
	if err != nil {
		return nil, err
	}
	if sigma <= 0 {
		sigma = DefaultSigma(size)
	}

	profile := gaussianProfile(size, sigma)
	weights := make([]float64, size*size)
	sum := 0.0
	for i := 0; i < size; i++ {
		for j := 0; j < size; j++ {
			weights[i*size+j] = profile[i] * profile[j]
			sum += weights[i*size+j]
		}
	}
	for i := range weights {
		weights[i] /= sum
	}

	return &Kernel{Size: size, Weights: weights}, nil
}

// Convolve applies k to every interior pixel of src, per channel. Pixels
// within Radius of any edge are copied from src unchanged. Weighted sums are
// clamped to [0,255] and truncated, except that a sum within
// truncationEpsilon below an integer is taken as that integer.
func Convolve(src *core.Buffer, k *Kernel) *core.Buffer {
	out := src.Clone()
	r := k.Radius()
	width, height, channels := src.Width(), src.Height(), src.Channels()

	for row := r; row < height-r; row++ {
		for col := r; col < width-r; col++ {
			for ch := 0; ch < channels; ch++ {
				sum := 0.0
				for i := 0; i < k.Size; i++ {
					for j := 0; j < k.Size; j++ {
						sum += k.At(i, j) * float64(src.At(row+i-r, col+j-r, ch))
					}
				}
				out.Set(row, col, ch, truncateSample(sum))
			}
		}
	}
	return out
}

func truncateSample(v float64) uint8 {
	v += truncationEpsilon
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}
