package algorithms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"comic-grid/internal/core"
)

func TestGaussianKernelSumsToOne(t *testing.T) {
	cases := []struct {
		size  int
		sigma float64
	}{
		{1, 1}, {2, 0.5}, {3, 0}, {5, 1.2}, {8, 3}, {15, 10}, {21, 0.3},
	}

	for _, tc := range cases {
		k, err := GaussianKernel(tc.size, tc.sigma)
		require.NoError(t, err)
		assert.Equal(t, 1, k.Size%2, "size %d must be odd", k.Size)
		assert.InDelta(t, 1.0, k.Sum(), 1e-9, "size=%d sigma=%g", tc.size, tc.sigma)
	}
}

func TestGaussianKernelCoercesEvenSize(t *testing.T) {
	k, err := GaussianKernel(4, 1)
	require.NoError(t, err)
	assert.Equal(t, 5, k.Size)
	assert.Equal(t, 2, k.Radius())
}

func TestGaussianKernelIsSymmetricAndPeaked(t *testing.T) {
	k, err := GaussianKernel(5, 1)
	require.NoError(t, err)

	for i := 0; i < k.Size; i++ {
		for j := 0; j < k.Size; j++ {
			assert.InDelta(t, k.At(i, j), k.At(j, i), 1e-12)
			assert.InDelta(t, k.At(i, j), k.At(k.Size-1-i, k.Size-1-j), 1e-12)
			assert.LessOrEqual(t, k.At(i, j), k.At(2, 2))
		}
	}
}

func TestGaussianKernelRejectsZeroSize(t *testing.T) {
	_, err := GaussianKernel(0, 1)
	assert.ErrorIs(t, err, ErrInvalidKernelSize)

	_, err = GaussianKernel(-3, 1)
	assert.ErrorIs(t, err, ErrInvalidKernelSize)
}

func TestNewKernelValidation(t *testing.T) {
	_, err := NewKernel(2, make([]float64, 4))
	assert.ErrorIs(t, err, ErrInvalidKernelSize)

	_, err = NewKernel(3, make([]float64, 8))
	assert.Error(t, err)
}

func TestConvolveBorderIdentity(t *testing.T) {
	src := randomBuffer(20, 13, 1)
	for _, size := range []int{3, 5, 15} {
		k, err := GaussianKernel(size, 2)
		require.NoError(t, err)

		out := Convolve(src, k)

		row, col, ch, ok := borderDiff(src, out, k.Radius())
		assert.True(t, ok, "size %d: border changed at (%d,%d,%d)", size, row, col, ch)
	}
}

func TestConvolveIdentityKernel(t *testing.T) {
	src := randomBuffer(8, 8, 2)
	k, err := NewKernel(1, []float64{1})
	require.NoError(t, err)

	assert.True(t, Convolve(src, k).Equal(src))
}

func TestConvolveUniformImage(t *testing.T) {
	src := core.NewFilled(12, 12, core.Color{10, 100, 250})
	k, err := GaussianKernel(7, 3)
	require.NoError(t, err)

	assert.True(t, Convolve(src, k).Equal(src))
}

func TestConvolveTruncatesWeightedSum(t *testing.T) {
	// Box kernel over a 3x3 patch holding eight 0s and a single 10: 10/9 = 1.11.
	src := core.NewBuffer(3, 3, 1)
	src.Set(1, 1, 0, 10)
	weights := make([]float64, 9)
	for i := range weights {
		weights[i] = 1.0 / 9.0
	}
	k, err := NewKernel(3, weights)
	require.NoError(t, err)

	out := Convolve(src, k)

	assert.Equal(t, uint8(1), out.At(1, 1, 0))
}

func TestConvolveToleratesDriftBelowInteger(t *testing.T) {
	src := core.NewFilled(1, 1, core.Color{100, 100, 100})

	nearly, err := NewKernel(1, []float64{1 - 1e-9})
	require.NoError(t, err)
	assert.Equal(t, uint8(100), Convolve(src, nearly).At(0, 0, 0))

	below, err := NewKernel(1, []float64{0.999})
	require.NoError(t, err)
	assert.Equal(t, uint8(99), Convolve(src, below).At(0, 0, 0))
}

func TestConvolveClampsNegativeAndOverflow(t *testing.T) {
	src := core.NewBuffer(3, 3, 1)
	src.Set(1, 1, 0, 200)

	sharpen, err := NewKernel(3, []float64{0, 0, 0, 0, 2, 0, 0, 0, 0})
	require.NoError(t, err)
	assert.Equal(t, uint8(255), Convolve(src, sharpen).At(1, 1, 0))

	negate, err := NewKernel(3, []float64{0, 0, 0, 0, -1, 0, 0, 0, 0})
	require.NoError(t, err)
	assert.Equal(t, uint8(0), Convolve(src, negate).At(1, 1, 0))
}

func TestConvolveKernelLargerThanImage(t *testing.T) {
	src := randomBuffer(4, 4, 3)
	k, err := GaussianKernel(9, 2)
	require.NoError(t, err)

	assert.True(t, Convolve(src, k).Equal(src))
}
