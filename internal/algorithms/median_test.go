package algorithms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"comic-grid/internal/core"
)

func TestMedianUniformImageUnchanged(t *testing.T) {
	src := core.NewFilled(16, 9, core.Color{3, 141, 59})

	out, err := Median(src, 5)
	require.NoError(t, err)

	assert.True(t, out.Equal(src))
}

func TestMedianBorderIdentity(t *testing.T) {
	src := randomBuffer(17, 11, 4)

	for _, size := range []int{3, 5, 6, 15} {
		out, err := Median(src, size)
		require.NoError(t, err)

		radius := size / 2
		row, col, ch, ok := borderDiff(src, out, radius)
		assert.True(t, ok, "size %d: border changed at (%d,%d,%d)", size, row, col, ch)
	}
}

func TestMedianRemovesImpulse(t *testing.T) {
	src := core.NewFilled(5, 5, core.Color{20, 20, 20})
	src.SetPixel(2, 2, core.Color{255, 0, 255})

	out, err := Median(src, 3)
	require.NoError(t, err)

	assert.Equal(t, core.Color{20, 20, 20}, out.Pixel(2, 2))
}

func TestMedianChannelsIndependent(t *testing.T) {
	// Each channel has its own ordering; mixing channels would change the result.
	src := core.NewBuffer(3, 3, 3)
	values := []core.Color{
		{1, 90, 5}, {2, 80, 5}, {3, 70, 5},
		{4, 60, 5}, {5, 50, 200}, {6, 40, 5},
		{7, 30, 200}, {8, 20, 200}, {9, 10, 200},
	}
	for i, c := range values {
		src.SetPixel(i/3, i%3, c)
	}

	out, err := Median(src, 3)
	require.NoError(t, err)

	assert.Equal(t, core.Color{5, 50, 5}, out.Pixel(1, 1))
}

func TestMedianSingleChannel(t *testing.T) {
	src := core.NewBuffer(3, 3, 1)
	for i, v := range []uint8{9, 1, 8, 2, 7, 3, 6, 4, 5} {
		src.Set(i/3, i%3, 0, v)
	}

	out, err := Median(src, 3)
	require.NoError(t, err)

	assert.Equal(t, uint8(5), out.At(1, 1, 0))
}

func TestMedianRejectsZeroSize(t *testing.T) {
	_, err := Median(randomBuffer(4, 4, 5), 0)
	assert.ErrorIs(t, err, ErrInvalidKernelSize)
}
