package algorithms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"comic-grid/internal/core"
)

func TestLuminanceWeights(t *testing.T) {
	src := core.NewBuffer(3, 1, 3)
	src.SetPixel(0, 0, core.Color{0, 0, 255}) // red
	src.SetPixel(0, 1, core.Color{0, 255, 0}) // green
	src.SetPixel(0, 2, core.Color{255, 0, 0}) // blue

	gray := Luminance(src)

	assert.Equal(t, 1, gray.Channels())
	assert.Equal(t, uint8(76), gray.At(0, 0, 0))
	assert.Equal(t, uint8(150), gray.At(0, 1, 0))
	assert.Equal(t, uint8(29), gray.At(0, 2, 0))
}

func TestDetectFlatImageHasNoEdges(t *testing.T) {
	src := core.NewFilled(10, 10, core.Color{90, 90, 90})

	mask := NewEdgeDetector(DefaultEdgeThreshold).Detect(src)

	for _, v := range mask.Bytes() {
		require.Equal(t, MaskBackground, v)
	}
}

func TestDetectVerticalStep(t *testing.T) {
	const width, height, split = 12, 8, 6
	src := verticalStep(width, height, split)

	mask := NewEdgeDetector(DefaultEdgeThreshold).Detect(src)

	require.Equal(t, 1, mask.Channels())
	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			border := row == 0 || col == 0 || row == height-1 || col == width-1
			boundary := col == split-1 || col == split
			want := MaskBackground
			if boundary && !border {
				want = MaskEdge
			}
			assert.Equal(t, want, mask.At(row, col, 0), "(%d,%d)", row, col)
		}
	}
}

func TestDetectThresholdIsStrict(t *testing.T) {
	// A step of height 25 gives |gx| = 4*25 = 100 at the boundary.
	src := core.NewBuffer(5, 5, 1)
	for row := 0; row < 5; row++ {
		for col := 3; col < 5; col++ {
			src.Set(row, col, 0, 25)
		}
	}

	assert.Equal(t, []int{0, 0, 100, 100, 0}, Magnitude(src)[10:15])
	assert.Equal(t, MaskBackground, NewEdgeDetector(100).Detect(src).At(2, 2, 0))
	assert.Equal(t, MaskEdge, NewEdgeDetector(99).Detect(src).At(2, 2, 0))
}

func TestDetectBorderStaysZero(t *testing.T) {
	src := randomBuffer(9, 7, 11)

	mask := NewEdgeDetector(0).Detect(src)

	for col := 0; col < 9; col++ {
		assert.Equal(t, MaskBackground, mask.At(0, col, 0))
		assert.Equal(t, MaskBackground, mask.At(6, col, 0))
	}
	for row := 0; row < 7; row++ {
		assert.Equal(t, MaskBackground, mask.At(row, 0, 0))
		assert.Equal(t, MaskBackground, mask.At(row, 8, 0))
	}
}
