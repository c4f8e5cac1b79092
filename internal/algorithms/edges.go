// Gradient magnitude edge detection
package algorithms

import (
	"math"

	"comic-grid/internal/core"
)

// Mask values. 255 marks an edge everywhere in this module.
const (
	MaskEdge       uint8 = 255
	MaskBackground uint8 = 0
)

// DefaultEdgeThreshold is the gradient magnitude a pixel must exceed to be
// classified as an edge.
const DefaultEdgeThreshold = 100

// Luma weights (ITU-R BT.601).
const (
	lumaR = 0.299
	lumaG = 0.587
	lumaB = 0.114
)

var (
	sobelX = [3][3]int{
		{-1, 0, 1},
		{-2, 0, 2},
		{-1, 0, 1},
	}
	sobelY = [3][3]int{
		{-1, -2, -1},
		{0, 0, 0},
		{1, 2, 1},
	}
)

// Luminance converts a BGR buffer to single-channel luma,
// Y = 0.299 R + 0.587 G + 0.114 B rounded to nearest. Single-channel input
// is returned as a copy.
func Luminance(src *core.Buffer) *core.Buffer {
	if src.Channels() == 1 {
		return src.Clone()
	}
	out := core.NewBuffer(src.Width(), src.Height(), 1)
	for row := 0; row < src.Height(); row++ {
		for col := 0; col < src.Width(); col++ {
			y := lumaB*float64(src.At(row, col, core.ChannelB)) +
				lumaG*float64(src.At(row, col, core.ChannelG)) +
				lumaR*float64(src.At(row, col, core.ChannelR))
			out.Set(row, col, 0, uint8(math.Min(255, math.Round(y))))
		}
	}
	return out
}

// EdgeDetector thresholds the Sobel gradient magnitude of the luma channel.
type EdgeDetector struct {
	Threshold int
}

func NewEdgeDetector(threshold int) EdgeDetector {
	return EdgeDetector{Threshold: threshold}
}

// Magnitude returns the truncated Sobel gradient magnitude at every interior
// pixel of a single-channel buffer. The 1-pixel border stays 0.
func Magnitude(gray *core.Buffer) []int {
	width, height := gray.Width(), gray.Height()
	mag := make([]int, width*height)

	for row := 1; row < height-1; row++ {
		for col := 1; col < width-1; col++ {
			gx, gy := 0, 0
			for i := 0; i < 3; i++ {
				for j := 0; j < 3; j++ {
					v := int(gray.At(row+i-1, col+j-1, 0))
					gx += sobelX[i][j] * v
					gy += sobelY[i][j] * v
				}
			}
			mag[row*width+col] = int(math.Sqrt(float64(gx*gx + gy*gy)))
		}
	}
	return mag
}

// Detect returns a single-channel mask of the same size as src where edge
// pixels are MaskEdge and everything else, including the 1-pixel border, is
// MaskBackground.
func (d EdgeDetector) Detect(src *core.Buffer) *core.Buffer {
	gray := Luminance(src)
	mag := Magnitude(gray)

	mask := core.NewBuffer(src.Width(), src.Height(), 1)
	for row := 0; row < src.Height(); row++ {
		for col := 0; col < src.Width(); col++ {
			if mag[row*src.Width()+col] > d.Threshold {
				mask.Set(row, col, 0, MaskEdge)
			}
		}
	}
	return mask
}
