// Conversion between core buffers and OpenCV matrices
package opencv

import (
	"fmt"

	"gocv.io/x/gocv"

	"comic-grid/internal/core"
)

// ToMat copies a buffer into a new 8-bit Mat. The caller owns the result and
// must Close it.
func ToMat(b *core.Buffer) (gocv.Mat, error) {
	if b.Empty() {
		return gocv.NewMat(), core.ErrEmptyBuffer
	}

	matType := gocv.MatTypeCV8UC3
	if b.Channels() == 1 {
		matType = gocv.MatTypeCV8UC1
	}

	data := make([]byte, len(b.Bytes()))
	copy(data, b.Bytes())
	mat, err := gocv.NewMatFromBytes(b.Height(), b.Width(), matType, data)
	if err != nil {
		return gocv.NewMat(), fmt.Errorf("failed to create Mat from %s buffer: %w", b, err)
	}
	return mat, nil
}

// FromMat copies an 8-bit, 1- or 3-channel Mat into a new buffer.
func FromMat(mat gocv.Mat) (*core.Buffer, error) {
	if mat.Empty() {
		return nil, core.ErrEmptyBuffer
	}

	channels := mat.Channels()
	if channels != 1 && channels != 3 {
		return nil, fmt.Errorf("unsupported number of channels: %d", channels)
	}
	if mat.Type() != gocv.MatTypeCV8UC1 && mat.Type() != gocv.MatTypeCV8UC3 {
		return nil, fmt.Errorf("unsupported Mat type: %v", mat.Type())
	}

	data := mat.ToBytes()
	out := make([]uint8, len(data))
	copy(out, data)
	return core.NewBufferFromBytes(mat.Cols(), mat.Rows(), channels, out)
}
