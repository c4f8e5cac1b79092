package algorithms

import (
	"math/rand"

	"comic-grid/internal/core"
)

// randomBuffer returns a deterministic noisy BGR buffer.
func randomBuffer(width, height int, seed int64) *core.Buffer {
	rng := rand.New(rand.NewSource(seed))
	b := core.NewBuffer(width, height, 3)
	for i := range b.Bytes() {
		b.Bytes()[i] = uint8(rng.Intn(256))
	}
	return b
}

// verticalStep is black for col < split and white from split on.
func verticalStep(width, height, split int) *core.Buffer {
	b := core.NewBuffer(width, height, 3)
	for row := 0; row < height; row++ {
		for col := split; col < width; col++ {
			b.SetPixel(row, col, core.Color{255, 255, 255})
		}
	}
	return b
}

// identitySmoother returns a copy and records how it was called.
type identitySmoother struct {
	calls    int
	diameter int
}

func (s *identitySmoother) Smooth(src *core.Buffer, diameter int, sigmaColor, sigmaSpace float64) (*core.Buffer, error) {
	s.calls++
	s.diameter = diameter
	return src.Clone(), nil
}

// borderDiff reports the first sample outside the interior that differs.
func borderDiff(src, out *core.Buffer, radius int) (row, col, ch int, ok bool) {
	for row := 0; row < src.Height(); row++ {
		for col := 0; col < src.Width(); col++ {
			interior := row >= radius && row < src.Height()-radius &&
				col >= radius && col < src.Width()-radius
			if interior {
				continue
			}
			for ch := 0; ch < src.Channels(); ch++ {
				if src.At(row, col, ch) != out.At(row, col, ch) {
					return row, col, ch, false
				}
			}
		}
	}
	return 0, 0, 0, true
}

// recordingMorpher returns a copy and records the requested operation.
type recordingMorpher struct {
	op         MorphOp
	size       int
	iterations int
}

func (m *recordingMorpher) Morph(src *core.Buffer, op MorphOp, size, iterations int) (*core.Buffer, error) {
	m.op, m.size, m.iterations = op, size, iterations
	return src.Clone(), nil
}
