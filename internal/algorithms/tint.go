package algorithms

import "comic-grid/internal/core"

// Tint blends every sample with the matching tint channel at equal weight:
// (s + t + 1) / 2, saturated to 255. The source is not modified. For a
// single-channel source the first tint channel is used.
func Tint(src *core.Buffer, tint core.Color) *core.Buffer {
	out := core.NewBuffer(src.Width(), src.Height(), src.Channels())
	channels := src.Channels()

	for row := 0; row < src.Height(); row++ {
		for col := 0; col < src.Width(); col++ {
			for ch := 0; ch < channels; ch++ {
				v := (int(src.At(row, col, ch)) + int(tint[ch]) + 1) / 2
				if v > 255 {
					v = 255
				}
				out.Set(row, col, ch, uint8(v))
			}
		}
	}
	return out
}
