package algorithms

import (
	"slices"

	"comic-grid/internal/core"
)

// Median replaces every interior sample with the median of its size×size
// neighbourhood, channel by channel. Even sizes are coerced to the next odd
// size, so the window count is always odd. Border pixels within the window
// radius are copied unchanged.
func Median(src *core.Buffer, size int) (*core.Buffer, error) {
	size, err := OddSize(size)
	if err != nil {
		return nil, err
	}

	out := src.Clone()
	r := (size - 1) / 2
	width, height, channels := src.Width(), src.Height(), src.Channels()
	window := make([]uint8, 0, size*size)

	for row := r; row < height-r; row++ {
		for col := r; col < width-r; col++ {
			for ch := 0; ch < channels; ch++ {
				window = window[:0]
				for y := row - r; y <= row+r; y++ {
					for x := col - r; x <= col+r; x++ {
						window = append(window, src.At(y, x, ch))
					}
				}
				slices.Sort(window)
				out.Set(row, col, ch, window[len(window)/2])
			}
		}
	}
	return out, nil
}
