package core

import "fmt"

// HConcat places buffers side by side. All inputs must share height and
// channel count.
func HConcat(tiles ...*Buffer) (*Buffer, error) {
	if len(tiles) == 0 {
		return nil, ErrEmptyBuffer
	}
	height, channels := tiles[0].height, tiles[0].channels
	width := 0
	for i, t := range tiles {
		if t.Empty() {
			return nil, fmt.Errorf("tile %d: %w", i, ErrEmptyBuffer)
		}
		if t.height != height {
			return nil, fmt.Errorf("tile %d height %d, want %d: %w", i, t.height, height, ErrDimensionMismatch)
		}
		if t.channels != channels {
			return nil, fmt.Errorf("tile %d has %d channels, want %d: %w", i, t.channels, channels, ErrChannelMismatch)
		}
		width += t.width
	}

	out := NewBuffer(width, height, channels)
	for row := 0; row < height; row++ {
		dst := out.pix[row*width*channels:]
		for _, t := range tiles {
			stride := t.width * channels
			n := copy(dst, t.pix[row*stride:(row+1)*stride])
			dst = dst[n:]
		}
	}
	return out, nil
}

// VConcat stacks buffers top to bottom. All inputs must share width and
// channel count.
func VConcat(tiles ...*Buffer) (*Buffer, error) {
	if len(tiles) == 0 {
		return nil, ErrEmptyBuffer
	}
	width, channels := tiles[0].width, tiles[0].channels
	height := 0
	for i, t := range tiles {
		if t.Empty() {
			return nil, fmt.Errorf("tile %d: %w", i, ErrEmptyBuffer)
		}
		if t.width != width {
			return nil, fmt.Errorf("tile %d width %d, want %d: %w", i, t.width, width, ErrDimensionMismatch)
		}
		if t.channels != channels {
			return nil, fmt.Errorf("tile %d has %d channels, want %d: %w", i, t.channels, channels, ErrChannelMismatch)
		}
		height += t.height
	}

	out := NewBuffer(width, height, channels)
	off := 0
	for _, t := range tiles {
		off += copy(out.pix[off:], t.pix)
	}
	return out, nil
}

// Grid lays tiles out row-major with the given number of columns: each group
// of columns tiles is concatenated horizontally, then the rows are stacked.
// len(tiles) must be a multiple of columns.
func Grid(tiles []*Buffer, columns int) (*Buffer, error) {
	if columns <= 0 {
		return nil, fmt.Errorf("grid needs at least one column, got %d", columns)
	}
	if len(tiles) == 0 || len(tiles)%columns != 0 {
		return nil, fmt.Errorf("cannot arrange %d tiles in %d columns", len(tiles), columns)
	}

	rows := make([]*Buffer, 0, len(tiles)/columns)
	for start := 0; start < len(tiles); start += columns {
		row, err := HConcat(tiles[start : start+columns]...)
		if err != nil {
			return nil, fmt.Errorf("grid row %d: %w", start/columns, err)
		}
		rows = append(rows, row)
	}

	out, err := VConcat(rows...)
	if err != nil {
		return nil, fmt.Errorf("grid stack: %w", err)
	}
	return out, nil
}
