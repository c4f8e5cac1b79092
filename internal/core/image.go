// Core pixel buffer shared by every stage of the pipeline
package core

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyBuffer       = errors.New("buffer is empty")
	ErrDimensionMismatch = errors.New("buffer dimensions mismatch")
	ErrChannelMismatch   = errors.New("buffer channel count mismatch")
)

// Channel order for 3-channel buffers. Matches the OpenCV in-memory layout.
const (
	ChannelB = 0
	ChannelG = 1
	ChannelR = 2
)

// Buffer is a width×height raster of 8-bit samples with 1 or 3 interleaved
// channels. Rows are stored top to bottom.
type Buffer struct {
	width    int
	height   int
	channels int
	pix      []uint8
}

// Color is a constant BGR value.
type Color [3]uint8

// NewBuffer allocates a zeroed buffer.
func NewBuffer(width, height, channels int) *Buffer {
	if width < 0 || height < 0 {
		panic(fmt.Sprintf("core: invalid buffer dimensions %dx%d", width, height))
	}
	if channels != 1 && channels != 3 {
		panic(fmt.Sprintf("core: unsupported channel count %d", channels))
	}
	return &Buffer{
		width:    width,
		height:   height,
		channels: channels,
		pix:      make([]uint8, width*height*channels),
	}
}

// NewBufferFromBytes wraps data without copying. len(data) must equal
// width*height*channels.
func NewBufferFromBytes(width, height, channels int, data []uint8) (*Buffer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid dimensions: %dx%d", width, height)
	}
	if channels != 1 && channels != 3 {
		return nil, fmt.Errorf("unsupported number of channels: %d", channels)
	}
	if len(data) != width*height*channels {
		return nil, fmt.Errorf("data length %d does not match %dx%dx%d", len(data), width, height, channels)
	}
	return &Buffer{width: width, height: height, channels: channels, pix: data}, nil
}

// NewFilled returns a buffer where every pixel equals c.
func NewFilled(width, height int, c Color) *Buffer {
	b := NewBuffer(width, height, 3)
	for i := 0; i < len(b.pix); i += 3 {
		b.pix[i] = c[0]
		b.pix[i+1] = c[1]
		b.pix[i+2] = c[2]
	}
	return b
}

func (b *Buffer) Width() int    { return b.width }
func (b *Buffer) Height() int   { return b.height }
func (b *Buffer) Channels() int { return b.channels }

// Empty reports whether the buffer holds no pixels.
func (b *Buffer) Empty() bool {
	return b == nil || b.width == 0 || b.height == 0
}

// Bytes exposes the backing slice. Callers must not write to it when the
// buffer is shared between goroutines.
func (b *Buffer) Bytes() []uint8 {
	return b.pix
}

func (b *Buffer) offset(row, col, ch int) int {
	if row < 0 || row >= b.height || col < 0 || col >= b.width || ch < 0 || ch >= b.channels {
		panic(fmt.Sprintf("core: index (%d,%d,%d) out of range for %dx%dx%d buffer",
			row, col, ch, b.width, b.height, b.channels))
	}
	return (row*b.width+col)*b.channels + ch
}

// At returns the sample at (row, col, ch). Out of range indices panic.
func (b *Buffer) At(row, col, ch int) uint8 {
	return b.pix[b.offset(row, col, ch)]
}

// Set stores v at (row, col, ch). Out of range indices panic.
func (b *Buffer) Set(row, col, ch int, v uint8) {
	b.pix[b.offset(row, col, ch)] = v
}

// Pixel returns the BGR triple at (row, col) of a 3-channel buffer.
func (b *Buffer) Pixel(row, col int) Color {
	i := b.offset(row, col, 0)
	if b.channels == 1 {
		return Color{b.pix[i], b.pix[i], b.pix[i]}
	}
	return Color{b.pix[i], b.pix[i+1], b.pix[i+2]}
}

// SetPixel writes c at (row, col) of a 3-channel buffer.
func (b *Buffer) SetPixel(row, col int, c Color) {
	i := b.offset(row, col, b.channels-1) - (b.channels - 1)
	copy(b.pix[i:i+b.channels], c[:b.channels])
}

// Clone returns a deep copy.
func (b *Buffer) Clone() *Buffer {
	out := &Buffer{width: b.width, height: b.height, channels: b.channels, pix: make([]uint8, len(b.pix))}
	copy(out.pix, b.pix)
	return out
}

// SameShape reports whether two buffers share width, height and channel count.
func (b *Buffer) SameShape(o *Buffer) bool {
	return b.width == o.width && b.height == o.height && b.channels == o.channels
}

// Equal compares shape and samples.
func (b *Buffer) Equal(o *Buffer) bool {
	if !b.SameShape(o) {
		return false
	}
	for i := range b.pix {
		if b.pix[i] != o.pix[i] {
			return false
		}
	}
	return true
}

// ExpandGray replicates a single-channel buffer across three channels. A
// 3-channel input is returned as a copy.
func (b *Buffer) ExpandGray() *Buffer {
	if b.channels == 3 {
		return b.Clone()
	}
	out := NewBuffer(b.width, b.height, 3)
	for i, v := range b.pix {
		out.pix[3*i] = v
		out.pix[3*i+1] = v
		out.pix[3*i+2] = v
	}
	return out
}

func (b *Buffer) String() string {
	return fmt.Sprintf("%dx%dx%d", b.width, b.height, b.channels)
}

// ValidateImage checks a decoded buffer for basic requirements
func ValidateImage(b *Buffer) error {
	if b.Empty() {
		return ErrEmptyBuffer
	}

	if b.channels != 1 && b.channels != 3 {
		return fmt.Errorf("unsupported channel count: %d", b.channels)
	}

	// Check for reasonable size limits (prevent memory issues)
	const maxDimension = 16384
	if b.width > maxDimension || b.height > maxDimension {
		return fmt.Errorf("image too large: %dx%d (max: %d)", b.width, b.height, maxDimension)
	}

	return nil
}
