package algorithms

import (
	"fmt"

	"comic-grid/internal/core"
)

// Smoother is an edge-preserving, noise-reducing smoothing routine for colour
// buffers (a bilateral filter). Implementations must return a buffer with the
// same shape as src and must not modify src.
type Smoother interface {
	Smooth(src *core.Buffer, diameter int, sigmaColor, sigmaSpace float64) (*core.Buffer, error)
}

// ComicParams configures the comic compositor.
type ComicParams struct {
	EdgeThreshold int
	Diameter      int
	SigmaColor    float64
	SigmaSpace    float64
	// PreBlur is an optional median window applied before edge detection.
	// Values below 2 disable it.
	PreBlur int
}

func DefaultComicParams() ComicParams {
	return ComicParams{
		EdgeThreshold: DefaultEdgeThreshold,
		Diameter:      9,
		SigmaColor:    150,
		SigmaSpace:    150,
	}
}

// Comic fuses an edge mask with a smoothed copy of its input.
type Comic struct {
	params   ComicParams
	smoother Smoother
}

func NewComic(params ComicParams, smoother Smoother) *Comic {
	return &Comic{params: params, smoother: smoother}
}

// Apply detects edges on src, smooths src and composites the two.
func (c *Comic) Apply(src *core.Buffer) (*core.Buffer, error) {
	if src.Empty() {
		return nil, core.ErrEmptyBuffer
	}
	if c.smoother == nil {
		return nil, fmt.Errorf("comic: no smoother configured")
	}

	edgeSource := src
	if c.params.PreBlur > 1 {
		blurred, err := Median(src, c.params.PreBlur)
		if err != nil {
			return nil, fmt.Errorf("comic pre-blur: %w", err)
		}
		edgeSource = blurred
	}
	mask := NewEdgeDetector(c.params.EdgeThreshold).Detect(edgeSource)

	smoothed, err := c.smoother.Smooth(src, c.params.Diameter, c.params.SigmaColor, c.params.SigmaSpace)
	if err != nil {
		return nil, fmt.Errorf("comic smoothing: %w", err)
	}

	return Composite(mask, smoothed)
}

// Composite copies smoothed and paints every pixel whose mask sample is
// MaskEdge solid black. mask must be single-channel with the same width and
// height as smoothed.
func Composite(mask, smoothed *core.Buffer) (*core.Buffer, error) {
	if mask.Channels() != 1 {
		return nil, fmt.Errorf("mask has %d channels: %w", mask.Channels(), core.ErrChannelMismatch)
	}
	if mask.Width() != smoothed.Width() || mask.Height() != smoothed.Height() {
		return nil, fmt.Errorf("mask %s vs image %s: %w", mask, smoothed, core.ErrDimensionMismatch)
	}

	out := smoothed.Clone()
	var black core.Color
	for row := 0; row < mask.Height(); row++ {
		for col := 0; col < mask.Width(); col++ {
			if mask.At(row, col, 0) == MaskEdge {
				out.SetPixel(row, col, black)
			}
		}
	}
	return out, nil
}
