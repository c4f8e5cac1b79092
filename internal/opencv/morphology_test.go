package opencv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"comic-grid/internal/algorithms"
	"comic-grid/internal/core"
)

func TestErodeRemovesBrightSpeck(t *testing.T) {
	src := core.NewFilled(7, 7, core.Color{40, 40, 40})
	src.SetPixel(3, 3, core.Color{250, 250, 250})
	m := NewMorphology()

	eroded, err := m.Morph(src, algorithms.MorphErode, 3, 1)
	require.NoError(t, err)
	assert.Equal(t, core.Color{40, 40, 40}, eroded.Pixel(3, 3))

	dilated, err := m.Morph(src, algorithms.MorphDilate, 3, 1)
	require.NoError(t, err)
	assert.Equal(t, core.Color{250, 250, 250}, dilated.Pixel(2, 2))
	assert.Equal(t, core.Color{40, 40, 40}, dilated.Pixel(1, 1))
}

func TestDilateIterationsGrowFurther(t *testing.T) {
	src := core.NewFilled(9, 9, core.Color{0, 0, 0})
	src.SetPixel(4, 4, core.Color{0, 0, 200})
	m := NewMorphology()

	once, err := m.Morph(src, algorithms.MorphDilate, 3, 1)
	require.NoError(t, err)
	twice, err := m.Morph(src, algorithms.MorphDilate, 3, 2)
	require.NoError(t, err)

	assert.Equal(t, uint8(0), once.At(2, 2, core.ChannelR))
	assert.Equal(t, uint8(200), twice.At(2, 2, core.ChannelR))
}

func TestClosingFillsDarkHole(t *testing.T) {
	src := core.NewFilled(7, 7, core.Color{180, 180, 180})
	src.SetPixel(3, 3, core.Color{0, 0, 0})

	out, err := NewMorphology().Morph(src, algorithms.MorphClose, 3, 1)
	require.NoError(t, err)
	assert.Equal(t, core.Color{180, 180, 180}, out.Pixel(3, 3))
}

func TestMorphologyKeepsUniformEdges(t *testing.T) {
	src := core.NewFilled(5, 4, core.Color{90, 60, 30})

	for _, op := range []algorithms.MorphOp{algorithms.MorphErode, algorithms.MorphDilate, algorithms.MorphOpen} {
		out, err := NewMorphology().Morph(src, op, 3, 1)
		require.NoError(t, err, op.String())
		assert.True(t, out.Equal(src), op.String())
	}
}

func TestMorphologySingleChannelMask(t *testing.T) {
	mask := core.NewBuffer(6, 6, 1)
	mask.Set(2, 2, 0, 255)

	out, err := NewMorphology().Morph(mask, algorithms.MorphOpen, 3, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, out.Channels())
	assert.Equal(t, uint8(0), out.At(2, 2, 0))
}

func TestMorphologyRegisteredFilter(t *testing.T) {
	registry := algorithms.NewRegistry(nil, NewMorphology())
	src := core.NewFilled(7, 7, core.Color{40, 40, 40})
	src.SetPixel(3, 3, core.Color{250, 250, 250})

	out, err := registry.Apply("open", src, map[string]interface{}{"kernel_size": 3})
	require.NoError(t, err)
	assert.True(t, out.Equal(core.NewFilled(7, 7, core.Color{40, 40, 40})))
}
