package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"comic-grid/internal/core"
)

type memorySink struct {
	files map[string]*core.Buffer
	fail  string
}

func (m *memorySink) put(name string, buf *core.Buffer) error {
	if name == m.fail {
		return errors.New("disk full")
	}
	m.files[name] = buf
	return nil
}

func (m *memorySink) WriteTinted(v string, b *core.Buffer) error { return m.put("tint:"+v, b) }
func (m *memorySink) WriteFiltered(v string, b *core.Buffer) error { return m.put("filter:"+v, b) }
func (m *memorySink) WriteGrid(b *core.Buffer) error { return m.put("grid", b) }
func (m *memorySink) WriteComic(b *core.Buffer) error { return m.put("comic", b) }

func TestExportWritesEveryArtifact(t *testing.T) {
	p, _, _ := newTestPipeline(t, DefaultOptions())
	result, err := p.Run(context.Background(), source(8, 6), referenceVariants())
	require.NoError(t, err)

	sink := &memorySink{files: map[string]*core.Buffer{}}
	require.NoError(t, result.Export(sink))

	assert.Len(t, sink.files, 10)
	assert.Same(t, result.Grid, sink.files["grid"])
	assert.Same(t, result.Variants[3].Filtered, sink.files["filter:yellow"])
}

func TestExportContinuesAfterFailure(t *testing.T) {
	p, _, _ := newTestPipeline(t, DefaultOptions())
	result, err := p.Run(context.Background(), source(8, 6), referenceVariants())
	require.NoError(t, err)

	sink := &memorySink{files: map[string]*core.Buffer{}, fail: "tint:red"}
	err = result.Export(sink)

	assert.ErrorContains(t, err, "disk full")
	assert.Len(t, sink.files, 9)
}

func TestExportPartialResult(t *testing.T) {
	p, _, _ := newTestPipeline(t, DefaultOptions())
	variants := referenceVariants()
	variants[0].Parameters = map[string]interface{}{"d": 0}

	result, err := p.Run(context.Background(), source(8, 6), variants)
	require.Error(t, err)

	sink := &memorySink{files: map[string]*core.Buffer{}}
	require.NoError(t, result.Export(sink))
	assert.Len(t, sink.files, 7, "four tinted, three filtered, no grid or comic")
}
