package io

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"comic-grid/internal/core"
)

func TestPrepareCreatesDirectory(t *testing.T) {
	logger, hook := test.NewNullLogger()
	dir := filepath.Join(t.TempDir(), "out", "nested")
	w := NewOutputWriter(dir, NewImageLoader(logger), logger)

	require.NoError(t, w.Prepare())
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.Equal(t, "Output directory created", hook.LastEntry().Message)

	require.NoError(t, w.Prepare(), "existing directory is fine")
}

func TestPrepareRejectsFile(t *testing.T) {
	logger, _ := test.NewNullLogger()
	path := filepath.Join(t.TempDir(), "taken")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	err := NewOutputWriter(path, NewImageLoader(logger), logger).Prepare()
	assert.ErrorIs(t, err, ErrOutputDir)
}

func TestSaveAndLoadPNG(t *testing.T) {
	logger, _ := test.NewNullLogger()
	loader := NewImageLoader(logger)
	w := NewOutputWriter(t.TempDir(), loader, logger)
	require.NoError(t, w.Prepare())

	src := core.NewFilled(7, 5, core.Color{10, 20, 30})
	src.SetPixel(4, 6, core.Color{200, 100, 0})
	require.NoError(t, w.Write(FilteredFile("red"), src))

	back, err := loader.LoadImage(filepath.Join(w.Dir(), "red_filtered.png"))
	require.NoError(t, err)
	assert.True(t, back.Equal(src))
}

func TestLoadImageErrors(t *testing.T) {
	logger, _ := test.NewNullLogger()
	loader := NewImageLoader(logger)

	_, err := loader.LoadImage("picture.gif")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = loader.LoadImage(filepath.Join(t.TempDir(), "missing.png"))
	assert.ErrorIs(t, err, ErrDecode)
}

func TestSupportedFormatsIsACopy(t *testing.T) {
	formats := SupportedFormats()
	assert.Contains(t, formats, ".png")
	formats[0] = ".gif"
	assert.NotContains(t, SupportedFormats(), ".gif")
}

func TestArtifactNames(t *testing.T) {
	assert.Equal(t, "blue.png", TintedFile("blue"))
	assert.Equal(t, "blue_filtered.png", FilteredFile("blue"))
}
