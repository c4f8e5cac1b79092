package io

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"comic-grid/internal/core"
)

var ErrOutputDir = errors.New("cannot prepare output directory")

// Artifact file names.
const (
	GridFile  = "grid.png"
	ComicFile = "comic.png"
)

// TintedFile is the name of a variant's tinted artifact.
func TintedFile(variant string) string {
	return variant + ".png"
}

// FilteredFile is the name of a variant's filtered artifact.
func FilteredFile(variant string) string {
	return variant + "_filtered.png"
}

// OutputWriter writes run artifacts into a single directory.
type OutputWriter struct {
	dir    string
	loader *ImageLoader
	logger logrus.FieldLogger
}

func NewOutputWriter(dir string, loader *ImageLoader, logger logrus.FieldLogger) *OutputWriter {
	return &OutputWriter{dir: dir, loader: loader, logger: logger}
}

func (w *OutputWriter) Dir() string {
	return w.dir
}

// Prepare creates the output directory if it does not exist.
func (w *OutputWriter) Prepare() error {
	info, err := os.Stat(w.dir)
	switch {
	case err == nil && !info.IsDir():
		return fmt.Errorf("%w: %s is not a directory", ErrOutputDir, w.dir)
	case err == nil:
		return nil
	case !errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("%w: %v", ErrOutputDir, err)
	}

	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return fmt.Errorf("%w: %v", ErrOutputDir, err)
	}
	w.logger.WithField("dir", w.dir).Info("Output directory created")
	return nil
}

// Write saves buf under name inside the output directory.
func (w *OutputWriter) Write(name string, buf *core.Buffer) error {
	path := filepath.Join(w.dir, name)
	if err := w.loader.SaveImage(buf, path); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

func (w *OutputWriter) WriteTinted(variant string, buf *core.Buffer) error {
	return w.Write(TintedFile(variant), buf)
}

func (w *OutputWriter) WriteFiltered(variant string, buf *core.Buffer) error {
	return w.Write(FilteredFile(variant), buf)
}

func (w *OutputWriter) WriteGrid(buf *core.Buffer) error {
	return w.Write(GridFile, buf)
}

func (w *OutputWriter) WriteComic(buf *core.Buffer) error {
	return w.Write(ComicFile, buf)
}
