// Image loading and saving backed by OpenCV
package io

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"gocv.io/x/gocv"

	"comic-grid/internal/core"
	"comic-grid/internal/opencv"
)

var (
	ErrDecode            = errors.New("failed to decode image")
	ErrUnsupportedFormat = errors.New("unsupported image format")
)

var supportedFormats = []string{".jpg", ".jpeg", ".png", ".tiff", ".tif", ".bmp"}

// ImageLoader handles image file operations
type ImageLoader struct {
	logger logrus.FieldLogger
}

func NewImageLoader(logger logrus.FieldLogger) *ImageLoader {
	return &ImageLoader{
		logger: logger,
	}
}

// LoadImage decodes a colour image into a 3-channel BGR buffer.
func (il *ImageLoader) LoadImage(path string) (*core.Buffer, error) {
	il.logger.WithField("filepath", path).Debug("Loading image")

	if !il.isSupportedImageFormat(path) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}

	mat := gocv.IMRead(path, gocv.IMReadColor)
	defer mat.Close()
	if mat.Empty() {
		return nil, fmt.Errorf("%w: %s", ErrDecode, path)
	}

	buf, err := opencv.FromMat(mat)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDecode, path, err)
	}
	if err := core.ValidateImage(buf); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDecode, path, err)
	}

	il.logger.WithFields(logrus.Fields{
		"filepath": path,
		"width":    buf.Width(),
		"height":   buf.Height(),
		"channels": buf.Channels(),
	}).Info("Image loaded successfully")

	return buf, nil
}

// SaveImage encodes buf to path; the format follows the file extension.
func (il *ImageLoader) SaveImage(buf *core.Buffer, path string) error {
	il.logger.WithField("filepath", path).Debug("Saving image")

	if buf.Empty() {
		return fmt.Errorf("cannot save empty image")
	}

	if !il.isSupportedImageFormat(path) {
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}

	mat, err := opencv.ToMat(buf)
	if err != nil {
		return err
	}
	defer mat.Close()

	if !gocv.IMWrite(path, mat) {
		return fmt.Errorf("failed to save image: %s", path)
	}

	il.logger.WithFields(logrus.Fields{
		"filepath": path,
		"width":    buf.Width(),
		"height":   buf.Height(),
		"channels": buf.Channels(),
	}).Debug("Image saved successfully")

	return nil
}

func (il *ImageLoader) isSupportedImageFormat(path string) bool {
	return lo.Contains(supportedFormats, strings.ToLower(filepath.Ext(path)))
}

// SupportedFormats lists the file extensions LoadImage and SaveImage accept.
func SupportedFormats() []string {
	return append([]string(nil), supportedFormats...)
}
