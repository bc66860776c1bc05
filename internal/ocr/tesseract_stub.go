//go:build !tesseract

package ocr

import (
	"context"
	"image"

	"github.com/ironsheep/attention-cta/internal/detection"
)

const available = false

// DetectWords reports that OCR support is unavailable.
func (e *Engine) DetectWords(ctx context.Context, img image.Image) ([]detection.Word, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return nil, ErrUnavailable
}

// ReadLine reports that OCR support is unavailable.
func (e *Engine) ReadLine(ctx context.Context, img image.Image) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return "", ErrUnavailable
}

// Version returns "unavailable".
func (e *Engine) Version() string {
	return "unavailable"
}
