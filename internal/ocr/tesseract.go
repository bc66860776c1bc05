//go:build tesseract

package ocr

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"strings"

	"github.com/ironsheep/attention-cta/internal/detection"
	"github.com/otiai10/gosseract/v2"
)

const available = true

// DetectWords finds words anywhere in the image (sparse text segmentation).
// Word boxes are in the coordinates of img.
func (e *Engine) DetectWords(ctx context.Context, img image.Image) ([]detection.Word, error) {
	client, err := e.client(ctx, img, gosseract.PSM_SPARSE_TEXT)
	if err != nil {
		return nil, err
	}
	defer client.Close()

	boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return nil, fmt.Errorf("failed to get word boxes: %w", err)
	}

	origin := img.Bounds().Min
	words := make([]detection.Word, 0, len(boxes))
	for _, box := range boxes {
		if strings.TrimSpace(box.Word) == "" {
			continue
		}
		words = append(words, detection.Word{
			Box:        box.Box.Add(origin),
			Text:       box.Word,
			Confidence: box.Confidence,
		})
	}
	return words, nil
}

// ReadLine treats the image as a single line of text and returns it trimmed.
func (e *Engine) ReadLine(ctx context.Context, img image.Image) (string, error) {
	client, err := e.client(ctx, img, gosseract.PSM_SINGLE_LINE)
	if err != nil {
		return "", err
	}
	defer client.Close()

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("OCR failed: %w", err)
	}
	return strings.TrimSpace(text), nil
}

// Version returns the linked Tesseract version.
func (e *Engine) Version() string {
	return gosseract.Version()
}

func (e *Engine) client(ctx context.Context, img image.Image, mode gosseract.PageSegMode) (*gosseract.Client, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if img.Bounds().Empty() {
		return nil, fmt.Errorf("empty image")
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	client := gosseract.NewClient()
	if e.TessdataPrefix != "" {
		if err := client.SetTessdataPrefix(e.TessdataPrefix); err != nil {
			client.Close()
			return nil, fmt.Errorf("failed to set tessdata path: %w", err)
		}
	}
	if err := client.SetLanguage(strings.Split(e.Language, "+")...); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to set language: %w", err)
	}
	if err := client.SetPageSegMode(mode); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to set page segmentation mode: %w", err)
	}
	if err := client.SetImageFromBytes(buf.Bytes()); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to set image: %w", err)
	}
	return client, nil
}
