//go:build !tesseract

package ocr

import (
	"context"
	"errors"
	"image"
	"testing"
)

func TestStubEngine_ReportsUnavailable(t *testing.T) {
	if Available() {
		t.Fatal("Available should be false without the tesseract tag")
	}

	e := NewEngine("eng", "")
	img := image.NewRGBA(image.Rect(0, 0, 40, 20))

	if _, err := e.DetectWords(context.Background(), img); !errors.Is(err, ErrUnavailable) {
		t.Errorf("DetectWords: expected ErrUnavailable, got %v", err)
	}
	if _, err := e.ReadLine(context.Background(), img); !errors.Is(err, ErrUnavailable) {
		t.Errorf("ReadLine: expected ErrUnavailable, got %v", err)
	}
	if e.Version() != "unavailable" {
		t.Errorf("Version: got %q", e.Version())
	}
}

func TestStubEngine_HonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	e := NewEngine("eng", "")
	if _, err := e.ReadLine(ctx, image.NewRGBA(image.Rect(0, 0, 4, 4))); err != context.Canceled {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
