package imaging

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
)

// Supported artifact formats.
const (
	FormatJPEG = "jpg"
	FormatPNG  = "png"
	FormatWebP = "webp"
)

// Save writes img to path, creating parent directories. The format is taken
// from the file extension: .jpg/.jpeg, .png or .webp.
func Save(img image.Image, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	switch strings.ToLower(strings.TrimPrefix(filepath.Ext(path), ".")) {
	case FormatWebP:
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create file: %w", err)
		}
		defer f.Close()
		if err := webp.Encode(f, img, &webp.Options{Quality: 85}); err != nil {
			return fmt.Errorf("failed to encode webp: %w", err)
		}
		return nil
	case FormatJPEG, "jpeg":
		if err := imaging.Save(img, path, imaging.JPEGQuality(90)); err != nil {
			return fmt.Errorf("failed to save image: %w", err)
		}
		return nil
	case FormatPNG:
		if err := imaging.Save(img, path); err != nil {
			return fmt.Errorf("failed to save image: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unsupported artifact format: %s", filepath.Ext(path))
	}
}
