package imaging

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// Crop extracts a rectangular region and optionally rescales it.
//
// The region is clipped to the image first; an empty intersection is an error.
// OCR on small button labels benefits from scale > 1 (Lanczos resampling).
func Crop(img image.Image, region image.Rectangle, scale float64) (image.Image, error) {
	bounds := img.Bounds()
	clipped := region.Add(bounds.Min).Intersect(bounds)
	if clipped.Empty() {
		return nil, fmt.Errorf("crop region %v outside image bounds %v", region, bounds)
	}

	cropped := imaging.Crop(img, clipped)
	if scale > 0 && scale != 1.0 {
		w := int(float64(cropped.Bounds().Dx()) * scale)
		h := int(float64(cropped.Bounds().Dy()) * scale)
		if w < 1 {
			w = 1
		}
		if h < 1 {
			h = 1
		}
		cropped = imaging.Resize(cropped, w, h, imaging.Lanczos)
	}
	return cropped, nil
}

// Resize scales img to exactly width x height with bilinear filtering.
func Resize(img image.Image, width, height int) *image.NRGBA {
	return imaging.Resize(img, width, height, imaging.Linear)
}

// EnhanceForOCR converts a region to grayscale and boosts its contrast by 50%.
func EnhanceForOCR(img image.Image) image.Image {
	return imaging.AdjustContrast(imaging.Grayscale(img), 50)
}
