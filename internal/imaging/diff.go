package imaging

import (
	"fmt"
	"image"

	"github.com/anthonynsimon/bild/blend"
	"github.com/anthonynsimon/bild/segment"
)

// ChangedPercent compares two grayscale frames and returns the percentage
// (0-100) of pixels whose absolute difference exceeds delta.
//
// The difference image comes from bild's float blend, which truncates when
// converting back to 8 bits: a pixel is never counted at or below delta, but
// one within two gray levels above it may be missed.
//
// Frames must have identical dimensions; an empty frame yields 0.
func ChangedPercent(a, b *image.Gray, delta int) (float64, error) {
	ab, bb := a.Bounds(), b.Bounds()
	if ab.Dx() != bb.Dx() || ab.Dy() != bb.Dy() {
		return 0, fmt.Errorf("frame size mismatch: %dx%d vs %dx%d", ab.Dx(), ab.Dy(), bb.Dx(), bb.Dy())
	}

	total := ab.Dx() * ab.Dy()
	if total == 0 || delta >= 255 {
		return 0, nil
	}
	level := uint8(0)
	if delta >= 0 {
		level = uint8(delta + 1)
	}

	changed := countSet(segment.Threshold(blend.Difference(a, b), level))
	return float64(changed) * 100 / float64(total), nil
}

// countSet counts the white pixels of a binary map.
func countSet(bin *image.Gray) int {
	b := bin.Bounds()
	n := 0
	for y := 0; y < b.Dy(); y++ {
		for _, v := range bin.Pix[y*bin.Stride : y*bin.Stride+b.Dx()] {
			if v == 0xFF {
				n++
			}
		}
	}
	return n
}
