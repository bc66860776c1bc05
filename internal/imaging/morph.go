package imaging

import (
	"image"

	"github.com/anthonynsimon/bild/effect"
	"github.com/anthonynsimon/bild/segment"
)

// Threshold binarizes an image: pixels whose luminance is >= level become 255.
func Threshold(img image.Image, level uint8) *image.Gray {
	return normalizeOrigin(segment.Threshold(img, level))
}

// Dilate grows white regions of a binary map with a square (2r+1) window.
func Dilate(bin *image.Gray, radius float64, iterations int) *image.Gray {
	out := bin
	for i := 0; i < iterations; i++ {
		out = redChannel(effect.Dilate(out, radius))
	}
	return out
}

// Erode shrinks white regions of a binary map with a square (2r+1) window.
func Erode(bin *image.Gray, radius float64, iterations int) *image.Gray {
	out := bin
	for i := 0; i < iterations; i++ {
		out = redChannel(effect.Erode(out, radius))
	}
	return out
}

// Close fills small gaps between white regions (dilate then erode).
// A radius of 5 gives an 11x11 window, close to a 10x10 rectangular kernel.
func Close(bin *image.Gray, radius float64, iterations int) *image.Gray {
	return Erode(Dilate(bin, radius, iterations), radius, iterations)
}

// Open removes isolated white specks (erode then dilate).
func Open(bin *image.Gray, radius float64, iterations int) *image.Gray {
	return Dilate(Erode(bin, radius, iterations), radius, iterations)
}

func redChannel(src *image.RGBA) *image.Gray {
	b := src.Bounds()
	out := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		row := src.Pix[y*src.Stride:]
		for x := 0; x < b.Dx(); x++ {
			out.Pix[y*out.Stride+x] = row[x*4]
		}
	}
	return out
}

func normalizeOrigin(g *image.Gray) *image.Gray {
	if g.Bounds().Min == (image.Point{}) {
		return g
	}
	b := g.Bounds()
	out := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		copy(out.Pix[y*out.Stride:y*out.Stride+b.Dx()], g.Pix[y*g.Stride:y*g.Stride+b.Dx()])
	}
	return out
}
