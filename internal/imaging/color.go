package imaging

import (
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Saturation returns the HSV saturation of every pixel scaled to 0-255.
// Gray, white and black pixels come out near 0; vivid button fills near 255.
func Saturation(img image.Image) *image.Gray {
	bounds := img.Bounds()
	out := image.NewGray(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	for y := 0; y < bounds.Dy(); y++ {
		for x := 0; x < bounds.Dx(); x++ {
			c, ok := colorful.MakeColor(img.At(x+bounds.Min.X, y+bounds.Min.Y))
			if !ok {
				continue
			}
			_, s, _ := c.Hsv()
			out.Pix[y*out.Stride+x] = uint8(math.Round(s * 255))
		}
	}
	return out
}

// HeatColor maps an intensity to a blue-to-red ramp similar to the JET colormap.
func HeatColor(v uint8) color.RGBA {
	t := float64(v) / 255
	c := colorful.Hsv(240*(1-t), 1, 0.5+0.5*t).Clamped()
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// Blend mixes two colors: alpha is the weight of a.
func Blend(a, b color.RGBA, alpha float64) color.RGBA {
	mix := func(x, y uint8) uint8 {
		return uint8(math.Round(alpha*float64(x) + (1-alpha)*float64(y)))
	}
	return color.RGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: 255}
}

// Scale multiplies the RGB channels of c by f.
func Scale(c color.RGBA, f float64) color.RGBA {
	s := func(v uint8) uint8 { return uint8(math.Min(255, math.Round(float64(v)*f))) }
	return color.RGBA{R: s(c.R), G: s(c.G), B: s(c.B), A: 255}
}

// ToRGBA returns a copy of img as *image.RGBA with its origin at (0, 0).
func ToRGBA(img image.Image) *image.RGBA {
	nrgba := imaging.Clone(img)
	b := nrgba.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			out.Set(x, y, nrgba.At(x, y))
		}
	}
	return out
}

// ToGray converts img to an 8-bit grayscale image with its origin at (0, 0).
func ToGray(img image.Image) *image.Gray {
	if g, ok := img.(*image.Gray); ok && g.Bounds().Min == (image.Point{}) {
		return g
	}
	gray := imaging.Grayscale(img)
	b := gray.Bounds()
	out := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		row := gray.Pix[y*gray.Stride:]
		for x := 0; x < b.Dx(); x++ {
			out.Pix[y*out.Stride+x] = row[x*4]
		}
	}
	return out
}
