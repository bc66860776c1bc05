package imaging

import (
	"image"
	"math"

	"github.com/anthonynsimon/bild/convolution"
)

// GaussianBlur smooths a grayscale image. sigma is the standard deviation of
// the kernel in pixels; values <= 0 return an unmodified copy.
//
// The separable kernel spans ceil(3·sigma) pixels on each side. bild's
// blur.Gaussian ties its tap count to sigma²/2 and would cut a sigma of 2
// off at one standard deviation.
func GaussianBlur(g *image.Gray, sigma float64) *image.Gray {
	if sigma <= 0 {
		return cloneGray(g)
	}

	k := gaussianKernel(sigma)
	opts := convolution.Options{Bias: 0, Wrap: false, KeepAlpha: false}
	out := convolution.Convolve(g, k, &opts)
	out = convolution.Convolve(out, k.Transposed(), &opts)
	return redChannel(out)
}

// gaussianKernel returns a normalized 1-d kernel of width 2·ceil(3σ)+1.
func gaussianKernel(sigma float64) convolution.Matrix {
	radius := int(math.Ceil(3 * sigma))
	k := convolution.NewKernel(2*radius+1, 1)
	for i := range k.Matrix {
		x := float64(i - radius)
		k.Matrix[i] = math.Exp(-x * x / (2 * sigma * sigma))
	}
	return k.Normalized()
}

func cloneGray(g *image.Gray) *image.Gray {
	b := g.Bounds()
	out := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		copy(out.Pix[y*out.Stride:y*out.Stride+b.Dx()], g.Pix[y*g.Stride:y*g.Stride+b.Dx()])
	}
	return out
}
