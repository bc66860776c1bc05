package saliency

import (
	"context"
	"image"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/ironsheep/attention-cta/internal/imaging"
)

// Provider computes a saliency map for an image. The returned map must have
// the image's dimensions.
type Provider interface {
	Compute(ctx context.Context, img image.Image) (Map, error)
}

// ProviderFunc adapts a function to the Provider interface.
type ProviderFunc func(ctx context.Context, img image.Image) (Map, error)

// Compute calls f.
func (f ProviderFunc) Compute(ctx context.Context, img image.Image) (Map, error) {
	return f(ctx, img)
}

// SpectralResidual estimates saliency from the residual of the image's
// log-amplitude spectrum (Hou & Zhang). The spectrum is computed at a fixed
// working size and the result is smoothed and scaled back to the source.
type SpectralResidual struct {
	// Size is the working resolution; 64 when zero.
	Size int
	// Sigma is the smoothing applied to the working-size map; 2.5 when zero.
	Sigma float64
}

// Compute implements Provider.
func (s SpectralResidual) Compute(ctx context.Context, img image.Image) (Map, error) {
	if err := ctx.Err(); err != nil {
		return Map{}, err
	}

	b := img.Bounds()
	if b.Empty() {
		return NewMap(0, 0), nil
	}
	gray := imaging.ToGray(img)
	if FromGray(gray).IsFlat() {
		return NewMap(b.Dx(), b.Dy()), nil
	}

	n := s.Size
	if n <= 0 {
		n = 64
	}
	sigma := s.Sigma
	if sigma <= 0 {
		sigma = 2.5
	}

	small := imaging.ToGray(imaging.Resize(gray, n, n))
	spectrum := make([]complex128, n*n)
	for i, v := range small.Pix {
		spectrum[i] = complex(float64(v)/255, 0)
	}

	fft := fourier.NewCmplxFFT(n)
	transform2D(fft, spectrum, n, false)

	logAmp := make([]float64, n*n)
	phase := make([]float64, n*n)
	for i, c := range spectrum {
		logAmp[i] = math.Log(cmplx.Abs(c) + 1e-8)
		phase[i] = cmplx.Phase(c)
	}

	residual := boxMean3(logAmp, n)
	for i := range residual {
		residual[i] = logAmp[i] - residual[i]
		spectrum[i] = cmplx.Exp(complex(residual[i], phase[i]))
	}

	if err := ctx.Err(); err != nil {
		return Map{}, err
	}
	transform2D(fft, spectrum, n, true)

	energy := make([]float64, n*n)
	for i, c := range spectrum {
		a := cmplx.Abs(c)
		energy[i] = a * a
	}

	smoothed := imaging.GaussianBlur(Normalize(energy, n, n).Gray(), sigma)
	full := imaging.ToGray(imaging.Resize(smoothed, b.Dx(), b.Dy()))

	values := make([]float64, b.Dx()*b.Dy())
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			values[y*b.Dx()+x] = float64(full.Pix[y*full.Stride+x])
		}
	}
	return Normalize(values, b.Dx(), b.Dy()), nil
}

// transform2D applies the 1-D transform to every row and then every column of
// an n×n grid in place.
func transform2D(fft *fourier.CmplxFFT, data []complex128, n int, inverse bool) {
	line := make([]complex128, n)
	apply := func() {
		if inverse {
			fft.Sequence(line, line)
		} else {
			fft.Coefficients(line, line)
		}
	}

	for y := 0; y < n; y++ {
		copy(line, data[y*n:(y+1)*n])
		apply()
		copy(data[y*n:(y+1)*n], line)
	}
	for x := 0; x < n; x++ {
		for y := 0; y < n; y++ {
			line[y] = data[y*n+x]
		}
		apply()
		for y := 0; y < n; y++ {
			data[y*n+x] = line[y]
		}
	}
}

// boxMean3 averages each cell with its 3×3 neighborhood, replicating edges.
func boxMean3(src []float64, n int) []float64 {
	out := make([]float64, len(src))
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			sum := 0.0
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					sx := clampIndex(x+dx, n)
					sy := clampIndex(y+dy, n)
					sum += src[sy*n+sx]
				}
			}
			out[y*n+x] = sum / 9
		}
	}
	return out
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
