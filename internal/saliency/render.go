package saliency

import (
	"image"
	"image/color"
	"math"
	"strconv"

	"github.com/ironsheep/attention-cta/internal/imaging"
)

var (
	gazeRing  = color.RGBA{R: 255, G: 40, B: 40, A: 255}
	gazePath  = color.RGBA{R: 255, G: 220, B: 0, A: 255}
	labelText = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

// RenderOverlay paints the heat color of m inside the mask and dims the
// source image to 60% outside it.
func RenderOverlay(img image.Image, mask Mask, m Map) *image.RGBA {
	out := fitTo(img, m)
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			base := out.RGBAAt(x, y)
			if mask.At(x, y) {
				out.SetRGBA(x, y, imaging.Blend(imaging.HeatColor(m.At(x, y)), base, 0.5))
			} else {
				out.SetRGBA(x, y, imaging.Scale(base, 0.6))
			}
		}
	}
	return out
}

// RenderHeatmap blends the heat color of m over the whole image.
func RenderHeatmap(img image.Image, m Map) *image.RGBA {
	out := fitTo(img, m)
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			out.SetRGBA(x, y, imaging.Blend(imaging.HeatColor(m.At(x, y)), out.RGBAAt(x, y), 0.5))
		}
	}
	return out
}

// RenderSpotlight darkens the image everywhere except soft disks of the given
// radius around each gaze point.
func RenderSpotlight(img image.Image, m Map, points []GazePoint, radius int) *image.RGBA {
	out := fitTo(img, m)
	if radius <= 0 {
		radius = 1
	}
	const floor = 0.2
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			light := floor
			for _, p := range points {
				d := math.Hypot(float64(x-p.X), float64(y-p.Y))
				if d >= float64(radius) {
					continue
				}
				l := floor + (1-floor)*(1-d/float64(radius))
				if l > light {
					light = l
				}
			}
			out.SetRGBA(x, y, imaging.Scale(out.RGBAAt(x, y), light))
		}
	}
	return out
}

// RenderGaze draws the scan path: points joined in rank order, each with a
// ring and its rank number.
func RenderGaze(img image.Image, m Map, points []GazePoint) *image.RGBA {
	out := fitTo(img, m)
	for i := 1; i < len(points); i++ {
		a, b := points[i-1], points[i]
		imaging.DrawLine(out, a.X, a.Y, b.X, b.Y, 2, gazePath)
	}
	for _, p := range points {
		imaging.FillCircle(out, p.X, p.Y, 14, gazeRing, 0.35)
		imaging.DrawRing(out, p.X, p.Y, 14, 3, gazeRing)
		imaging.DrawLabel(out, p.X+16, p.Y-6, strconv.Itoa(p.Rank), labelText, gazeRing)
	}
	return out
}

// fitTo returns an RGBA copy of img with the dimensions of m.
func fitTo(img image.Image, m Map) *image.RGBA {
	b := img.Bounds()
	if b.Dx() != m.Width || b.Dy() != m.Height {
		return imaging.ToRGBA(imaging.Resize(img, m.Width, m.Height))
	}
	return imaging.ToRGBA(img)
}
