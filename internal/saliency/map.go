package saliency

import (
	"image"
	"math"
)

// Map is a W×H grid of saliency intensities in row-major order.
type Map struct {
	Width  int
	Height int
	Pix    []uint8
}

// NewMap allocates an all-zero map.
func NewMap(width, height int) Map {
	if width < 0 || height < 0 {
		width, height = 0, 0
	}
	return Map{Width: width, Height: height, Pix: make([]uint8, width*height)}
}

// FromGray copies a grayscale image into a Map.
func FromGray(g *image.Gray) Map {
	b := g.Bounds()
	m := NewMap(b.Dx(), b.Dy())
	for y := 0; y < m.Height; y++ {
		copy(m.Pix[y*m.Width:(y+1)*m.Width], g.Pix[y*g.Stride:y*g.Stride+m.Width])
	}
	return m
}

// Normalize min-max scales values into a 0-255 Map. Values with zero variance
// (or no values at all) produce an all-zero map.
func Normalize(values []float64, width, height int) Map {
	m := NewMap(width, height)
	if len(values) != len(m.Pix) || len(values) == 0 {
		return m
	}

	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	span := hi - lo
	if span <= 1e-12 || math.IsNaN(span) || math.IsInf(span, 0) {
		return m
	}

	for i, v := range values {
		m.Pix[i] = uint8(math.Round(255 * (v - lo) / span))
	}
	return m
}

// Bounds returns the map rectangle anchored at the origin.
func (m Map) Bounds() image.Rectangle {
	return image.Rect(0, 0, m.Width, m.Height)
}

// Empty reports whether the map has no pixels.
func (m Map) Empty() bool {
	return m.Width == 0 || m.Height == 0
}

// At returns the intensity at (x, y), or 0 outside the map.
func (m Map) At(x, y int) uint8 {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return 0
	}
	return m.Pix[y*m.Width+x]
}

// Gray returns a copy of the map as a grayscale image.
func (m Map) Gray() *image.Gray {
	g := image.NewGray(m.Bounds())
	copy(g.Pix, m.Pix)
	return g
}

// Mean returns the average intensity inside r, clipped to the map.
// A rectangle that does not intersect the map yields 0.
func (m Map) Mean(r image.Rectangle) float64 {
	r = r.Intersect(m.Bounds())
	if r.Empty() {
		return 0
	}
	sum := 0
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for _, v := range m.Pix[y*m.Width+r.Min.X : y*m.Width+r.Max.X] {
			sum += int(v)
		}
	}
	return float64(sum) / float64(r.Dx()*r.Dy())
}

// IsFlat reports whether every pixel has the same value.
func (m Map) IsFlat() bool {
	for _, v := range m.Pix {
		if v != m.Pix[0] {
			return false
		}
	}
	return true
}

// Max returns the largest intensity in the map.
func (m Map) Max() uint8 {
	var hi uint8
	for _, v := range m.Pix {
		if v > hi {
			hi = v
		}
	}
	return hi
}
