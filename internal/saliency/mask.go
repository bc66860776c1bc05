package saliency

import (
	"image"
	"math"
)

// DefaultPercentile is the attention-mask threshold used when none is configured.
const DefaultPercentile = 80.0

// Mask marks the high-attention pixels of a Map. It always has the dimensions
// of the map it was derived from.
type Mask struct {
	Width  int
	Height int
	Bits   []bool
}

// ThresholdMask marks every pixel whose value is at or above the p-th
// percentile of the map.
func ThresholdMask(m Map, p float64) Mask {
	mask := Mask{Width: m.Width, Height: m.Height, Bits: make([]bool, len(m.Pix))}
	if len(m.Pix) == 0 {
		return mask
	}
	threshold := Percentile(m, p)
	for i, v := range m.Pix {
		mask.Bits[i] = float64(v) >= threshold
	}
	return mask
}

// Percentile returns the p-th percentile (0-100) of the map values using
// linear interpolation between the two nearest order statistics.
func Percentile(m Map, p float64) float64 {
	n := len(m.Pix)
	if n == 0 {
		return 0
	}
	p = math.Max(0, math.Min(100, p))

	var hist [256]int
	for _, v := range m.Pix {
		hist[v]++
	}

	rank := p / 100 * float64(n-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	vlo := float64(orderStatistic(&hist, lo))
	if hi == lo {
		return vlo
	}
	vhi := float64(orderStatistic(&hist, hi))
	return vlo + (vhi-vlo)*(rank-float64(lo))
}

// orderStatistic returns the k-th smallest value (0-based) described by hist.
func orderStatistic(hist *[256]int, k int) uint8 {
	seen := 0
	for v, c := range hist {
		seen += c
		if k < seen {
			return uint8(v)
		}
	}
	return 255
}

// Bounds returns the mask rectangle anchored at the origin.
func (m Mask) Bounds() image.Rectangle {
	return image.Rect(0, 0, m.Width, m.Height)
}

// At reports whether (x, y) is marked; points outside the mask are not.
func (m Mask) At(x, y int) bool {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return false
	}
	return m.Bits[y*m.Width+x]
}

// Count returns the number of marked pixels.
func (m Mask) Count() int {
	n := 0
	for _, b := range m.Bits {
		if b {
			n++
		}
	}
	return n
}

// Share returns the marked fraction of the mask in [0, 1].
func (m Mask) Share() float64 {
	if len(m.Bits) == 0 {
		return 0
	}
	return float64(m.Count()) / float64(len(m.Bits))
}

// CountIn returns the marked and total pixel counts inside r, clipped to the mask.
func (m Mask) CountIn(r image.Rectangle) (marked, total int) {
	r = r.Intersect(m.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if m.Bits[y*m.Width+x] {
				marked++
			}
		}
	}
	return marked, r.Dx() * r.Dy()
}

// Gray renders the mask as a binary image (255 = marked).
func (m Mask) Gray() *image.Gray {
	g := image.NewGray(m.Bounds())
	for i, b := range m.Bits {
		if b {
			g.Pix[i] = 255
		}
	}
	return g
}
