package metrics

import (
	"image"
	"math"

	"github.com/ironsheep/attention-cta/internal/detection"
	"github.com/ironsheep/attention-cta/internal/saliency"
)

// Central window bounds for the balance score, as fractions of each side.
const (
	centerLow  = 0.3
	centerHigh = 0.7
)

// ScoreSet holds the per-analysis scores, each in [0, 100] and rounded to one
// decimal place. CTA is nil when no candidate qualified.
type ScoreSet struct {
	Visibility float64  `json:"visibility"`
	Focus      float64  `json:"focus"`
	Balanced   float64  `json:"balanced"`
	CTA        *float64 `json:"cta"`
}

// Zero is the score set of a degenerate (zero-area) input.
func Zero() ScoreSet {
	return ScoreSet{}
}

// Compute derives the score set from a map and its mask. cta is copied.
func Compute(m saliency.Map, mask saliency.Mask, cta *float64) ScoreSet {
	if m.Empty() {
		return Zero()
	}

	s := ScoreSet{
		Visibility: round1(mask.Share() * 100),
		Focus:      round1(Focus(m, mask)),
		Balanced:   round1(Balance(m)),
	}
	if cta != nil {
		v := *cta
		s.CTA = &v
	}
	return s
}

// Focus returns the largest 8-connected mask region as a percentage of the
// masked area. A flat map carries no concentration information and scores 0.
func Focus(m saliency.Map, mask saliency.Mask) float64 {
	if m.IsFlat() {
		return 0
	}
	count := mask.Count()
	if count == 0 {
		return 0
	}
	largest := detection.LargestComponent(mask.Bits, mask.Width, mask.Height)
	return float64(largest) / float64(count) * 100
}

// Balance scores the central window against the whole image:
//
//	clamp(center_mean / (overall_mean + 1e-6) · 50 + 50, 0, 100)
//
// A uniform non-zero map scores 100 and an all-zero map scores 50.
func Balance(m saliency.Map) float64 {
	if m.Empty() {
		return 0
	}
	overall := m.Mean(m.Bounds())

	x0, x1 := int(centerLow*float64(m.Width)), int(centerHigh*float64(m.Width))
	y0, y1 := int(centerLow*float64(m.Height)), int(centerHigh*float64(m.Height))
	center := 0.0
	if x1 > x0 && y1 > y0 {
		center = m.Mean(image.Rect(x0, y0, x1, y1))
	}

	return clamp(center/(overall+1e-6)*50+50, 0, 100)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
