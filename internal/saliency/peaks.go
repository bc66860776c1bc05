package saliency

import (
	"github.com/ironsheep/attention-cta/internal/imaging"
	"github.com/ironsheep/attention-cta/internal/suppress"
)

// GazePoint is a predicted fixation. Rank is 1 for the first (strongest) point.
type GazePoint struct {
	X     int   `json:"x"`
	Y     int   `json:"y"`
	Rank  int   `json:"rank"`
	Value uint8 `json:"value"`
}

// PeakOptions controls ExtractPeaks.
type PeakOptions struct {
	MaxPoints int     `json:"max_points"`
	MinDist   int     `json:"min_dist"`
	MinValue  uint8   `json:"min_value"`
	Sigma     float64 `json:"sigma"`
}

// DefaultPeakOptions returns the tuned defaults: up to 8 points at least 40px
// apart, ignoring blurred values below 10.
func DefaultPeakOptions() PeakOptions {
	return PeakOptions{MaxPoints: 8, MinDist: 40, MinValue: 10, Sigma: 2}
}

// ExtractPeaks picks attention peaks from a Gaussian-smoothed copy of m.
//
// The strongest remaining pixel is taken, the disk of radius MinDist around it
// is cleared, and the process repeats until MaxPoints are found or the next
// maximum falls below MinValue. Equal values resolve in row-major order.
// Each pass is one scan of the map, so the cost is MaxPoints·W·H with no
// per-pixel allocation.
func ExtractPeaks(m Map, opts PeakOptions) []GazePoint {
	if m.Empty() || opts.MaxPoints <= 0 {
		return []GazePoint{}
	}

	work := FromGray(imaging.GaussianBlur(m.Gray(), opts.Sigma))

	pick := func() (GazePoint, bool) {
		best, bestV := -1, uint8(0)
		for i, v := range work.Pix {
			if v > bestV {
				best, bestV = i, v
			}
		}
		if best < 0 || bestV < opts.MinValue {
			return GazePoint{}, false
		}
		return GazePoint{X: best % work.Width, Y: best / work.Width, Value: bestV}, true
	}

	points := suppress.Iterate(opts.MaxPoints, pick, func(p GazePoint) {
		clearDisk(work, p.X, p.Y, opts.MinDist)
	})

	for i := range points {
		points[i].Rank = i + 1
	}
	return points
}

// clearDisk zeroes every pixel within radius r of (cx, cy), the center included.
func clearDisk(m Map, cx, cy, r int) {
	if r < 0 {
		r = 0
	}
	r2 := r * r
	for y := max(0, cy-r); y <= min(m.Height-1, cy+r); y++ {
		dy := y - cy
		row := m.Pix[y*m.Width : (y+1)*m.Width]
		for x := max(0, cx-r); x <= min(m.Width-1, cx+r); x++ {
			dx := x - cx
			if dx*dx+dy*dy <= r2 {
				row[x] = 0
			}
		}
	}
}
