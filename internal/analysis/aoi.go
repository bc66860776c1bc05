package analysis

import (
	"fmt"
	"math"

	"github.com/ironsheep/attention-cta/internal/detection"
	"github.com/ironsheep/attention-cta/internal/saliency"
)

// MinAOISide is the smallest accepted side of an area of interest, exclusive.
const MinAOISide = 10

// AOIResult describes attention inside one area of interest.
type AOIResult struct {
	Box detection.Box `json:"box"`
	// Visibility is the percentage of the box covered by the attention mask.
	Visibility float64 `json:"visibility"`
	// Fixations counts the gaze points inside the box.
	Fixations int `json:"fixations"`
	// TimeToFirstFixation is the rank of the first gaze point inside the
	// box, or nil when none lands there.
	TimeToFirstFixation *int `json:"time_to_first_fixation"`
}

// AOIReport holds the measured areas and the ones that were rejected.
type AOIReport struct {
	JobID    string          `json:"job_id"`
	Regions  []AOIResult     `json:"regions"`
	Rejected []detection.Box `json:"rejected"`
}

// AnalyzeAOI measures user-drawn boxes against a stored job. Boxes are
// clipped to the image; those with a side of MinAOISide pixels or less after
// clipping are rejected.
func AnalyzeAOI(job *Job, boxes []detection.Box) (*AOIReport, error) {
	if job == nil {
		return nil, fmt.Errorf("%w: no job", ErrInput)
	}
	if job.Map.Empty() {
		return nil, fmt.Errorf("%w: job %s has no saliency map", ErrDegenerateInput, job.ID)
	}

	mask := saliency.ThresholdMask(job.Map, job.Percentile)
	report := &AOIReport{
		JobID:    job.ID,
		Regions:  make([]AOIResult, 0, len(boxes)),
		Rejected: []detection.Box{},
	}

	for _, raw := range boxes {
		box := raw.Clip(job.Map.Width, job.Map.Height)
		if box.W <= MinAOISide || box.H <= MinAOISide {
			report.Rejected = append(report.Rejected, raw)
			continue
		}

		marked, total := mask.CountIn(box.Rect())
		r := AOIResult{Box: box}
		if total > 0 {
			r.Visibility = math.Round(float64(marked)/float64(total)*1000) / 10
		}
		for _, p := range job.Result.Gaze {
			if !box.Contains(p.X, p.Y) {
				continue
			}
			r.Fixations++
			if r.TimeToFirstFixation == nil {
				rank := p.Rank
				r.TimeToFirstFixation = &rank
			}
		}
		report.Regions = append(report.Regions, r)
	}
	return report, nil
}
