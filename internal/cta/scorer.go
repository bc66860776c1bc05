package cta

import (
	"math"

	"github.com/ironsheep/attention-cta/internal/detection"
	"github.com/ironsheep/attention-cta/internal/saliency"
	"github.com/ironsheep/attention-cta/internal/suppress"
)

// Scorer weighs candidates by action language and local attention.
type Scorer struct {
	Lexicon Lexicon
	Options Options
}

// NewScorer returns a scorer with the default lexicon.
func NewScorer(opts Options) Scorer {
	return Scorer{Lexicon: DefaultLexicon(), Options: opts}
}

// Score computes each candidate's total and returns the admitted ones (total
// above AcceptThreshold) in input order.
//
//	total = KeywordWeight·keyword + VerbWeight·verb + AttentionWeight·attention − penalty
//
// The headline penalty hits large boxes in the top of the image that carry no
// action language.
func (s Scorer) Score(candidates []Candidate, m saliency.Map, width, height int) []Candidate {
	o := s.Options
	imageArea := float64(width * height)

	admitted := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		keyword, verb := 0.0, 0.0
		if s.Lexicon.HasPhrase(c.Text) {
			keyword = o.KeywordBonus
		}
		if s.Lexicon.HasVerb(c.Text) {
			verb = o.VerbBonus
		}
		c.Attention = 0
		if !c.Box.Empty() {
			c.Attention = m.Mean(c.Box.Rect())
		}

		penalty := 0.0
		if keyword == 0 && verb == 0 &&
			float64(c.Box.Area()) > imageArea*o.HeadlineAreaRatio &&
			float64(c.Box.Y) < float64(height)*o.HeadlineTopRatio {
			penalty = o.HeadlinePenalty
		}

		c.Score = o.KeywordWeight*keyword + o.VerbWeight*verb + o.AttentionWeight*c.Attention - penalty
		c.HasKeyword = keyword > 0 || verb > 0
		if c.Score > o.AcceptThreshold {
			admitted = append(admitted, c)
		}
	}
	return admitted
}

// Dedupe keeps the best-scoring candidates whose IoU with every already kept
// candidate is at most iouThreshold, up to limit. Ties keep input order.
func Dedupe(candidates []Candidate, iouThreshold float64, limit int) []Candidate {
	return suppress.Greedy(candidates,
		func(a, b Candidate) bool { return a.Score > b.Score },
		func(kept, c Candidate) bool { return detection.IoU(kept.Box, c.Box) > iouThreshold },
		limit,
	)
}

// Selection is the final CTA decision.
type Selection struct {
	// Final holds the selected candidates, best first.
	Final []Candidate `json:"final"`
	// Winner is Final[0], or nil when nothing qualified.
	Winner *Candidate `json:"winner"`
	// Confidence is the 0-100 CTA score, or nil when nothing qualified.
	Confidence *float64 `json:"confidence"`
}

// Select applies keyword priority to a deduplicated, score-sorted set.
//
// When any candidate carries action language, all such candidates are final
// and confidence is min(KeywordCap, KeywordBase + KeywordPerMatch·n +
// KeywordScoreGain·best/ScoreScale). Otherwise only the top candidate is
// final and confidence is min(FallbackCap, FallbackCap·best/ScoreScale).
// Confidence is rounded half to even.
func Select(deduped []Candidate, o Options) Selection {
	if len(deduped) == 0 {
		return Selection{Final: []Candidate{}}
	}

	var keyworded []Candidate
	for _, c := range deduped {
		if c.HasKeyword {
			keyworded = append(keyworded, c)
		}
	}

	var final []Candidate
	var confidence float64
	if len(keyworded) > 0 {
		final = keyworded
		best := final[0].Score
		confidence = math.Min(o.KeywordCap,
			o.KeywordBase+o.KeywordPerMatch*float64(len(final))+o.KeywordScoreGain*best/o.ScoreScale)
	} else {
		final = deduped[:1:1]
		best := final[0].Score
		confidence = math.Min(o.FallbackCap, o.FallbackCap*best/o.ScoreScale)
	}

	confidence = math.RoundToEven(confidence)
	winner := final[0]
	return Selection{Final: final, Winner: &winner, Confidence: &confidence}
}
