package cta

// Envelope bounds the size and shape of a plausible button relative to the image.
type Envelope struct {
	MinWidthRatio  float64 `json:"min_width_ratio"`
	MaxWidthRatio  float64 `json:"max_width_ratio"`
	MinHeightRatio float64 `json:"min_height_ratio"`
	MaxHeightRatio float64 `json:"max_height_ratio"`
	MinAspect      float64 `json:"min_aspect"`
	MaxAspect      float64 `json:"max_aspect"`
}

// DefaultEnvelope accepts boxes wider than tall, up to 70% of the width and
// 25% of the height of the image.
func DefaultEnvelope() Envelope {
	return Envelope{
		MinWidthRatio: 0.02, MaxWidthRatio: 0.7,
		MinHeightRatio: 0.02, MaxHeightRatio: 0.25,
		MinAspect: 1.1, MaxAspect: 15,
	}
}

// StandaloneEnvelope is the looser shape range used when candidates come from
// geometry alone and no text is available to confirm them.
func StandaloneEnvelope() Envelope {
	e := DefaultEnvelope()
	e.MinAspect, e.MaxAspect = 0.3, 12
	return e
}

// Admits reports whether a w×h box fits the envelope of an imgW×imgH image.
// All bounds are exclusive.
func (e Envelope) Admits(w, h, imgW, imgH int) bool {
	fw, fh := float64(w), float64(h)
	if !(fw > e.MinWidthRatio*float64(imgW) && fw < e.MaxWidthRatio*float64(imgW)) {
		return false
	}
	if !(fh > e.MinHeightRatio*float64(imgH) && fh < e.MaxHeightRatio*float64(imgH)) {
		return false
	}
	if h <= 0 {
		return false
	}
	aspect := fw / fh
	return aspect > e.MinAspect && aspect < e.MaxAspect
}

// Options holds every tunable constant of candidate generation, scoring,
// deduplication and selection. The values are empirical.
type Options struct {
	// Candidate generation.
	MinWordConfidence float64  `json:"min_word_confidence"`
	MinWordLength     int      `json:"min_word_length"`
	PadX              int      `json:"pad_x"`
	PadY              int      `json:"pad_y"`
	Envelope          Envelope `json:"envelope"`

	// Scoring.
	KeywordBonus      float64 `json:"keyword_bonus"`
	VerbBonus         float64 `json:"verb_bonus"`
	KeywordWeight     float64 `json:"keyword_weight"`
	VerbWeight        float64 `json:"verb_weight"`
	AttentionWeight   float64 `json:"attention_weight"`
	HeadlinePenalty   float64 `json:"headline_penalty"`
	HeadlineAreaRatio float64 `json:"headline_area_ratio"`
	HeadlineTopRatio  float64 `json:"headline_top_ratio"`
	AcceptThreshold   float64 `json:"accept_threshold"`

	// Deduplication.
	IoUThreshold float64 `json:"iou_threshold"`
	Limit        int     `json:"limit"`

	// Selection.
	ScoreScale       float64 `json:"score_scale"`
	KeywordBase      float64 `json:"keyword_base"`
	KeywordPerMatch  float64 `json:"keyword_per_match"`
	KeywordScoreGain float64 `json:"keyword_score_gain"`
	KeywordCap       float64 `json:"keyword_cap"`
	FallbackCap      float64 `json:"fallback_cap"`
}

// DefaultOptions returns the tuned defaults.
func DefaultOptions() Options {
	return Options{
		MinWordConfidence: 40,
		MinWordLength:     2,
		PadX:              10,
		PadY:              5,
		Envelope:          DefaultEnvelope(),

		KeywordBonus:      100,
		VerbBonus:         100,
		KeywordWeight:     7,
		VerbWeight:        5,
		AttentionWeight:   1.5,
		HeadlinePenalty:   400,
		HeadlineAreaRatio: 0.05,
		HeadlineTopRatio:  0.35,
		AcceptThreshold:   120,

		IoUThreshold: 0.4,
		Limit:        5,

		ScoreScale:       1500,
		KeywordBase:      55,
		KeywordPerMatch:  10,
		KeywordScoreGain: 25,
		KeywordCap:       100,
		FallbackCap:      40,
	}
}
