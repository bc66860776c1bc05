package metrics

import "math"

// Tier is a qualitative band of a 0-100 score.
type Tier string

const (
	TierExcellent Tier = "excellent"
	TierGood      Tier = "good"
	TierFair      Tier = "fair"
	TierPoor      Tier = "poor"
)

// Metric names a score in a ScoreSet.
type Metric string

const (
	MetricVisibility Metric = "visibility"
	MetricFocus      Metric = "focus"
	MetricBalanced   Metric = "balanced"
	MetricCTA        Metric = "cta"
)

// Metrics lists the scores in report order.
var Metrics = []Metric{MetricVisibility, MetricFocus, MetricBalanced, MetricCTA}

var labels = map[Metric]string{
	MetricVisibility: "Visibility",
	MetricFocus:      "Focus",
	MetricBalanced:   "Balance",
	MetricCTA:        "CTA Impact",
}

var texts = map[Metric]map[Tier]string{
	MetricVisibility: {
		TierExcellent: "Key elements such as the logo, headline and product are noticed at once. Attention lands where you want it.",
		TierGood:      "The design draws attention overall and the main message is likely received. More contrast between the key element and the background would help.",
		TierFair:      "Some important elements sit in the shadow of less important areas. Review the visual hierarchy of color, size and whitespace.",
		TierPoor:      "The main message or brand is lost in visual clutter. Simplify the design and bring a single element forward.",
	},
	MetricFocus: {
		TierExcellent: "Attention gathers on a few key points, which keeps the message clear and memorable.",
		TierGood:      "Attention mostly stays on the main elements. Muting secondary elements would sharpen the focus further.",
		TierFair:      "Attention is spread over several areas and may confuse the viewer. Pick one focal point and let the rest support it.",
		TierPoor:      "There is no clear focal point. The eye wanders and misses the main message.",
	},
	MetricBalanced: {
		TierExcellent: "The centre of the composition carries clearly more attention than the rest, giving the layout a strong anchor.",
		TierGood:      "The centre holds a fair share of attention without starving the edges.",
		TierFair:      "The centre attracts about as much attention as the rest. The composition lacks an anchor.",
		TierPoor:      "Attention sits away from the centre. Revisit the overall flow and composition.",
	},
	MetricCTA: {
		TierExcellent: "The call to action carries clear action language and stands out by position, color and size.",
		TierGood:      "The call to action is noticed and does its job. More contrast or a slightly larger button would increase its impact.",
		TierFair:      "The call to action either draws little attention or lacks a clear action verb. Use direct wording and make it stand out.",
		TierPoor:      "The call to action is likely missed. It may blend into the background, be too small or sit in the wrong place.",
	},
}

// TierFor maps a score to its tier: ≥75 excellent, ≥50 good, ≥25 fair, else poor.
func TierFor(score float64) Tier {
	switch {
	case score >= 75:
		return TierExcellent
	case score >= 50:
		return TierGood
	case score >= 25:
		return TierFair
	default:
		return TierPoor
	}
}

// Row is one line of the interpretation table.
type Row struct {
	Metric Metric  `json:"metric"`
	Label  string  `json:"label"`
	Score  float64 `json:"score"`
	Tier   Tier    `json:"tier"`
	Text   string  `json:"text"`
}

// Interpret builds the interpretation table for s. Scores are rounded to the
// nearest integer (half to even) before tiering; a nil CTA reads as 0.
func Interpret(s ScoreSet) []Row {
	rows := make([]Row, 0, len(Metrics))
	for _, metric := range Metrics {
		score := math.RoundToEven(s.Value(metric))
		tier := TierFor(score)
		rows = append(rows, Row{
			Metric: metric,
			Label:  labels[metric],
			Score:  score,
			Tier:   tier,
			Text:   texts[metric][tier],
		})
	}
	return rows
}

// Value returns the named score, reading a nil CTA as 0.
func (s ScoreSet) Value(metric Metric) float64 {
	switch metric {
	case MetricVisibility:
		return s.Visibility
	case MetricFocus:
		return s.Focus
	case MetricBalanced:
		return s.Balanced
	case MetricCTA:
		if s.CTA == nil {
			return 0
		}
		return *s.CTA
	}
	return 0
}
