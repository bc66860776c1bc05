package cta

import (
	"context"
	"image"

	"github.com/ironsheep/attention-cta/internal/detection"
	"github.com/ironsheep/attention-cta/internal/saliency"
)

// Detector runs the full CTA chain: generate, score, deduplicate, select.
type Detector struct {
	Generator Generator
	Scorer    Scorer
}

// NewDetector wires a detector with the default lexicon. When text is nil the
// geometry-only envelope is used.
func NewDetector(text TextDetector, geometry detection.ContourSource, opts Options) *Detector {
	if text == nil {
		opts.Envelope = StandaloneEnvelope()
	}
	return &Detector{
		Generator: Generator{Text: text, Geometry: geometry, Options: opts},
		Scorer:    NewScorer(opts),
	}
}

// Detect finds the CTA in img using m, a saliency map of the same size.
func (d *Detector) Detect(ctx context.Context, img image.Image, m saliency.Map) (Selection, error) {
	candidates, err := d.Generator.Generate(ctx, img)
	if err != nil {
		return Selection{}, err
	}
	b := img.Bounds()
	admitted := d.Scorer.Score(candidates, m, b.Dx(), b.Dy())
	o := d.Scorer.Options
	return Select(Dedupe(admitted, o.IoUThreshold, o.Limit), o), nil
}
