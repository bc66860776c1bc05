package cta

import (
	"context"
	"errors"
	"fmt"
	"image"
	"strings"

	"github.com/ironsheep/attention-cta/internal/detection"
	"github.com/ironsheep/attention-cta/internal/imaging"
	"github.com/ironsheep/attention-cta/internal/logging"
)

// ErrCandidateSource marks a failure of one candidate source (OCR or
// geometry). Such failures are logged and the source contributes nothing.
var ErrCandidateSource = errors.New("candidate source failed")

// Source identifies where a candidate box came from.
type Source string

const (
	SourceOCR      Source = "ocr"
	SourceGeometry Source = "geometry"
)

// Candidate is a possible CTA: a box, its best-effort text and, once scored,
// its total score and whether it carries action language.
type Candidate struct {
	Box        detection.Box `json:"box"`
	Text       string        `json:"text"`
	Score      float64       `json:"score"`
	Attention  float64       `json:"attention"`
	HasKeyword bool          `json:"has_keyword"`
	Source     Source        `json:"source"`
}

// TextDetector is the OCR collaborator. *ocr.Engine satisfies it.
type TextDetector interface {
	DetectWords(ctx context.Context, img image.Image) ([]detection.Word, error)
	ReadLine(ctx context.Context, img image.Image) (string, error)
}

// Generator fuses OCR words and geometric boxes into envelope-filtered
// candidates. Either source may be nil.
type Generator struct {
	Text     TextDetector
	Geometry detection.ContourSource
	Options  Options
}

// Generate returns the candidates for img in discovery order: OCR words first,
// then geometric boxes not already present. Source failures are logged and
// skipped; only context cancellation is returned as an error.
func (g Generator) Generate(ctx context.Context, img image.Image) ([]Candidate, error) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return []Candidate{}, nil
	}

	var (
		order []detection.Box
		byBox = make(map[detection.Box]*Candidate)
	)
	add := func(box detection.Box, text string, src Source, overwrite bool) {
		if c, ok := byBox[box]; ok {
			if overwrite {
				c.Text, c.Source = text, src
			}
			return
		}
		byBox[box] = &Candidate{Box: box, Text: text, Source: src}
		order = append(order, box)
	}

	for _, word := range g.words(ctx, img) {
		box := detection.FromRect(word.Box.Sub(b.Min)).Pad(g.Options.PadX, g.Options.PadY).Clip(w, h)
		if box.Empty() {
			continue
		}
		add(box, strings.ToLower(strings.TrimSpace(word.Text)), SourceOCR, true)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	for _, box := range g.contours(ctx, img) {
		box = box.Clip(w, h)
		if box.Empty() {
			continue
		}
		add(box, "", SourceGeometry, false)
	}

	candidates := make([]Candidate, 0, len(order))
	for _, box := range order {
		c := *byBox[box]
		if !g.Options.Envelope.Admits(box.W, box.H, w, h) {
			continue
		}
		if c.Text == "" {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			c.Text = g.readLine(ctx, img, box)
		}
		candidates = append(candidates, c)
	}
	return candidates, nil
}

func (g Generator) words(ctx context.Context, img image.Image) []detection.Word {
	if g.Text == nil {
		return nil
	}
	words, err := g.Text.DetectWords(ctx, img)
	if err != nil {
		logging.Warn(logging.Fields{"error": fmt.Errorf("%w: ocr: %v", ErrCandidateSource, err).Error()}, "text candidates unavailable")
		return nil
	}

	kept := make([]detection.Word, 0, len(words))
	for _, word := range words {
		if word.Confidence <= g.Options.MinWordConfidence {
			continue
		}
		if len([]rune(strings.TrimSpace(word.Text))) < g.Options.MinWordLength {
			continue
		}
		kept = append(kept, word)
	}
	return kept
}

func (g Generator) contours(ctx context.Context, img image.Image) []detection.Box {
	if g.Geometry == nil {
		return nil
	}
	boxes, err := g.Geometry.Detect(ctx, img)
	if err != nil {
		logging.Warn(logging.Fields{"error": fmt.Errorf("%w: geometry: %v", ErrCandidateSource, err).Error()}, "geometric candidates unavailable")
		return nil
	}
	return boxes
}

// readLine runs a single-line OCR pass over an enhanced crop of box.
func (g Generator) readLine(ctx context.Context, img image.Image, box detection.Box) string {
	if g.Text == nil {
		return ""
	}
	crop, err := imaging.Crop(img, box.Rect(), 1)
	if err != nil {
		return ""
	}
	text, err := g.Text.ReadLine(ctx, imaging.EnhanceForOCR(crop))
	if err != nil {
		logging.Debug(logging.Fields{"box": box, "error": err.Error()}, "region OCR failed")
		return ""
	}
	return strings.ToLower(strings.TrimSpace(text))
}
