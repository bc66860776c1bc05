package detection

import (
	"context"
	"fmt"
	"image"

	"github.com/ironsheep/attention-cta/internal/imaging"
)

// ContourSource finds geometric button candidates in an image.
type ContourSource interface {
	Detect(ctx context.Context, img image.Image) ([]Box, error)
}

// Strategy names accepted by NewContourSource.
const (
	StrategyEdges      = "edges"
	StrategySaturation = "saturation"
	StrategyGoCV       = "gocv"
)

// NewContourSource returns the source for a strategy name.
func NewContourSource(strategy string) (ContourSource, error) {
	switch strategy {
	case "", StrategyEdges:
		return DefaultEdgeContours(), nil
	case StrategySaturation:
		return DefaultSaturationContours(), nil
	case StrategyGoCV:
		return NewGoCVContours()
	default:
		return nil, fmt.Errorf("unknown contour strategy %q", strategy)
	}
}

// EdgeContours outlines shapes from edges: Canny, a morphological close that
// joins the strokes of a button outline, then the bounding boxes of the
// outermost connected regions.
type EdgeContours struct {
	Low         int
	High        int
	CloseRadius float64
}

// DefaultEdgeContours uses Canny thresholds 40/120 and a 5px closing radius.
func DefaultEdgeContours() EdgeContours {
	return EdgeContours{Low: 40, High: 120, CloseRadius: 5}
}

// Detect implements ContourSource.
func (e EdgeContours) Detect(ctx context.Context, img image.Image) ([]Box, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if img.Bounds().Empty() {
		return []Box{}, nil
	}

	edges := imaging.Canny(img, e.Low, e.High)
	if e.CloseRadius > 0 {
		edges = imaging.Close(edges, e.CloseRadius, 1)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	bits, w, h := binaryBits(edges)
	return outermost(boundsOf(Components(bits, w, h))), nil
}

// SaturationContours segments vivid color blocks: saturation above a floor,
// opened to remove specks and closed to fill text holes. Boxes are padded and
// filtered by area and aspect ratio.
type SaturationContours struct {
	MinSaturation uint8
	OpenRadius    float64
	CloseRadius   float64
	CloseRepeat   int
	Pad           int
	MinAreaRatio  float64
	MinAspect     float64
	MaxAspect     float64
}

// DefaultSaturationContours matches the color-segmentation detector's tuning.
func DefaultSaturationContours() SaturationContours {
	return SaturationContours{
		MinSaturation: 50,
		OpenRadius:    2,
		CloseRadius:   2,
		CloseRepeat:   3,
		Pad:           5,
		MinAreaRatio:  0.0003,
		MinAspect:     0.3,
		MaxAspect:     12,
	}
}

// Detect implements ContourSource.
func (s SaturationContours) Detect(ctx context.Context, img image.Image) ([]Box, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b := img.Bounds()
	if b.Empty() {
		return []Box{}, nil
	}

	// Pixels must exceed MinSaturation; nothing can exceed 255.
	if s.MinSaturation == 255 {
		return []Box{}, nil
	}
	mask := imaging.Threshold(imaging.Saturation(img), s.MinSaturation+1)
	mask = imaging.Open(mask, s.OpenRadius, 1)
	mask = imaging.Close(mask, s.CloseRadius, s.CloseRepeat)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	bits, w, h := binaryBits(mask)
	minArea := s.MinAreaRatio * float64(w*h)

	boxes := make([]Box, 0)
	for _, box := range outermost(boundsOf(Components(bits, w, h))) {
		box = box.Pad(s.Pad, s.Pad).Clip(w, h)
		if float64(box.Area()) < minArea {
			continue
		}
		if a := box.Aspect(); a < s.MinAspect || a > s.MaxAspect {
			continue
		}
		boxes = append(boxes, box)
	}
	return boxes, nil
}

func boundsOf(components []Component) []Box {
	boxes := make([]Box, len(components))
	for i, c := range components {
		boxes[i] = c.Bounds
	}
	return boxes
}
