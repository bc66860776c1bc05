// Package detection finds geometric button candidates and provides the box
// arithmetic the CTA pipeline is built on.
//
// # Boxes
//
// Box is an (X, Y, W, H) rectangle in pixel coordinates with the origin at the
// top-left corner of the image. IoU measures the overlap of two boxes and is
// the suppression predicate used when deduplicating candidates.
//
// # Contour Sources
//
// A ContourSource returns raw bounding boxes of shapes that might be buttons.
// Two pure-Go strategies are available:
//
//   - EdgeContours: Canny edges, a morphological close that joins the strokes
//     of an outline, then the outermost 8-connected regions.
//   - SaturationContours: vivid color blocks segmented from HSV saturation,
//     cleaned with opening and closing, padded and filtered by shape.
//
// Building with -tags gocv adds GoCVContours, the same edge pipeline on OpenCV.
// NewContourSource selects one strategy by name; the analyzer uses exactly one.
//
// # Connected Components
//
// Components labels 8-connected regions of a bitmap with an iterative flood
// fill. It also backs the focus metric, which measures the largest region of
// the attention mask.
package detection
