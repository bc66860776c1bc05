// Package analysis runs the full attention pipeline over an image or the
// key-frames of a video.
//
// For each image:
//
//  1. the saliency Provider computes a map of the image's size
//  2. the map is thresholded into an attention mask and reduced to ranked
//     gaze points
//  3. the CTA Detector generates, scores, deduplicates and selects candidates
//  4. metrics are derived from the map, the mask and the CTA confidence
//  5. an optional ArtifactWriter renders the visual outputs
//
// The result is wrapped in a Job carrying a sortable ULID so that a later
// area-of-interest query (AnalyzeAOI) can run against the stored map and
// gaze points.
//
// # Errors
//
// Failures are reported with the sentinel errors of this package and can be
// tested with errors.Is:
//
//   - ErrInput: the image or video could not be read
//   - ErrSaliency: the saliency provider failed
//   - ErrDegenerateInput: a zero-area image or map was supplied where one is required
//
// A failing OCR or contour source (ErrCandidateSource) never aborts an
// analysis; it is logged and contributes no candidates.
package analysis
