// Package cta finds call-to-action controls in a creative.
//
// Candidates come from two sources: OCR words (padded to cover the button
// around them) and geometric contour boxes. Boxes outside a button-like size
// and shape envelope are dropped; geometric boxes that carry no text get a
// single-line OCR read of their region.
//
// Each candidate is scored by action language and by the mean saliency inside
// its box:
//
//	total = 7·keyword + 5·verb + 1.5·attention − headline penalty
//
// Admitted candidates (total > 120) are deduplicated by IoU and the final set
// favors candidates with action language. The confidence is a 0-100 value that
// never exceeds 40 without action language and never falls below 55 with it.
//
// All constants live in Options.
package cta
