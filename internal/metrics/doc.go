// Package metrics turns a saliency map, its attention mask and the CTA
// confidence into the 0-100 score set reported for every analysis, and maps
// each score to a qualitative tier with explanatory text.
//
// Scores:
//
//   - visibility: share of the image covered by the attention mask
//   - focus: share of the mask held by its largest 8-connected region
//   - balanced: how much more salient the central 40%×40% window is than the
//     whole image, centred on 50
//   - cta: the selector's confidence, absent when no CTA was found
package metrics
