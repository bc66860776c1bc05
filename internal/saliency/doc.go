// Package saliency turns a per-pixel importance signal into the pieces the rest
// of the pipeline consumes: a normalized Map, a percentile attention Mask and a
// ranked list of GazePoints.
//
// # Maps
//
// A Map holds one 8-bit intensity per source pixel (0 = ignored, 255 = most
// salient). Maps are treated as immutable once built; every operation in this
// package allocates its result.
//
// # Providers
//
// The raw signal comes from a Provider. SpectralResidual is the built-in
// implementation; anything that can produce a grayscale importance image can be
// adapted with ProviderFunc.
//
// # Degenerate maps
//
// A map with zero variance (for example an all-black creative) has every pixel
// at its own percentile, so ThresholdMask marks the whole image. ExtractPeaks
// returns no points for such a map unless its constant value reaches the
// configured floor.
package saliency
