// Package imaging provides the pixel-level building blocks of the attention pipeline.
//
// It loads and saves creatives (PNG, JPEG, GIF, BMP, TIFF and WebP), converts them
// to grayscale, runs Canny edge detection and binary morphology, computes HSV
// saturation, compares video frames and draws the annotation primitives used by
// the rendered artifacts (rectangles, rings, lines and text labels).
//
// # Coordinate System
//
// All pixel coordinates are 0-based with the origin at the top-left corner.
// Regions are image.Rectangle values: Min is inclusive, Max is exclusive.
// Functions that return derived images always place their origin at (0, 0),
// even when the input is a sub-image.
//
// # Thread Safety
//
// ImageCache is safe for concurrent use. All other functions are stateless and
// allocate their outputs, except the Draw*, FillCircle and Dim helpers which
// mutate the *image.RGBA they are given.
//
// # Libraries
//
//   - github.com/disintegration/imaging: decoding, cropping, resizing, contrast
//   - github.com/chai2010/webp: WebP decode and encode
//   - github.com/anthonynsimon/bild: dilation, erosion and thresholding
//   - github.com/lucasb-eyer/go-colorful: HSV conversion and heat colors
//   - golang.org/x/image/font/basicfont: label glyphs
package imaging
