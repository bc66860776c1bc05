//go:build !gocv

package detection

import "errors"

// ErrGoCVUnavailable is returned when the binary was built without the gocv tag.
var ErrGoCVUnavailable = errors.New("gocv contour source not compiled in (build with -tags gocv)")

// NewGoCVContours reports that OpenCV support is unavailable.
func NewGoCVContours() (ContourSource, error) {
	return nil, ErrGoCVUnavailable
}
