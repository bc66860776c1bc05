//go:build !gocv
// +build !gocv

package video

// OpenCapture reports that OpenCV decoding is not compiled in.
func OpenCapture(path string) (FrameSource, error) {
	_ = path
	return nil, ErrCaptureUnavailable
}
