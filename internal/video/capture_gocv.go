//go:build gocv
// +build gocv

package video

import (
	"context"
	"fmt"
	"io"

	"gocv.io/x/gocv"
)

// CaptureSource reads frames through OpenCV's VideoCapture.
type CaptureSource struct {
	vc    *gocv.VideoCapture
	mat   gocv.Mat
	fps   float64
	index int
}

// OpenCapture opens a video file with OpenCV.
func OpenCapture(path string) (FrameSource, error) {
	vc, err := gocv.VideoCaptureFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open capture: %w", err)
	}
	if !vc.IsOpened() {
		vc.Close()
		return nil, fmt.Errorf("failed to open capture: %s", path)
	}
	return &CaptureSource{
		vc:  vc,
		mat: gocv.NewMat(),
		fps: vc.Get(gocv.VideoCaptureFPS),
	}, nil
}

// Next implements FrameSource.
func (s *CaptureSource) Next(ctx context.Context) (Frame, error) {
	if err := ctx.Err(); err != nil {
		return Frame{}, err
	}
	if ok := s.vc.Read(&s.mat); !ok || s.mat.Empty() {
		return Frame{}, io.EOF
	}
	s.index++

	img, err := s.mat.ToImage()
	if err != nil {
		return Frame{}, fmt.Errorf("failed to convert frame %d: %w", s.index, err)
	}
	return Frame{Index: s.index, Image: img}, nil
}

// FPS implements FrameSource.
func (s *CaptureSource) FPS() float64 { return s.fps }

// Close implements FrameSource.
func (s *CaptureSource) Close() error {
	s.mat.Close()
	return s.vc.Close()
}
