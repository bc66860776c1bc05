package video

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"path/filepath"
	"strings"
)

// ErrCaptureUnavailable is returned for non-GIF video when the binary was
// built without the gocv tag.
var ErrCaptureUnavailable = errors.New("video decoding requires the gocv build tag")

// Frame is one decoded frame. Index is 1-based in stream order.
type Frame struct {
	Index int
	Image image.Image
}

// FrameSource yields frames in order and returns io.EOF after the last one.
type FrameSource interface {
	Next(ctx context.Context) (Frame, error)
	// FPS reports the nominal frame rate, or 0 when unknown.
	FPS() float64
	Close() error
}

// SliceSource serves frames from memory.
type SliceSource struct {
	frames []image.Image
	fps    float64
	pos    int
}

// NewSliceSource returns a source over frames at the given rate.
func NewSliceSource(fps float64, frames ...image.Image) *SliceSource {
	return &SliceSource{frames: frames, fps: fps}
}

var _ FrameSource = (*SliceSource)(nil)

// Next implements FrameSource.
func (s *SliceSource) Next(ctx context.Context) (Frame, error) {
	if err := ctx.Err(); err != nil {
		return Frame{}, err
	}
	if s.pos >= len(s.frames) {
		return Frame{}, io.EOF
	}
	s.pos++
	return Frame{Index: s.pos, Image: s.frames[s.pos-1]}, nil
}

// FPS implements FrameSource.
func (s *SliceSource) FPS() float64 { return s.fps }

// Close implements FrameSource.
func (s *SliceSource) Close() error { return nil }

// Open picks a source by file extension: GIFs are decoded natively, anything
// else goes through OpenCV.
func Open(path string) (FrameSource, error) {
	if strings.EqualFold(filepath.Ext(path), ".gif") {
		src, err := OpenGIF(path)
		if err != nil {
			return nil, err
		}
		return src, nil
	}
	src, err := OpenCapture(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open video %s: %w", path, err)
	}
	return src, nil
}
