package video

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"math"

	"github.com/ironsheep/attention-cta/internal/imaging"
	"github.com/ironsheep/attention-cta/internal/logging"
)

// SamplerOptions tunes key-frame detection.
type SamplerOptions struct {
	// IntervalSeconds is the spacing of evaluated frames after the first.
	IntervalSeconds float64 `json:"interval_seconds"`
	// PixelDelta is the per-pixel grayscale difference that counts as change.
	PixelDelta int `json:"pixel_delta"`
	// ChangeThreshold is the changed-pixel percentage above which a frame is a key-frame.
	ChangeThreshold float64 `json:"change_threshold"`
	// DefaultFPS replaces a missing or non-positive source frame rate.
	DefaultFPS float64 `json:"default_fps"`
	// TrackEvaluated compares against the last evaluated frame instead of the
	// last key-frame, so slow drift never accumulates into a key-frame.
	TrackEvaluated bool `json:"track_evaluated"`
}

// DefaultSamplerOptions returns a 2 s interval, delta 30 and a 3% threshold.
func DefaultSamplerOptions() SamplerOptions {
	return SamplerOptions{
		IntervalSeconds: 2,
		PixelDelta:      30,
		ChangeThreshold: 3.0,
		DefaultFPS:      30,
	}
}

// KeyFrame is an emitted frame with its timestamp in seconds, rounded to
// hundredths.
type KeyFrame struct {
	Index     int         `json:"index"`
	Timestamp float64     `json:"timestamp"`
	Changed   float64     `json:"changed"`
	Image     image.Image `json:"-"`
}

// Sampler walks a FrameSource and emits key-frames.
type Sampler struct {
	Options SamplerOptions
}

// NewSampler returns a sampler with opts.
func NewSampler(opts SamplerOptions) *Sampler {
	return &Sampler{Options: opts}
}

// Skip returns the evaluation stride in frames for a source rate.
func (s *Sampler) Skip(fps float64) int {
	return max(1, int(s.rate(fps)*s.Options.IntervalSeconds))
}

func (s *Sampler) rate(fps float64) float64 {
	if fps > 0 {
		return fps
	}
	if s.Options.DefaultFPS > 0 {
		return s.Options.DefaultFPS
	}
	return 30
}

// Run reads src to the end and calls emit for every key-frame in stream
// order. The first frame is always a key-frame. An error from emit or the
// source stops the walk and is returned; io.EOF ends it cleanly.
func (s *Sampler) Run(ctx context.Context, src FrameSource, emit func(KeyFrame) error) error {
	fps := s.rate(src.FPS())
	skip := s.Skip(src.FPS())

	var prev *image.Gray
	for {
		frame, err := src.Next(ctx)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if frame.Index != 1 && frame.Index%skip != 0 {
			continue
		}

		gray := imaging.ToGray(frame.Image)
		changed := 100.0
		if prev != nil {
			changed, err = imaging.ChangedPercent(prev, gray, s.Options.PixelDelta)
			if err != nil {
				logging.Debug(logging.Fields{"frame": frame.Index, "error": err.Error()}, "frame size changed, treating as a cut")
				changed = 100
			}
		}

		key := prev == nil || changed > s.Options.ChangeThreshold
		if key || s.Options.TrackEvaluated {
			prev = gray
		}
		if !key {
			continue
		}

		kf := KeyFrame{
			Index:     frame.Index,
			Timestamp: math.Round(float64(frame.Index)/fps*100) / 100,
			Changed:   changed,
			Image:     frame.Image,
		}
		logging.Debug(logging.Fields{"frame": kf.Index, "timestamp": kf.Timestamp, "changed": kf.Changed}, "key-frame")
		if err := emit(kf); err != nil {
			return fmt.Errorf("key-frame %d: %w", kf.Index, err)
		}
	}
}

// Collect runs the sampler and returns every key-frame.
func (s *Sampler) Collect(ctx context.Context, src FrameSource) ([]KeyFrame, error) {
	var frames []KeyFrame
	err := s.Run(ctx, src, func(kf KeyFrame) error {
		frames = append(frames, kf)
		return nil
	})
	return frames, err
}
