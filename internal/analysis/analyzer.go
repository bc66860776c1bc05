package analysis

import (
	"context"
	"errors"
	"fmt"
	"image"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/ironsheep/attention-cta/internal/cta"
	"github.com/ironsheep/attention-cta/internal/detection"
	"github.com/ironsheep/attention-cta/internal/imaging"
	"github.com/ironsheep/attention-cta/internal/logging"
	"github.com/ironsheep/attention-cta/internal/metrics"
	"github.com/ironsheep/attention-cta/internal/saliency"
	"github.com/ironsheep/attention-cta/internal/video"
)

// Result is the per-image (or per key-frame) output bundle.
type Result struct {
	JobID  string `json:"job_id"`
	Width  int    `json:"width"`
	Height int    `json:"height"`

	// Timestamp and FrameIndex are set for video key-frames only.
	Timestamp  *float64 `json:"timestamp,omitempty"`
	FrameIndex int      `json:"frame_index,omitempty"`

	Scores         metrics.ScoreSet     `json:"scores"`
	Interpretation []metrics.Row        `json:"interpretation"`
	Gaze           []saliency.GazePoint `json:"gaze"`

	// Winner is the top final CTA box, or nil when no CTA qualified.
	Winner *detection.Box `json:"winner"`
	// CTA holds every final candidate, best first.
	CTA []cta.Candidate `json:"cta"`

	// Artifacts maps an artifact kind to its file path.
	Artifacts map[string]string `json:"artifacts,omitempty"`

	// Degenerate is set when the input had zero area.
	Degenerate bool `json:"degenerate,omitempty"`
}

// Job is a stored analysis: the result plus what AnalyzeAOI needs later.
type Job struct {
	ID         string       `json:"id"`
	CreatedAt  time.Time    `json:"created_at"`
	Result     Result       `json:"result"`
	Map        saliency.Map `json:"map"`
	Percentile float64      `json:"percentile"`
}

// CTADetector finds the CTA in an image given its saliency map.
// *cta.Detector satisfies it.
type CTADetector interface {
	Detect(ctx context.Context, img image.Image, m saliency.Map) (cta.Selection, error)
}

// Options tunes the pipeline.
type Options struct {
	Percentile float64
	Peaks      saliency.PeakOptions
	Sampler    video.SamplerOptions
	// Workers bounds concurrent key-frame analyses; 1 when zero or negative.
	Workers int
}

// DefaultOptions returns the 80th-percentile mask, default peaks and sampler,
// and four video workers.
func DefaultOptions() Options {
	return Options{
		Percentile: saliency.DefaultPercentile,
		Peaks:      saliency.DefaultPeakOptions(),
		Sampler:    video.DefaultSamplerOptions(),
		Workers:    4,
	}
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithOptions replaces the pipeline options.
func WithOptions(opts Options) Option {
	return func(a *Analyzer) { a.opts = opts }
}

// WithArtifacts renders visual outputs for every analysis.
func WithArtifacts(w ArtifactWriter) Option {
	return func(a *Analyzer) { a.artifacts = w }
}

// WithClock overrides the job timestamp source.
func WithClock(now func() time.Time) Option {
	return func(a *Analyzer) { a.now = now }
}

// Analyzer runs the attention and CTA pipeline. It holds no per-request
// state and is safe for concurrent use when its collaborators are.
type Analyzer struct {
	provider  saliency.Provider
	detector  CTADetector
	artifacts ArtifactWriter
	opts      Options
	now       func() time.Time
}

// New returns an analyzer over the given saliency provider and CTA detector.
func New(provider saliency.Provider, detector CTADetector, options ...Option) *Analyzer {
	a := &Analyzer{
		provider: provider,
		detector: detector,
		opts:     DefaultOptions(),
		now:      time.Now,
	}
	for _, opt := range options {
		opt(a)
	}
	return a
}

// Options returns the analyzer's pipeline options.
func (a *Analyzer) Options() Options {
	return a.opts
}

// AnalyzeFile loads an image from disk and analyzes it.
func (a *Analyzer) AnalyzeFile(ctx context.Context, path string) (*Job, error) {
	img, err := imaging.Load(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInput, err)
	}
	return a.AnalyzeImage(ctx, img)
}

// AnalyzeImage runs the pipeline over img.
//
// A zero-area image yields a degenerate job with zero scores and no CTA.
// Provider failures wrap ErrSaliency; context cancellation is returned as is.
func (a *Analyzer) AnalyzeImage(ctx context.Context, img image.Image) (*Job, error) {
	return a.analyze(ctx, img, newJobID())
}

func (a *Analyzer) analyze(ctx context.Context, img image.Image, id string) (*Job, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if img == nil {
		return nil, fmt.Errorf("%w: no image", ErrInput)
	}

	job := &Job{ID: id, CreatedAt: a.now().UTC(), Percentile: a.opts.Percentile}
	b := img.Bounds()
	if b.Empty() {
		logging.Warn(logging.Fields{"job_id": id, "error": ErrDegenerateInput.Error()}, "zero-area image")
		job.Map = saliency.NewMap(0, 0)
		job.Result = Result{
			JobID:          id,
			Scores:         metrics.Zero(),
			Interpretation: metrics.Interpret(metrics.Zero()),
			Gaze:           []saliency.GazePoint{},
			CTA:            []cta.Candidate{},
			Degenerate:     true,
		}
		return job, nil
	}

	m, err := a.provider.Compute(ctx, img)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrSaliency, err)
	}
	if m.Width != b.Dx() || m.Height != b.Dy() {
		return nil, fmt.Errorf("%w: map is %dx%d, image is %dx%d", ErrSaliency, m.Width, m.Height, b.Dx(), b.Dy())
	}

	mask := saliency.ThresholdMask(m, a.opts.Percentile)
	gaze := saliency.ExtractPeaks(m, a.opts.Peaks)

	sel, err := a.detector.Detect(ctx, img, m)
	if err != nil {
		return nil, err
	}

	scores := metrics.Compute(m, mask, sel.Confidence)
	result := Result{
		JobID:          id,
		Width:          b.Dx(),
		Height:         b.Dy(),
		Scores:         scores,
		Interpretation: metrics.Interpret(scores),
		Gaze:           gaze,
		CTA:            sel.Final,
	}
	if sel.Winner != nil {
		box := sel.Winner.Box
		result.Winner = &box
	}

	if a.artifacts != nil {
		paths, err := a.artifacts.Write(ctx, Rendering{
			JobID:     id,
			Image:     img,
			Map:       m,
			Mask:      mask,
			Gaze:      gaze,
			Selection: sel,
		})
		if err != nil {
			logging.Error(logging.Fields{"job_id": id, "error": err.Error()}, "failed to write artifacts")
		}
		result.Artifacts = paths
	}

	logging.Debug(logging.Fields{
		"job_id":     id,
		"visibility": scores.Visibility,
		"focus":      scores.Focus,
		"balanced":   scores.Balanced,
		"cta":        scores.Value(metrics.MetricCTA),
		"candidates": len(sel.Final),
	}, "analysis complete")

	job.Map = m
	job.Result = result
	return job, nil
}

func newJobID() string {
	return ulid.Make().String()
}
