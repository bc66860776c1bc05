package analysis

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/ironsheep/attention-cta/internal/logging"
	"github.com/ironsheep/attention-cta/internal/video"
)

// FrameDiagnostic records a key-frame whose analysis failed.
type FrameDiagnostic struct {
	FrameIndex int     `json:"frame_index"`
	Timestamp  float64 `json:"timestamp"`
	Error      string  `json:"error"`
}

// VideoReport is the time series of a video analysis.
type VideoReport struct {
	JobID string  `json:"job_id"`
	FPS   float64 `json:"fps"`
	// Results are ordered by timestamp.
	Results     []Result          `json:"results"`
	Diagnostics []FrameDiagnostic `json:"diagnostics"`

	// Jobs holds the per-frame jobs in Results order, for storage.
	Jobs []*Job `json:"-"`
}

// AnalyzeVideoFile opens path with video.Open and analyzes it.
func (a *Analyzer) AnalyzeVideoFile(ctx context.Context, path string) (*VideoReport, error) {
	src, err := video.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInput, err)
	}
	defer src.Close()
	return a.AnalyzeVideo(ctx, src)
}

// AnalyzeVideo samples key-frames from src and runs the image pipeline on
// each, up to Options.Workers at a time. Results come back in timestamp
// order. A key-frame whose analysis fails is left out and recorded as a
// diagnostic; a source read failure fails the whole video with ErrInput.
func (a *Analyzer) AnalyzeVideo(ctx context.Context, src video.FrameSource) (*VideoReport, error) {
	reportID := newJobID()
	sampler := video.NewSampler(a.opts.Sampler)

	workers := a.opts.Workers
	if workers < 1 {
		workers = 1
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	var (
		mu          sync.Mutex
		jobs        []*Job
		diagnostics []FrameDiagnostic
	)

	sampleErr := sampler.Run(gctx, src, func(kf video.KeyFrame) error {
		g.Go(func() error {
			job, err := a.analyze(gctx, kf.Image, fmt.Sprintf("%s-%06d", reportID, kf.Index))
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				logging.Warn(logging.Fields{"job_id": reportID, "frame": kf.Index, "error": err.Error()}, "key-frame analysis failed")
				mu.Lock()
				diagnostics = append(diagnostics, FrameDiagnostic{FrameIndex: kf.Index, Timestamp: kf.Timestamp, Error: err.Error()})
				mu.Unlock()
				return nil
			}

			ts := kf.Timestamp
			job.Result.Timestamp = &ts
			job.Result.FrameIndex = kf.Index
			mu.Lock()
			jobs = append(jobs, job)
			mu.Unlock()
			return nil
		})
		return nil
	})
	waitErr := g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if sampleErr != nil {
		if errors.Is(sampleErr, context.Canceled) || errors.Is(sampleErr, context.DeadlineExceeded) {
			return nil, sampleErr
		}
		return nil, fmt.Errorf("%w: %v", ErrInput, sampleErr)
	}
	if waitErr != nil {
		return nil, waitErr
	}

	sort.Slice(jobs, func(i, j int) bool { return jobs[i].Result.FrameIndex < jobs[j].Result.FrameIndex })
	sort.Slice(diagnostics, func(i, j int) bool { return diagnostics[i].FrameIndex < diagnostics[j].FrameIndex })

	report := &VideoReport{
		JobID:       reportID,
		FPS:         src.FPS(),
		Results:     make([]Result, 0, len(jobs)),
		Diagnostics: diagnostics,
		Jobs:        jobs,
	}
	if report.Diagnostics == nil {
		report.Diagnostics = []FrameDiagnostic{}
	}
	for _, job := range jobs {
		report.Results = append(report.Results, job.Result)
	}

	logging.Info(logging.Fields{
		"job_id":      reportID,
		"key_frames":  len(report.Results),
		"diagnostics": len(report.Diagnostics),
	}, "video analysis complete")
	return report, nil
}
