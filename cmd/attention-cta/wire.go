package main

import (
	"context"
	"fmt"

	"github.com/ironsheep/attention-cta/internal/analysis"
	"github.com/ironsheep/attention-cta/internal/config"
	"github.com/ironsheep/attention-cta/internal/cta"
	"github.com/ironsheep/attention-cta/internal/detection"
	"github.com/ironsheep/attention-cta/internal/logging"
	"github.com/ironsheep/attention-cta/internal/ocr"
	"github.com/ironsheep/attention-cta/internal/saliency"
	"github.com/ironsheep/attention-cta/internal/store"
)

// buildAnalyzer assembles the pipeline described by cfg.
func buildAnalyzer(cfg *config.Config) (*analysis.Analyzer, error) {
	geometry, err := detection.NewContourSource(cfg.CTA.Strategy)
	if err != nil {
		return nil, fmt.Errorf("failed to create contour source: %w", err)
	}

	var text cta.TextDetector
	switch {
	case cfg.CTA.DisableOCR:
	case !ocr.Available():
		logging.Warn(logging.Fields{"error": ocr.ErrUnavailable.Error()}, "ocr disabled, geometry candidates only")
	default:
		engine := ocr.NewEngine(cfg.OCR.Language, cfg.OCR.TessdataPrefix)
		logging.Debug(logging.Fields{"tesseract": engine.Version(), "language": cfg.OCR.Language}, "ocr enabled")
		text = engine
	}

	opts := []analysis.Option{analysis.WithOptions(cfg.AnalysisOptions())}
	if cfg.Output.Dir != "" {
		opts = append(opts, analysis.WithArtifacts(analysis.FileArtifacts{
			Dir:             cfg.Output.Dir,
			Format:          cfg.Output.Format,
			SpotlightRadius: cfg.Output.SpotlightRadius,
		}))
	}

	detector := cta.NewDetector(text, geometry, cfg.CTAOptions())
	return analysis.New(saliency.SpectralResidual{}, detector, opts...), nil
}

// buildStore returns the Redis job store when an address is configured, the
// in-memory one otherwise.
func buildStore(ctx context.Context, cfg *config.Config) (store.Store, func(), error) {
	if cfg.Server.RedisAddr == "" {
		return store.NewMemoryStore(cfg.JobTTL()), func() {}, nil
	}

	rs, err := store.NewRedisStore(ctx, cfg.Server.RedisAddr, cfg.JobTTL())
	if err != nil {
		return nil, nil, err
	}
	return rs, func() {
		if err := rs.Close(); err != nil {
			logging.Warn(logging.Fields{"error": err.Error()}, "failed to close redis")
		}
	}, nil
}
