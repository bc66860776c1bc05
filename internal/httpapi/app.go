// Package httpapi exposes the analysis pipeline over HTTP with fiber.
package httpapi

import (
	"context"
	"image"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	jsoniter "github.com/json-iterator/go"

	"github.com/ironsheep/attention-cta/internal/analysis"
	"github.com/ironsheep/attention-cta/internal/store"
)

// Analyzer is the pipeline behind the routes. *analysis.Analyzer satisfies it.
type Analyzer interface {
	AnalyzeImage(ctx context.Context, img image.Image) (*analysis.Job, error)
	AnalyzeVideoFile(ctx context.Context, path string) (*analysis.VideoReport, error)
}

// Options tunes the HTTP surface.
type Options struct {
	// BodyLimitMB caps uploads.
	BodyLimitMB int
	// Timeout bounds a single analysis; zero disables it.
	Timeout time.Duration
	// TempDir receives uploaded videos while they are analyzed.
	TempDir string
}

// DefaultOptions allows 50 MB uploads and two minutes per analysis.
func DefaultOptions() Options {
	return Options{BodyLimitMB: 50, Timeout: 2 * time.Minute}
}

type handler struct {
	analyzer  Analyzer
	jobs      store.Store
	validator *validator.Validate
	opts      Options
}

// New builds the fiber app with middleware and routes registered.
func New(analyzer Analyzer, jobs store.Store, opts Options) *fiber.App {
	if opts.BodyLimitMB <= 0 {
		opts.BodyLimitMB = DefaultOptions().BodyLimitMB
	}

	app := fiber.New(fiber.Config{
		AppName:               "attention-cta",
		BodyLimit:             opts.BodyLimitMB * 1024 * 1024,
		StrictRouting:         true,
		CaseSensitive:         true,
		DisableStartupMessage: true,
		JSONEncoder:           jsoniter.Marshal,
		JSONDecoder:           jsoniter.Unmarshal,
		ErrorHandler:          fallbackErrorHandler,
	})

	app.Use(NewRequestIDMiddleware())
	app.Use(NewLoggingMiddleware())

	h := &handler{
		analyzer:  analyzer,
		jobs:      jobs,
		validator: validator.New(),
		opts:      opts,
	}
	h.Start(app)

	return app
}

// Start registers the routes on srv.
func (h *handler) Start(srv fiber.Router) {
	srv.Get("/healthz", h.Health)

	api := srv.Group("/api")
	api.Post("/analyze/image", h.AnalyzeImage)
	api.Post("/analyze/video", h.AnalyzeVideo)
	api.Post("/aoi", h.AnalyzeAOI)
	api.Get("/jobs/:id", h.GetJob)
}
