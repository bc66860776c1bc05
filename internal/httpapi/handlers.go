package httpapi

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/ironsheep/attention-cta/internal/analysis"
	"github.com/ironsheep/attention-cta/internal/detection"
	"github.com/ironsheep/attention-cta/internal/imaging"
	"github.com/ironsheep/attention-cta/internal/logging"
)

// uploadField is the multipart field holding the uploaded file.
const uploadField = "file"

// AOIRequest is the body of POST /api/aoi.
type AOIRequest struct {
	JobID string          `json:"job_id" validate:"required"`
	Boxes []detection.Box `json:"boxes" validate:"required,min=1"`
}

func (h *handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func (h *handler) requestContext(c *fiber.Ctx) (context.Context, context.CancelFunc) {
	if h.opts.Timeout <= 0 {
		return context.WithCancel(c.UserContext())
	}
	return context.WithTimeout(c.UserContext(), h.opts.Timeout)
}

func (h *handler) AnalyzeImage(c *fiber.Ctx) error {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	fh, err := c.FormFile(uploadField)
	if err != nil {
		return h.fail(c, fmt.Errorf("%w: %s file is required", analysis.ErrInput, uploadField), "analyze_image")
	}
	f, err := fh.Open()
	if err != nil {
		return h.fail(c, fmt.Errorf("%w: %v", analysis.ErrInput, err), "analyze_image")
	}
	defer f.Close()

	img, err := imaging.Decode(f)
	if err != nil {
		return h.fail(c, fmt.Errorf("%w: %s: %v", analysis.ErrInput, fh.Filename, err), "analyze_image")
	}

	logging.WithRequestID(ctx).WithField("file", fh.Filename).Debug("analyzing uploaded image")

	job, err := h.analyzer.AnalyzeImage(ctx, img)
	if err != nil {
		return h.fail(c, err, "analyze_image")
	}
	if err := h.jobs.Put(ctx, job); err != nil {
		return h.fail(c, err, "analyze_image")
	}
	return c.Status(fiber.StatusOK).JSON(job.Result)
}

func (h *handler) AnalyzeVideo(c *fiber.Ctx) error {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	fh, err := c.FormFile(uploadField)
	if err != nil {
		return h.fail(c, fmt.Errorf("%w: %s file is required", analysis.ErrInput, uploadField), "analyze_video")
	}

	// The decoder is picked by extension, so keep it on the temp copy.
	tmp, err := os.CreateTemp(h.opts.TempDir, "upload-*"+strings.ToLower(filepath.Ext(fh.Filename)))
	if err != nil {
		return h.fail(c, err, "analyze_video")
	}
	path := tmp.Name()
	tmp.Close()
	defer os.Remove(path)

	if err := c.SaveFile(fh, path); err != nil {
		return h.fail(c, err, "analyze_video")
	}

	report, err := h.analyzer.AnalyzeVideoFile(ctx, path)
	if err != nil {
		return h.fail(c, err, "analyze_video")
	}
	for _, job := range report.Jobs {
		if err := h.jobs.Put(ctx, job); err != nil {
			return h.fail(c, err, "analyze_video")
		}
	}
	return c.Status(fiber.StatusOK).JSON(report)
}

func (h *handler) AnalyzeAOI(c *fiber.Ctx) error {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	var req AOIRequest
	if err := c.BodyParser(&req); err != nil {
		return h.fail(c, fmt.Errorf("%w: %v", analysis.ErrInput, err), "analyze_aoi")
	}
	if err := h.validator.Struct(req); err != nil {
		return h.fail(c, fmt.Errorf("%w: %v", analysis.ErrInput, err), "analyze_aoi")
	}

	job, err := h.jobs.Get(ctx, req.JobID)
	if err != nil {
		return h.fail(c, err, "analyze_aoi")
	}
	report, err := analysis.AnalyzeAOI(job, req.Boxes)
	if err != nil {
		return h.fail(c, err, "analyze_aoi")
	}
	return c.JSON(report)
}

func (h *handler) GetJob(c *fiber.Ctx) error {
	job, err := h.jobs.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.fail(c, err, "get_job")
	}
	return c.JSON(job.Result)
}
