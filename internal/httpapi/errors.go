package httpapi

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/ironsheep/attention-cta/internal/analysis"
	"github.com/ironsheep/attention-cta/internal/logging"
	"github.com/ironsheep/attention-cta/internal/store"
)

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	RequestID string `json:"request_id,omitempty"`
}

// statusFor maps pipeline errors onto HTTP statuses and stable codes.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, analysis.ErrInput):
		return fiber.StatusBadRequest, "INVALID_INPUT"
	case errors.Is(err, store.ErrNotFound):
		return fiber.StatusNotFound, "JOB_NOT_FOUND"
	case errors.Is(err, analysis.ErrDegenerateInput):
		return fiber.StatusUnprocessableEntity, "DEGENERATE_INPUT"
	case errors.Is(err, context.DeadlineExceeded):
		return fiber.StatusGatewayTimeout, "TIMEOUT"
	case errors.Is(err, analysis.ErrSaliency):
		return fiber.StatusInternalServerError, "SALIENCY_FAILED"
	default:
		return fiber.StatusInternalServerError, "INTERNAL"
	}
}

func (h *handler) fail(c *fiber.Ctx, err error, operation string) error {
	status, code := statusFor(err)
	fields := logging.Fields{
		"request_id": requestID(c),
		"error":      err.Error(),
		"path":       c.Path(),
		"operation":  operation,
	}

	resp := ErrorResponse{Error: err.Error(), Code: code, RequestID: requestID(c)}
	if status >= 500 {
		resp.RequestID = logging.ErrorWithTraceID(fields, "operation failed")
		resp.Error = "internal error"
	} else {
		logging.Warn(fields, "request rejected")
	}
	return c.Status(status).JSON(resp)
}

// fallbackErrorHandler renders errors that escape a handler, including fiber's
// own (unknown route, body too large).
func fallbackErrorHandler(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	code := "INTERNAL"
	var ferr *fiber.Error
	if errors.As(err, &ferr) {
		status = ferr.Code
		code = "HTTP_ERROR"
	}
	return c.Status(status).JSON(ErrorResponse{Error: err.Error(), Code: code, RequestID: requestID(c)})
}
