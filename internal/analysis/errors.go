package analysis

import (
	"errors"

	"github.com/ironsheep/attention-cta/internal/cta"
)

var (
	// ErrInput marks an unreadable or corrupt image or video.
	ErrInput = errors.New("invalid input")

	// ErrSaliency marks a failure of the saliency provider.
	ErrSaliency = errors.New("saliency computation failed")

	// ErrDegenerateInput marks a zero-area image or map.
	ErrDegenerateInput = errors.New("degenerate input")

	// ErrCandidateSource is logged and swallowed during CTA generation.
	ErrCandidateSource = cta.ErrCandidateSource
)
