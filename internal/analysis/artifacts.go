package analysis

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"path/filepath"

	"github.com/ironsheep/attention-cta/internal/cta"
	"github.com/ironsheep/attention-cta/internal/imaging"
	"github.com/ironsheep/attention-cta/internal/saliency"
)

// Artifact kinds.
const (
	ArtifactHeatmap   = "heatmap"
	ArtifactFocus     = "focus"
	ArtifactSpotlight = "spotlight"
	ArtifactGaze      = "gaze"
	ArtifactCTA       = "cta"
)

var (
	winnerColor = color.RGBA{R: 0, G: 255, B: 0, A: 255}
	runnerColor = color.RGBA{R: 255, G: 255, B: 0, A: 255}
)

// Rendering is everything an ArtifactWriter may draw from.
type Rendering struct {
	JobID     string
	Image     image.Image
	Map       saliency.Map
	Mask      saliency.Mask
	Gaze      []saliency.GazePoint
	Selection cta.Selection
}

// ArtifactWriter persists the visual outputs of an analysis and returns the
// location of each by kind. A partial map may accompany an error.
type ArtifactWriter interface {
	Write(ctx context.Context, r Rendering) (map[string]string, error)
}

type artifact struct {
	kind   string
	render func() image.Image
}

// FileArtifacts writes artifacts as <kind>_<jobID>.<ext> under Dir.
type FileArtifacts struct {
	Dir string
	// Format is "jpg", "png" or "webp"; "jpg" when empty.
	Format string
	// SpotlightRadius is the disk radius around gaze points; 60 when zero.
	SpotlightRadius int
}

// Write renders and saves the heatmap, focus overlay, spotlight and gaze
// plot, plus the CTA preview when a winner exists.
func (f FileArtifacts) Write(ctx context.Context, r Rendering) (map[string]string, error) {
	radius := f.SpotlightRadius
	if radius <= 0 {
		radius = 60
	}

	images := []artifact{
		{ArtifactHeatmap, func() image.Image { return saliency.RenderHeatmap(r.Image, r.Map) }},
		{ArtifactFocus, func() image.Image { return saliency.RenderOverlay(r.Image, r.Mask, r.Map) }},
		{ArtifactSpotlight, func() image.Image { return saliency.RenderSpotlight(r.Image, r.Map, r.Gaze, radius) }},
		{ArtifactGaze, func() image.Image { return saliency.RenderGaze(r.Image, r.Map, r.Gaze) }},
	}
	if r.Selection.Winner != nil {
		images = append(images, artifact{ArtifactCTA, func() image.Image { return RenderCTAPreview(r.Image, r.Selection) }})
	}

	paths := make(map[string]string, len(images))
	for _, a := range images {
		if err := ctx.Err(); err != nil {
			return paths, err
		}
		path := f.path(a.kind, r.JobID)
		if err := imaging.Save(a.render(), path); err != nil {
			return paths, fmt.Errorf("failed to save %s artifact: %w", a.kind, err)
		}
		paths[a.kind] = path
	}
	return paths, nil
}

func (f FileArtifacts) path(kind, jobID string) string {
	format := f.Format
	if format == "" {
		format = imaging.FormatJPEG
	}
	return filepath.Join(f.Dir, fmt.Sprintf("%s_%s.%s", kind, jobID, format))
}

// RenderCTAPreview outlines the final candidates: the winner in thick green,
// the others in thinner yellow.
func RenderCTAPreview(img image.Image, sel cta.Selection) *image.RGBA {
	out := imaging.ToRGBA(img)
	for i, c := range sel.Final {
		if i == 0 {
			continue
		}
		imaging.DrawRect(out, c.Box.Rect(), runnerColor, 2)
	}
	if sel.Winner != nil {
		imaging.DrawRect(out, sel.Winner.Box.Rect(), winnerColor, 4)
	}
	return out
}
