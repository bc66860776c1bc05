package video

import (
	"context"
	"fmt"
	"image"
	"image/draw"
	"image/gif"
	"io"
	"os"
)

// GIFSource plays back an animated GIF, compositing each frame onto the
// logical screen according to its disposal method.
type GIFSource struct {
	g      *gif.GIF
	canvas *image.RGBA
	prev   *image.RGBA
	pos    int
	fps    float64
}

// OpenGIF decodes the GIF at path.
func OpenGIF(path string) (*GIFSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open gif: %w", err)
	}
	defer f.Close()
	return NewGIFSource(f)
}

// NewGIFSource decodes every frame of an animated GIF from r.
func NewGIFSource(r io.Reader) (*GIFSource, error) {
	g, err := gif.DecodeAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode gif: %w", err)
	}
	if len(g.Image) == 0 {
		return nil, fmt.Errorf("failed to decode gif: no frames")
	}

	w, h := g.Config.Width, g.Config.Height
	if w == 0 || h == 0 {
		b := g.Image[0].Bounds()
		w, h = b.Max.X, b.Max.Y
	}

	return &GIFSource{
		g:      g,
		canvas: image.NewRGBA(image.Rect(0, 0, w, h)),
		fps:    gifRate(g.Delay),
	}, nil
}

// gifRate derives frames per second from the mean frame delay (in 1/100 s).
func gifRate(delays []int) float64 {
	total := 0
	for _, d := range delays {
		total += d
	}
	if total <= 0 || len(delays) == 0 {
		return 0
	}
	return 100 * float64(len(delays)) / float64(total)
}

var _ FrameSource = (*GIFSource)(nil)

// Next implements FrameSource.
func (s *GIFSource) Next(ctx context.Context) (Frame, error) {
	if err := ctx.Err(); err != nil {
		return Frame{}, err
	}
	if s.pos >= len(s.g.Image) {
		return Frame{}, io.EOF
	}

	frame := s.g.Image[s.pos]
	disposal := byte(gif.DisposalNone)
	if s.pos < len(s.g.Disposal) {
		disposal = s.g.Disposal[s.pos]
	}
	if disposal == gif.DisposalPrevious {
		s.prev = cloneRGBA(s.canvas)
	}

	draw.Draw(s.canvas, frame.Bounds(), frame, frame.Bounds().Min, draw.Over)
	out := cloneRGBA(s.canvas)

	switch disposal {
	case gif.DisposalBackground:
		draw.Draw(s.canvas, frame.Bounds(), image.Transparent, image.Point{}, draw.Src)
	case gif.DisposalPrevious:
		s.canvas = s.prev
	}

	s.pos++
	return Frame{Index: s.pos, Image: out}, nil
}

// FPS implements FrameSource.
func (s *GIFSource) FPS() float64 { return s.fps }

// Close implements FrameSource.
func (s *GIFSource) Close() error { return nil }

func cloneRGBA(src *image.RGBA) *image.RGBA {
	dst := image.NewRGBA(src.Bounds())
	copy(dst.Pix, src.Pix)
	return dst
}
