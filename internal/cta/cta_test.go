package cta

import (
	"context"
	"errors"
	"image"
	"image/color"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/ironsheep/attention-cta/internal/detection"
	"github.com/ironsheep/attention-cta/internal/saliency"
)

type fakeText struct {
	words    []detection.Word
	wordsErr error
	line     string
	lineErr  error
	reads    int
}

func (f *fakeText) DetectWords(ctx context.Context, img image.Image) ([]detection.Word, error) {
	return f.words, f.wordsErr
}

func (f *fakeText) ReadLine(ctx context.Context, img image.Image) (string, error) {
	f.reads++
	return f.line, f.lineErr
}

type fakeGeometry struct {
	boxes []detection.Box
	err   error
}

func (f fakeGeometry) Detect(ctx context.Context, img image.Image) ([]detection.Box, error) {
	return f.boxes, f.err
}

func solid(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func constMap(w, h int, v uint8) saliency.Map {
	m := saliency.NewMap(w, h)
	for i := range m.Pix {
		m.Pix[i] = v
	}
	return m
}

func fillMap(m saliency.Map, r image.Rectangle, v uint8) {
	r = r.Intersect(m.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			m.Pix[y*m.Width+x] = v
		}
	}
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "buy now", Normalize("  BUY   NOW! "))
	assert.Equal(t, "satın al", Normalize("Satın Al"))
	assert.Equal(t, "incele", Normalize("İNCELE"))
	assert.Equal(t, "add to cart", Normalize("add-to_cart"))
	assert.Equal(t, "", Normalize(" ... "))
}

func TestLexicon(t *testing.T) {
	lex := DefaultLexicon()

	assert.True(t, lex.HasPhrase("Buy Now!"))
	assert.True(t, lex.HasPhrase("click to buy now today"))
	assert.True(t, lex.HasPhrase("REGISTER"))
	assert.True(t, lex.HasPhrase("Hemen Satın Al"))
	assert.False(t, lex.HasPhrase("buy nowhere"))
	assert.False(t, lex.HasPhrase(""))

	assert.True(t, lex.HasVerb("hemen al"))
	assert.True(t, lex.HasVerb("Watch the trailer"))
	assert.False(t, lex.HasVerb("albums"))
	assert.False(t, lex.HasVerb("summer sale"))
}

func TestEnvelope_Admits(t *testing.T) {
	e := DefaultEnvelope()

	assert.True(t, e.Admits(100, 30, 1000, 1000))
	assert.False(t, e.Admits(20, 30, 1000, 1000), "too narrow")
	assert.False(t, e.Admits(800, 30, 1000, 1000), "too wide")
	assert.False(t, e.Admits(100, 300, 1000, 1000), "too tall")
	assert.False(t, e.Admits(40, 40, 1000, 1000), "square fails aspect")
	assert.False(t, e.Admits(100, 0, 1000, 1000))

	assert.True(t, StandaloneEnvelope().Admits(40, 40, 1000, 1000))
}

func TestScorer_Score(t *testing.T) {
	m := constMap(1000, 1000, 100)
	fillMap(m, image.Rect(0, 900, 1000, 1000), 0)
	s := NewScorer(DefaultOptions())

	cands := []Candidate{
		{Box: detection.Box{X: 400, Y: 700, W: 200, H: 50}, Text: "buy now"},
		{Box: detection.Box{X: 100, Y: 100, W: 400, H: 200}, Text: "summer collection"},
		{Box: detection.Box{X: 600, Y: 600, W: 100, H: 40}, Text: ""},
		{Box: detection.Box{X: 100, Y: 920, W: 100, H: 40}, Text: "nothing here"},
		{Box: detection.Box{X: 700, Y: 500, W: 100, H: 40}, Text: "watch"},
	}

	got := s.Score(cands, m, 1000, 1000)

	require.Len(t, got, 3)
	assert.Equal(t, "buy now", got[0].Text)
	assert.InDelta(t, 7*100+5*100+1.5*100, got[0].Score, 1e-9)
	assert.True(t, got[0].HasKeyword)

	assert.Equal(t, "", got[1].Text)
	assert.InDelta(t, 150.0, got[1].Score, 1e-9)
	assert.False(t, got[1].HasKeyword)

	assert.Equal(t, "watch", got[2].Text)
	assert.InDelta(t, 5*100+150.0, got[2].Score, 1e-9)
	assert.True(t, got[2].HasKeyword, "verbs count as action language")
}

func TestScorer_HeadlinePenaltyOnlyAtTop(t *testing.T) {
	m := constMap(1000, 1000, 200)
	s := NewScorer(DefaultOptions())
	big := detection.Box{X: 100, W: 400, H: 200}

	top := big
	top.Y = 100
	bottom := big
	bottom.Y = 600

	got := s.Score([]Candidate{{Box: top, Text: "headline"}, {Box: bottom, Text: "headline"}}, m, 1000, 1000)

	require.Len(t, got, 1)
	assert.Equal(t, 600, got[0].Box.Y)
}

func TestDedupe_OverlapScenario(t *testing.T) {
	a := Candidate{Box: detection.Box{X: 0, Y: 0, W: 100, H: 100}, Score: 300}
	b := Candidate{Box: detection.Box{X: 25, Y: 0, W: 100, H: 100}, Score: 500}
	require.InDelta(t, 0.6, detection.IoU(a.Box, b.Box), 1e-12)

	got := Dedupe([]Candidate{a, b}, 0.4, 5)

	require.Len(t, got, 1)
	assert.Equal(t, b, got[0])
}

func TestDedupe_Properties(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	var cands []Candidate
	for i := 0; i < 60; i++ {
		cands = append(cands, Candidate{
			Box:   detection.Box{X: rng.Intn(300), Y: rng.Intn(300), W: 20 + rng.Intn(80), H: 10 + rng.Intn(40)},
			Score: float64(rng.Intn(1000)),
		})
	}

	got := Dedupe(cands, 0.4, 5)

	assert.LessOrEqual(t, len(got), 5)
	for i := range got {
		if i > 0 {
			assert.LessOrEqual(t, got[i].Score, got[i-1].Score)
		}
		for j := 0; j < i; j++ {
			assert.LessOrEqual(t, detection.IoU(got[i].Box, got[j].Box), 0.4)
		}
	}
}

func TestSelect(t *testing.T) {
	o := DefaultOptions()

	t.Run("empty", func(t *testing.T) {
		sel := Select(nil, o)
		assert.Nil(t, sel.Confidence)
		assert.Nil(t, sel.Winner)
		assert.Empty(t, sel.Final)
	})

	t.Run("keyword priority", func(t *testing.T) {
		deduped := []Candidate{
			{Text: "sale", Score: 2000},
			{Text: "buy now", Score: 1350, HasKeyword: true},
		}
		sel := Select(deduped, o)
		require.NotNil(t, sel.Confidence)
		require.Len(t, sel.Final, 1)
		assert.Equal(t, "buy now", sel.Winner.Text)
		// 55 + 10 + 25·0.9 = 87.5, half to even.
		assert.Equal(t, 88.0, *sel.Confidence)
	})

	t.Run("several keywords are capped", func(t *testing.T) {
		deduped := []Candidate{
			{Score: 1500, HasKeyword: true},
			{Score: 1400, HasKeyword: true},
			{Score: 1300, HasKeyword: true},
			{Score: 1200, HasKeyword: true},
		}
		sel := Select(deduped, o)
		assert.Len(t, sel.Final, 4)
		assert.Equal(t, 100.0, *sel.Confidence)
	})

	t.Run("fallback takes top candidate only", func(t *testing.T) {
		deduped := []Candidate{{Text: "a", Score: 300}, {Text: "b", Score: 200}}
		sel := Select(deduped, o)
		require.Len(t, sel.Final, 1)
		assert.Equal(t, "a", sel.Winner.Text)
		assert.Equal(t, 8.0, *sel.Confidence)

		high := Select([]Candidate{{Score: 3000}}, o)
		assert.Equal(t, 40.0, *high.Confidence)
	})

	t.Run("bounds", func(t *testing.T) {
		rng := rand.New(rand.NewSource(5))
		for i := 0; i < 200; i++ {
			n := 1 + rng.Intn(5)
			var deduped []Candidate
			withKeyword := false
			for j := 0; j < n; j++ {
				c := Candidate{Score: 121 + float64(rng.Intn(3000)), HasKeyword: rng.Intn(3) == 0}
				withKeyword = withKeyword || c.HasKeyword
				deduped = append(deduped, c)
			}
			sel := Select(Dedupe(deduped, 0.4, 5), o)
			require.NotNil(t, sel.Confidence)
			assert.GreaterOrEqual(t, *sel.Confidence, 0.0)
			assert.LessOrEqual(t, *sel.Confidence, 100.0)
			if withKeyword {
				assert.GreaterOrEqual(t, *sel.Confidence, 55.0)
			} else {
				assert.LessOrEqual(t, *sel.Confidence, 40.0)
			}
		}
	})
}

func TestGenerator_FusesSources(t *testing.T) {
	img := solid(400, 300, color.White)
	text := &fakeText{
		words: []detection.Word{
			{Box: image.Rect(100, 200, 140, 215), Text: " BUY ", Confidence: 90},
			{Box: image.Rect(10, 10, 20, 20), Text: "x", Confidence: 99},
			{Box: image.Rect(300, 10, 340, 25), Text: "now", Confidence: 30},
		},
		line: "Shop Now",
	}
	geometry := fakeGeometry{boxes: []detection.Box{
		{X: 90, Y: 195, W: 60, H: 25},
		{X: 200, Y: 100, W: 100, H: 30},
		{X: 0, Y: 0, W: 10, H: 200},
	}}
	g := Generator{Text: text, Geometry: geometry, Options: DefaultOptions()}

	got, err := g.Generate(context.Background(), img)

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, Candidate{Box: detection.Box{X: 90, Y: 195, W: 60, H: 25}, Text: "buy", Source: SourceOCR}, got[0])
	assert.Equal(t, Candidate{Box: detection.Box{X: 200, Y: 100, W: 100, H: 30}, Text: "shop now", Source: SourceGeometry}, got[1])
	assert.Equal(t, 1, text.reads)
}

func TestGenerator_ClipsPaddedWords(t *testing.T) {
	text := &fakeText{words: []detection.Word{{Box: image.Rect(0, 0, 40, 12), Text: "login", Confidence: 80}}}
	g := Generator{Text: text, Options: DefaultOptions()}

	got, err := g.Generate(context.Background(), solid(400, 300, color.White))

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, detection.Box{X: 0, Y: 0, W: 50, H: 17}, got[0].Box)
}

func TestGenerator_SourceFailuresAreSwallowed(t *testing.T) {
	img := solid(400, 300, color.White)
	box := detection.Box{X: 200, Y: 100, W: 100, H: 30}

	g := Generator{
		Text:     &fakeText{wordsErr: errors.New("tesseract crashed"), lineErr: errors.New("still broken")},
		Geometry: fakeGeometry{boxes: []detection.Box{box}},
		Options:  DefaultOptions(),
	}
	got, err := g.Generate(context.Background(), img)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "", got[0].Text)

	g = Generator{
		Text:     &fakeText{words: []detection.Word{{Box: image.Rect(100, 200, 140, 215), Text: "buy", Confidence: 90}}},
		Geometry: fakeGeometry{err: errors.New("contour failure")},
		Options:  DefaultOptions(),
	}
	got, err = g.Generate(context.Background(), img)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, SourceOCR, got[0].Source)
}

func TestGenerator_EmptyImageAndCancel(t *testing.T) {
	g := Generator{Geometry: detection.DefaultEdgeContours(), Options: DefaultOptions()}

	got, err := g.Generate(context.Background(), image.NewRGBA(image.Rect(0, 0, 0, 0)))
	require.NoError(t, err)
	assert.Empty(t, got)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = g.Generate(ctx, solid(50, 50, color.White))
	assert.ErrorIs(t, err, context.Canceled)
}

func drawText(img *image.RGBA, x, y int, text string, col color.Color) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: basicfont.Face7x13,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)},
	}
	d.DrawString(text)
}

// A single green "BUY NOW" button in the lower third of a flat gray image.
func TestDetector_GreenButtonScenario(t *testing.T) {
	img := solid(300, 300, color.RGBA{200, 200, 200, 255})
	button := image.Rect(90, 220, 210, 255)
	for y := button.Min.Y; y < button.Max.Y; y++ {
		for x := button.Min.X; x < button.Max.X; x++ {
			img.Set(x, y, color.RGBA{0, 120, 0, 255})
		}
	}
	drawText(img, 126, 242, "BUY NOW", color.White)

	m := constMap(300, 300, 10)
	fillMap(m, button, 220)

	d := NewDetector(&fakeText{line: "BUY NOW"}, detection.DefaultEdgeContours(), DefaultOptions())
	sel, err := d.Detect(context.Background(), img, m)

	require.NoError(t, err)
	require.Len(t, sel.Final, 1)
	require.NotNil(t, sel.Winner)
	assert.True(t, sel.Winner.HasKeyword)
	assert.Greater(t, detection.IoU(sel.Winner.Box, detection.FromRect(button)), 0.7)
	require.NotNil(t, sel.Confidence)
	assert.GreaterOrEqual(t, *sel.Confidence, 55.0)
}

func TestDetector_NoCandidates(t *testing.T) {
	d := NewDetector(&fakeText{}, detection.DefaultEdgeContours(), DefaultOptions())

	sel, err := d.Detect(context.Background(), solid(100, 100, color.Black), saliency.NewMap(100, 100))

	require.NoError(t, err)
	assert.Nil(t, sel.Confidence)
	assert.Nil(t, sel.Winner)
}

func TestNewDetector_GeometryOnlyEnvelope(t *testing.T) {
	d := NewDetector(nil, detection.DefaultEdgeContours(), DefaultOptions())
	assert.Equal(t, StandaloneEnvelope(), d.Generator.Options.Envelope)
}
