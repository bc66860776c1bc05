package detection

import (
	"context"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestImage(width, height int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func fillRect(img *image.RGBA, r image.Rectangle, c color.Color) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.Set(x, y, c)
		}
	}
}

func TestIoU(t *testing.T) {
	a := Box{X: 0, Y: 0, W: 10, H: 10}
	b := Box{X: 5, Y: 0, W: 10, H: 10}
	far := Box{X: 100, Y: 100, W: 5, H: 5}
	touching := Box{X: 10, Y: 0, W: 10, H: 10}

	assert.InDelta(t, 1.0, IoU(a, a), 1e-12)
	assert.InDelta(t, 50.0/150.0, IoU(a, b), 1e-12)
	assert.Equal(t, IoU(a, b), IoU(b, a))
	assert.Zero(t, IoU(a, far))
	assert.Zero(t, IoU(a, touching))
	assert.Zero(t, IoU(Box{}, Box{}))
}

func TestIoU_Range(t *testing.T) {
	boxes := []Box{
		{0, 0, 10, 10}, {3, 3, 4, 4}, {-5, -5, 12, 12}, {8, 8, 30, 2}, {0, 0, 0, 5},
	}
	for _, a := range boxes {
		for _, b := range boxes {
			v := IoU(a, b)
			assert.GreaterOrEqual(t, v, 0.0)
			assert.LessOrEqual(t, v, 1.0)
			assert.Equal(t, v, IoU(b, a))
		}
	}
}

func TestBox_ClipPadAspect(t *testing.T) {
	b := Box{X: 5, Y: 5, W: 20, H: 10}

	assert.Equal(t, Box{X: 0, Y: 0, W: 35, H: 20}, b.Pad(10, 5).Clip(100, 100))
	assert.Equal(t, Box{X: 5, Y: 5, W: 10, H: 5}, b.Clip(15, 10))
	assert.True(t, Box{X: 50, Y: 50, W: 5, H: 5}.Clip(20, 20).Empty())
	assert.InDelta(t, 2.0, b.Aspect(), 1e-12)
	assert.Zero(t, Box{W: 5}.Aspect())
	assert.True(t, b.Contains(5, 5))
	assert.False(t, b.Contains(25, 5))
	assert.Equal(t, image.Rect(5, 5, 25, 15), b.Rect())
	assert.Equal(t, b, FromRect(b.Rect()))
}

func TestComponents(t *testing.T) {
	// Two diagonal-touching pixels form one region; the block on the right is another.
	w, h := 10, 5
	bits := make([]bool, w*h)
	set := func(x, y int) { bits[y*w+x] = true }
	set(0, 0)
	set(1, 1)
	for y := 1; y < 4; y++ {
		for x := 5; x < 9; x++ {
			set(x, y)
		}
	}

	comps := Components(bits, w, h)

	require.Len(t, comps, 2)
	assert.Equal(t, Component{Bounds: Box{X: 0, Y: 0, W: 2, H: 2}, Pixels: 2}, comps[0])
	assert.Equal(t, Component{Bounds: Box{X: 5, Y: 1, W: 4, H: 3}, Pixels: 12}, comps[1])
	assert.Equal(t, 12, LargestComponent(bits, w, h))
}

func TestComponents_Empty(t *testing.T) {
	assert.Empty(t, Components(make([]bool, 9), 3, 3))
	assert.Nil(t, Components(make([]bool, 4), 3, 3))
	assert.Zero(t, LargestComponent(nil, 0, 0))
}

func TestOutermost(t *testing.T) {
	outer := Box{X: 0, Y: 0, W: 50, H: 20}
	inner := Box{X: 10, Y: 5, W: 10, H: 5}
	other := Box{X: 60, Y: 0, W: 10, H: 10}

	kept := outermost([]Box{inner, outer, other, outer})

	assert.Equal(t, []Box{outer, other}, kept)
}

func TestEdgeContours_FindsButton(t *testing.T) {
	img := createTestImage(200, 120, color.RGBA{200, 200, 200, 255})
	button := image.Rect(60, 70, 140, 95)
	fillRect(img, button, color.RGBA{0, 100, 0, 255})
	// Glyph-like marks inside the button must not produce separate boxes.
	fillRect(img, image.Rect(75, 78, 80, 88), color.White)
	fillRect(img, image.Rect(90, 78, 95, 88), color.White)

	boxes, err := DefaultEdgeContours().Detect(context.Background(), img)

	require.NoError(t, err)
	require.NotEmpty(t, boxes)
	want := FromRect(button)
	best := 0.0
	for _, b := range boxes {
		if v := IoU(b, want); v > best {
			best = v
		}
		assert.False(t, b.Inside(want) && b != want && IoU(b, want) < 0.5, "nested box %v survived", b)
	}
	assert.Greater(t, best, 0.7)
}

func TestEdgeContours_UniformImage(t *testing.T) {
	boxes, err := DefaultEdgeContours().Detect(context.Background(), createTestImage(80, 80, color.Black))
	require.NoError(t, err)
	assert.Empty(t, boxes)
}

func TestSaturationContours_FindsColorBlock(t *testing.T) {
	img := createTestImage(300, 200, color.RGBA{230, 230, 230, 255})
	block := image.Rect(100, 140, 200, 170)
	fillRect(img, block, color.RGBA{220, 30, 30, 255})
	fillRect(img, image.Rect(120, 150, 180, 160), color.White)

	boxes, err := DefaultSaturationContours().Detect(context.Background(), img)

	require.NoError(t, err)
	require.Len(t, boxes, 1)
	assert.Greater(t, IoU(boxes[0], FromRect(block).Pad(5, 5)), 0.8)
}

func TestSaturationContours_GrayImage(t *testing.T) {
	boxes, err := DefaultSaturationContours().Detect(context.Background(), createTestImage(100, 100, color.Gray{Y: 90}))
	require.NoError(t, err)
	assert.Empty(t, boxes)
}

func TestSaturationContours_MaxThresholdMatchesNothing(t *testing.T) {
	img := createTestImage(300, 200, color.RGBA{0, 0, 255, 255})
	s := DefaultSaturationContours()
	s.MinSaturation = 255

	boxes, err := s.Detect(context.Background(), img)
	require.NoError(t, err)
	assert.Empty(t, boxes)
}

func TestContourSources_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	img := createTestImage(10, 10, color.White)

	_, err := DefaultEdgeContours().Detect(ctx, img)
	assert.ErrorIs(t, err, context.Canceled)
	_, err = DefaultSaturationContours().Detect(ctx, img)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewContourSource(t *testing.T) {
	src, err := NewContourSource("")
	require.NoError(t, err)
	assert.IsType(t, EdgeContours{}, src)

	src, err = NewContourSource(StrategySaturation)
	require.NoError(t, err)
	assert.IsType(t, SaturationContours{}, src)

	_, err = NewContourSource("hough")
	assert.Error(t, err)
}
