package metrics

import (
	"image"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/attention-cta/internal/saliency"
)

func mapWith(w, h int, base uint8, region image.Rectangle, v uint8) saliency.Map {
	m := saliency.NewMap(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			m.Pix[y*w+x] = base
			if (image.Point{X: x, Y: y}).In(region) {
				m.Pix[y*w+x] = v
			}
		}
	}
	return m
}

func maskOf(w, h int, regions ...image.Rectangle) saliency.Mask {
	mask := saliency.Mask{Width: w, Height: h, Bits: make([]bool, w*h)}
	for _, r := range regions {
		for y := r.Min.Y; y < r.Max.Y; y++ {
			for x := r.Min.X; x < r.Max.X; x++ {
				mask.Bits[y*w+x] = true
			}
		}
	}
	return mask
}

func TestCompute_AllBlack(t *testing.T) {
	m := saliency.NewMap(100, 100)
	mask := saliency.ThresholdMask(m, saliency.DefaultPercentile)

	s := Compute(m, mask, nil)

	assert.Equal(t, 100.0, s.Visibility)
	assert.Equal(t, 0.0, s.Focus)
	assert.Equal(t, 50.0, s.Balanced)
	assert.Nil(t, s.CTA)
}

func TestCompute_EmptyMap(t *testing.T) {
	assert.Equal(t, Zero(), Compute(saliency.Map{}, saliency.Mask{}, nil))
}

func TestCompute_CopiesCTA(t *testing.T) {
	m := mapWith(50, 50, 0, image.Rect(10, 10, 20, 20), 255)
	cta := 88.0

	s := Compute(m, saliency.ThresholdMask(m, 80), &cta)
	cta = 1

	require.NotNil(t, s.CTA)
	assert.Equal(t, 88.0, *s.CTA)
}

func TestFocus_LargestComponentShare(t *testing.T) {
	m := mapWith(100, 100, 0, image.Rect(0, 0, 20, 20), 255)
	mask := maskOf(100, 100, image.Rect(0, 0, 20, 20), image.Rect(60, 60, 70, 70))

	assert.InDelta(t, 80.0, Focus(m, mask), 1e-9)
	assert.Equal(t, 0.0, Focus(m, maskOf(100, 100)))
}

func TestFocus_DiagonalNeighboursConnect(t *testing.T) {
	m := mapWith(10, 10, 0, image.Rect(0, 0, 1, 1), 255)
	mask := maskOf(10, 10, image.Rect(0, 0, 1, 1), image.Rect(1, 1, 2, 2), image.Rect(2, 2, 3, 3))

	assert.InDelta(t, 100.0, Focus(m, mask), 1e-9)
}

func TestBalance(t *testing.T) {
	t.Run("bright centre saturates", func(t *testing.T) {
		m := mapWith(100, 100, 0, image.Rect(30, 30, 70, 70), 255)
		assert.Equal(t, 100.0, Balance(m))
	})

	t.Run("dark centre", func(t *testing.T) {
		m := mapWith(100, 100, 200, image.Rect(30, 30, 70, 70), 0)
		assert.InDelta(t, 50.0, Balance(m), 1e-9)
	})

	t.Run("partial", func(t *testing.T) {
		m := mapWith(100, 100, 100, image.Rect(30, 30, 70, 70), 50)
		s := Compute(m, saliency.ThresholdMask(m, 80), nil)
		assert.Equal(t, 77.2, s.Balanced)
	})

	t.Run("all zero", func(t *testing.T) {
		assert.Equal(t, 50.0, Balance(saliency.NewMap(10, 10)))
	})

	t.Run("centre columns outside centre rows", func(t *testing.T) {
		m := mapWith(100, 100, 0, image.Rect(30, 0, 70, 20), 255)
		assert.InDelta(t, 50.0, Balance(m), 1e-9)
	})
}

func TestCompute_Bounds(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 50; i++ {
		w, h := 1+rng.Intn(60), 1+rng.Intn(60)
		m := saliency.NewMap(w, h)
		for j := range m.Pix {
			m.Pix[j] = uint8(rng.Intn(256))
		}
		s := Compute(m, saliency.ThresholdMask(m, 80), nil)
		for _, v := range []float64{s.Visibility, s.Focus, s.Balanced} {
			assert.GreaterOrEqual(t, v, 0.0)
			assert.LessOrEqual(t, v, 100.0)
		}
	}
}

func TestTierFor(t *testing.T) {
	tests := []struct {
		score float64
		want  Tier
	}{
		{100, TierExcellent},
		{75, TierExcellent},
		{74.9, TierGood},
		{50, TierGood},
		{49.99, TierFair},
		{25, TierFair},
		{24.9, TierPoor},
		{0, TierPoor},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TierFor(tt.score), "score %v", tt.score)
	}
}

func TestInterpret(t *testing.T) {
	cta := 88.0
	rows := Interpret(ScoreSet{Visibility: 74.5, Focus: 12, Balanced: 50, CTA: &cta})

	require.Len(t, rows, 4)
	assert.Equal(t, MetricVisibility, rows[0].Metric)
	assert.Equal(t, 74.0, rows[0].Score, "half rounds to even")
	assert.Equal(t, TierGood, rows[0].Tier)
	assert.Equal(t, TierPoor, rows[1].Tier)
	assert.Equal(t, TierGood, rows[2].Tier)
	assert.Equal(t, TierExcellent, rows[3].Tier)
	for _, r := range rows {
		assert.NotEmpty(t, r.Label)
		assert.NotEmpty(t, r.Text)
	}
}

func TestInterpret_NilCTAReadsAsZero(t *testing.T) {
	rows := Interpret(Zero())

	assert.Equal(t, MetricCTA, rows[3].Metric)
	assert.Equal(t, 0.0, rows[3].Score)
	assert.Equal(t, TierPoor, rows[3].Tier)
}
