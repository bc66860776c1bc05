package imaging

import (
	"image"
	"image/color"
	"testing"
)

func TestCanny_Dimensions(t *testing.T) {
	img := createEdgeTestImage(100, 80)

	edges := Canny(img, 40, 120)
	if edges.Bounds().Dx() != 100 || edges.Bounds().Dy() != 80 {
		t.Errorf("dimensions: got %dx%d, want 100x80", edges.Bounds().Dx(), edges.Bounds().Dy())
	}
}

func TestCanny_UniformImage(t *testing.T) {
	img := createInMemoryImage(50, 50, color.RGBA{128, 128, 128, 255})

	edges := Canny(img, 40, 120)
	for _, v := range edges.Pix {
		if v != 0 {
			t.Fatal("uniform image should have no edges")
		}
	}
}

func TestCanny_StrongEdge(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 100, 100))
	for y := 0; y < 100; y++ {
		for x := 0; x < 100; x++ {
			if x < 50 {
				img.Set(x, y, color.Black)
			} else {
				img.Set(x, y, color.White)
			}
		}
	}

	edges := Canny(img, 40, 120)

	edgeFound := false
	for x := 47; x <= 52; x++ {
		if edges.GrayAt(x, 50).Y == 255 {
			edgeFound = true
			break
		}
	}
	if !edgeFound {
		t.Error("strong vertical edge was not detected")
	}

	// Far from the step there is nothing to detect.
	if edges.GrayAt(10, 50).Y != 0 || edges.GrayAt(90, 50).Y != 0 {
		t.Error("flat regions should not be marked as edges")
	}
}

func TestCanny_HigherThresholdsFindFewerEdges(t *testing.T) {
	img := createEdgeTestImage(60, 60)

	count := func(g *image.Gray) int {
		n := 0
		for _, v := range g.Pix {
			if v == 255 {
				n++
			}
		}
		return n
	}

	loose := count(Canny(img, 10, 30))
	strict := count(Canny(img, 400, 1000))
	if strict > loose {
		t.Errorf("strict thresholds found more edges (%d) than loose ones (%d)", strict, loose)
	}
	if loose == 0 {
		t.Error("expected edges around the rectangle")
	}
}

func TestCanny_EmptyImage(t *testing.T) {
	edges := Canny(image.NewRGBA(image.Rect(0, 0, 0, 0)), 40, 120)
	if len(edges.Pix) != 0 {
		t.Errorf("expected empty edge map, got %d pixels", len(edges.Pix))
	}
}

func TestGaussianBlur(t *testing.T) {
	width, height := 10, 10
	src := make([]float64, width*height)
	for i := range src {
		src[i] = 128
	}

	blurred := gaussianBlur(src, width, height)
	for i, v := range blurred {
		if absFloat(v-128) > 0.01 {
			t.Fatalf("blurred[%d]: got %.3f, want ~128", i, v)
		}
	}
}

func TestGaussianBlur_WithSpot(t *testing.T) {
	width, height := 11, 11
	src := make([]float64, width*height)
	src[5*width+5] = 255

	blurred := gaussianBlur(src, width, height)

	if blurred[5*width+5] >= 255 {
		t.Error("bright spot should be reduced after blur")
	}
	for _, i := range []int{5*width + 4, 5*width + 6, 4*width + 5, 6*width + 5} {
		if blurred[i] == 0 {
			t.Errorf("neighbor %d should receive some brightness from blur", i)
		}
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, want int
	}{
		{5, 0, 10, 5},
		{-1, 0, 10, 0},
		{15, 0, 10, 10},
		{0, 0, 10, 0},
		{10, 0, 10, 10},
	}

	for _, tt := range tests {
		if got := clamp(tt.val, tt.min, tt.max); got != tt.want {
			t.Errorf("clamp(%d, %d, %d): got %d, want %d", tt.val, tt.min, tt.max, got, tt.want)
		}
	}
}

// createEdgeTestImage creates a black rectangle on a white background.
func createEdgeTestImage(width, height int) image.Image {
	img := createInMemoryImage(width, height, color.White)
	for y := height / 4; y < 3*height/4; y++ {
		for x := width / 4; x < 3*width/4; x++ {
			img.Set(x, y, color.Black)
		}
	}
	return img
}

func absFloat(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
