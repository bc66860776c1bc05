package imaging

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// DrawRect outlines r on img with the given stroke thickness, clipped to the image.
func DrawRect(img *image.RGBA, r image.Rectangle, c color.RGBA, thickness int) {
	if thickness < 1 {
		thickness = 1
	}
	for t := 0; t < thickness; t++ {
		inner := r.Inset(t)
		if inner.Empty() {
			return
		}
		for x := inner.Min.X; x < inner.Max.X; x++ {
			setClipped(img, x, inner.Min.Y, c)
			setClipped(img, x, inner.Max.Y-1, c)
		}
		for y := inner.Min.Y; y < inner.Max.Y; y++ {
			setClipped(img, inner.Min.X, y, c)
			setClipped(img, inner.Max.X-1, y, c)
		}
	}
}

// FillCircle paints a solid disk of the given radius centered on (cx, cy).
// alpha is the opacity of c over the existing pixels.
func FillCircle(img *image.RGBA, cx, cy, radius int, c color.RGBA, alpha float64) {
	r2 := radius * radius
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx*dx+dy*dy > r2 {
				continue
			}
			x, y := cx+dx, cy+dy
			if !(image.Point{X: x, Y: y}).In(img.Bounds()) {
				continue
			}
			img.SetRGBA(x, y, Blend(c, img.RGBAAt(x, y), alpha))
		}
	}
}

// DrawRing strokes a circle outline of the given radius and thickness.
func DrawRing(img *image.RGBA, cx, cy, radius, thickness int, c color.RGBA) {
	outer := radius * radius
	innerR := radius - thickness
	if innerR < 0 {
		innerR = 0
	}
	inner := innerR * innerR
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			d := dx*dx + dy*dy
			if d <= outer && d >= inner {
				setClipped(img, cx+dx, cy+dy, c)
			}
		}
	}
}

// DrawLine draws a straight segment with Bresenham's algorithm.
func DrawLine(img *image.RGBA, x0, y0, x1, y1, thickness int, c color.RGBA) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	half := thickness / 2
	err := dx + dy
	for {
		for oy := -half; oy <= half; oy++ {
			for ox := -half; ox <= half; ox++ {
				setClipped(img, x0+ox, y0+oy, c)
			}
		}
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// DrawLabel writes text with its top-left corner at (x, y) on a filled background box.
func DrawLabel(img *image.RGBA, x, y int, text string, fg, bg color.RGBA) {
	if text == "" {
		return
	}
	face := basicfont.Face7x13
	width := font.MeasureString(face, text).Ceil()
	height := face.Metrics().Height.Ceil()

	box := image.Rect(x-2, y-1, x+width+2, y+height+1).Intersect(img.Bounds())
	draw.Draw(img, box, image.NewUniform(bg), image.Point{}, draw.Src)

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(fg),
		Face: face,
		Dot:  fixed.P(x, y+face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(text)
}

// Dim multiplies every pixel of img by f in place.
func Dim(img *image.RGBA, f float64) {
	for i := 0; i+3 < len(img.Pix); i += 4 {
		for c := 0; c < 3; c++ {
			img.Pix[i+c] = uint8(float64(img.Pix[i+c]) * f)
		}
	}
}

func setClipped(img *image.RGBA, x, y int, c color.RGBA) {
	if (image.Point{X: x, Y: y}).In(img.Bounds()) {
		img.SetRGBA(x, y, c)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
