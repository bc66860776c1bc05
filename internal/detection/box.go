package detection

import "image"

// Box is an axis-aligned bounding box in pixel coordinates: (X, Y) is the
// top-left corner and W, H are the extents.
type Box struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

// FromRect converts an image.Rectangle into a Box.
func FromRect(r image.Rectangle) Box {
	r = r.Canon()
	return Box{X: r.Min.X, Y: r.Min.Y, W: r.Dx(), H: r.Dy()}
}

// Rect returns the box as an image.Rectangle (Max exclusive).
func (b Box) Rect() image.Rectangle {
	return image.Rect(b.X, b.Y, b.X+b.W, b.Y+b.H)
}

// Area returns W×H, or 0 for a degenerate box.
func (b Box) Area() int {
	if b.W <= 0 || b.H <= 0 {
		return 0
	}
	return b.W * b.H
}

// Empty reports whether the box has no area.
func (b Box) Empty() bool {
	return b.Area() == 0
}

// Aspect returns W/H, or 0 when H is not positive.
func (b Box) Aspect() float64 {
	if b.H <= 0 {
		return 0
	}
	return float64(b.W) / float64(b.H)
}

// Clip restricts the box to a width×height image. The result may be empty.
func (b Box) Clip(width, height int) Box {
	return FromRect(b.Rect().Intersect(image.Rect(0, 0, width, height)))
}

// Pad grows the box by dx on the left and right and dy on the top and bottom.
func (b Box) Pad(dx, dy int) Box {
	return Box{X: b.X - dx, Y: b.Y - dy, W: b.W + 2*dx, H: b.H + 2*dy}
}

// Contains reports whether the point lies inside the box.
func (b Box) Contains(x, y int) bool {
	return x >= b.X && x < b.X+b.W && y >= b.Y && y < b.Y+b.H
}

// Inside reports whether b lies entirely within other.
func (b Box) Inside(other Box) bool {
	return b.Rect().In(other.Rect())
}

// IoU returns the intersection-over-union of two boxes in [0, 1]. Boxes that
// do not overlap, or whose union is empty, yield 0.
func IoU(a, b Box) float64 {
	inter := a.Rect().Intersect(b.Rect())
	if inter.Empty() {
		return 0
	}
	i := inter.Dx() * inter.Dy()
	union := a.Area() + b.Area() - i
	if union <= 0 {
		return 0
	}
	return float64(i) / float64(union)
}
