package detection

import "image"

// Component is an 8-connected region of set pixels.
type Component struct {
	Bounds Box `json:"bounds"`
	Pixels int `json:"pixels"`
}

// Components labels the 8-connected regions of a width×height bitmap stored in
// row-major order. Regions are returned in scan order of their first pixel.
func Components(bits []bool, width, height int) []Component {
	if len(bits) != width*height {
		return nil
	}
	visited := make([]bool, len(bits))
	components := make([]Component, 0)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			i := y*width + x
			if bits[i] && !visited[i] {
				components = append(components, floodFill(bits, visited, x, y, width, height))
			}
		}
	}
	return components
}

// LargestComponent returns the pixel count of the biggest 8-connected region.
func LargestComponent(bits []bool, width, height int) int {
	largest := 0
	for _, c := range Components(bits, width, height) {
		if c.Pixels > largest {
			largest = c.Pixels
		}
	}
	return largest
}

// floodFill walks one region with an explicit stack and returns its bounds.
func floodFill(bits, visited []bool, startX, startY, width, height int) Component {
	minX, minY := startX, startY
	maxX, maxY := startX, startY
	pixels := 0

	stack := []int{startY*width + startX}
	visited[startY*width+startX] = true

	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		x, y := i%width, i/width
		pixels++

		if x < minX {
			minX = x
		}
		if x > maxX {
			maxX = x
		}
		if y < minY {
			minY = y
		}
		if y > maxY {
			maxY = y
		}

		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				nx, ny := x+dx, y+dy
				if nx < 0 || nx >= width || ny < 0 || ny >= height {
					continue
				}
				j := ny*width + nx
				if bits[j] && !visited[j] {
					visited[j] = true
					stack = append(stack, j)
				}
			}
		}
	}

	return Component{
		Bounds: Box{X: minX, Y: minY, W: maxX - minX + 1, H: maxY - minY + 1},
		Pixels: pixels,
	}
}

// outermost drops boxes that lie entirely inside another box, keeping only
// the outer regions. Identical boxes keep their first occurrence.
func outermost(boxes []Box) []Box {
	kept := make([]Box, 0, len(boxes))
	for i, b := range boxes {
		nested := false
		for j, o := range boxes {
			if i == j || !b.Inside(o) {
				continue
			}
			if b != o || j < i {
				nested = true
				break
			}
		}
		if !nested {
			kept = append(kept, b)
		}
	}
	return kept
}

// binaryBits converts a binary image (non-zero = set) into a row-major bitmap.
func binaryBits(g *image.Gray) ([]bool, int, int) {
	b := g.Bounds()
	w, h := b.Dx(), b.Dy()
	bits := make([]bool, w*h)
	for y := 0; y < h; y++ {
		row := g.Pix[y*g.Stride : y*g.Stride+w]
		for x, v := range row {
			bits[y*w+x] = v != 0
		}
	}
	return bits, w, h
}
