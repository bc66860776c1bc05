//go:build gocv

package detection

import (
	"context"
	"fmt"
	"image"

	"gocv.io/x/gocv"
)

// GoCVContours runs the edge pipeline with OpenCV: 5x5 Gaussian blur,
// Canny 40/120, a 10x10 rectangular close and external contours.
type GoCVContours struct{}

// NewGoCVContours returns the OpenCV-backed contour source.
func NewGoCVContours() (ContourSource, error) {
	return GoCVContours{}, nil
}

// Detect implements ContourSource.
func (GoCVContours) Detect(ctx context.Context, img image.Image) ([]Box, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	src, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return nil, fmt.Errorf("convert image: %w", err)
	}
	defer src.Close()

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(src, &gray, gocv.ColorBGRToGray)

	blurred := gocv.NewMat()
	defer blurred.Close()
	gocv.GaussianBlur(gray, &blurred, image.Pt(5, 5), 0, 0, gocv.BorderDefault)

	edges := gocv.NewMat()
	defer edges.Close()
	gocv.Canny(blurred, &edges, 40, 120)

	kernel := gocv.GetStructuringElement(gocv.MorphRect, image.Pt(10, 10))
	defer kernel.Close()

	closed := gocv.NewMat()
	defer closed.Close()
	gocv.MorphologyEx(edges, &closed, gocv.MorphClose, kernel)

	contours := gocv.FindContours(closed, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer contours.Close()

	boxes := make([]Box, 0, contours.Size())
	for i := 0; i < contours.Size(); i++ {
		boxes = append(boxes, FromRect(gocv.BoundingRect(contours.At(i))))
	}
	return boxes, nil
}
