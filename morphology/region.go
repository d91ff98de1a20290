package morphology

import (
	"image"
	"math"

	"github.com/you112ef/spermtrack/postprocess/result"
	"gocv.io/x/gocv"
)

// MeasureBox crops the detection box from img and measures it.  The aspect
// ratio is that of the detection box rather than the cropped pixels.  A box
// that falls outside the image measures as having no contour.
func MeasureBox(img gocv.Mat, box result.BoxRect) Shape {

	rect := cropRect(box, img.Cols(), img.Rows())

	if rect.Empty() {
		return Shape{AspectRatio: box.AspectRatio()}
	}

	region := img.Region(rect)
	defer region.Close()

	s := Measure(region)
	s.AspectRatio = box.AspectRatio()

	return s
}

// cropRect converts a box to integer pixel bounds inside a width x height
// image
func cropRect(box result.BoxRect, width, height int) image.Rectangle {

	r := image.Rect(
		int(math.Floor(float64(box.Left))),
		int(math.Floor(float64(box.Top))),
		int(math.Ceil(float64(box.Right))),
		int(math.Ceil(float64(box.Bottom))),
	)

	return r.Intersect(image.Rect(0, 0, width, height))
}
