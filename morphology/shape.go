package morphology

import (
	"math"

	"gocv.io/x/gocv"
)

// Shape are the contour descriptors of a detection region
type Shape struct {
	// AspectRatio is the detection bounding box width divided by its height
	AspectRatio float64 `json:"aspect_ratio"`
	// Area is the area enclosed by the largest contour
	Area float64 `json:"area"`
	// Perimeter is the closed arc length of the largest contour
	Perimeter float64 `json:"perimeter"`
	// Circularity is 4*pi*Area/Perimeter^2, 0 when the perimeter is 0
	Circularity float64 `json:"circularity"`
	// HasContour is false when no contour was found in the region
	HasContour bool `json:"has_contour"`
}

// Circularity returns 4*pi*area/perimeter^2, or 0 for a zero perimeter
func Circularity(area, perimeter float64) float64 {
	if perimeter <= 0 {
		return 0
	}
	return 4 * math.Pi * area / (perimeter * perimeter)
}

// Measure finds the external contours of the region and describes the
// largest by area.  Colour regions are converted to grayscale first and any
// non zero pixel is treated as foreground.  The aspect ratio is taken from
// the region dimensions.
func Measure(region gocv.Mat) Shape {

	var s Shape

	if region.Empty() || region.Rows() == 0 || region.Cols() == 0 {
		return s
	}

	s.AspectRatio = float64(region.Cols()) / float64(region.Rows())

	gray := region

	if region.Channels() > 1 {
		gray = gocv.NewMat()
		defer gray.Close()

		code := gocv.ColorBGRToGray
		if region.Channels() == 4 {
			code = gocv.ColorBGRAToGray
		}

		gocv.CvtColor(region, &gray, code)
	}

	contours := gocv.FindContours(gray, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer contours.Close()

	if contours.Size() == 0 {
		return s
	}

	largest := 0
	largestArea := -1.0

	for i := 0; i < contours.Size(); i++ {
		area := gocv.ContourArea(contours.At(i))

		if area > largestArea {
			largestArea = area
			largest = i
		}
	}

	s.HasContour = true
	s.Area = largestArea
	s.Perimeter = gocv.ArcLength(contours.At(largest), true)
	s.Circularity = Circularity(s.Area, s.Perimeter)

	return s
}
