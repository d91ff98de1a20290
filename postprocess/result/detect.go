package result

// BoxRect are the dimensions of the bounding box of a detected object in
// source image pixel coordinates, where Left < Right and Top < Bottom
type BoxRect struct {
	Left   float32
	Top    float32
	Right  float32
	Bottom float32
}

// Width returns the width of the bounding box
func (b BoxRect) Width() float32 {
	return b.Right - b.Left
}

// Height returns the height of the bounding box
func (b BoxRect) Height() float32 {
	return b.Bottom - b.Top
}

// Area returns the area of the bounding box
func (b BoxRect) Area() float32 {
	return b.Width() * b.Height()
}

// Center returns the midpoint of the bounding box
func (b BoxRect) Center() (x, y float32) {
	return (b.Left + b.Right) / 2, (b.Top + b.Bottom) / 2
}

// AspectRatio returns the box width divided by its height, or 0 for a box
// with no height
func (b BoxRect) AspectRatio() float64 {
	if b.Height() <= 0 {
		return 0
	}
	return float64(b.Width()) / float64(b.Height())
}

// Valid reports whether the box has a positive width and height
func (b BoxRect) Valid() bool {
	return b.Right > b.Left && b.Bottom > b.Top
}

// DetectResult defines the attributes of a single object detected
type DetectResult struct {
	// Class is the index of the label the Model was trained on defining the
	// Class of the detected object
	Class int
	// Box are the bounding box dimensions of the object location
	Box BoxRect
	// Probability is the confidence score of the object detected
	Probability float32
	// ID is a unique ID assigned to the detection result
	ID int64
}

// DetectionResult is implemented by post processors that produce bounding
// box results
type DetectionResult interface {
	GetDetectResults() []DetectResult
}

// FilterConfidence returns the detections with a Probability at or above
// the given threshold, preserving their order
func FilterConfidence(dets []DetectResult, threshold float32) []DetectResult {

	kept := make([]DetectResult, 0, len(dets))

	for _, det := range dets {
		if det.Probability >= threshold {
			kept = append(kept, det)
		}
	}

	return kept
}
