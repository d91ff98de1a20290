package tracker

import "github.com/you112ef/spermtrack/postprocess/result"

// FromDetectResults takes object detection results of a frame and converts
// them into tracker detections stamped with the frame time
func FromDetectResults(dets []result.DetectResult, timestamp float64) []Detection {

	out := make([]Detection, 0, len(dets))

	for _, det := range dets {
		x, y := det.Box.Center()

		out = append(out, Detection{
			Center:      Point{X: float64(x), Y: float64(y)},
			Timestamp:   timestamp,
			Confidence:  det.Probability,
			DetectionID: det.ID,
		})
	}

	return out
}
