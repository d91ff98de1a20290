// Package detector defines the object detection collaborator used by the
// analyzer along with an ONNX YOLOv8 implementation run through the OpenCV
// DNN module and a replay implementation fed from recorded detections.
package detector

import (
	"context"
	"errors"

	"github.com/you112ef/spermtrack/postprocess/result"
	"gocv.io/x/gocv"
)

// ErrUnavailable is returned when the detector cannot serve any request, for
// example the model failed to load or the detector has been closed.  Callers
// abort the run on this error rather than skipping the frame.
var ErrUnavailable = errors.New("detector unavailable")

// Detector finds objects in a decoded BGR image, returning bounding boxes in
// the image pixel coordinates.  Implementations must be safe for concurrent
// use as one detector is shared between analysis runs.
type Detector interface {
	Detect(ctx context.Context, img gocv.Mat) ([]result.DetectResult, error)
}

// Func adapts an ordinary function to the Detector interface
type Func func(ctx context.Context, img gocv.Mat) ([]result.DetectResult, error)

// Detect calls f(ctx, img)
func (f Func) Detect(ctx context.Context, img gocv.Mat) ([]result.DetectResult, error) {
	return f(ctx, img)
}
