package postprocess

import (
	"fmt"

	"github.com/you112ef/spermtrack/postprocess/result"
	"github.com/you112ef/spermtrack/preprocess"
)

// YOLOv8 defines the struct for YOLOv8 model inference post processing of
// the float32 output tensor produced by an ONNX export of the model
type YOLOv8 struct {
	// Params are the Model configuration parameters
	Params YOLOv8Params
	// idGen is a counter that increments and provides the next number
	// for each detection result ID
	idGen *result.IDGenerator
}

// YOLOv8Params defines the struct containing the YOLOv8 parameters to use
// for post processing operations
type YOLOv8Params struct {
	// BoxThreshold is the minimum probability score required for a bounding box
	// region to be considered for processing
	BoxThreshold float32
	// NMSThreshold is the Non-Maximum Suppression threshold used for defining
	// the maximum allowed Intersection Over Union (IoU) between two
	// bounding boxes for both to be kept
	NMSThreshold float32
	// ObjectClassNum is the number of different object classes the Model has
	// been trained with
	ObjectClassNum int
	// MaxObjectNumber is the maximum number of objects detected that can be
	// returned
	MaxObjectNumber int
}

// YOLOv8SpermParams returns an instance of YOLOv8Params configured with
// default values for a single class sperm detection Model featuring:
// - Object Classes: 1
// - Box Threshold: 0.25
// - NMS Threshold: 0.45
// - Maximum Object Number: 300
func YOLOv8SpermParams() YOLOv8Params {
	return YOLOv8Params{
		BoxThreshold:    0.25,
		NMSThreshold:    0.45,
		ObjectClassNum:  1,
		MaxObjectNumber: 300,
	}
}

// NewYOLOv8 returns an instance of the YOLOv8 post processor
func NewYOLOv8(p YOLOv8Params) *YOLOv8 {
	return &YOLOv8{
		Params: p,
		idGen:  result.NewIDGenerator(),
	}
}

// YOLOv8Result defines a struct used for object detection results
type YOLOv8Result struct {
	DetectResults []result.DetectResult
}

// GetDetectResults returns the object detection results containing bounding
// boxes
func (r YOLOv8Result) GetDetectResults() []result.DetectResult {
	return r.DetectResults
}

// DetectObjects decodes the model output tensor and returns the detections
// in source image coordinates.  The tensor is laid out channel major as
// [4+ObjectClassNum][anchors] where the first four channels hold the box
// center x, center y, width and height in letterboxed input pixels and the
// remaining channels hold per class scores.
func (y *YOLOv8) DetectObjects(output []float32, anchors int,
	resizer *preprocess.Resizer) (result.DetectionResult, error) {

	channels := 4 + y.Params.ObjectClassNum

	if anchors <= 0 || len(output) != channels*anchors {
		return YOLOv8Result{}, fmt.Errorf("unexpected output tensor size %d for %d channels and %d anchors",
			len(output), channels, anchors)
	}

	var cands []candidate

	for a := 0; a < anchors; a++ {

		best := candidate{class: -1}

		for c := 0; c < y.Params.ObjectClassNum; c++ {
			if score := output[(4+c)*anchors+a]; score > best.score {
				best.score = score
				best.class = c
			}
		}

		if best.class < 0 || best.score < y.Params.BoxThreshold {
			continue
		}

		cx := output[a]
		cy := output[anchors+a]
		w := output[2*anchors+a]
		h := output[3*anchors+a]

		best.box = result.BoxRect{Left: cx - w/2, Top: cy - h/2, Right: cx + w/2, Bottom: cy + h/2}
		cands = append(cands, best)
	}

	if len(cands) == 0 {
		// no object detected
		return YOLOv8Result{}, nil
	}

	sortByScore(cands)

	group := make([]result.DetectResult, 0)

	for _, c := range suppress(cands, y.Params.NMSThreshold) {
		if len(group) >= y.Params.MaxObjectNumber {
			break
		}

		box := resizer.SourceBox(c.box.Left, c.box.Top, c.box.Width(), c.box.Height())

		if !box.Valid() {
			continue
		}

		group = append(group, result.DetectResult{
			Box:         box,
			Probability: clamp(c.score, 0, 1),
			Class:       c.class,
			ID:          y.idGen.GetNext(),
		})
	}

	return YOLOv8Result{
		DetectResults: group,
	}, nil
}
