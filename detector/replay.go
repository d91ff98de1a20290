package detector

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/you112ef/spermtrack/postprocess/result"
	"gocv.io/x/gocv"
)

// maxRecordingSize caps the size of a detection recording read from disk
const maxRecordingSize = 64 << 20

// RecordedDetection is one detection as stored in a recording file
type RecordedDetection struct {
	// BBox is x1, y1, x2, y2 in source image pixels
	BBox       [4]float32 `json:"bbox"`
	Confidence float32    `json:"confidence"`
	Class      int        `json:"class"`
}

// Recording is a sequence of per image detection lists, one entry per call
// to Detect in the order the analyzer makes them
type Recording struct {
	Frames [][]RecordedDetection `json:"frames"`
}

// Replay is a Detector that returns previously recorded detections instead
// of running a model.  Each call to Detect returns the next recorded frame,
// calls after the last frame return no detections.
type Replay struct {
	mu     sync.Mutex
	frames [][]result.DetectResult
	next   int
}

// NewReplay returns a replay detector over the given frames
func NewReplay(frames [][]result.DetectResult) *Replay {
	return &Replay{frames: frames}
}

// LoadReplay reads a JSON Recording file
func LoadReplay(path string) (*Replay, error) {

	info, err := os.Stat(path)

	if err != nil {
		return nil, fmt.Errorf("reading recording: %w", err)
	}

	if info.Size() > maxRecordingSize {
		return nil, fmt.Errorf("recording %s is %d bytes, limit is %d", path, info.Size(), maxRecordingSize)
	}

	data, err := os.ReadFile(path)

	if err != nil {
		return nil, fmt.Errorf("reading recording: %w", err)
	}

	var rec Recording

	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("parsing recording %s: %w", path, err)
	}

	return NewReplay(rec.Results()), nil
}

// Results converts the recording into detection results, assigning IDs in
// recording order
func (r Recording) Results() [][]result.DetectResult {

	idGen := result.NewIDGenerator()
	frames := make([][]result.DetectResult, len(r.Frames))

	for i, frame := range r.Frames {
		frames[i] = make([]result.DetectResult, 0, len(frame))

		for _, det := range frame {
			frames[i] = append(frames[i], result.DetectResult{
				Class: det.Class,
				Box: result.BoxRect{
					Left:   det.BBox[0],
					Top:    det.BBox[1],
					Right:  det.BBox[2],
					Bottom: det.BBox[3],
				},
				Probability: det.Confidence,
				ID:          idGen.GetNext(),
			})
		}
	}

	return frames
}

// Detect returns the next recorded frame of detections
func (r *Replay) Detect(ctx context.Context, _ gocv.Mat) ([]result.DetectResult, error) {

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.next >= len(r.frames) {
		return nil, nil
	}

	dets := r.frames[r.next]
	r.next++

	out := make([]result.DetectResult, len(dets))
	copy(out, dets)

	return out, nil
}

// Remaining returns the number of recorded frames not yet replayed
func (r *Replay) Remaining() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.frames) - r.next
}
