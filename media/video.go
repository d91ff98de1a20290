package media

import (
	"fmt"

	"gocv.io/x/gocv"
)

// FrameSource yields the decoded frames of a video in order
type FrameSource interface {
	// Read decodes the next frame into dst, returning false at the end of
	// the stream
	Read(dst *gocv.Mat) bool
	// FPS returns the source frame rate
	FPS() float64
	// FrameCount returns the number of frames reported by the container, or
	// 0 when unknown
	FrameCount() int
	Close() error
}

// VideoSource reads frames from a video file or stream with OpenCV
type VideoSource struct {
	capture *gocv.VideoCapture
	fps     float64
	frames  int
}

// OpenVideo opens a video file for reading
func OpenVideo(path string) (*VideoSource, error) {

	if Classify(path) != Video {
		return nil, fmt.Errorf("%s: %w", path, ErrUnsupported)
	}

	capture, err := gocv.VideoCaptureFile(path)

	if err != nil {
		return nil, fmt.Errorf("could not open video file %s: %w", path, err)
	}

	if !capture.IsOpened() {
		capture.Close()
		return nil, fmt.Errorf("could not open video file %s", path)
	}

	return &VideoSource{
		capture: capture,
		fps:     capture.Get(gocv.VideoCaptureFPS),
		frames:  int(capture.Get(gocv.VideoCaptureFrameCount)),
	}, nil
}

// Read decodes the next frame
func (v *VideoSource) Read(dst *gocv.Mat) bool {
	return v.capture.Read(dst)
}

// FPS returns the container frame rate
func (v *VideoSource) FPS() float64 {
	return v.fps
}

// FrameCount returns the container frame count
func (v *VideoSource) FrameCount() int {
	if v.frames < 0 {
		return 0
	}
	return v.frames
}

// Close releases the capture device
func (v *VideoSource) Close() error {
	return v.capture.Close()
}

// MatSource is a FrameSource over frames already decoded into memory
type MatSource struct {
	frames []gocv.Mat
	fps    float64
	pos    int
}

// NewMatSource returns a source replaying the given frames at fps.  The
// frames remain owned by the caller.
func NewMatSource(frames []gocv.Mat, fps float64) *MatSource {
	return &MatSource{frames: frames, fps: fps}
}

// BufferVideo reads every non empty frame of src into memory
func BufferVideo(src FrameSource) (*MatSource, error) {

	frames := make([]gocv.Mat, 0)

	for {
		img := gocv.NewMat()

		// read the next frame from the video
		if ok := src.Read(&img); !ok {
			img.Close()
			break
		}

		if img.Empty() {
			img.Close()
			continue
		}

		frames = append(frames, img)
	}

	if len(frames) == 0 {
		return nil, fmt.Errorf("no frames decoded")
	}

	return NewMatSource(frames, src.FPS()), nil
}

// Read copies the next buffered frame into dst
func (m *MatSource) Read(dst *gocv.Mat) bool {

	if m.pos >= len(m.frames) {
		return false
	}

	m.frames[m.pos].CopyTo(dst)
	m.pos++

	return true
}

// FPS returns the configured frame rate
func (m *MatSource) FPS() float64 {
	return m.fps
}

// FrameCount returns the number of buffered frames
func (m *MatSource) FrameCount() int {
	return len(m.frames)
}

// Close rewinds the source, buffered frames are not released
func (m *MatSource) Close() error {
	m.pos = 0
	return nil
}

// Free releases the buffered frames
func (m *MatSource) Free() {
	for _, f := range m.frames {
		f.Close()
	}
	m.frames = nil
	m.pos = 0
}

// FrameSkip returns the stride between analysed frames so that roughly
// target frames are sampled per second of video, never less than 1
func FrameSkip(fps, target float64) int {

	if fps <= 0 || target <= 0 {
		return 1
	}

	return max(1, int(fps/target))
}
