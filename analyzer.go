package spermtrack

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/you112ef/spermtrack/detector"
	"github.com/you112ef/spermtrack/media"
	"github.com/you112ef/spermtrack/morphology"
	"github.com/you112ef/spermtrack/postprocess/result"
	"github.com/you112ef/spermtrack/tracker"
	"gocv.io/x/gocv"
)

// FrameHook is called after each sampled video frame has been tracked with
// the decoded frame, its kept detections and the run's tracks.  The frame
// is only valid for the duration of the call.
type FrameHook func(frameIndex int, frame gocv.Mat, dets []result.DetectResult, tracks *tracker.Tracks)

// Analyzer runs image and video analyses against a shared detector.  Each
// call keeps its own run state so an Analyzer may be used concurrently
// provided the detector is safe for concurrent use.
type Analyzer struct {
	detector detector.Detector
	params   Params
	hook     FrameHook
}

// NewAnalyzer returns an analyzer using det for object detection
func NewAnalyzer(det detector.Detector, p Params) (*Analyzer, error) {

	if det == nil {
		return nil, errors.New("analyzer requires a detector")
	}

	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("invalid params: %w", err)
	}

	return &Analyzer{
		detector: det,
		params:   p,
	}, nil
}

// WithFrameHook returns a copy of the analyzer that calls hook for every
// analysed video frame.  The receiver is left unchanged, so runs already in
// flight on it are unaffected.
func (a *Analyzer) WithFrameHook(hook FrameHook) *Analyzer {
	b := *a
	b.hook = hook
	return &b
}

// Params returns the analysis configuration
func (a *Analyzer) Params() Params {
	return a.params
}

// Analyze runs the image or video analysis selected by the file extension
func (a *Analyzer) Analyze(ctx context.Context, path string) (*AnalysisResult, error) {

	switch media.Classify(path) {
	case media.Image:
		return a.AnalyzeImageFile(ctx, path)
	case media.Video:
		return a.AnalyzeVideoFile(ctx, path)
	}

	return nil, fmt.Errorf("%s: %w", path, ErrUnsupportedMedia)
}

// AnalyzeImageFile loads and analyses a still image
func (a *Analyzer) AnalyzeImageFile(ctx context.Context, path string) (*AnalysisResult, error) {

	img, err := media.LoadImage(path)
	if err != nil {
		return nil, err
	}
	defer img.Close()

	return a.AnalyzeImage(ctx, img)
}

// AnalyzeImage detects every cell of a BGR image and assesses its
// morphology
func (a *Analyzer) AnalyzeImage(ctx context.Context, img gocv.Mat) (*AnalysisResult, error) {

	if img.Empty() {
		return nil, errors.New("image is empty")
	}

	dets, err := a.detector.Detect(ctx, img)
	if err != nil {
		return nil, fmt.Errorf("detection failed: %w", err)
	}

	dets = result.FilterConfidence(dets, a.params.ConfidenceThreshold)

	assessments := make([]morphology.Assessment, len(dets))

	for i, d := range dets {
		assessments[i] = morphology.Classify(morphology.MeasureBox(img, d.Box), a.params.Morphology)
	}

	res := SummarizeImage(assessments, img.Cols(), img.Rows(), a.params)
	res.Detections = detectionRecords(dets, assessments)

	return newImageResult(res), nil
}

// AnalyzeVideoFile opens and analyses a video file
func (a *Analyzer) AnalyzeVideoFile(ctx context.Context, path string) (*AnalysisResult, error) {

	src, err := media.OpenVideo(path)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	return a.AnalyzeVideo(ctx, src)
}

// AnalyzeVideo tracks cells across the sampled frames of src.  A detector
// failure on a single frame skips that frame, while detector.ErrUnavailable
// or cancellation of ctx abandons the run.
func (a *Analyzer) AnalyzeVideo(ctx context.Context, src media.FrameSource) (*AnalysisResult, error) {

	fps := src.FPS()

	run, err := NewVideoRun(fps, a.params)
	if err != nil {
		return nil, err
	}

	skip := media.FrameSkip(fps, a.params.SampleRate)

	img := gocv.NewMat()
	defer img.Close()

	frameIndex := 0
	sampled := 0
	failed := 0

	for ; ; frameIndex++ {

		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if ok := src.Read(&img); !ok {
			break
		}

		if frameIndex%skip != 0 {
			continue
		}

		if img.Empty() {
			log.Printf("Skipping empty frame %d", frameIndex)
			continue
		}

		sampled++

		dets, err := a.detector.Detect(ctx, img)

		if err != nil {
			if errors.Is(err, detector.ErrUnavailable) || ctx.Err() != nil {
				return nil, fmt.Errorf("frame %d: %w", frameIndex, err)
			}

			log.Printf("Error detecting objects on frame %d: %v", frameIndex, err)
			failed++
			continue
		}

		if err := run.Observe(frameIndex, dets); err != nil {
			return nil, err
		}

		if a.hook != nil {
			a.hook(frameIndex, img, result.FilterConfidence(dets, a.params.ConfidenceThreshold), run.Tracks())
		}
	}

	if frameIndex == 0 {
		return nil, ErrEmptyStream
	}

	if sampled > 0 && failed == sampled {
		return nil, fmt.Errorf("%d sampled frames failed: %w", failed, ErrNoFramesAnalyzed)
	}

	frames := src.FrameCount()
	if frames <= 0 {
		frames = frameIndex
	}

	return newVideoResult(run.Result(float64(frames) / fps)), nil
}
