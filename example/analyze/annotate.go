package main

import (
	"fmt"
	"log"

	"github.com/you112ef/spermtrack"
	"github.com/you112ef/spermtrack/detector"
	"github.com/you112ef/spermtrack/media"
	"github.com/you112ef/spermtrack/morphology"
	"github.com/you112ef/spermtrack/postprocess/result"
	"github.com/you112ef/spermtrack/render"
	"github.com/you112ef/spermtrack/tracker"
	"gocv.io/x/gocv"
)

// annotator writes each analysed video frame with detection boxes and track
// trails drawn on it
type annotator struct {
	file     string
	labels   []string
	strategy string
	fps      float64
	writer   *gocv.VideoWriter
	canvas   gocv.Mat
	font     render.Font
	style    render.TrailStyle
	failed   bool
}

// newAnnotator returns an annotator writing to file.  The video writer is
// opened on the first frame once the frame size is known.
func newAnnotator(file string, labels []string, strategy string, fps float64) *annotator {
	return &annotator{
		file:     file,
		fps:      fps,
		labels:   labels,
		strategy: strategy,
		canvas:   gocv.NewMat(),
		style:    render.DefaultTrailStyle(),
	}
}

// Frame draws and writes a single frame, used as the analyzer frame hook
func (a *annotator) Frame(frameIndex int, frame gocv.Mat, dets []result.DetectResult,
	tracks *tracker.Tracks) {

	if a.failed {
		return
	}

	if a.writer == nil {
		// sampled frames are written at the analysis sample rate
		w, err := gocv.VideoWriterFile(a.file, "mp4v", a.fps, frame.Cols(), frame.Rows(), true)

		if err != nil {
			log.Printf("Error opening annotated video %s: %v", a.file, err)
			a.failed = true
			return
		}

		a.writer = w
		a.font = render.ScaledFont(frame.Cols())
	}

	frame.CopyTo(&a.canvas)

	render.DetectionBoxes(&a.canvas, dets, func(class int) string {
		return detector.Label(a.labels, class)
	}, a.font, 1)

	render.Trails(&a.canvas, tracks, frameIndex, a.style)

	render.Overlay(&a.canvas, []string{
		fmt.Sprintf("Frame: %d, Objects: %d, Tracks: %d", frameIndex, len(dets), tracks.Len()),
		fmt.Sprintf("Tracker: %s", strategyName(a.strategy)),
	}, a.font)

	if err := a.writer.Write(a.canvas); err != nil {
		log.Printf("Error writing annotated frame %d: %v", frameIndex, err)
	}
}

// Close finalises the annotated video
func (a *annotator) Close() {
	if a.writer != nil {
		a.writer.Close()
	}
	a.canvas.Close()
}

// annotateImage draws the morphology assessment of each detection onto the
// source image and saves it to outFile
func annotateImage(inFile, outFile string, res *spermtrack.ImageResult, labels []string) error {

	img, err := media.LoadImage(inFile)

	if err != nil {
		return err
	}

	defer img.Close()

	dets := make([]result.DetectResult, len(res.Detections))
	assessments := make([]morphology.Assessment, len(res.Detections))

	for i, d := range res.Detections {
		dets[i] = result.DetectResult{
			Box: result.BoxRect{
				Left: d.BBox[0], Top: d.BBox[1], Right: d.BBox[2], Bottom: d.BBox[3],
			},
			Probability: d.Confidence,
			ID:          d.ID,
		}
		assessments[i] = morphology.Assessment{Class: d.Morphology, QualityScore: d.QualityScore}
	}

	font := render.ScaledFont(img.Cols())

	render.AssessmentBoxes(&img, dets, assessments, font, 1)
	render.Overlay(&img, []string{
		fmt.Sprintf("%s count: %d", detector.Label(labels, 0), res.SpermCount),
		fmt.Sprintf("Viability: %s", res.ViabilityAssessment.Assessment),
	}, font)

	if ok := gocv.IMWrite(outFile, img); !ok {
		return fmt.Errorf("could not write %s", outFile)
	}

	log.Printf("Saved annotated image to %s", outFile)

	return nil
}
