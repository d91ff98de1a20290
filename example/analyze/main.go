package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"

	"github.com/you112ef/spermtrack"
	"github.com/you112ef/spermtrack/chart"
	"github.com/you112ef/spermtrack/detector"
	"github.com/you112ef/spermtrack/media"
	"github.com/you112ef/spermtrack/tracker"
)

func main() {
	// disable logging timestamps
	log.SetFlags(0)

	// read in cli flags
	inFile := flag.String("i", "../data/sample.mp4", "Image or video file to analyze")
	modelFile := flag.String("m", "../data/sperm-yolov8n.onnx", "YOLOv8 ONNX model file")
	replayFile := flag.String("r", "", "JSON detection recording to replay instead of running the model")
	labelFile := flag.String("l", "", "Optional model labels file")
	paramsFile := flag.String("p", "", "Optional JSON analysis parameters file")
	outFile := flag.String("o", "", "Write the JSON result to this file instead of stdout")
	chartDir := flag.String("c", "", "Directory to save summary chart PNG's to")
	annotated := flag.String("a", "", "Write the annotated image or video to this file")
	htmlFile := flag.String("w", "", "Write an interactive HTML chart report to this file")
	strategy := flag.String("t", "", "Tracking strategy, 'greedy' or 'optimal'")
	sahi := flag.Bool("s", false, "Use sliced inference for high resolution micrographs")
	poolSize := flag.Int("n", 1, "Number of model instances to load for parallel inference")

	flag.Parse()

	params := spermtrack.DefaultParams()

	if *paramsFile != "" {
		var err error
		params, err = spermtrack.LoadParams(*paramsFile)

		if err != nil {
			log.Fatalf("Error loading params: %v", err)
		}
	}

	if *strategy != "" {
		params.Tracker.Strategy = *strategy
	}

	det, closeDet, err := newDetector(*replayFile, *modelFile, *poolSize, *sahi)

	if err != nil {
		log.Fatalf("Error creating detector: %v", err)
	}

	defer closeDet()

	analyzer, err := spermtrack.NewAnalyzer(det, params)

	if err != nil {
		log.Fatalf("Error creating analyzer: %v", err)
	}

	var labels []string

	if *labelFile != "" {
		labels, err = detector.LoadLabels(*labelFile)

		if err != nil {
			log.Fatalf("Error loading labels: %v", err)
		}
	}

	var writer *annotator

	if *annotated != "" && media.Classify(*inFile) == media.Video {
		writer = newAnnotator(*annotated, labels, params.Tracker.Strategy, params.SampleRate)
		defer writer.Close()

		analyzer = analyzer.WithFrameHook(writer.Frame)
	}

	// abort the run cleanly on ctrl-c
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	log.Printf("Analyzing %s as %s", *inFile, media.Classify(*inFile))

	res, err := analyzer.Analyze(ctx, *inFile)

	if err != nil {
		log.Fatalf("Analysis failed: %v", err)
	}

	if *annotated != "" && res.Image != nil {
		if err := annotateImage(*inFile, *annotated, res.Image, labels); err != nil {
			log.Fatalf("Error writing annotated image: %v", err)
		}
	}

	if *chartDir != "" {
		charts, err := res.Charts(params)

		if err != nil {
			log.Fatalf("Error building charts: %v", err)
		}

		files, err := chart.SaveAll(*chartDir, charts)

		if err != nil {
			log.Fatalf("Error saving charts: %v", err)
		}

		log.Printf("Saved charts: %s", strings.Join(files, ", "))
	}

	if *htmlFile != "" {
		if err := writeReport(res, *htmlFile); err != nil {
			log.Fatalf("Error writing report: %v", err)
		}

		log.Printf("Saved report to %s", *htmlFile)
	}

	if err := writeResult(res, *outFile); err != nil {
		log.Fatalf("Error writing result: %v", err)
	}

	printSummary(res)
}

// newDetector returns the replay detector when a recording is given, else
// the ONNX model detector
func newDetector(replayFile, modelFile string, poolSize int,
	sahi bool) (detector.Detector, func(), error) {

	if replayFile != "" {
		r, err := detector.LoadReplay(replayFile)

		if err != nil {
			return nil, nil, err
		}

		log.Printf("Replaying %d recorded frames from %s", r.Remaining(), replayFile)

		return r, func() {}, nil
	}

	p := detector.DefaultONNXParams(modelFile)
	p.PoolSize = poolSize
	p.SAHI = sahi

	d, err := detector.NewONNX(p)

	if err != nil {
		return nil, nil, err
	}

	return d, func() { d.Close() }, nil
}

// writeResult encodes the result as indented JSON to file, or stdout when
// file is empty
func writeResult(res *spermtrack.AnalysisResult, file string) error {

	data, err := json.MarshalIndent(res, "", "  ")

	if err != nil {
		return fmt.Errorf("error encoding result: %w", err)
	}

	if file == "" {
		_, err = os.Stdout.Write(append(data, '\n'))
		return err
	}

	return os.WriteFile(file, data, 0o644)
}

// writeReport renders the HTML chart report of the result to file
func writeReport(res *spermtrack.AnalysisResult, file string) error {

	rep, err := res.Report()

	if err != nil {
		return err
	}

	f, err := os.Create(file)

	if err != nil {
		return err
	}

	if err := rep.Render(f); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}

// printSummary logs the headline figures of the result
func printSummary(res *spermtrack.AnalysisResult) {

	log.Printf("Analysis %s (%s)", res.ID, res.Kind)

	switch {
	case res.Image != nil:
		img := res.Image
		log.Printf("Sperm count: %d, concentration: %.0f/ml, average quality: %.2f",
			img.SpermCount, img.ConcentrationPerML, img.AverageQuality)
		log.Printf("Viability: %s (%.1f)", img.ViabilityAssessment.Assessment,
			img.ViabilityAssessment.ViabilityScore)
		log.Printf("Interpretation: %s", img.ClinicalInterpretation)

	case res.Video != nil:
		v := res.Video
		log.Printf("Duration: %.1fs at %.2f FPS, %d frames analyzed", v.Duration, v.FPS, v.FramesAnalyzed)
		log.Printf("Tracks: %d, motile: %d (%.1f%%, %s)", v.TotalSperm, v.MotileSperm,
			v.MotilityPercentage, v.MotilityClassification)
		log.Printf("Average velocity: %.2f px/s, trend: %s, stability: %s",
			v.AverageVelocity, v.TemporalAnalysis.Trend, v.TemporalAnalysis.Stability)
		log.Printf("Interpretation: %s", v.ClinicalInterpretation)
	}
}

// strategyName returns a display name for the tracking strategy
func strategyName(s string) string {
	if s == tracker.StrategyOptimal {
		return "Optimal"
	}
	return "Greedy"
}
