package spermtrack

import (
	"fmt"

	"github.com/you112ef/spermtrack/analysis"
	"github.com/you112ef/spermtrack/clinical"
	"github.com/you112ef/spermtrack/postprocess/result"
	"github.com/you112ef/spermtrack/tracker"
)

// VideoRun holds the state of a single video analysis.  A run is not safe
// for concurrent use and must not be shared, concurrent analyses each create
// their own.
type VideoRun struct {
	fps     float64
	params  Params
	tracker tracker.Tracker
	tracks  *tracker.Tracks

	timestamps []float64
	counts     []int
}

// NewVideoRun returns a run for a video recorded at fps frames per second
func NewVideoRun(fps float64, p Params) (*VideoRun, error) {

	if fps <= 0 {
		return nil, fmt.Errorf("%v fps: %w", fps, ErrInvalidFrameRate)
	}

	trk, err := tracker.New(p.Tracker)
	if err != nil {
		return nil, err
	}

	return &VideoRun{
		fps:     fps,
		params:  p,
		tracker: trk,
		tracks:  tracker.NewTracks(),
	}, nil
}

// Observe records the detections of a sampled frame.  Frames must be
// observed in ascending order.
func (v *VideoRun) Observe(frameIndex int, dets []result.DetectResult) error {

	dets = result.FilterConfidence(dets, v.params.ConfidenceThreshold)
	ts := float64(frameIndex) / v.fps

	tracks, err := v.tracker.Update(v.tracks, tracker.FromDetectResults(dets, ts), frameIndex)
	if err != nil {
		return fmt.Errorf("frame %d: %w", frameIndex, err)
	}

	v.tracks = tracks
	v.timestamps = append(v.timestamps, ts)
	v.counts = append(v.counts, len(dets))

	return nil
}

// Counts returns the detection count of each observed frame
func (v *VideoRun) Counts() []int {
	return append([]int(nil), v.counts...)
}

// Tracks returns the tracks of the run in creation order
func (v *VideoRun) Tracks() *tracker.Tracks {
	return v.tracks
}

// Frames returns the number of frames observed
func (v *VideoRun) Frames() int {
	return len(v.counts)
}

// Result aggregates the run into a video result for a video lasting
// duration seconds
func (v *VideoRun) Result(duration float64) VideoResult {

	tracks := v.tracks.All()

	motility := analysis.Motility(tracks, v.params.Motility)

	return VideoResult{
		Duration:               duration,
		FPS:                    v.fps,
		FramesAnalyzed:         len(v.counts),
		TotalSperm:             motility.TotalSperm,
		MotileSperm:            motility.TotalMotile,
		MotilityPercentage:     motility.MotilityPercentage,
		AverageVelocity:        motility.AverageVelocity,
		VelocityVariation:      motility.VelocityStd,
		AveragePathLength:      motility.AveragePathLength,
		MovementPatterns:       analysis.MovementPatterns(tracks, v.params.Movement),
		TemporalAnalysis:       analysis.Temporal(v.counts, v.params.Temporal),
		MotilityClassification: clinical.ClassifyMotility(motility.MotilityPercentage),
		ClinicalInterpretation: clinical.InterpretVideo(motility.MotilityPercentage, motility.AverageVelocity),
		TimeSeries: TimeSeries{
			Timestamps: append([]float64{}, v.timestamps...),
			Counts:     append([]int{}, v.counts...),
		},
		Tracks: tracks,
	}
}
