package tracker

import (
	"errors"
	"fmt"
)

const (
	// StrategyGreedy matches each detection independently to its closest
	// track in input order
	StrategyGreedy = "greedy"
	// StrategyOptimal solves a gated linear assignment between detections
	// and tracks each frame
	StrategyOptimal = "optimal"
)

var (
	// ErrTimestampOrder is returned when a detection is older than an
	// observation already recorded in the run
	ErrTimestampOrder = errors.New("detection timestamp precedes track history")
	// ErrUnknownStrategy is returned by New for an unrecognised strategy name
	ErrUnknownStrategy = errors.New("unknown tracking strategy")
)

// Detection is a single detection center fed to the tracker for a frame
type Detection struct {
	// Center is the midpoint of the detection bounding box
	Center Point
	// Timestamp is the frame time in seconds
	Timestamp float64
	// Confidence is the detector probability score
	Confidence float32
	// DetectionID is the detector assigned ID of the source result
	DetectionID int64
}

// Tracker associates the detections of a frame with the tracks of a run.
// The registry passed in is mutated by append only and returned, a nil
// registry starts a new run.
type Tracker interface {
	Update(tracks *Tracks, dets []Detection, frameIndex int) (*Tracks, error)
}

// Params defines the tracking configuration
type Params struct {
	// Strategy is the association strategy, either "greedy" or "optimal"
	Strategy string `json:"strategy"`
	// MatchDistance is the exclusive upper bound in pixels between a
	// detection and a tracks last position for them to be associated
	MatchDistance float64 `json:"match_distance"`
}

// DefaultParams returns the tracking configuration of greedy association
// within 50 pixels
func DefaultParams() Params {
	return Params{
		Strategy:      StrategyGreedy,
		MatchDistance: 50,
	}
}

// Validate checks the parameters are usable
func (p Params) Validate() error {

	if p.MatchDistance <= 0 {
		return fmt.Errorf("match distance must be positive, got %v", p.MatchDistance)
	}

	switch p.Strategy {
	case StrategyGreedy, StrategyOptimal:
		return nil
	}

	return fmt.Errorf("%q: %w", p.Strategy, ErrUnknownStrategy)
}

// New returns the Tracker implementing the configured strategy
func New(p Params) (Tracker, error) {

	if err := p.Validate(); err != nil {
		return nil, err
	}

	if p.Strategy == StrategyOptimal {
		return NewOptimal(p), nil
	}

	return NewGreedy(p), nil
}
