package analysis

import "github.com/you112ef/spermtrack/tracker"

// Pattern is the trajectory shape class of a track
type Pattern string

const (
	Linear   Pattern = "linear"
	Circular Pattern = "circular"
	Erratic  Pattern = "erratic"
)

// MovementParams defines the straightness bands used to classify a
// trajectory
type MovementParams struct {
	// LinearStraightness is the straightness a track must exceed to be linear
	LinearStraightness float64 `json:"linear_straightness"`
	// CircularStraightness is the straightness a track must exceed to be
	// circular rather than erratic
	CircularStraightness float64 `json:"circular_straightness"`
	// MinPoints is the fewest positions a track needs to be classified
	MinPoints int `json:"min_points"`
}

// DefaultMovementParams returns bands of 0.7 and 0.3 with at least 3 points
func DefaultMovementParams() MovementParams {
	return MovementParams{
		LinearStraightness:   0.7,
		CircularStraightness: 0.3,
		MinPoints:            3,
	}
}

// MovementSummary counts the trajectory classes of all classifiable tracks
type MovementSummary struct {
	LinearSwimmers   int     `json:"linear_swimmers"`
	CircularSwimmers int     `json:"circular_swimmers"`
	ErraticSwimmers  int     `json:"erratic_swimmers"`
	TotalTracked     int     `json:"total_tracked"`
	LinearPercentage float64 `json:"linear_percentage"`
}

// Straightness returns the net displacement between the first and last
// position divided by the path length, and false when the path length is 0
func Straightness(positions []tracker.Point) (float64, bool) {

	if len(positions) < 2 {
		return 0, false
	}

	path := PathLength(positions)

	if path <= 0 {
		return 0, false
	}

	net := positions[len(positions)-1].Distance(positions[0])

	return net / path, true
}

// ClassifyMovement classifies a trajectory by its straightness.  Tracks with
// too few points or no movement are erratic.
func ClassifyMovement(positions []tracker.Point, p MovementParams) Pattern {

	if len(positions) < p.MinPoints {
		return Erratic
	}

	s, ok := Straightness(positions)

	switch {
	case !ok:
		return Erratic
	case s > p.LinearStraightness:
		return Linear
	case s > p.CircularStraightness:
		return Circular
	}

	return Erratic
}

// MovementPatterns classifies every track with at least MinPoints positions.
// Shorter tracks are left out of every count including TotalTracked.
func MovementPatterns(tracks []*tracker.Track, p MovementParams) MovementSummary {

	var s MovementSummary

	for _, tr := range tracks {
		if tr == nil || tr.Len() < p.MinPoints {
			continue
		}

		switch ClassifyMovement(tr.Positions, p) {
		case Linear:
			s.LinearSwimmers++
		case Circular:
			s.CircularSwimmers++
		default:
			s.ErraticSwimmers++
		}
	}

	s.TotalTracked = s.LinearSwimmers + s.CircularSwimmers + s.ErraticSwimmers

	if s.TotalTracked > 0 {
		s.LinearPercentage = float64(s.LinearSwimmers) / float64(s.TotalTracked) * 100
	}

	return s
}
