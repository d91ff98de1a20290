package tracker

// Track is the position history of one detected object across frames.
// Positions and Timestamps always have the same length of at least one and
// are only ever appended to.
type Track struct {
	// ID is the track identifier in the form track_N
	ID string `json:"id"`
	// Positions are the detection centers in the order they were observed
	Positions []Point `json:"positions"`
	// Timestamps are the non-decreasing seconds each position was seen at
	Timestamps []float64 `json:"timestamps"`
	// FirstSeen is the frame index the track was created on
	FirstSeen int `json:"first_seen"`
	// LastSeen is the frame index of the most recent position
	LastSeen int `json:"last_seen"`
}

// newTrack returns a track started from a single detection
func newTrack(id string, det Detection, frameIndex int) *Track {
	return &Track{
		ID:         id,
		Positions:  []Point{det.Center},
		Timestamps: []float64{det.Timestamp},
		FirstSeen:  frameIndex,
		LastSeen:   frameIndex,
	}
}

// append adds the detection to the end of the track history
func (t *Track) append(det Detection, frameIndex int) {
	t.Positions = append(t.Positions, det.Center)
	t.Timestamps = append(t.Timestamps, det.Timestamp)
	t.LastSeen = frameIndex
}

// Last returns the most recent position of the track
func (t *Track) Last() Point {
	return t.Positions[len(t.Positions)-1]
}

// Len returns the number of positions recorded
func (t *Track) Len() int {
	return len(t.Positions)
}

// Elapsed returns the seconds between the first and last position
func (t *Track) Elapsed() float64 {
	return t.Timestamps[len(t.Timestamps)-1] - t.Timestamps[0]
}
