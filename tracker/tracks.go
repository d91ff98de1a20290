package tracker

import "fmt"

// Tracks is the registry of every track created during one analysis run.
// It is owned by a single run, passed into and returned from each Tracker
// Update, and discarded when the run ends.  Tracks are never removed, so
// ones that stopped receiving detections remain until final aggregation.
// The zero value is an empty registry ready to use.
type Tracks struct {
	// order holds tracks in creation order
	order []*Track
	// byID indexes tracks by their ID
	byID map[string]*Track
	// latest is the newest timestamp recorded, valid once seen is set
	latest float64
	seen   bool
}

// NewTracks returns an empty track registry
func NewTracks() *Tracks {
	return &Tracks{
		order: make([]*Track, 0),
		byID:  make(map[string]*Track),
	}
}

// Len returns the number of tracks created
func (t *Tracks) Len() int {
	return len(t.order)
}

// All returns the tracks in creation order
func (t *Tracks) All() []*Track {
	out := make([]*Track, len(t.order))
	copy(out, t.order)
	return out
}

// Get returns the track with the given ID
func (t *Tracks) Get(id string) (*Track, bool) {
	tr, ok := t.byID[id]
	return tr, ok
}

// Tail returns up to size of the most recent positions of a track, used for
// drawing a trail behind the object.  A size of zero or less returns the
// whole history.
func (t *Tracks) Tail(id string, size int) []Point {

	tr, ok := t.byID[id]

	if !ok {
		// no history yet
		return nil
	}

	if size <= 0 || size >= len(tr.Positions) {
		return tr.Positions
	}

	return tr.Positions[len(tr.Positions)-size:]
}

// checkOrder returns ErrTimestampOrder if any detection is older than the
// newest observation already recorded or than an earlier detection of the
// same frame.  It runs before any mutation so a rejected frame leaves the
// registry unchanged.
func (t *Tracks) checkOrder(dets []Detection) error {

	latest, seen := t.latest, t.seen

	for i, det := range dets {
		if seen && det.Timestamp < latest {
			return fmt.Errorf("detection %d at %.3fs is older than %.3fs: %w",
				i, det.Timestamp, latest, ErrTimestampOrder)
		}

		latest = det.Timestamp
		seen = true
	}

	return nil
}

// create starts a new track named after the current track count
func (t *Tracks) create(det Detection, frameIndex int) *Track {

	id := fmt.Sprintf("track_%d", len(t.order)+1)
	tr := newTrack(id, det, frameIndex)

	if t.byID == nil {
		t.byID = make(map[string]*Track)
	}

	t.order = append(t.order, tr)
	t.byID[id] = tr
	t.observe(det.Timestamp)

	return tr
}

// extend appends the detection to an existing track
func (t *Tracks) extend(tr *Track, det Detection, frameIndex int) {
	tr.append(det, frameIndex)
	t.observe(det.Timestamp)
}

func (t *Tracks) observe(ts float64) {
	if !t.seen || ts > t.latest {
		t.latest = ts
		t.seen = true
	}
}
