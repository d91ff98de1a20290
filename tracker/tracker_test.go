package tracker

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/you112ef/spermtrack/postprocess/result"
)

// det returns a detection centered on x,y at timestamp ts
func det(x, y, ts float64) Detection {
	return Detection{Center: Point{X: x, Y: y}, Timestamp: ts, Confidence: 0.9}
}

// run feeds frames of detections to the tracker, one frame per second
func run(t *testing.T, trk Tracker, frames [][]Detection) *Tracks {
	t.Helper()

	var tracks *Tracks
	var err error

	for i, dets := range frames {
		tracks, err = trk.Update(tracks, dets, i)
		require.NoError(t, err)
	}

	return tracks
}

func TestGreedyLinearTrack(t *testing.T) {

	tracks := run(t, NewGreedy(DefaultParams()), [][]Detection{
		{det(0, 0, 0)},
		{det(10, 0, 1)},
		{det(20, 0, 2)},
	})

	require.Equal(t, 1, tracks.Len())

	tr, ok := tracks.Get("track_1")
	require.True(t, ok)

	assert.Equal(t, []Point{{0, 0}, {10, 0}, {20, 0}}, tr.Positions)
	assert.Equal(t, []float64{0, 1, 2}, tr.Timestamps)
	assert.Equal(t, 0, tr.FirstSeen)
	assert.Equal(t, 2, tr.LastSeen)
	assert.InDelta(t, 2.0, tr.Elapsed(), 1e-9)
}

func TestGreedyMatchDistanceIsExclusive(t *testing.T) {

	tracks := run(t, NewGreedy(DefaultParams()), [][]Detection{
		{det(0, 0, 0)},
		{det(50, 0, 1)},
		{det(50, 49.9, 2)},
	})

	require.Equal(t, 2, tracks.Len())

	first, _ := tracks.Get("track_1")
	second, _ := tracks.Get("track_2")

	assert.Equal(t, 1, first.Len())
	assert.Equal(t, 2, second.Len())
	assert.Equal(t, 1, second.FirstSeen)
}

func TestGreedyTieKeepsEarlierTrack(t *testing.T) {

	tracks := run(t, NewGreedy(DefaultParams()), [][]Detection{
		{det(0, 0, 0), det(60, 0, 0)},
		{det(30, 0, 1)},
	})

	require.Equal(t, 2, tracks.Len())

	first, _ := tracks.Get("track_1")
	second, _ := tracks.Get("track_2")

	assert.Equal(t, 2, first.Len())
	assert.Equal(t, 1, second.Len())
}

func TestGreedyDetectionsContendForTrack(t *testing.T) {

	tracks := run(t, NewGreedy(DefaultParams()), [][]Detection{
		{det(0, 0, 0)},
		{det(5, 0, 1), det(6, 0, 1)},
	})

	require.Equal(t, 1, tracks.Len())

	tr, _ := tracks.Get("track_1")
	assert.Equal(t, []Point{{0, 0}, {5, 0}, {6, 0}}, tr.Positions)
}

func TestOptimalOneDetectionPerTrack(t *testing.T) {

	p := DefaultParams()
	p.Strategy = StrategyOptimal

	trk, err := New(p)
	require.NoError(t, err)

	tracks := run(t, trk, [][]Detection{
		{det(0, 0, 0)},
		{det(6, 0, 1), det(5, 0, 1)},
		{det(100, 100, 2)},
	})

	require.Equal(t, 3, tracks.Len())

	first, _ := tracks.Get("track_1")
	second, _ := tracks.Get("track_2")
	third, _ := tracks.Get("track_3")

	assert.Equal(t, []Point{{0, 0}, {5, 0}}, first.Positions)
	assert.Equal(t, []Point{{6, 0}}, second.Positions)
	assert.Equal(t, []Point{{100, 100}}, third.Positions)
}

func TestTrackerDeterminism(t *testing.T) {

	frames := [][]Detection{
		{det(0, 0, 0), det(200, 200, 0), det(400, 10, 0)},
		{det(8, 3, 0.2), det(205, 190, 0.2), det(30, 30, 0.2)},
		{det(16, 6, 0.4), det(212, 185, 0.4)},
		{det(390, 20, 0.6), det(24, 9, 0.6)},
	}

	for _, strategy := range []string{StrategyGreedy, StrategyOptimal} {
		t.Run(strategy, func(t *testing.T) {
			p := DefaultParams()
			p.Strategy = strategy

			a, err := New(p)
			require.NoError(t, err)
			b, err := New(p)
			require.NoError(t, err)

			assert.Equal(t, run(t, a, frames).All(), run(t, b, frames).All())
		})
	}
}

func TestUpdateRejectsOutOfOrderTimestamps(t *testing.T) {

	trk := NewGreedy(DefaultParams())

	tracks, err := trk.Update(nil, []Detection{det(0, 0, 1)}, 5)
	require.NoError(t, err)

	tracks, err = trk.Update(tracks, []Detection{det(100, 100, 2), det(1, 0, 0.5)}, 2)
	assert.ErrorIs(t, err, ErrTimestampOrder)

	// rejected frame leaves the registry untouched
	require.Equal(t, 1, tracks.Len())
	tr, _ := tracks.Get("track_1")
	assert.Equal(t, 1, tr.Len())

	// timestamps going backwards within a single frame
	tracks, err = trk.Update(tracks, []Detection{det(1, 0, 3), det(2, 0, 2)}, 6)
	assert.ErrorIs(t, err, ErrTimestampOrder)

	tr, _ = tracks.Get("track_1")
	assert.Equal(t, []float64{1}, tr.Timestamps)
	assert.Equal(t, 1, tracks.Len())
}

func TestUpdateZeroValueTracks(t *testing.T) {

	for _, name := range []string{StrategyGreedy, StrategyOptimal} {
		t.Run(name, func(t *testing.T) {

			trk, err := New(Params{Strategy: name, MatchDistance: 50})
			require.NoError(t, err)

			// negative timestamps are valid on an empty registry
			tracks, err := trk.Update(&Tracks{}, []Detection{det(1, 1, -0.5)}, 0)
			require.NoError(t, err)

			tracks, err = trk.Update(tracks, []Detection{det(2, 1, 0)}, 1)
			require.NoError(t, err)

			require.Equal(t, 1, tracks.Len())
			tr, ok := tracks.Get("track_1")
			require.True(t, ok)
			assert.Equal(t, []float64{-0.5, 0}, tr.Timestamps)
		})
	}
}

func TestNewUnknownStrategy(t *testing.T) {

	_, err := New(Params{Strategy: "hungarian", MatchDistance: 50})
	assert.ErrorIs(t, err, ErrUnknownStrategy)

	_, err = New(Params{Strategy: StrategyGreedy, MatchDistance: 0})
	assert.Error(t, err)
}

func TestTracksTail(t *testing.T) {

	tracks := run(t, NewGreedy(DefaultParams()), [][]Detection{
		{det(0, 0, 0)},
		{det(1, 0, 1)},
		{det(2, 0, 2)},
	})

	assert.Equal(t, []Point{{1, 0}, {2, 0}}, tracks.Tail("track_1", 2))
	assert.Len(t, tracks.Tail("track_1", 0), 3)
	assert.Nil(t, tracks.Tail("track_9", 2))
}

func TestFromDetectResults(t *testing.T) {

	dets := []result.DetectResult{
		{Box: result.BoxRect{Left: 10, Top: 20, Right: 30, Bottom: 60}, Probability: 0.7, ID: 4},
	}

	out := FromDetectResults(dets, 1.5)
	require.Len(t, out, 1)

	assert.Equal(t, Point{X: 20, Y: 40}, out[0].Center)
	assert.Equal(t, 1.5, out[0].Timestamp)
	assert.Equal(t, float32(0.7), out[0].Confidence)
	assert.Equal(t, int64(4), out[0].DetectionID)
}

func TestStrategiesAgreeOnSeparatedCells(t *testing.T) {

	frames := [][]Detection{
		{det(0, 0, 0), det(200, 200, 0)},
		{det(5, 0, 0.2), det(200, 210, 0.2)},
		{det(10, 0, 0.4), det(300, 300, 0.4), det(200, 220, 0.4)},
	}

	greedy, err := New(Params{Strategy: StrategyGreedy, MatchDistance: 50})
	require.NoError(t, err)

	optimal, err := New(Params{Strategy: StrategyOptimal, MatchDistance: 50})
	require.NoError(t, err)

	want := []*Track{
		{
			ID:         "track_1",
			Positions:  []Point{{0, 0}, {5, 0}, {10, 0}},
			Timestamps: []float64{0, 0.2, 0.4},
			FirstSeen:  0,
			LastSeen:   2,
		},
		{
			ID:         "track_2",
			Positions:  []Point{{200, 200}, {200, 210}, {200, 220}},
			Timestamps: []float64{0, 0.2, 0.4},
			FirstSeen:  0,
			LastSeen:   2,
		},
		{
			ID:         "track_3",
			Positions:  []Point{{300, 300}},
			Timestamps: []float64{0.4},
			FirstSeen:  2,
			LastSeen:   2,
		},
	}

	for name, trk := range map[string]Tracker{"greedy": greedy, "optimal": optimal} {
		got := run(t, trk, frames).All()

		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("%s tracks mismatch (-want +got):\n%s", name, diff)
		}
	}
}
