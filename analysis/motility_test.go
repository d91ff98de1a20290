package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/you112ef/spermtrack/tracker"
)

// track builds a track from positions sampled once per second
func track(id string, pts ...tracker.Point) *tracker.Track {
	tr := &tracker.Track{ID: id}

	for i, p := range pts {
		tr.Positions = append(tr.Positions, p)
		tr.Timestamps = append(tr.Timestamps, float64(i))
	}

	return tr
}

func TestKinematicsLinearTrack(t *testing.T) {

	tr := track("track_1", tracker.Point{X: 0, Y: 0}, tracker.Point{X: 10, Y: 0}, tracker.Point{X: 20, Y: 0})

	k := Kinematics(tr, DefaultMotilityParams())

	assert.InDelta(t, 20.0, k.PathLength, 1e-9)
	assert.InDelta(t, 2.0, k.Elapsed, 1e-9)
	assert.InDelta(t, 10.0, k.Velocity, 1e-9)
	assert.True(t, k.HasVelocity)
	assert.True(t, k.Motile)
}

func TestMotilityEmpty(t *testing.T) {

	stats := Motility(nil, DefaultMotilityParams())

	assert.Equal(t, MotilityStats{}, stats)
}

func TestMotilitySinglePointTracksExcluded(t *testing.T) {

	tracks := []*tracker.Track{
		track("track_1", tracker.Point{X: 0, Y: 0}),
		track("track_2", tracker.Point{X: 5, Y: 5}),
	}

	stats := Motility(tracks, DefaultMotilityParams())

	assert.Equal(t, 2, stats.TotalSperm)
	assert.Equal(t, 0, stats.TotalMotile)
	assert.Equal(t, 0.0, stats.MotilityPercentage)
	assert.Equal(t, 0.0, stats.AverageVelocity)
	assert.Equal(t, 0.0, stats.VelocityStd)
	assert.Equal(t, 0.0, stats.AveragePathLength)
}

func TestMotilityAggregate(t *testing.T) {

	tracks := []*tracker.Track{
		// 10 px/s, motile
		track("track_1", tracker.Point{X: 0, Y: 0}, tracker.Point{X: 10, Y: 0}, tracker.Point{X: 20, Y: 0}),
		// 2 px/s, not motile
		track("track_2", tracker.Point{X: 0, Y: 0}, tracker.Point{X: 2, Y: 0}),
		// never moved on from its first frame
		track("track_3", tracker.Point{X: 50, Y: 50}),
		// two points at the same instant, no velocity
		{
			ID:         "track_4",
			Positions:  []tracker.Point{{X: 0, Y: 0}, {X: 30, Y: 40}},
			Timestamps: []float64{1, 1},
		},
	}

	stats := Motility(tracks, DefaultMotilityParams())

	assert.Equal(t, 4, stats.TotalSperm)
	assert.Equal(t, 1, stats.TotalMotile)
	assert.InDelta(t, 25.0, stats.MotilityPercentage, 1e-9)
	assert.InDelta(t, 6.0, stats.AverageVelocity, 1e-9)
	assert.InDelta(t, 4.0, stats.VelocityStd, 1e-9)
	// path lengths 20, 2 and 50
	assert.InDelta(t, 24.0, stats.AveragePathLength, 1e-9)

	assert.Equal(t, []float64{10, 2}, Velocities(tracks, DefaultMotilityParams()))
}

func TestMotilityPercentageBounded(t *testing.T) {

	tracks := []*tracker.Track{
		track("track_1", tracker.Point{X: 0, Y: 0}, tracker.Point{X: 100, Y: 0}),
		track("track_2", tracker.Point{X: 0, Y: 0}, tracker.Point{X: 0, Y: 100}),
	}

	stats := Motility(tracks, DefaultMotilityParams())

	assert.Equal(t, 100.0, stats.MotilityPercentage)
	assert.GreaterOrEqual(t, stats.MotilityPercentage, 0.0)
}

func TestMotilityThresholdConfigurable(t *testing.T) {

	tracks := []*tracker.Track{
		track("track_1", tracker.Point{X: 0, Y: 0}, tracker.Point{X: 10, Y: 0}),
	}

	stats := Motility(tracks, MotilityParams{MotileVelocity: 10})

	// velocity must exceed the threshold, equal is not motile
	assert.Equal(t, 0, stats.TotalMotile)
}
