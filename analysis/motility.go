package analysis

import (
	"github.com/you112ef/spermtrack/tracker"
	"gonum.org/v1/gonum/stat"
)

// MotilityParams defines the motility classification configuration
type MotilityParams struct {
	// MotileVelocity is the velocity in pixels per second a track must
	// exceed to count as motile
	MotileVelocity float64 `json:"motile_velocity"`
}

// DefaultMotilityParams returns a motile threshold of 5 pixels per second
func DefaultMotilityParams() MotilityParams {
	return MotilityParams{
		MotileVelocity: 5,
	}
}

// TrackKinematics are the movement measurements of a single track
type TrackKinematics struct {
	// PathLength is the sum of distances between consecutive positions
	PathLength float64
	// Elapsed is the seconds between the first and last position
	Elapsed float64
	// Velocity is PathLength/Elapsed, only set when HasVelocity is true
	Velocity float64
	// HasVelocity is true when the track spans a positive time
	HasVelocity bool
	// Motile is true when Velocity exceeds the motile threshold
	Motile bool
}

// MotilityStats is the motility aggregate over every track of a run
type MotilityStats struct {
	TotalSperm         int     `json:"total_sperm"`
	TotalMotile        int     `json:"total_motile_sperm"`
	MotilityPercentage float64 `json:"motility_percentage"`
	AverageVelocity    float64 `json:"average_velocity"`
	VelocityStd        float64 `json:"velocity_std"`
	AveragePathLength  float64 `json:"average_path_length"`
}

// PathLength returns the summed Euclidean length of consecutive segments
func PathLength(positions []tracker.Point) float64 {

	total := 0.0

	for i := 1; i < len(positions); i++ {
		total += positions[i].Distance(positions[i-1])
	}

	return total
}

// Kinematics measures a single track.  Tracks with fewer than two positions
// have zero path length and no velocity.
func Kinematics(track *tracker.Track, p MotilityParams) TrackKinematics {

	var k TrackKinematics

	if track == nil || track.Len() < 2 {
		return k
	}

	k.PathLength = PathLength(track.Positions)
	k.Elapsed = track.Elapsed()

	if k.Elapsed > 0 {
		k.Velocity = k.PathLength / k.Elapsed
		k.HasVelocity = true
		k.Motile = k.Velocity > p.MotileVelocity
	}

	return k
}

// Motility aggregates velocity, path length and motile counts over all
// tracks.  Every track counts towards TotalSperm, but only tracks with two or
// more positions contribute a path length and only those spanning a positive
// time contribute a velocity.
func Motility(tracks []*tracker.Track, p MotilityParams) MotilityStats {

	stats := MotilityStats{
		TotalSperm: len(tracks),
	}

	if len(tracks) == 0 {
		return stats
	}

	var velocities, pathLengths []float64

	for _, tr := range tracks {
		if tr == nil || tr.Len() < 2 {
			continue
		}

		k := Kinematics(tr, p)
		pathLengths = append(pathLengths, k.PathLength)

		if !k.HasVelocity {
			continue
		}

		velocities = append(velocities, k.Velocity)

		if k.Motile {
			stats.TotalMotile++
		}
	}

	stats.MotilityPercentage = float64(stats.TotalMotile) / float64(stats.TotalSperm) * 100

	if len(velocities) > 0 {
		stats.AverageVelocity, stats.VelocityStd = stat.PopMeanStdDev(velocities, nil)
	}

	if len(pathLengths) > 0 {
		stats.AveragePathLength = stat.Mean(pathLengths, nil)
	}

	return stats
}

// Velocities returns the velocity of every track spanning a positive time,
// in track order
func Velocities(tracks []*tracker.Track, p MotilityParams) []float64 {

	out := make([]float64, 0, len(tracks))

	for _, tr := range tracks {
		if k := Kinematics(tr, p); k.HasVelocity {
			out = append(out, k.Velocity)
		}
	}

	return out
}
