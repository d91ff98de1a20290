package render

import (
	"image"
	"image/color"
	"math"

	"github.com/you112ef/spermtrack/tracker"
	"gocv.io/x/gocv"
)

// TrailStyle controls how track histories are drawn
type TrailStyle struct {
	// Color overrides the per track color when set
	Color *color.RGBA
	// Thickness of the trail line
	Thickness int
	// Radius of the dot on the latest position
	Radius int
	// Length is the number of most recent positions drawn, 0 draws the
	// whole history
	Length int
}

// DefaultTrailStyle draws the last 30 positions in the track color
func DefaultTrailStyle() TrailStyle {
	return TrailStyle{Thickness: 1, Radius: 3, Length: 30}
}

// Trails draws the position history of every track seen on frameIndex.
// Tracks no longer matched are left off the frame.
func Trails(img *gocv.Mat, tracks *tracker.Tracks, frameIndex int, style TrailStyle) {

	if tracks == nil {
		return
	}

	for n, tr := range tracks.All() {

		if tr.LastSeen != frameIndex {
			continue
		}

		clr := TrackColor(n)
		if style.Color != nil {
			clr = *style.Color
		}

		points := tracks.Tail(tr.ID, style.Length)
		prev := toPoint(points[0])

		for _, p := range points[1:] {
			cur := toPoint(p)
			gocv.Line(img, prev, cur, clr, style.Thickness)
			prev = cur
		}

		gocv.Circle(img, prev, style.Radius, clr, -1)
	}
}

func toPoint(p tracker.Point) image.Point {
	return image.Pt(int(math.Round(p.X)), int(math.Round(p.Y)))
}
