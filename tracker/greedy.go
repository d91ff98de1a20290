package tracker

import "math"

// Greedy associates each detection, in input order, with the track whose
// last position is closest and within the match distance.  Detections are
// matched independently, so two detections of the same frame may extend the
// same track.
type Greedy struct {
	params Params
}

// NewGreedy returns a greedy nearest neighbour tracker
func NewGreedy(p Params) *Greedy {
	return &Greedy{params: p}
}

// Update assigns the frames detections to tracks, creating a new track for
// every detection that has no track within range
func (g *Greedy) Update(tracks *Tracks, dets []Detection, frameIndex int) (*Tracks, error) {

	if tracks == nil {
		tracks = NewTracks()
	}

	if err := tracks.checkOrder(dets); err != nil {
		return tracks, err
	}

	for _, det := range dets {

		var matched *Track
		minDist := math.Inf(1)

		// strict comparison keeps the earlier created track on ties
		for _, tr := range tracks.order {
			dist := tr.Last().Distance(det.Center)

			if dist < minDist && dist < g.params.MatchDistance {
				minDist = dist
				matched = tr
			}
		}

		if matched != nil {
			tracks.extend(matched, det, frameIndex)
		} else {
			tracks.create(det, frameIndex)
		}
	}

	return tracks, nil
}
