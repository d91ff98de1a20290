package tracker

import "fmt"

// Optimal associates detections with the tracks that existed at the start of
// the frame by solving the linear assignment problem over their Euclidean
// distances, so each track receives at most one detection per frame.  Pairs
// at or beyond the match distance are never assigned.
type Optimal struct {
	params Params
}

// NewOptimal returns a tracker using minimum cost assignment
func NewOptimal(p Params) *Optimal {
	return &Optimal{params: p}
}

// Update assigns the frames detections to tracks, unmatched detections start
// new tracks in input order
func (o *Optimal) Update(tracks *Tracks, dets []Detection, frameIndex int) (*Tracks, error) {

	if tracks == nil {
		tracks = NewTracks()
	}

	if err := tracks.checkOrder(dets); err != nil {
		return tracks, err
	}

	if len(dets) == 0 {
		return tracks, nil
	}

	existing := tracks.All()

	cost := make([][]float64, len(dets))

	for i, det := range dets {
		cost[i] = make([]float64, len(existing))

		for j, tr := range existing {
			cost[i][j] = tr.Last().Distance(det.Center)
		}
	}

	matches, unmatched, err := linearAssignment(cost, len(dets), len(existing), o.params.MatchDistance)

	if err != nil {
		return tracks, fmt.Errorf("frame %d assignment failed: %w", frameIndex, err)
	}

	for _, m := range matches {
		tracks.extend(existing[m[1]], dets[m[0]], frameIndex)
	}

	for _, i := range unmatched {
		tracks.create(dets[i], frameIndex)
	}

	return tracks, nil
}

// linearAssignment matches rows (detections) to columns (tracks) minimising
// total cost.  Matches returned are [row, column] pairs with cost strictly
// below thresh; unmatched rows are returned in ascending order.
func linearAssignment(cost [][]float64, rows, cols int,
	thresh float64) (matchesIdx [][2]int, unmatchedRows []int, err error) {

	if rows == 0 || cols == 0 {
		for i := 0; i < rows; i++ {
			unmatchedRows = append(unmatchedRows, i)
		}
		return
	}

	rowsol, err := assignGated(cost, rows, cols, thresh)

	if err != nil {
		return nil, nil, err
	}

	for i, sol := range rowsol {
		if sol >= 0 && cost[i][sol] < thresh {
			matchesIdx = append(matchesIdx, [2]int{i, sol})
		} else {
			unmatchedRows = append(unmatchedRows, i)
		}
	}

	return
}

// assignGated extends the rows x cols cost matrix to a square matrix of size
// rows+cols where leaving a row or column unassigned costs costLimit/2, then
// solves it.  The returned slice holds the column assigned to each row or -1.
func assignGated(cost [][]float64, rows, cols int, costLimit float64) ([]int, error) {

	n := rows + cols

	ext := make([][]float64, n)

	for i := range ext {
		ext[i] = make([]float64, n)

		for j := range ext[i] {
			switch {
			case i < rows && j < cols:
				ext[i][j] = min(cost[i][j], maxCost)
			case i >= rows && j >= cols:
				ext[i][j] = 0
			default:
				ext[i][j] = costLimit / 2
			}
		}
	}

	assigned, err := solveAssignment(ext)

	if err != nil {
		return nil, err
	}

	rowsol := make([]int, rows)

	for i := 0; i < rows; i++ {
		rowsol[i] = assigned[i]

		if assigned[i] >= cols {
			rowsol[i] = -1
		}
	}

	return rowsol, nil
}
