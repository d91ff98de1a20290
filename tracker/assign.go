package tracker

import (
	"errors"
	"fmt"
	"math"
)

// maxCost caps a single pairing cost so the dual updates stay finite
const maxCost = 1000000.0

// errNoAugmentingPath is returned when the cost matrix holds values that
// prevent a row from being assigned, such as NaN
var errNoAugmentingPath = errors.New("no augmenting path")

// solveAssignment returns the minimum total cost assignment of a square cost
// matrix as the column chosen for each row.  Rows are added one at a time and
// assigned along the shortest augmenting path found with row and column
// potentials (u, v), giving O(n³) overall.
func solveAssignment(cost [][]float64) ([]int, error) {

	n := len(cost)

	for i, row := range cost {
		if len(row) != n {
			return nil, fmt.Errorf("cost row %d has %d columns, want %d", i, len(row), n)
		}
	}

	// index 0 is a virtual column used as the root of each search, so rows
	// and columns are 1 based below
	u := make([]float64, n+1)
	v := make([]float64, n+1)
	owner := make([]int, n+1)
	prev := make([]int, n+1)
	reduced := make([]float64, n+1)
	visited := make([]bool, n+1)

	for row := 1; row <= n; row++ {

		owner[0] = row
		col := 0

		for j := range reduced {
			reduced[j] = math.Inf(1)
			visited[j] = false
		}

		for owner[col] != 0 {
			visited[col] = true
			i := owner[col]
			delta := math.Inf(1)
			next := 0

			for j := 1; j <= n; j++ {
				if visited[j] {
					continue
				}

				if c := cost[i-1][j-1] - u[i] - v[j]; c < reduced[j] {
					reduced[j] = c
					prev[j] = col
				}

				if reduced[j] < delta {
					delta = reduced[j]
					next = j
				}
			}

			if next == 0 {
				return nil, fmt.Errorf("row %d: %w", row-1, errNoAugmentingPath)
			}

			for j := 0; j <= n; j++ {
				if visited[j] {
					u[owner[j]] += delta
					v[j] -= delta
				} else {
					reduced[j] -= delta
				}
			}

			col = next
		}

		// flip the matching along the path back to the root
		for col != 0 {
			p := prev[col]
			owner[col] = owner[p]
			col = p
		}
	}

	assigned := make([]int, n)

	for j := 1; j <= n; j++ {
		assigned[owner[j]-1] = j - 1
	}

	return assigned, nil
}
