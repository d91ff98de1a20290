package tracker

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSolveAssignment(t *testing.T) {

	tests := []struct {
		name string
		cost [][]float64
		want []int
	}{
		{
			name: "cheapest cells conflict",
			cost: [][]float64{
				{4, 1, 3, 2},
				{2, 0, 5, 3},
				{3, 2, 2, 3},
				{2, 3, 3, 2},
			},
			want: []int{3, 1, 2, 0},
		},
		{
			name: "shared column minimum",
			cost: [][]float64{
				{10, 19, 8, 15},
				{10, 18, 7, 17},
				{13, 16, 9, 14},
				{12, 19, 8, 18},
			},
			want: []int{3, 0, 1, 2},
		},
		{
			name: "single cell",
			cost: [][]float64{{7}},
			want: []int{0},
		},
		{
			name: "empty",
			cost: nil,
			want: []int{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := solveAssignment(tc.cost)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestSolveAssignmentInvalid(t *testing.T) {

	_, err := solveAssignment([][]float64{{1, 2}, {3}})
	assert.Error(t, err)

	_, err = solveAssignment([][]float64{{math.NaN()}})
	assert.ErrorIs(t, err, errNoAugmentingPath)
}

func TestLinearAssignmentGating(t *testing.T) {

	cost := [][]float64{
		{10, 60},
		{70, 80},
	}

	matches, unmatched, err := linearAssignment(cost, 2, 2, 50)
	require.NoError(t, err)

	assert.Equal(t, [][2]int{{0, 0}}, matches)
	assert.Equal(t, []int{1}, unmatched)
}

func TestLinearAssignmentEmpty(t *testing.T) {

	matches, unmatched, err := linearAssignment(nil, 3, 0, 50)
	require.NoError(t, err)

	assert.Empty(t, matches)
	assert.Equal(t, []int{0, 1, 2}, unmatched)
}
