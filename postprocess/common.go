package postprocess

import (
	"sort"

	"github.com/you112ef/spermtrack/postprocess/result"
)

// candidate is a decoded anchor that passed the box threshold, with its box
// still in letterboxed model input pixels
type candidate struct {
	box   result.BoxRect
	score float32
	class int
}

// sortByScore orders candidates by descending score, anchors of equal score
// keep their tensor order
func sortByScore(cands []candidate) {
	sort.SliceStable(cands, func(i, j int) bool {
		return cands[i].score > cands[j].score
	})
}

// suppress applies per class Non-Maximum Suppression to candidates sorted by
// score.  A candidate is dropped when its IoU with an already kept candidate
// of the same class exceeds threshold.
func suppress(cands []candidate, threshold float32) []candidate {

	kept := make([]candidate, 0, len(cands))

next:
	for _, c := range cands {
		for _, k := range kept {
			if k.class == c.class && overlap(k.box, c.box) > threshold {
				continue next
			}
		}

		kept = append(kept, c)
	}

	return kept
}

// overlap returns the Intersection over Union of two boxes measured with
// inclusive pixel extents
func overlap(a, b result.BoxRect) float32 {

	w := min(a.Right, b.Right) - max(a.Left, b.Left) + 1
	h := min(a.Bottom, b.Bottom) - max(a.Top, b.Top) + 1

	if w <= 0 || h <= 0 {
		return 0
	}

	inter := w * h
	union := (a.Width()+1)*(a.Height()+1) + (b.Width()+1)*(b.Height()+1) - inter

	if union <= 0 {
		return 0
	}

	return inter / union
}

// clamp restricts val to the range [lo, hi]
func clamp(val, lo, hi float32) float32 {
	return max(lo, min(val, hi))
}
