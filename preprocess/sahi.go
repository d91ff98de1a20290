package preprocess

import (
	"errors"
	"fmt"
	"image"
	"math"
	"sort"

	"github.com/you112ef/spermtrack/postprocess/result"
	"gocv.io/x/gocv"
)

// Slicer cuts a high resolution micrograph into overlapping tiles for Slicing
// Aided Hyper Inference.  Cells cover only a few pixels of a full frame, so
// detecting on tiles the size of the model input keeps them resolvable.
type Slicer struct {
	// TileWidth and TileHeight are the nominal tile size, normally the model
	// input size
	TileWidth  int
	TileHeight int
	// Overlap is the minimum fraction of a tile shared with its neighbour
	Overlap float32
}

// MergeParams control how detections repeated by neighbouring tiles are
// collapsed
type MergeParams struct {
	// IoU is the intersection over union above which two boxes are the same
	// cell
	IoU float32
	// Containment is the fraction of the smaller box covered by the other
	// above which they are the same cell, catching cells cut by a tile edge
	Containment float32
}

// DefaultMergeParams returns the merge thresholds used by the detector
func DefaultMergeParams(iou float32) MergeParams {
	return MergeParams{IoU: iou, Containment: 0.7}
}

// SliceDetector runs detection on a single tile returning boxes in the tiles
// own pixel coordinates
type SliceDetector func(tile gocv.Mat) ([]result.DetectResult, error)

// NewSlicer returns a slicer for tiles of the given size
func NewSlicer(tileWidth, tileHeight int, overlap float32) Slicer {
	return Slicer{TileWidth: tileWidth, TileHeight: tileHeight, Overlap: overlap}
}

// span returns the start of each tile along an axis of length total and the
// tile length used.  The tile is stretched by the overlap and the fewest
// tiles are spread evenly so neighbours never step further than size apart.
// An axis no longer than one tile gets a single tile covering all of it.
func span(total, size int, overlap float32) ([]int, int) {

	length := size + int(math.Ceil(float64(size)*float64(overlap)))

	if length >= total {
		return []int{0}, total
	}

	room := total - length
	count := int(math.Ceil(float64(room)/float64(size))) + 1
	step := float64(room) / float64(count-1)

	starts := make([]int, count)

	for i := range starts {
		starts[i] = min(int(math.Round(step*float64(i))), room)
	}

	return starts, length
}

// Tiles returns the tile rectangles covering a width x height frame in row
// major order
func (s Slicer) Tiles(width, height int) []image.Rectangle {

	xs, tw := span(width, s.TileWidth, s.Overlap)
	ys, th := span(height, s.TileHeight, s.Overlap)

	tiles := make([]image.Rectangle, 0, len(xs)*len(ys))

	for _, y := range ys {
		for _, x := range xs {
			tiles = append(tiles, image.Rect(x, y, x+tw, y+th))
		}
	}

	return tiles
}

// Detect runs detect on every tile of src and returns the merged detections
// in src coordinates.  A failing tile fails the whole frame.
func (s Slicer) Detect(src gocv.Mat, detect SliceDetector, m MergeParams) ([]result.DetectResult, error) {

	var all []result.DetectResult
	var errs []error

	for _, rect := range s.Tiles(src.Cols(), src.Rows()) {

		tile := src.Region(rect)
		dets, err := detect(tile)
		tile.Close()

		if err != nil {
			errs = append(errs, fmt.Errorf("tile at %d,%d: %w", rect.Min.X, rect.Min.Y, err))
			continue
		}

		all = append(all, Offset(dets, rect.Min)...)
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	return Merge(all, m), nil
}

// Offset returns dets moved from tile coordinates by the tile origin
func Offset(dets []result.DetectResult, origin image.Point) []result.DetectResult {

	dx, dy := float32(origin.X), float32(origin.Y)
	out := make([]result.DetectResult, len(dets))

	for i, d := range dets {
		d.Box.Left += dx
		d.Box.Right += dx
		d.Box.Top += dy
		d.Box.Bottom += dy
		out[i] = d
	}

	return out
}

// Merge collapses detections of the same cell reported by overlapping
// tiles, class agnostic.  Starting from the most confident, each detection
// gathers the remaining ones that duplicate it and the cluster is replaced
// by its largest box, ties going to the higher probability.
func Merge(dets []result.DetectResult, m MergeParams) []result.DetectResult {

	order := append([]result.DetectResult(nil), dets...)

	sort.SliceStable(order, func(i, j int) bool {
		return order[i].Probability > order[j].Probability
	})

	used := make([]bool, len(order))
	out := make([]result.DetectResult, 0, len(order))

	for i, base := range order {
		if used[i] {
			continue
		}

		best := base

		for j := i + 1; j < len(order); j++ {
			if used[j] || !m.duplicate(base.Box, order[j].Box) {
				continue
			}

			used[j] = true
			c := order[j]

			if a, b := c.Box.Area(), best.Box.Area(); a > b || (a == b && c.Probability > best.Probability) {
				best = c
			}
		}

		out = append(out, best)
	}

	return out
}

// duplicate reports whether other overlaps base enough to be the same cell
func (m MergeParams) duplicate(base, other result.BoxRect) bool {

	inter := intersection(base, other)

	if union := base.Area() + other.Area() - inter; union > 0 && inter/union > m.IoU {
		return true
	}

	area := other.Area()

	return area > 0 && inter/area > m.Containment
}

// intersection returns the overlapping area of two boxes
func intersection(a, b result.BoxRect) float32 {

	w := min(a.Right, b.Right) - max(a.Left, b.Left)
	h := min(a.Bottom, b.Bottom) - max(a.Top, b.Top)

	if w <= 0 || h <= 0 {
		return 0
	}

	return w * h
}
