package preprocess

import (
	"image"
	"image/color"

	"github.com/you112ef/spermtrack/postprocess/result"
	"gocv.io/x/gocv"
)

// Letterbox is the geometry of fitting a source image inside the model input
// while keeping its aspect ratio
type Letterbox struct {
	// Scale is the factor applied to both source axes
	Scale float32
	// ScaledWidth and ScaledHeight are the source dimensions after scaling
	ScaledWidth  int
	ScaledHeight int
	// XPad and YPad are the left and top padding in model input pixels
	XPad int
	YPad int
}

// NewLetterbox computes the letterbox geometry for a source image of
// srcWidth x srcHeight placed into a dstWidth x dstHeight input
func NewLetterbox(srcWidth, srcHeight, dstWidth, dstHeight int) Letterbox {

	sx := float32(dstWidth) / float32(srcWidth)
	sy := float32(dstHeight) / float32(srcHeight)

	lb := Letterbox{Scale: sy, ScaledWidth: dstWidth, ScaledHeight: dstHeight}

	// the tighter axis fills the input, the other is padded evenly
	if sx < sy {
		lb.Scale = sx
		lb.ScaledHeight = int(float32(srcHeight) * sx)
	} else {
		lb.ScaledWidth = int(float32(srcWidth) * sy)
	}

	lb.XPad = (dstWidth - lb.ScaledWidth) / 2
	lb.YPad = (dstHeight - lb.ScaledHeight) / 2

	return lb
}

// Resizer letterboxes frames of one source size to the detector input size
// and maps model space boxes back to the source frame.  A Resizer reuses its
// scratch Mat and is not safe for concurrent use.
type Resizer struct {
	srcWidth, srcHeight int
	dstWidth, dstHeight int
	geom                Letterbox
	scratch             gocv.Mat
}

// NewResizer returns a resizer from srcWidth x srcHeight frames to a
// dstWidth x dstHeight model input
func NewResizer(srcWidth, srcHeight, dstWidth, dstHeight int) *Resizer {
	return &Resizer{
		srcWidth:  srcWidth,
		srcHeight: srcHeight,
		dstWidth:  dstWidth,
		dstHeight: dstHeight,
		geom:      NewLetterbox(srcWidth, srcHeight, dstWidth, dstHeight),
		scratch:   gocv.NewMat(),
	}
}

// Close frees the scratch Mat
func (r *Resizer) Close() error {
	return r.scratch.Close()
}

// Geometry returns the letterbox geometry in use
func (r *Resizer) Geometry() Letterbox {
	return r.geom
}

// LetterBoxResize scales src into dest at the model input size, filling the
// borders with pad
func (r *Resizer) LetterBoxResize(src gocv.Mat, dest *gocv.Mat, pad color.RGBA) {

	g := r.geom

	gocv.Resize(src, &r.scratch, image.Pt(g.ScaledWidth, g.ScaledHeight), 0, 0, gocv.InterpolationArea)

	gocv.CopyMakeBorder(r.scratch, dest,
		g.YPad, r.dstHeight-g.ScaledHeight-g.YPad,
		g.XPad, r.dstWidth-g.ScaledWidth-g.XPad,
		gocv.BorderConstant, pad)
}

// SourceBox maps a model input box given as x, y, width, height back to
// source pixels, clamped to the source frame
func (r *Resizer) SourceBox(x, y, width, height float32) result.BoxRect {

	g := r.geom
	left := (x - float32(g.XPad)) / g.Scale
	top := (y - float32(g.YPad)) / g.Scale

	w := float32(r.srcWidth)
	h := float32(r.srcHeight)

	return result.BoxRect{
		Left:   max(0, min(left, w)),
		Top:    max(0, min(top, h)),
		Right:  max(0, min(left+width/g.Scale, w)),
		Bottom: max(0, min(top+height/g.Scale, h)),
	}
}
