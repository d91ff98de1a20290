package render

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/you112ef/spermtrack/morphology"
	"github.com/you112ef/spermtrack/postprocess/result"
	"gocv.io/x/gocv"
)

// boxLabel holds the precalculated rendering details of a box label
type boxLabel struct {
	rect    image.Rectangle
	clr     color.RGBA
	text    string
	textPos image.Point
}

// toRect converts a float bounding box to pixel bounds
func toRect(b result.BoxRect) image.Rectangle {
	return image.Rect(
		int(math.Round(float64(b.Left))),
		int(math.Round(float64(b.Top))),
		int(math.Round(float64(b.Right))),
		int(math.Round(float64(b.Bottom))),
	)
}

// newBoxLabel calculates where the label text and its background box go for
// a bounding box
func newBoxLabel(rect image.Rectangle, text string, clr color.RGBA,
	font Font, lineThickness int) boxLabel {

	textSize := gocv.GetTextSize(text, font.Face, font.Scale, font.Thickness)

	// Calculate the alignment of text label
	var centerX int

	switch font.Alignment {
	case Center:
		centerX = (rect.Min.X + rect.Max.X) / 2

	case Right:
		centerX = rect.Max.X - (textSize.X / 2) - font.RightPad + (lineThickness / 2)

	case Left:
		fallthrough
	default:
		centerX = rect.Min.X + (textSize.X / 2) + font.LeftPad - (lineThickness / 2)
	}

	height := textSize.Y + font.TopPad + font.BottomPad
	bottom := rect.Min.Y

	// boxes touching the top of the frame get their label underneath
	if bottom-height < 0 {
		bottom = rect.Max.Y + height
	}

	return boxLabel{
		rect: image.Rect(centerX-textSize.X/2-font.LeftPad, bottom-height,
			centerX+textSize.X/2+font.RightPad, bottom),
		clr:     clr,
		text:    text,
		textPos: image.Pt(centerX-textSize.X/2, bottom-font.BottomPad),
	}
}

// drawLabels renders labels last so they are the top most layer and are not
// overlapped by neighbouring boxes
func drawLabels(img *gocv.Mat, labels []boxLabel, font Font) {
	for _, box := range labels {
		// draw box text gets written on
		gocv.Rectangle(img, box.rect, box.clr, -1)

		gocv.PutTextWithParams(img, box.text, box.textPos,
			font.Face, font.Scale, font.Color, font.Thickness,
			font.LineType, false)
	}
}

// DetectionBoxes renders the bounding boxes around the objects detected,
// labelled with class name and confidence
func DetectionBoxes(img *gocv.Mat, dets []result.DetectResult,
	label func(class int) string, font Font, lineThickness int) {

	labels := make([]boxLabel, 0, len(dets))

	for i, det := range dets {
		clr := TrackColor(i)
		rect := toRect(det.Box)

		gocv.Rectangle(img, rect, clr, lineThickness)

		text := fmt.Sprintf("%s %.2f", label(det.Class), det.Probability)
		labels = append(labels, newBoxLabel(rect, text, clr, font, lineThickness))
	}

	drawLabels(img, labels, font)
}

// AssessmentBoxes renders detection boxes colored by morphology class,
// labelled with the class and quality score.  dets and assessments are
// matched by index.
func AssessmentBoxes(img *gocv.Mat, dets []result.DetectResult,
	assessments []morphology.Assessment, font Font, lineThickness int) {

	n := min(len(dets), len(assessments))
	labels := make([]boxLabel, 0, n)

	for i := 0; i < n; i++ {
		a := assessments[i]
		clr := ClassColor(a.Class)
		rect := toRect(dets[i].Box)

		gocv.Rectangle(img, rect, clr, lineThickness)

		text := fmt.Sprintf("%s %.2f", a.Class, a.QualityScore)
		labels = append(labels, newBoxLabel(rect, text, clr, font, lineThickness))
	}

	drawLabels(img, labels, font)
}

// Overlay writes lines of text to the top left of the image, used for run
// statistics such as frame number and counts
func Overlay(img *gocv.Mat, lines []string, font Font) {

	y := 0

	for _, line := range lines {
		size := gocv.GetTextSize(line, font.Face, font.Scale, font.Thickness)
		y += size.Y + font.TopPad + font.BottomPad

		gocv.PutTextWithParams(img, line, image.Pt(font.LeftPad, y),
			font.Face, font.Scale, font.Color, font.Thickness,
			font.LineType, false)
	}
}
