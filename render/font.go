package render

import (
	"image/color"

	"gocv.io/x/gocv"
)

// Alignment is the horizontal placement of a label against its box
type Alignment int

const (
	Left Alignment = iota + 1
	Center
	Right
)

// referenceWidth is the frame width DefaultFont is sized for
const referenceWidth = 640

// Font holds the Hershey font settings used for box labels and overlay text
type Font struct {
	Face      gocv.HersheyFont
	Scale     float64
	Color     color.RGBA
	Thickness int
	LineType  gocv.LineType
	// padding around the text inside its label background
	LeftPad   int
	RightPad  int
	TopPad    int
	BottomPad int
	Alignment Alignment
}

// DefaultFont returns a small anti aliased font sized for a 640 pixel wide
// frame, cells are only a few pixels across so labels are kept compact
func DefaultFont() Font {
	return Font{
		Face:      gocv.FontHersheySimplex,
		Scale:     0.4,
		Color:     White,
		Thickness: 1,
		LineType:  gocv.LineAA,
		LeftPad:   3,
		RightPad:  3,
		TopPad:    3,
		BottomPad: 4,
		Alignment: Left,
	}
}

// ScaledFont returns DefaultFont grown in proportion to a frame width wider
// than 640 pixels so labels stay legible on high resolution micrographs
func ScaledFont(width int) Font {

	f := DefaultFont()

	if width <= referenceWidth {
		return f
	}

	k := float64(width) / referenceWidth

	f.Scale *= k
	f.Thickness = max(1, int(k+0.5))
	f.LeftPad = int(float64(f.LeftPad) * k)
	f.RightPad = int(float64(f.RightPad) * k)
	f.TopPad = int(float64(f.TopPad) * k)
	f.BottomPad = int(float64(f.BottomPad) * k)

	return f
}
