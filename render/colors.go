package render

import (
	"image/color"
	"math"

	"github.com/you112ef/spermtrack/morphology"
)

var (
	// trackColors tell neighbouring tracks apart
	trackColors = palette(20, 7)

	// classColors are the colors of each morphology class
	classColors = map[morphology.Class]color.RGBA{
		morphology.Normal:     Green,
		morphology.Acceptable: Orange,
		morphology.Abnormal:   Red,
		morphology.Unclear:    Grey,
	}

	White  = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Green  = color.RGBA{R: 46, G: 204, B: 113, A: 255}  // #2ECC71
	Blue   = color.RGBA{R: 52, G: 152, B: 219, A: 255}  // #3498DB
	Orange = color.RGBA{R: 243, G: 156, B: 18, A: 255}  // #F39C12
	Red    = color.RGBA{R: 231, G: 76, B: 60, A: 255}   // #E74C3C
	Grey   = color.RGBA{R: 149, G: 165, B: 166, A: 255} // #95A5A6
)

// palette returns n fully saturated colors with hues spaced evenly around
// the wheel, visited with the given stride so consecutive entries differ.
// stride must be coprime with n.
func palette(n, stride int) []color.RGBA {

	out := make([]color.RGBA, n)

	for i := range out {
		h := float64((i*stride)%n) / float64(n) * 6
		x := uint8(255 * (1 - math.Abs(math.Mod(h, 2)-1)))

		switch int(h) {
		case 0:
			out[i] = color.RGBA{R: 255, G: x, A: 255}
		case 1:
			out[i] = color.RGBA{R: x, G: 255, A: 255}
		case 2:
			out[i] = color.RGBA{G: 255, B: x, A: 255}
		case 3:
			out[i] = color.RGBA{G: x, B: 255, A: 255}
		case 4:
			out[i] = color.RGBA{R: x, B: 255, A: 255}
		default:
			out[i] = color.RGBA{R: 255, B: x, A: 255}
		}
	}

	return out
}

// TrackColor returns the color used for the n'th track of a run
func TrackColor(n int) color.RGBA {
	if n < 0 {
		n = -n
	}
	return trackColors[n%len(trackColors)]
}

// ClassColor returns the color of a morphology class
func ClassColor(c morphology.Class) color.RGBA {
	if clr, ok := classColors[c]; ok {
		return clr
	}
	return Grey
}
