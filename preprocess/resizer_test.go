package preprocess

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"
)

var (
	black = color.RGBA{R: 0, G: 0, B: 0, A: 255}
)

func TestLetterBoxResize(t *testing.T) {

	tests := []struct {
		srcWidth      int
		srcHeight     int
		resizeWidth   int
		resizeHeight  int
		expectedXPad  int
		expectedYPad  int
		expectedScale float32
	}{
		{1280, 720, 640, 640, 0, 140, 0.50},
		{800, 1000, 640, 640, 64, 0, 0.64},
		{800, 800, 640, 640, 0, 0, 0.8},
	}

	for _, tc := range tests {
		img := gocv.NewMatWithSize(tc.srcHeight, tc.srcWidth, gocv.MatTypeCV8UC1)
		resizedImg := gocv.NewMat()
		resizer := NewResizer(tc.srcWidth, tc.srcHeight, tc.resizeWidth, tc.resizeHeight)

		resizer.LetterBoxResize(img, &resizedImg, black)

		g := resizer.Geometry()
		assert.Equal(t, tc.expectedXPad, g.XPad, "xPad for %dx%d", tc.srcWidth, tc.srcHeight)
		assert.Equal(t, tc.expectedYPad, g.YPad, "yPad for %dx%d", tc.srcWidth, tc.srcHeight)
		assert.InDelta(t, tc.expectedScale, g.Scale, 1e-6)
		assert.Equal(t, tc.resizeWidth, resizedImg.Cols())
		assert.Equal(t, tc.resizeHeight, resizedImg.Rows())

		img.Close()
		resizedImg.Close()
		require.NoError(t, resizer.Close())
	}
}

func TestResizerSourceBox(t *testing.T) {

	// 1280x720 into 640x640 gives scale 0.5 and 140 pixel vertical padding
	resizer := NewResizer(1280, 720, 640, 640)
	defer resizer.Close()

	box := resizer.SourceBox(100, 190, 50, 25)

	assert.InDelta(t, 200, box.Left, 1e-4)
	assert.InDelta(t, 100, box.Top, 1e-4)
	assert.InDelta(t, 300, box.Right, 1e-4)
	assert.InDelta(t, 150, box.Bottom, 1e-4)

	// boxes in the padding band are clamped to the source image
	clamped := resizer.SourceBox(620, 100, 40, 30)

	assert.Equal(t, float32(0), clamped.Top)
	assert.Equal(t, float32(1280), clamped.Right)
}
