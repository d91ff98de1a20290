package media

import (
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

func TestClassify(t *testing.T) {

	tests := []struct {
		path string
		want Kind
	}{
		{"sample.jpg", Image},
		{"sample.JPEG", Image},
		{"/data/slide.png", Image},
		{"scan.bmp", Image},
		{"scan.tif", Image},
		{"scan.TIFF", Image},
		{"clip.mp4", Video},
		{"clip.avi", Video},
		{"clip.MOV", Video},
		{"clip.mkv", Video},
		{"clip.wmv", Video},
		{"notes.txt", Unknown},
		{"noext", Unknown},
	}

	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			assert.Equal(t, tc.want, Classify(tc.path))
		})
	}

	assert.Equal(t, "image", Image.String())
	assert.Equal(t, "video", Video.String())
	assert.Equal(t, "unknown", Unknown.String())
}

func TestFrameSkip(t *testing.T) {

	tests := []struct {
		fps  float64
		want int
	}{
		{30, 6},
		{29.97, 5},
		{25, 5},
		{10, 2},
		{5, 1},
		{3, 1},
		{0, 1},
		{-1, 1},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, FrameSkip(tc.fps, 5), "fps %v", tc.fps)
	}
}

// testImage returns a 40x20 image filled with a single colour
func testImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 40, 20))

	for y := 0; y < 20; y++ {
		for x := 0; x < 40; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 100, B: 50, A: 255})
		}
	}

	return img
}

func TestLoadImageGoDecoders(t *testing.T) {

	dir := t.TempDir()

	encoders := map[string]func(f *os.File) error{
		"slide.tiff": func(f *os.File) error { return tiff.Encode(f, testImage(), nil) },
		"slide.bmp":  func(f *os.File) error { return bmp.Encode(f, testImage()) },
	}

	for name, encode := range encoders {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)

			f, err := os.Create(path)
			require.NoError(t, err)
			require.NoError(t, encode(f))
			require.NoError(t, f.Close())

			mat, err := LoadImage(path)
			require.NoError(t, err)
			defer mat.Close()

			assert.Equal(t, 40, mat.Cols())
			assert.Equal(t, 20, mat.Rows())
			assert.Equal(t, 3, mat.Channels())

			// BGR order
			px := mat.GetVecbAt(5, 5)
			assert.Equal(t, uint8(50), px[0])
			assert.Equal(t, uint8(100), px[1])
			assert.Equal(t, uint8(200), px[2])
		})
	}
}

func TestLoadImageOpenCV(t *testing.T) {

	path := filepath.Join(t.TempDir(), "slide.png")

	src := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(10, 20, 30, 0), 16, 32, gocv.MatTypeCV8UC3)
	defer src.Close()

	require.True(t, gocv.IMWrite(path, src))

	mat, err := LoadImage(path)
	require.NoError(t, err)
	defer mat.Close()

	assert.Equal(t, 32, mat.Cols())
	assert.Equal(t, 16, mat.Rows())
}

func TestLoadImageErrors(t *testing.T) {

	_, err := LoadImage("clip.mp4")
	assert.True(t, errors.Is(err, ErrUnsupported))

	_, err = LoadImage(filepath.Join(t.TempDir(), "missing.jpg"))
	assert.Error(t, err)

	_, err = LoadImage(filepath.Join(t.TempDir(), "missing.tif"))
	assert.Error(t, err)
}

func TestOpenVideoUnsupported(t *testing.T) {
	_, err := OpenVideo("slide.png")
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestMatSource(t *testing.T) {

	frames := []gocv.Mat{
		gocv.NewMatWithSizeFromScalar(gocv.NewScalar(1, 1, 1, 0), 4, 4, gocv.MatTypeCV8UC3),
		gocv.NewMatWithSizeFromScalar(gocv.NewScalar(2, 2, 2, 0), 4, 4, gocv.MatTypeCV8UC3),
	}

	src := NewMatSource(frames, 25)
	defer src.Free()

	assert.Equal(t, 25.0, src.FPS())
	assert.Equal(t, 2, src.FrameCount())

	dst := gocv.NewMat()
	defer dst.Close()

	require.True(t, src.Read(&dst))
	assert.Equal(t, uint8(1), dst.GetVecbAt(0, 0)[0])

	require.True(t, src.Read(&dst))
	assert.Equal(t, uint8(2), dst.GetVecbAt(0, 0)[0])

	assert.False(t, src.Read(&dst))

	// buffering a source copies every frame
	require.NoError(t, src.Close())

	buf, err := BufferVideo(src)
	require.NoError(t, err)
	defer buf.Free()

	assert.Equal(t, 2, buf.FrameCount())
	assert.Equal(t, 25.0, buf.FPS())
}
