package media

import (
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gocv.io/x/gocv"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// LoadImage decodes a still image into a BGR Mat.  TIFF and BMP files, which
// are common from microscope cameras and not always supported by the OpenCV
// build, are decoded in Go; other formats are read by OpenCV.  The caller
// must Close the returned Mat.
func LoadImage(path string) (gocv.Mat, error) {

	if Classify(path) != Image {
		return gocv.NewMat(), fmt.Errorf("%s: %w", path, ErrUnsupported)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".tif", ".tiff":
		return decodeFile(path, tiff.Decode)
	case ".bmp":
		return decodeFile(path, bmp.Decode)
	}

	img := gocv.IMRead(path, gocv.IMReadColor)

	if img.Empty() {
		img.Close()
		return gocv.NewMat(), fmt.Errorf("could not load image from %s", path)
	}

	return img, nil
}

// decodeFile opens path and decodes it with the given decoder
func decodeFile(path string, decode func(io.Reader) (image.Image, error)) (gocv.Mat, error) {

	f, err := os.Open(path)

	if err != nil {
		return gocv.NewMat(), fmt.Errorf("could not load image: %w", err)
	}

	defer f.Close()

	img, err := decode(f)

	if err != nil {
		return gocv.NewMat(), fmt.Errorf("decoding %s: %w", path, err)
	}

	return ToMat(img)
}

// ToMat converts a Go image to a 3 channel BGR Mat
func ToMat(img image.Image) (gocv.Mat, error) {

	mat, err := gocv.ImageToMatRGB(img)

	if err != nil {
		return gocv.NewMat(), fmt.Errorf("converting image: %w", err)
	}

	if mat.Empty() {
		mat.Close()
		return gocv.NewMat(), fmt.Errorf("converted image is empty")
	}

	return mat, nil
}
