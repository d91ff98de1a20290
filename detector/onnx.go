package detector

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"os"

	"github.com/you112ef/spermtrack/postprocess"
	"github.com/you112ef/spermtrack/postprocess/result"
	"github.com/you112ef/spermtrack/preprocess"
	"gocv.io/x/gocv"
)

// ONNXParams defines the configuration of the ONNX YOLOv8 detector
type ONNXParams struct {
	// ModelFile is the path to the exported YOLOv8 ONNX model
	ModelFile string
	// InputSize is the square model input tensor size in pixels
	InputSize int
	// PoolSize is the number of networks loaded for parallel inference
	PoolSize int
	// Backend and Target select the OpenCV DNN compute device
	Backend gocv.NetBackendType
	Target  gocv.NetTargetType
	// YOLO are the post processing thresholds
	YOLO postprocess.YOLOv8Params
	// SAHI enables sliced inference for micrographs much larger than the
	// model input, cells only cover a few pixels at full resolution
	SAHI bool
	// SliceOverlap is the ratio of slice overlap used with SAHI
	SliceOverlap float32
}

// DefaultONNXParams returns parameters for a 640x640 single class sperm
// model run on the CPU without slicing
func DefaultONNXParams(modelFile string) ONNXParams {
	return ONNXParams{
		ModelFile:    modelFile,
		InputSize:    640,
		PoolSize:     1,
		Backend:      gocv.NetBackendDefault,
		Target:       gocv.NetTargetCPU,
		YOLO:         postprocess.YOLOv8SpermParams(),
		SliceOverlap: 0.2,
	}
}

// ONNX runs a YOLOv8 model exported to ONNX through the OpenCV DNN module
type ONNX struct {
	params  ONNXParams
	pool    *Pool
	process *postprocess.YOLOv8
	// padColor is the letterbox padding colour
	padColor color.RGBA
}

// NewONNX loads the model into a pool of networks.  A model that cannot be
// loaded returns an error wrapping ErrUnavailable.
func NewONNX(p ONNXParams) (*ONNX, error) {

	if p.InputSize <= 0 {
		return nil, fmt.Errorf("invalid model input size %d", p.InputSize)
	}

	if _, err := os.Stat(p.ModelFile); err != nil {
		return nil, fmt.Errorf("model file: %v: %w", err, ErrUnavailable)
	}

	pool, err := NewPool(p.PoolSize, p.ModelFile, p.Backend, p.Target)

	if err != nil {
		return nil, err
	}

	return &ONNX{
		params:   p,
		pool:     pool,
		process:  postprocess.NewYOLOv8(p.YOLO),
		padColor: color.RGBA{R: 114, G: 114, B: 114, A: 255},
	}, nil
}

// Close releases the networks, later calls to Detect return ErrUnavailable
func (d *ONNX) Close() error {
	d.pool.Close()
	return nil
}

// Detect runs the model on the image, slicing it first when SAHI is enabled
func (d *ONNX) Detect(ctx context.Context, img gocv.Mat) ([]result.DetectResult, error) {

	if img.Empty() {
		return nil, fmt.Errorf("empty image")
	}

	net, err := d.pool.Get(ctx)

	if err != nil {
		return nil, err
	}

	defer d.pool.Return(net)

	if !d.params.SAHI {
		return d.infer(net, img)
	}

	slicer := preprocess.NewSlicer(d.params.InputSize, d.params.InputSize, d.params.SliceOverlap)

	return slicer.Detect(img, func(tile gocv.Mat) ([]result.DetectResult, error) {
		return d.infer(net, tile)
	}, preprocess.DefaultMergeParams(d.params.YOLO.NMSThreshold))
}

// infer letterboxes the image to the model input, runs a forward pass and
// decodes the output into source image boxes
func (d *ONNX) infer(net *gocv.Net, img gocv.Mat) ([]result.DetectResult, error) {

	size := d.params.InputSize

	resizer := preprocess.NewResizer(img.Cols(), img.Rows(), size, size)
	defer resizer.Close()

	resized := gocv.NewMat()
	defer resized.Close()

	resizer.LetterBoxResize(img, &resized, d.padColor)

	// scale to 0..1 and swap BGR to RGB
	blob := gocv.BlobFromImage(resized, 1.0/255.0, image.Pt(size, size),
		gocv.NewScalar(0, 0, 0, 0), true, false)
	defer blob.Close()

	net.SetInput(blob, "")

	out := net.Forward("")
	defer out.Close()

	dims := out.Size()

	if len(dims) != 3 {
		return nil, fmt.Errorf("unexpected output tensor shape %v", dims)
	}

	data, err := out.DataPtrFloat32()

	if err != nil {
		return nil, fmt.Errorf("reading output tensor: %w", err)
	}

	res, err := d.process.DetectObjects(data, dims[2], resizer)

	if err != nil {
		return nil, err
	}

	return res.GetDetectResults(), nil
}
