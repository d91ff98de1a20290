package morphology

// Class is the morphology category of a detection
type Class string

const (
	Normal     Class = "normal"
	Acceptable Class = "acceptable"
	Abnormal   Class = "abnormal"
	Unclear    Class = "unclear"
)

// Params defines the morphology classification thresholds and the constants
// used to derive concentration and viability
type Params struct {
	// NormalAspectRatio is the aspect ratio a normal cell must exceed
	NormalAspectRatio float64 `json:"normal_aspect_ratio"`
	// NormalMaxCircularity is the circularity a normal cell must be below
	NormalMaxCircularity float64 `json:"normal_max_circularity"`
	// AcceptableAspectRatio is the aspect ratio an acceptable cell must exceed
	AcceptableAspectRatio float64 `json:"acceptable_aspect_ratio"`
	// AcceptableScore is the quality score of an acceptable cell
	AcceptableScore float64 `json:"acceptable_score"`
	// AbnormalScore is the quality score of an abnormal cell
	AbnormalScore float64 `json:"abnormal_score"`
	// UnclearScore is the quality score of a region with no contour
	UnclearScore float64 `json:"unclear_score"`
	// CellsPerMLPerDetection is the linear factor converting a detection
	// count to a concentration per ml
	CellsPerMLPerDetection float64 `json:"cells_per_ml_per_detection"`
	// ReferenceConcentration is the WHO lower reference concentration per ml
	ReferenceConcentration float64 `json:"reference_concentration"`
	// ReferenceQuality is the average quality needed to meet WHO standards
	ReferenceQuality float64 `json:"reference_quality"`
}

// DefaultParams returns the morphology thresholds and the WHO reference of
// 15 million cells per ml
func DefaultParams() Params {
	return Params{
		NormalAspectRatio:      3,
		NormalMaxCircularity:   0.3,
		AcceptableAspectRatio:  2,
		AcceptableScore:        0.6,
		AbnormalScore:          0.3,
		UnclearScore:           0.4,
		CellsPerMLPerDetection: 10000,
		ReferenceConcentration: 15000000,
		ReferenceQuality:       0.6,
	}
}

// Assessment is the morphology verdict for one detection
type Assessment struct {
	Class        Class   `json:"morphology"`
	QualityScore float64 `json:"quality_score"`
	Shape        Shape   `json:"shape"`
}

// Classify assigns a morphology class and quality score to a shape.  Normal
// cells are elongated with a low circularity and score higher the more
// elongated they are.
func Classify(shape Shape, p Params) Assessment {

	a := Assessment{Shape: shape}

	switch {
	case !shape.HasContour:
		a.Class = Unclear
		a.QualityScore = p.UnclearScore
	case shape.AspectRatio > p.NormalAspectRatio && shape.Circularity < p.NormalMaxCircularity:
		a.Class = Normal
		a.QualityScore = 0.8 + shape.AspectRatio/10*0.2
	case shape.AspectRatio > p.AcceptableAspectRatio:
		a.Class = Acceptable
		a.QualityScore = p.AcceptableScore
	default:
		a.Class = Abnormal
		a.QualityScore = p.AbnormalScore
	}

	a.QualityScore = clamp(a.QualityScore, 0, 1)

	return a
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
