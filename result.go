package spermtrack

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/you112ef/spermtrack/analysis"
	"github.com/you112ef/spermtrack/morphology"
	"github.com/you112ef/spermtrack/tracker"
)

// Kind selects which payload of an AnalysisResult is set
type Kind string

const (
	ImageAnalysis Kind = "image_analysis"
	VideoAnalysis Kind = "video_analysis"
)

// AnalysisResult is the outcome of one analysis run.  Exactly one of Image
// or Video is set, as selected by Kind.
type AnalysisResult struct {
	ID        uuid.UUID
	Kind      Kind
	CreatedAt time.Time
	Image     *ImageResult
	Video     *VideoResult
}

// newImageResult wraps an image payload with a fresh analysis ID
func newImageResult(r ImageResult) *AnalysisResult {
	return &AnalysisResult{
		ID:        uuid.New(),
		Kind:      ImageAnalysis,
		CreatedAt: time.Now(),
		Image:     &r,
	}
}

// newVideoResult wraps a video payload with a fresh analysis ID
func newVideoResult(r VideoResult) *AnalysisResult {
	return &AnalysisResult{
		ID:        uuid.New(),
		Kind:      VideoAnalysis,
		CreatedAt: time.Now(),
		Video:     &r,
	}
}

// header holds the fields common to both result kinds when encoded
type header struct {
	ID        uuid.UUID `json:"analysis_id"`
	Kind      Kind      `json:"type"`
	CreatedAt time.Time `json:"timestamp"`
}

// MarshalJSON encodes the result as a single object with the payload fields
// next to analysis_id, type and timestamp
func (r AnalysisResult) MarshalJSON() ([]byte, error) {

	h := header{ID: r.ID, Kind: r.Kind, CreatedAt: r.CreatedAt}

	switch r.Kind {
	case ImageAnalysis:
		if r.Image == nil {
			return nil, errors.New("image analysis result has no image payload")
		}
		return json.Marshal(struct {
			header
			*ImageResult
		}{h, r.Image})

	case VideoAnalysis:
		if r.Video == nil {
			return nil, errors.New("video analysis result has no video payload")
		}
		return json.Marshal(struct {
			header
			*VideoResult
		}{h, r.Video})
	}

	return nil, fmt.Errorf("unknown analysis kind %q", r.Kind)
}

// UnmarshalJSON decodes a result encoded by MarshalJSON
func (r *AnalysisResult) UnmarshalJSON(data []byte) error {

	var h header
	if err := json.Unmarshal(data, &h); err != nil {
		return err
	}

	out := AnalysisResult{ID: h.ID, Kind: h.Kind, CreatedAt: h.CreatedAt}

	switch h.Kind {
	case ImageAnalysis:
		out.Image = &ImageResult{}
		if err := json.Unmarshal(data, out.Image); err != nil {
			return err
		}

	case VideoAnalysis:
		out.Video = &VideoResult{}
		if err := json.Unmarshal(data, out.Video); err != nil {
			return err
		}

	default:
		return fmt.Errorf("unknown analysis kind %q", h.Kind)
	}

	*r = out

	return nil
}

// DetectionRecord is a single detection of an image along with its
// morphology assessment
type DetectionRecord struct {
	ID           int64            `json:"id"`
	BBox         [4]float32       `json:"bbox"`
	Confidence   float32          `json:"confidence"`
	AspectRatio  float64          `json:"aspect_ratio"`
	Area         float64          `json:"area"`
	Circularity  float64          `json:"circularity"`
	Morphology   morphology.Class `json:"morphology"`
	QualityScore float64          `json:"quality_score"`
}

// ImageResult is the payload of an image analysis
type ImageResult struct {
	SpermCount             int                            `json:"sperm_count"`
	Density                float64                        `json:"density"`
	ConcentrationPerML     float64                        `json:"concentration_per_ml"`
	AverageQuality         float64                        `json:"average_quality"`
	QualityDistribution    morphology.QualityDistribution `json:"quality_distribution"`
	MorphologySummary      morphology.Summary             `json:"morphology_summary"`
	ViabilityAssessment    morphology.Viability           `json:"viability_assessment"`
	ClinicalInterpretation string                         `json:"clinical_interpretation"`
	Width                  int                            `json:"image_width"`
	Height                 int                            `json:"image_height"`
	Detections             []DetectionRecord              `json:"detections"`
}

// TimeSeries is the per sampled frame detection count of a video
type TimeSeries struct {
	Timestamps []float64 `json:"timestamps"`
	Counts     []int     `json:"sperm_counts"`
}

// VideoResult is the payload of a video analysis
type VideoResult struct {
	Duration               float64                  `json:"duration"`
	FPS                    float64                  `json:"fps"`
	FramesAnalyzed         int                      `json:"total_frames_analyzed"`
	TotalSperm             int                      `json:"total_sperm"`
	MotileSperm            int                      `json:"motile_sperm"`
	MotilityPercentage     float64                  `json:"motility_percentage"`
	AverageVelocity        float64                  `json:"average_velocity"`
	VelocityVariation      float64                  `json:"velocity_variation"`
	AveragePathLength      float64                  `json:"average_path_length"`
	MovementPatterns       analysis.MovementSummary `json:"movement_patterns"`
	TemporalAnalysis       analysis.TemporalSummary `json:"temporal_analysis"`
	MotilityClassification string                   `json:"motility_classification"`
	ClinicalInterpretation string                   `json:"clinical_interpretation"`
	TimeSeries             TimeSeries               `json:"time_series"`
	Tracks                 []*tracker.Track         `json:"sperm_tracks"`
}
